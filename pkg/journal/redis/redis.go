package redis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/simple-dapp/simple-dapp-go/pkg/journal"
	"github.com/simple-dapp/simple-dapp-go/pkg/types"
	"go.uber.org/zap"
)

const (
	defaultKeyPrefix = "dapp:"

	// keySetEvents indexes stored event keys, redis has no prefix iteration worth using
	keySetEvents = "events:index"
)

// RedisConfig holds the configuration for connecting to Redis
type RedisConfig struct {
	// Address is the Redis server address (host:port)
	Address  string
	Password string
	// DB is the Redis database number (0-15)
	DB int
	// KeyPrefix namespaces every key; "dapp:" when empty.
	KeyPrefix string
}

// RedisJournal is an IEventJournal shared through Redis.
type RedisJournal struct {
	client    *redis.Client
	logger    *zap.Logger
	keyPrefix string
	mu        sync.RWMutex
	closed    bool
}

var _ journal.IEventJournal = (*RedisJournal)(nil)

func NewRedisJournal(cfg *RedisConfig, logger *zap.Logger) (*RedisJournal, error) {
	if cfg == nil {
		return nil, fmt.Errorf("redis config cannot be nil")
	}
	if cfg.Address == "" {
		return nil, fmt.Errorf("redis address cannot be empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Address, err)
	}

	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	rj := &RedisJournal{
		client:    client,
		logger:    logger,
		keyPrefix: prefix,
	}

	if err := rj.initSchema(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.Sugar().Infow("Redis event journal initialized", "address", cfg.Address, "db", cfg.DB, "key_prefix", prefix)
	return rj, nil
}

func (r *RedisJournal) prefixKey(key string) string {
	return r.keyPrefix + key
}

func (r *RedisJournal) initSchema(ctx context.Context) error {
	schemaKey := r.prefixKey(journal.KeySchemaVersion)

	existing, err := r.client.Get(ctx, schemaKey).Result()
	if err == redis.Nil {
		return r.client.Set(ctx, schemaKey, journal.CurrentSchemaVersion, 0).Err()
	}
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if existing != journal.CurrentSchemaVersion {
		return fmt.Errorf("unsupported schema version: %s (expected: %s)", existing, journal.CurrentSchemaVersion)
	}
	return nil
}

func (r *RedisJournal) SaveEvent(ctx context.Context, event *types.ContractEvent) error {
	if event == nil {
		return fmt.Errorf("cannot save nil ContractEvent")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return journal.ErrClosed
	}

	data, err := journal.MarshalContractEvent(event)
	if err != nil {
		return err
	}

	eventKey := journal.EventKey(event.BlockNumber, event.LogIndex)
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.prefixKey(eventKey), data, 0)
	pipe.SAdd(ctx, r.prefixKey(keySetEvents), eventKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save ContractEvent: %w", err)
	}
	return nil
}

func (r *RedisJournal) LoadEvent(ctx context.Context, blockNumber uint64, logIndex uint) (*types.ContractEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return nil, journal.ErrClosed
	}

	data, err := r.client.Get(ctx, r.prefixKey(journal.EventKey(blockNumber, logIndex))).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load ContractEvent: %w", err)
	}
	return journal.UnmarshalContractEvent(data)
}

func (r *RedisJournal) ListEvents(ctx context.Context) ([]*types.ContractEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return nil, journal.ErrClosed
	}

	indexKey := r.prefixKey(keySetEvents)
	eventKeys, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list ContractEvent keys: %w", err)
	}

	events := []*types.ContractEvent{}
	if len(eventKeys) == 0 {
		return events, nil
	}

	keys := make([]string, len(eventKeys))
	for i, k := range eventKeys {
		keys[i] = r.prefixKey(k)
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ContractEvents: %w", err)
	}

	for i, val := range values {
		if val == nil {
			// indexed but gone, drop the stale index entry
			r.client.SRem(ctx, indexKey, eventKeys[i])
			continue
		}
		data, ok := val.(string)
		if !ok {
			r.logger.Sugar().Warnw("Unexpected value type for ContractEvent", "key", keys[i])
			continue
		}
		event, err := journal.UnmarshalContractEvent([]byte(data))
		if err != nil {
			r.logger.Sugar().Warnw("Failed to unmarshal ContractEvent, skipping", "key", keys[i], "error", err)
			continue
		}
		events = append(events, event)
	}

	journal.SortEvents(events)
	return events, nil
}

func (r *RedisJournal) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	r.mu.Unlock()

	if err := r.client.Close(); err != nil {
		return fmt.Errorf("failed to close Redis client: %w", err)
	}
	r.logger.Sugar().Info("Redis event journal closed")
	return nil
}

func (r *RedisJournal) HealthCheck() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return journal.ErrClosed
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis health check failed: %w", err)
	}
	if _, err := r.client.Get(ctx, r.prefixKey(journal.KeySchemaVersion)).Result(); err != nil {
		if err == redis.Nil {
			return fmt.Errorf("schema version not found - database may not be properly initialized")
		}
		return fmt.Errorf("failed to verify schema version: %w", err)
	}
	return nil
}
