package redis

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/simple-dapp/simple-dapp-go/pkg/journal"
	"github.com/simple-dapp/simple-dapp-go/pkg/journal/journaltest"
	"github.com/simple-dapp/simple-dapp-go/pkg/logger"
	"github.com/stretchr/testify/require"
)

// getTestRedisAddress uses REDIS_TEST_ADDRESS if set, otherwise localhost:6379.
func getTestRedisAddress() string {
	if addr := os.Getenv("REDIS_TEST_ADDRESS"); addr != "" {
		return addr
	}
	return "localhost:6379"
}

// requireRedis opens a journal under a unique key prefix, skipping when Redis is not reachable.
func requireRedis(t *testing.T) *RedisJournal {
	t.Helper()

	testLogger, _ := logger.NewLogger(&logger.LoggerConfig{Debug: false})
	cfg := &RedisConfig{
		Address:   getTestRedisAddress(),
		DB:        15, // dedicated to tests
		KeyPrefix: fmt.Sprintf("dapp-test:%s:", uuid.New().String()),
	}
	rj, err := NewRedisJournal(cfg, testLogger)
	if err != nil {
		t.Skipf("Redis not available at %s: %v", cfg.Address, err)
		return nil
	}
	t.Cleanup(func() { cleanupRedis(cfg) })
	return rj
}

// cleanupRedis removes every key written under the test prefix. The journal itself
// is closed by then, so it uses its own client.
func cleanupRedis(cfg *RedisConfig) {
	client := goredis.NewClient(&goredis.Options{Addr: cfg.Address, DB: cfg.DB})
	defer func() { _ = client.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	keys, err := client.Keys(ctx, cfg.KeyPrefix+"*").Result()
	if err == nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

func TestRedisJournal(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping redis journal tests in short mode")
	}
	journaltest.Run(t, func(t *testing.T) journal.IEventJournal {
		return requireRedis(t)
	})
}

func TestNewRedisJournal_InvalidConfig(t *testing.T) {
	testLogger, _ := logger.NewLogger(&logger.LoggerConfig{Debug: false})

	_, err := NewRedisJournal(nil, testLogger)
	require.Error(t, err)

	_, err = NewRedisJournal(&RedisConfig{}, testLogger)
	require.Error(t, err)
}
