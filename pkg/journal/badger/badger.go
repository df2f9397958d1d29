package badger

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	badgerdb "github.com/dgraph-io/badger/v3"
	"github.com/simple-dapp/simple-dapp-go/pkg/journal"
	"github.com/simple-dapp/simple-dapp-go/pkg/types"
	"go.uber.org/zap"
)

const gcInterval = 5 * time.Minute

// BadgerJournal is a disk-backed IEventJournal using Badger.
type BadgerJournal struct {
	db       *badgerdb.DB
	logger   *zap.Logger
	gcCancel context.CancelFunc
	gcWg     sync.WaitGroup
	mu       sync.RWMutex
	closed   bool
}

var _ journal.IEventJournal = (*BadgerJournal)(nil)

// NewBadgerJournal opens (or creates) a journal at dataPath and starts value log GC.
func NewBadgerJournal(dataPath string, logger *zap.Logger) (*BadgerJournal, error) {
	absPath, err := filepath.Abs(dataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	opts := badgerdb.DefaultOptions(absPath)
	opts.Logger = &badgerLoggerAdapter{logger: logger}
	opts.SyncWrites = true
	opts.CompactL0OnClose = true
	opts.NumVersionsToKeep = 1

	db, err := badgerdb.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database at %s: %w", absPath, err)
	}

	bj := &BadgerJournal{
		db:     db,
		logger: logger,
	}

	if err := bj.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	bj.gcCancel = cancel
	bj.gcWg.Add(1)
	go bj.runGC(ctx)

	logger.Sugar().Infow("Badger event journal initialized", "path", absPath)
	return bj, nil
}

func (b *BadgerJournal) initSchema() error {
	return b.db.Update(func(txn *badgerdb.Txn) error {
		item, err := txn.Get([]byte(journal.KeySchemaVersion))
		if err == badgerdb.ErrKeyNotFound {
			return txn.Set([]byte(journal.KeySchemaVersion), []byte(journal.CurrentSchemaVersion))
		}
		if err != nil {
			return fmt.Errorf("failed to read schema version: %w", err)
		}

		var existing string
		if err := item.Value(func(val []byte) error {
			existing = string(val)
			return nil
		}); err != nil {
			return fmt.Errorf("failed to read schema version value: %w", err)
		}
		if existing != journal.CurrentSchemaVersion {
			return fmt.Errorf("unsupported schema version: %s (expected: %s)", existing, journal.CurrentSchemaVersion)
		}
		return nil
	})
}

func (b *BadgerJournal) runGC(ctx context.Context) {
	defer b.gcWg.Done()

	ticker := time.NewTicker(gcInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			err := b.db.RunValueLogGC(0.5)
			if err != nil && err != badgerdb.ErrNoRewrite {
				b.logger.Sugar().Warnw("Badger GC error", "error", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (b *BadgerJournal) SaveEvent(ctx context.Context, event *types.ContractEvent) error {
	if event == nil {
		return fmt.Errorf("cannot save nil ContractEvent")
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return journal.ErrClosed
	}

	data, err := journal.MarshalContractEvent(event)
	if err != nil {
		return err
	}

	key := journal.EventKey(event.BlockNumber, event.LogIndex)
	return b.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

func (b *BadgerJournal) LoadEvent(ctx context.Context, blockNumber uint64, logIndex uint) (*types.ContractEvent, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return nil, journal.ErrClosed
	}

	var data []byte
	err := b.db.View(func(txn *badgerdb.Txn) error {
		item, err := txn.Get([]byte(journal.EventKey(blockNumber, logIndex)))
		if err == badgerdb.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load ContractEvent: %w", err)
	}
	if data == nil {
		return nil, nil
	}
	return journal.UnmarshalContractEvent(data)
}

// ListEvents walks the event prefix; keys are already in chain order.
func (b *BadgerJournal) ListEvents(ctx context.Context) ([]*types.ContractEvent, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return nil, journal.ErrClosed
	}

	events := []*types.ContractEvent{}
	err := b.db.View(func(txn *badgerdb.Txn) error {
		opts := badgerdb.DefaultIteratorOptions
		opts.Prefix = []byte(journal.KeyPrefixEvent)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			data, err := item.ValueCopy(nil)
			if err != nil {
				return fmt.Errorf("failed to read value: %w", err)
			}

			event, err := journal.UnmarshalContractEvent(data)
			if err != nil {
				b.logger.Sugar().Warnw("Failed to unmarshal ContractEvent, skipping",
					"key", string(item.Key()), "error", err)
				continue
			}
			events = append(events, event)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list ContractEvents: %w", err)
	}
	return events, nil
}

func (b *BadgerJournal) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	b.mu.Unlock()

	if b.gcCancel != nil {
		b.gcCancel()
	}
	b.gcWg.Wait()

	if err := b.db.Close(); err != nil {
		return fmt.Errorf("failed to close badger database: %w", err)
	}
	b.logger.Sugar().Info("Badger event journal closed")
	return nil
}

func (b *BadgerJournal) HealthCheck() error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return journal.ErrClosed
	}
	return b.db.View(func(txn *badgerdb.Txn) error {
		_, err := txn.Get([]byte(journal.KeySchemaVersion))
		if err == badgerdb.ErrKeyNotFound {
			return fmt.Errorf("schema version not found - database may be corrupted")
		}
		return err
	})
}
