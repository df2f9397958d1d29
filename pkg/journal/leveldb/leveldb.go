package leveldb

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"github.com/simple-dapp/simple-dapp-go/pkg/journal"
	"github.com/simple-dapp/simple-dapp-go/pkg/types"
	lvldb "github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
	"go.uber.org/zap"
)

// LevelDBJournal is a disk-backed IEventJournal using goleveldb.
type LevelDBJournal struct {
	db     *lvldb.DB
	logger *zap.Logger
	mu     sync.RWMutex
	closed bool
}

var _ journal.IEventJournal = (*LevelDBJournal)(nil)

var syncWrite = &opt.WriteOptions{Sync: true}

// NewLevelDBJournal opens (or creates) a journal at dataPath.
func NewLevelDBJournal(dataPath string, logger *zap.Logger) (*LevelDBJournal, error) {
	absPath, err := filepath.Abs(dataPath)
	if err != nil {
		return nil, errors.Wrap(err, "resolving absolute path")
	}

	db, err := lvldb.OpenFile(absPath, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "opening leveldb at %s", absPath)
	}

	lj := &LevelDBJournal{
		db:     db,
		logger: logger,
	}
	if err := lj.initSchema(); err != nil {
		_ = db.Close()
		return nil, errors.WithMessage(err, "initializing schema")
	}

	logger.Sugar().Infow("LevelDB event journal initialized", "path", absPath)
	return lj, nil
}

func (l *LevelDBJournal) initSchema() error {
	existing, err := l.db.Get([]byte(journal.KeySchemaVersion), nil)
	if err == lvldb.ErrNotFound {
		return errors.Wrap(
			l.db.Put([]byte(journal.KeySchemaVersion), []byte(journal.CurrentSchemaVersion), syncWrite),
			"writing schema version")
	}
	if err != nil {
		return errors.Wrap(err, "reading schema version")
	}
	if string(existing) != journal.CurrentSchemaVersion {
		return errors.Errorf("unsupported schema version: %s (expected: %s)", existing, journal.CurrentSchemaVersion)
	}
	return nil
}

func (l *LevelDBJournal) SaveEvent(ctx context.Context, event *types.ContractEvent) error {
	if event == nil {
		return errors.New("cannot save nil ContractEvent")
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.closed {
		return journal.ErrClosed
	}

	data, err := journal.MarshalContractEvent(event)
	if err != nil {
		return err
	}
	key := journal.EventKey(event.BlockNumber, event.LogIndex)
	return errors.Wrap(l.db.Put([]byte(key), data, syncWrite), "putting ContractEvent")
}

func (l *LevelDBJournal) LoadEvent(ctx context.Context, blockNumber uint64, logIndex uint) (*types.ContractEvent, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.closed {
		return nil, journal.ErrClosed
	}

	data, err := l.db.Get([]byte(journal.EventKey(blockNumber, logIndex)), nil)
	if err == lvldb.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "getting ContractEvent")
	}
	return journal.UnmarshalContractEvent(data)
}

func (l *LevelDBJournal) ListEvents(ctx context.Context) ([]*types.ContractEvent, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.closed {
		return nil, journal.ErrClosed
	}

	events := []*types.ContractEvent{}
	it := l.db.NewIterator(util.BytesPrefix([]byte(journal.KeyPrefixEvent)), nil)
	defer it.Release()

	for it.Next() {
		// the iterator reuses its buffers, UnmarshalContractEvent does not keep them
		event, err := journal.UnmarshalContractEvent(it.Value())
		if err != nil {
			l.logger.Sugar().Warnw("Failed to unmarshal ContractEvent, skipping",
				"key", string(it.Key()), "error", err)
			continue
		}
		events = append(events, event)
	}
	if err := it.Error(); err != nil {
		return nil, errors.Wrap(err, "iterating ContractEvents")
	}
	return events, nil
}

func (l *LevelDBJournal) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	l.mu.Unlock()

	if err := l.db.Close(); err != nil {
		return errors.Wrap(err, "closing leveldb")
	}
	l.logger.Sugar().Info("LevelDB event journal closed")
	return nil
}

func (l *LevelDBJournal) HealthCheck() error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.closed {
		return journal.ErrClosed
	}
	ok, err := l.db.Has([]byte(journal.KeySchemaVersion), nil)
	if err != nil {
		return errors.Wrap(err, "leveldb health check")
	}
	if !ok {
		return errors.New("schema version not found - database may be corrupted")
	}
	return nil
}
