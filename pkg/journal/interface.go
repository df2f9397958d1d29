package journal

import (
	"context"
	"errors"

	"github.com/simple-dapp/simple-dapp-go/pkg/types"
)

// ErrClosed is returned by every operation on a closed journal
var ErrClosed = errors.New("event journal is closed")

// IEventJournal records the contract events delivered to listeners.
// All implementations must be thread-safe; every active listener writes concurrently.
type IEventJournal interface {
	// SaveEvent stores an event keyed by (block number, log index).
	// Saving the same log twice overwrites it, so a journal holds each log once
	// even when several listeners delivered it.
	SaveEvent(ctx context.Context, event *types.ContractEvent) error

	// LoadEvent returns nil if no event is stored for the key, error only on storage failure.
	LoadEvent(ctx context.Context, blockNumber uint64, logIndex uint) (*types.ContractEvent, error)

	// ListEvents returns every stored event ordered by block number then log index.
	// Returns an empty slice if nothing is stored.
	ListEvents(ctx context.Context) ([]*types.ContractEvent, error)

	// Close is idempotent. After Close all other operations return errors.
	Close() error

	// HealthCheck returns nil if the backend is usable.
	HealthCheck() error
}
