package memory

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/simple-dapp/simple-dapp-go/pkg/journal"
	"github.com/simple-dapp/simple-dapp-go/pkg/types"
)

// MemoryJournal is an in-memory IEventJournal. Events are lost when the process exits.
// Stored events are copied on the way in and out.
type MemoryJournal struct {
	mu     sync.RWMutex
	events map[string]*types.ContractEvent
	closed bool
}

var _ journal.IEventJournal = (*MemoryJournal)(nil)

func NewMemoryJournal() *MemoryJournal {
	return &MemoryJournal{
		events: make(map[string]*types.ContractEvent),
	}
}

func (m *MemoryJournal) SaveEvent(ctx context.Context, event *types.ContractEvent) error {
	if event == nil {
		return fmt.Errorf("cannot save nil ContractEvent")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return journal.ErrClosed
	}
	m.events[journal.EventKey(event.BlockNumber, event.LogIndex)] = copyEvent(event)
	return nil
}

func (m *MemoryJournal) LoadEvent(ctx context.Context, blockNumber uint64, logIndex uint) (*types.ContractEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, journal.ErrClosed
	}
	event, ok := m.events[journal.EventKey(blockNumber, logIndex)]
	if !ok {
		return nil, nil
	}
	return copyEvent(event), nil
}

func (m *MemoryJournal) ListEvents(ctx context.Context) ([]*types.ContractEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, journal.ErrClosed
	}
	result := make([]*types.ContractEvent, 0, len(m.events))
	for _, event := range m.events {
		result = append(result, copyEvent(event))
	}
	journal.SortEvents(result)
	return result, nil
}

func (m *MemoryJournal) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *MemoryJournal) HealthCheck() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return journal.ErrClosed
	}
	return nil
}

func copyEvent(e *types.ContractEvent) *types.ContractEvent {
	c := *e
	if e.Amount != nil {
		c.Amount = new(big.Int).Set(e.Amount)
	}
	if e.ReleaseTime != nil {
		c.ReleaseTime = new(big.Int).Set(e.ReleaseTime)
	}
	return &c
}
