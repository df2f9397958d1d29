// Package journaltest holds the behaviour every IEventJournal backend must share.
package journaltest

import (
	"context"
	"math/big"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/simple-dapp/simple-dapp-go/pkg/journal"
	"github.com/simple-dapp/simple-dapp-go/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory opens a fresh, empty journal. The suite closes it.
type Factory func(t *testing.T) journal.IEventJournal

var testUser = common.HexToAddress("0x00000000000000000000000000000000000000aa")

func depositedEvent(block uint64, index uint) *types.ContractEvent {
	return &types.ContractEvent{
		Name:        types.ContractEvent_Deposited,
		User:        testUser,
		Amount:      big.NewInt(1_000_000_000),
		ReleaseTime: big.NewInt(int64(7200 + block)),
		BlockNumber: block,
		TxHash:      common.BigToHash(new(big.Int).SetUint64(block)),
		LogIndex:    index,
	}
}

// Run exercises a backend against the IEventJournal contract.
func Run(t *testing.T, open Factory) {
	ctx := context.Background()

	t.Run("Save and load", func(t *testing.T) {
		j := open(t)
		defer func() { _ = j.Close() }()

		event := depositedEvent(12, 1)
		require.NoError(t, j.SaveEvent(ctx, event))

		loaded, err := j.LoadEvent(ctx, 12, 1)
		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Equal(t, event.Name, loaded.Name)
		assert.Equal(t, event.User, loaded.User)
		assert.Equal(t, 0, event.Amount.Cmp(loaded.Amount))
		assert.Equal(t, 0, event.ReleaseTime.Cmp(loaded.ReleaseTime))
		assert.Equal(t, event.TxHash, loaded.TxHash)
	})

	t.Run("Load missing event", func(t *testing.T) {
		j := open(t)
		defer func() { _ = j.Close() }()

		loaded, err := j.LoadEvent(ctx, 999, 0)
		require.NoError(t, err)
		assert.Nil(t, loaded)
	})

	t.Run("Nil event", func(t *testing.T) {
		j := open(t)
		defer func() { _ = j.Close() }()
		assert.Error(t, j.SaveEvent(ctx, nil))
	})

	t.Run("List is ordered and empty when unused", func(t *testing.T) {
		j := open(t)
		defer func() { _ = j.Close() }()

		events, err := j.ListEvents(ctx)
		require.NoError(t, err)
		assert.NotNil(t, events)
		assert.Empty(t, events)

		require.NoError(t, j.SaveEvent(ctx, depositedEvent(20, 2)))
		require.NoError(t, j.SaveEvent(ctx, depositedEvent(3, 0)))
		require.NoError(t, j.SaveEvent(ctx, depositedEvent(20, 10)))
		require.NoError(t, j.SaveEvent(ctx, &types.ContractEvent{
			Name:        types.ContractEvent_Withdrawn,
			User:        testUser,
			Amount:      big.NewInt(1_000_000_000),
			BlockNumber: 21,
		}))

		events, err = j.ListEvents(ctx)
		require.NoError(t, err)
		require.Len(t, events, 4)
		assert.Equal(t, uint64(3), events[0].BlockNumber)
		assert.Equal(t, uint(2), events[1].LogIndex)
		assert.Equal(t, uint(10), events[2].LogIndex)
		assert.Equal(t, types.ContractEvent_Withdrawn, events[3].Name)
		assert.Nil(t, events[3].ReleaseTime)
	})

	t.Run("Same log saved twice is stored once", func(t *testing.T) {
		j := open(t)
		defer func() { _ = j.Close() }()

		require.NoError(t, j.SaveEvent(ctx, depositedEvent(5, 0)))
		require.NoError(t, j.SaveEvent(ctx, depositedEvent(5, 0)))

		events, err := j.ListEvents(ctx)
		require.NoError(t, err)
		assert.Len(t, events, 1)
	})

	t.Run("Concurrent saves", func(t *testing.T) {
		j := open(t)
		defer func() { _ = j.Close() }()

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				assert.NoError(t, j.SaveEvent(ctx, depositedEvent(uint64(100+i), 0)))
			}(i)
		}
		wg.Wait()

		events, err := j.ListEvents(ctx)
		require.NoError(t, err)
		assert.Len(t, events, 20)
	})

	t.Run("Closed journal", func(t *testing.T) {
		j := open(t)
		require.NoError(t, j.HealthCheck())
		require.NoError(t, j.Close())
		require.NoError(t, j.Close())

		assert.ErrorIs(t, j.SaveEvent(ctx, depositedEvent(1, 0)), journal.ErrClosed)
		_, err := j.LoadEvent(ctx, 1, 0)
		assert.ErrorIs(t, err, journal.ErrClosed)
		_, err = j.ListEvents(ctx)
		assert.ErrorIs(t, err, journal.ErrClosed)
		assert.ErrorIs(t, j.HealthCheck(), journal.ErrClosed)
	})
}
