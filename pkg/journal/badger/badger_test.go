package badger

import (
	"context"
	"math/big"
	"testing"

	"github.com/simple-dapp/simple-dapp-go/pkg/journal"
	"github.com/simple-dapp/simple-dapp-go/pkg/journal/journaltest"
	"github.com/simple-dapp/simple-dapp-go/pkg/logger"
	"github.com/simple-dapp/simple-dapp-go/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBadgerJournal(t *testing.T) {
	testLogger, _ := logger.NewLogger(&logger.LoggerConfig{Debug: false})

	journaltest.Run(t, func(t *testing.T) journal.IEventJournal {
		bj, err := NewBadgerJournal(t.TempDir(), testLogger)
		require.NoError(t, err)
		return bj
	})
}

func TestBadgerJournal_SurvivesReopen(t *testing.T) {
	tmpDir := t.TempDir()
	testLogger, _ := logger.NewLogger(&logger.LoggerConfig{Debug: false})
	ctx := context.Background()

	bj, err := NewBadgerJournal(tmpDir, testLogger)
	require.NoError(t, err)
	require.NoError(t, bj.SaveEvent(ctx, &types.ContractEvent{
		Name:        types.ContractEvent_Withdrawn,
		Amount:      big.NewInt(1_000_000_000),
		BlockNumber: 8,
		LogIndex:    1,
	}))
	require.NoError(t, bj.Close())

	reopened, err := NewBadgerJournal(tmpDir, testLogger)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	require.NoError(t, reopened.HealthCheck())
	loaded, err := reopened.LoadEvent(ctx, 8, 1)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, types.ContractEvent_Withdrawn, loaded.Name)
}
