package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/simple-dapp/simple-dapp-go/pkg/config"
	"github.com/simple-dapp/simple-dapp-go/pkg/journal"
	"github.com/simple-dapp/simple-dapp-go/pkg/journal/memory"
	"github.com/simple-dapp/simple-dapp-go/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenJournal(t *testing.T) {
	l := testutil.NewTestLogger(t)

	t.Run("Memory", func(t *testing.T) {
		j, err := openJournal(&config.JournalConfig{Type: config.JournalType_Memory}, l)
		require.NoError(t, err)
		defer j.Close()
		assert.NoError(t, j.HealthCheck())
	})

	t.Run("LevelDB", func(t *testing.T) {
		j, err := openJournal(&config.JournalConfig{
			Type: config.JournalType_LevelDB,
			Path: filepath.Join(t.TempDir(), "events"),
		}, l)
		require.NoError(t, err)
		defer j.Close()

		events, err := j.ListEvents(context.Background())
		require.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("Badger", func(t *testing.T) {
		j, err := openJournal(&config.JournalConfig{
			Type: config.JournalType_Badger,
			Path: filepath.Join(t.TempDir(), "events"),
		}, l)
		require.NoError(t, err)
		defer j.Close()
		assert.NoError(t, j.HealthCheck())
	})

	t.Run("Unreachable redis fails at startup", func(t *testing.T) {
		j, err := openJournal(&config.JournalConfig{
			Type:         config.JournalType_Redis,
			RedisAddress: "127.0.0.1:1",
		}, l)
		assert.Error(t, err)
		assert.Nil(t, j)
	})

	t.Run("Unsupported type", func(t *testing.T) {
		j, err := openJournal(&config.JournalConfig{Type: "etcd"}, l)
		assert.Error(t, err)
		assert.Nil(t, j)
	})
}

func TestCheckJournal(t *testing.T) {
	t.Run("Healthy journal is kept open", func(t *testing.T) {
		j := memory.NewMemoryJournal()
		require.NoError(t, checkJournal(j, config.JournalType_Memory))
		assert.NoError(t, j.HealthCheck())
	})

	t.Run("Unhealthy journal is rejected and closed", func(t *testing.T) {
		j := &failingJournal{IEventJournal: memory.NewMemoryJournal()}

		err := checkJournal(j, config.JournalType_Badger)
		require.Error(t, err)
		assert.ErrorIs(t, err, errCorrupted)
		assert.Contains(t, err.Error(), "badger journal failed health check")
		assert.True(t, j.closed)
	})
}

var errCorrupted = assert.AnError

// failingJournal reports an unusable store, as a corrupted directory would.
type failingJournal struct {
	journal.IEventJournal
	closed bool
}

func (f *failingJournal) HealthCheck() error {
	return errCorrupted
}

func (f *failingJournal) Close() error {
	f.closed = true
	return f.IEventJournal.Close()
}
