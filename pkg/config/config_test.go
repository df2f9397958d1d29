package config

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDappConfig_Validate(t *testing.T) {
	t.Run("Defaults are valid", func(t *testing.T) {
		cfg := NewDefaultDappConfig()
		require.NoError(t, cfg.Validate())
		assert.Equal(t, big.NewInt(OneGwei), cfg.GetDepositAmount())
		assert.Equal(t, big.NewInt(7200), cfg.GetLockDuration())
		assert.Equal(t, DefaultLockContractAddress, cfg.GetLockContractAddress().Hex())
	})

	t.Run("Missing provider url", func(t *testing.T) {
		cfg := NewDefaultDappConfig()
		cfg.ProviderURLs = nil
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "providerUrls")
	})

	t.Run("Unsupported provider scheme", func(t *testing.T) {
		cfg := NewDefaultDappConfig()
		cfg.ProviderURLs = []string{"ftp://localhost:8545"}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "scheme")
	})

	t.Run("Invalid contract address", func(t *testing.T) {
		cfg := NewDefaultDappConfig()
		cfg.LockContractAddress = "0x1234"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "lockContractAddress")
	})

	t.Run("Invalid deposit amount", func(t *testing.T) {
		cfg := NewDefaultDappConfig()
		cfg.DepositAmountWei = "1.5"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "depositAmountWei")
	})

	t.Run("Unknown chain", func(t *testing.T) {
		cfg := NewDefaultDappConfig()
		cfg.ChainID = 42
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "chainId")
	})

	t.Run("Errors are aggregated", func(t *testing.T) {
		cfg := NewDefaultDappConfig()
		cfg.Port = 0
		cfg.PollInterval = 0 * time.Second
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "port")
		assert.Contains(t, err.Error(), "pollInterval")
	})
}

func TestJournalConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     JournalConfig
		wantErr string
	}{
		{"memory", JournalConfig{Type: JournalType_Memory}, ""},
		{"badger without path", JournalConfig{Type: JournalType_Badger}, "path"},
		{"leveldb with path", JournalConfig{Type: JournalType_LevelDB, Path: "/tmp/journal"}, ""},
		{"redis without address", JournalConfig{Type: JournalType_Redis}, "redisAddress"},
		{"redis bad db", JournalConfig{Type: JournalType_Redis, RedisAddress: "localhost:6379", RedisDB: 16}, "redisDb"},
		{"unknown type", JournalConfig{Type: "sqlite"}, "type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultDappConfig()
			cfg.Journal = tt.cfg
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetChainName(t *testing.T) {
	assert.Equal(t, ChainName_EthereumAnvil, GetChainName(ChainId_EthereumAnvil))
	assert.Equal(t, ChainName("unknown"), GetChainName(5))
}
