package util

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatEther(t *testing.T) {
	tests := []struct {
		wei  string
		want string
	}{
		{"0", "0"},
		{"1", "0.000000000000000001"},
		{"1000000000", "0.000000001"},
		{"1000000000000000", "0.001"},
		{"1000000000000000000", "1"},
		{"1500000000000000000", "1.5"},
		{"123456789012345678901234", "123456.789012345678901234"},
		{"-2500000000000000000", "-2.5"},
	}
	for _, tt := range tests {
		t.Run(tt.wei, func(t *testing.T) {
			wei, ok := new(big.Int).SetString(tt.wei, 10)
			require.True(t, ok)
			assert.Equal(t, tt.want, FormatEther(wei))
		})
	}
}

func TestFormatUnits_Edges(t *testing.T) {
	assert.Equal(t, "0", FormatUnits(nil, 18))
	assert.Equal(t, "42", FormatUnits(big.NewInt(42), 0))
	assert.Equal(t, "4.2", FormatUnits(big.NewInt(42), 1))
}

func TestMap(t *testing.T) {
	raw := []string{
		"0x1234567890123456789012345678901234567890",
		"0xabcdef1234567890abcdef1234567890abcdef12",
	}
	addrs := Map(raw, func(s string, i uint64) common.Address {
		return common.HexToAddress(s)
	})
	require.Len(t, addrs, 2)
	assert.Equal(t, common.HexToAddress(raw[1]), addrs[1])
}
