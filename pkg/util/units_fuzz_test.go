package util

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

// FuzzFormatEtherExact checks the rendered decimal parses back to the exact quotient.
func FuzzFormatEtherExact(f *testing.F) {
	f.Add(int64(0))
	f.Add(int64(1))
	f.Add(int64(1_000_000_000))
	f.Add(int64(-1_500_000_000_000_000_000))

	f.Fuzz(func(t *testing.T, v int64) {
		wei := big.NewInt(v)
		rendered := FormatEther(wei)

		parsed, ok := new(big.Rat).SetString(rendered)
		require.True(t, ok, "rendered value %q must parse", rendered)

		expected := new(big.Rat).SetFrac(wei, new(big.Int).Exp(big.NewInt(10), big.NewInt(EtherDecimals), nil))
		require.Zero(t, expected.Cmp(parsed), "%s != %s", expected.FloatString(18), rendered)
	})
}
