package util

import (
	"math/big"
	"strings"
)

// EtherDecimals is the fixed scale between wei and ether.
const EtherDecimals = 18

// FormatUnits renders value / 10^decimals as an exact decimal string with trailing
// fractional zeros trimmed, e.g. FormatUnits(1500, 3) == "1.5".
func FormatUnits(value *big.Int, decimals int) string {
	if value == nil {
		return "0"
	}
	if decimals <= 0 {
		return value.String()
	}

	abs := new(big.Int).Abs(value)
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	whole, frac := new(big.Int).QuoRem(abs, scale, new(big.Int))

	sign := ""
	if value.Sign() < 0 {
		sign = "-"
	}
	if frac.Sign() == 0 {
		return sign + whole.String()
	}

	fracStr := frac.String()
	fracStr = strings.Repeat("0", decimals-len(fracStr)) + fracStr
	fracStr = strings.TrimRight(fracStr, "0")
	return sign + whole.String() + "." + fracStr
}

// FormatEther converts a wei amount to ether.
func FormatEther(wei *big.Int) string {
	return FormatUnits(wei, EtherDecimals)
}
