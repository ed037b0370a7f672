package params

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

var (
	errEmptyAmount    = errors.New("empty amount")
	errNegativeAmount = errors.New("negative amount")
)

var engUnit = big.NewInt(ENG)

// ToGrains converts a whole ENG amount into grains.
func ToGrains(eng uint64) *big.Int {
	return new(big.Int).Mul(new(big.Int).SetUint64(eng), engUnit)
}

// FromGrains formats a grain amount as a decimal ENG string, trimming
// trailing zeros of the fraction.
func FromGrains(grains *big.Int) string {
	if grains == nil {
		return "0"
	}
	abs := new(big.Int).Abs(grains)
	whole, frac := new(big.Int).QuoRem(abs, engUnit, new(big.Int))

	s := whole.String()
	if frac.Sign() != 0 {
		f := frac.String()
		f = strings.Repeat("0", Decimals-len(f)) + f
		s += "." + strings.TrimRight(f, "0")
	}
	if grains.Sign() < 0 {
		s = "-" + s
	}
	return s
}

// ParseENG parses a decimal ENG amount such as "1.5" into grains. Amounts
// with more than Decimals fractional digits are rejected.
func ParseENG(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errEmptyAmount
	}
	if strings.HasPrefix(s, "-") {
		return nil, errNegativeAmount
	}
	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if len(frac) > Decimals {
		return nil, fmt.Errorf("amount %q has more than %d decimals", s, Decimals)
	}
	if whole == "" {
		whole = "0"
	}
	digits := whole + frac + strings.Repeat("0", Decimals-len(frac))
	grains, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	return grains, nil
}
