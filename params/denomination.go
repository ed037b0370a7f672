package params

// These are the multipliers for ENG denominations.
// Example: To get the grain value of an amount in whole ENG, use
//
//	new(big.Int).Mul(value, big.NewInt(params.ENG))
const (
	Grain = 1
	ENG   = 1e8

	// Decimals is the number of decimal places between a grain and one ENG.
	Decimals = 8
)
