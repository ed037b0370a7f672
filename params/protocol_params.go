package params

import (
	"math/big"
	"time"
)

const (
	DefaultGas           uint64 = 4712388 // Gas limit attached to admin transactions when none is given.
	DefaultKovanGas      uint64 = 10000000
	DefaultConfirmations uint64 = 0 // Blocks on top of the inclusion block reported before a receipt.

	DefaultPollInterval = time.Second // Receipt polling period while waiting for a transaction to be mined.
)

var (
	DefaultGasPrice = big.NewInt(100000000000) // 100 gwei
)
