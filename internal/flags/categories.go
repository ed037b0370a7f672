package flags

import "github.com/urfave/cli/v2"

const (
	LedgerCategory      = "LEDGER CONNECTION"
	ContractCategory    = "CONTRACTS"
	TransactionCategory = "TRANSACTION"
	AccountCategory     = "ACCOUNT"
	LoggingCategory     = "LOGGING AND DEBUGGING"
	MetricsCategory     = "METRICS AND STATS"
	MiscCategory        = "MISC"
)

func init() {
	cli.HelpFlag.(*cli.BoolFlag).Category = MiscCategory
	cli.VersionFlag.(*cli.BoolFlag).Category = MiscCategory
}
