package main

import (
	"io"
	"os"

	"github.com/peizihui/enigma-contract/cmd/utils"
	"github.com/peizihui/enigma-contract/config"
	"github.com/urfave/cli/v2"
)

var dumpConfigCommand = &cli.Command{
	Action:      dumpConfig,
	Name:        "dumpconfig",
	Usage:       "Show configuration values",
	ArgsUsage:   "[dumpfile]",
	Flags:       flagSet(utils.LedgerFlags, utils.TxFlags),
	Description: `The dumpconfig command shows configuration values, defaults overridden by the --config file and the command line flags.`,
}

// dumpConfig is the dumpconfig command.
func dumpConfig(ctx *cli.Context) error {
	cfg := utils.MakeConfig(ctx)

	var w io.Writer = os.Stdout
	if ctx.NArg() > 0 {
		f, err := os.OpenFile(ctx.Args().Get(0), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return config.Dump(w, cfg)
}
