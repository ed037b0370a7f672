// enigma is the command line client for Enigma workers and secret contracts.
package main

import (
	"fmt"
	"os"

	"github.com/peizihui/enigma-contract/cmd/utils"
	"github.com/peizihui/enigma-contract/params"
	"github.com/urfave/cli/v2"
)

const clientIdentifier = "enigma" // Client identifier to advertise over the network

var (
	// Git SHA1 commit hash of the release (set via linker flags)
	gitCommit = ""
	gitDate   = ""

	app = &cli.App{
		Name:                 clientIdentifier,
		Usage:                "the Enigma worker and secret contract command line interface",
		EnableBashCompletion: true,
	}
)

func init() {
	app.Version = params.VersionWithCommit(gitCommit, gitDate)
	app.Commands = []*cli.Command{
		contractCommand,
		dumpConfigCommand,
		taskCommand,
		versionCommand,
		workerCommand,
	}

	app.Flags = utils.GlobalFlags
	app.Before = func(ctx *cli.Context) error {
		utils.SetupLogging(ctx.Int(utils.VerbosityFlag.Name))
		return nil
	}
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// flagSet concatenates flag groups into a fresh slice.
func flagSet(groups ...[]cli.Flag) []cli.Flag {
	var all []cli.Flag
	for _, g := range groups {
		all = append(all, g...)
	}
	return all
}
