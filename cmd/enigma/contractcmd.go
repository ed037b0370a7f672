package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/peizihui/enigma-contract/cmd/utils"
	"github.com/peizihui/enigma-contract/contracts"
	"github.com/peizihui/enigma-contract/internal/flags"
	"github.com/peizihui/enigma-contract/params"
	"github.com/urfave/cli/v2"
)

var (
	startFlag = &cli.Uint64Flag{
		Name:     "start",
		Usage:    "First state delta index",
		Category: flags.ContractCategory,
	}
	stopFlag = &cli.Uint64Flag{
		Name:     "stop",
		Usage:    "State delta index to stop before (default = delta count)",
		Category: flags.ContractCategory,
	}
	waitFlag = &cli.BoolFlag{
		Name:     "wait",
		Usage:    "Poll until the task record is final",
		Category: flags.MiscCategory,
	}

	contractCommand = &cli.Command{
		Name:  "contract",
		Usage: "Inspect secret contracts",
		Subcommands: []*cli.Command{
			{
				Name:      "deployed",
				Usage:     "Report whether a secret contract is deployed",
				ArgsUsage: "<scAddr>",
				Action:    contractDeployed,
				Flags:     utils.LedgerFlags,
			},
			{
				Name:      "codehash",
				Usage:     "Print the code hash of a secret contract",
				ArgsUsage: "<scAddr>",
				Action:    contractCodeHash,
				Flags:     utils.LedgerFlags,
			},
			{
				Name:      "deltas",
				Usage:     "List the state delta hashes of a secret contract",
				ArgsUsage: "<scAddr>",
				Action:    contractDeltas,
				Flags:     flagSet(utils.LedgerFlags, []cli.Flag{startFlag, stopFlag}),
			},
			{
				Name:      "delta",
				Usage:     "Print one state delta hash of a secret contract",
				ArgsUsage: "<scAddr> <index>",
				Action:    contractDelta,
				Flags:     utils.LedgerFlags,
			},
			{
				Name:      "validate",
				Usage:     "Check whether a hash is a state delta of a secret contract",
				ArgsUsage: "<scAddr> <hash>",
				Action:    contractValidate,
				Flags:     utils.LedgerFlags,
			},
		},
	}

	taskCommand = &cli.Command{
		Name:  "task",
		Usage: "Inspect task records",
		Subcommands: []*cli.Command{
			{
				Name:      "status",
				Usage:     "Print the on-ledger record of a task",
				ArgsUsage: "<taskId>",
				Action:    taskStatus,
				Flags:     flagSet(utils.LedgerFlags, []cli.Flag{waitFlag, utils.PollIntervalFlag}),
			},
		},
	}
)

func contractDeployed(ctx *cli.Context) error {
	scAddr := hashArg(ctx, 0, "secret contract address")
	s := openSession(ctx)
	defer s.Close()

	deployed, err := s.reader().IsDeployed(s.ctx, scAddr)
	if err != nil {
		return exitOnError(err)
	}
	fmt.Println(deployed)
	return nil
}

func contractCodeHash(ctx *cli.Context) error {
	scAddr := hashArg(ctx, 0, "secret contract address")
	s := openSession(ctx)
	defer s.Close()

	hash, err := s.reader().CodeHash(s.ctx, scAddr)
	if err != nil {
		return exitOnError(err)
	}
	fmt.Println(hash.Hex())
	return nil
}

func contractDeltas(ctx *cli.Context) error {
	scAddr := hashArg(ctx, 0, "secret contract address")
	s := openSession(ctx)
	defer s.Close()

	reader := s.reader()
	stop := ctx.Uint64(stopFlag.Name)
	if !ctx.IsSet(stopFlag.Name) {
		count, err := reader.CountStateDeltas(s.ctx, scAddr)
		if err != nil {
			return exitOnError(err)
		}
		stop = count
	}
	start := ctx.Uint64(startFlag.Name)
	hashes, err := reader.StateDeltaHashes(s.ctx, scAddr, start, stop)
	if err != nil {
		return exitOnError(err)
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Index", "State delta hash"})
	for i, hash := range hashes {
		table.Append([]string{strconv.FormatUint(start+uint64(i), 10), hash.Hex()})
	}
	table.Render()
	return nil
}

func contractDelta(ctx *cli.Context) error {
	scAddr := hashArg(ctx, 0, "secret contract address")
	index := uintArg(ctx, 1, "index")
	s := openSession(ctx)
	defer s.Close()

	hash, err := s.reader().StateDeltaHash(s.ctx, scAddr, index)
	if err != nil {
		return exitOnError(err)
	}
	fmt.Println(hash.Hex())
	return nil
}

func contractValidate(ctx *cli.Context) error {
	scAddr := hashArg(ctx, 0, "secret contract address")
	delta := hashArg(ctx, 1, "state delta hash")
	s := openSession(ctx)
	defer s.Close()

	valid, err := s.reader().IsValidDeltaHash(s.ctx, scAddr, delta)
	if err != nil {
		return exitOnError(err)
	}
	fmt.Println(valid)
	return nil
}

func taskStatus(ctx *cli.Context) error {
	taskID := hashArg(ctx, 0, "task ID")
	s := openSession(ctx)
	defer s.Close()

	var (
		record *contracts.TaskRecord
		err    error
	)
	if ctx.Bool(waitFlag.Name) {
		record, err = s.client.WaitTaskFinal(s.ctx, taskID, s.cfg.Watch.PollInterval)
	} else {
		record, err = s.client.TaskRecord(s.ctx, taskID)
	}
	if err != nil {
		return exitOnError(err)
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Field", "Value"})
	table.AppendBulk([][]string{
		{"Status", record.Status.String()},
		{"Sender", record.Sender.Hex()},
		{"Inputs hash", record.InputsHash.Hex()},
		{"Output hash", record.OutputHash.Hex()},
		{"Gas limit", record.GasLimit.String()},
		{"Gas price", params.FromGrains(record.GasPx) + " ENG"},
		{"Block", record.BlockNumber.String()},
	})
	table.Render()
	return nil
}
