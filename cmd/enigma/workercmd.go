package main

import (
	"context"
	"fmt"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/olekukonko/tablewriter"
	"github.com/peizihui/enigma-contract/admin"
	"github.com/peizihui/enigma-contract/cmd/utils"
	"github.com/peizihui/enigma-contract/contracts"
	"github.com/peizihui/enigma-contract/events"
	"github.com/peizihui/enigma-contract/internal/flags"
	"github.com/peizihui/enigma-contract/params"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

var (
	grainsFlag = &cli.BoolFlag{
		Name:     "grains",
		Usage:    "Interpret the deposit amount as grains instead of ENG",
		Category: flags.TransactionCategory,
	}

	workerCommand = &cli.Command{
		Name:  "worker",
		Usage: "Manage Enigma workers",
		Subcommands: []*cli.Command{
			{
				Name:      "status",
				Usage:     "Print the lifecycle status of a worker",
				ArgsUsage: "[<address>]",
				Action:    workerStatus,
				Flags:     flagSet(utils.LedgerFlags, []cli.Flag{utils.FromFlag}),
			},
			{
				Name:      "info",
				Usage:     "Print status, staked and wallet balance of workers",
				ArgsUsage: "<address> [<address>...]",
				Action:    workerInfo,
				Flags:     flagSet(utils.LedgerFlags, []cli.Flag{utils.FromFlag}),
			},
			{
				Name:      "balance",
				Usage:     "Print the ENG staked by a worker",
				ArgsUsage: "[<address>]",
				Action:    workerBalance,
				Flags:     flagSet(utils.LedgerFlags, []cli.Flag{utils.FromFlag}),
			},
			{
				Name:      "login",
				Usage:     "Log the worker in",
				ArgsUsage: "[<address>]",
				Action:    workerLogin,
				Flags:     flagSet(utils.LedgerFlags, utils.TxFlags),
			},
			{
				Name:      "logout",
				Usage:     "Log the worker out",
				ArgsUsage: "[<address>]",
				Action:    workerLogout,
				Flags:     flagSet(utils.LedgerFlags, utils.TxFlags),
			},
			{
				Name:      "deposit",
				Usage:     "Deposit ENG from the worker wallet into its bank",
				ArgsUsage: "<amount> [<address>]",
				Action:    workerDeposit,
				Flags:     flagSet(utils.LedgerFlags, utils.TxFlags, []cli.Flag{grainsFlag}),
				Description: `
The deposit approves the Enigma contract to spend the amount, checks the
allowance and then submits the deposit. The amount is given in ENG unless
--grains is set.`,
			},
		},
	}
)

func workerStatus(ctx *cli.Context) error {
	s := openSession(ctx)
	defer s.Close()

	status, err := s.reader().WorkerStatus(s.ctx, s.account(ctx, 0))
	if err != nil {
		return exitOnError(err)
	}
	fmt.Println(status)
	return nil
}

func workerBalance(ctx *cli.Context) error {
	s := openSession(ctx)
	defer s.Close()

	balance, err := s.reader().StakedBalance(s.ctx, s.account(ctx, 0))
	if err != nil {
		return exitOnError(err)
	}
	fmt.Println(utils.FormatGrains(balance))
	return nil
}

type workerRow struct {
	worker *contracts.Worker
	wallet *big.Int
}

func workerInfo(ctx *cli.Context) error {
	s := openSession(ctx)
	defer s.Close()

	var addrs []common.Address
	for i := 0; i < ctx.NArg(); i++ {
		addrs = append(addrs, utils.MakeAddress("address", ctx.Args().Get(i)))
	}
	if len(addrs) == 0 {
		addrs = append(addrs, s.account(ctx, 0))
	}
	var (
		rows   = make([]workerRow, len(addrs))
		reader = s.reader()
	)
	g, gctx := errgroup.WithContext(s.ctx)
	for i, addr := range addrs {
		i, addr := i, addr
		g.Go(func() error {
			w, err := reader.Worker(gctx, addr)
			if err != nil {
				return fmt.Errorf("worker %s: %w", addr, err)
			}
			rows[i].worker = w
			return nil
		})
		g.Go(func() error {
			wallet, err := s.client.TokenBalance(gctx, addr)
			if err != nil {
				return fmt.Errorf("wallet %s: %w", addr, err)
			}
			rows[i].wallet = wallet
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return exitOnError(err)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Address", "Status", "Signer", "Staked", "Wallet"})
	for i, addr := range addrs {
		table.Append([]string{
			addr.Hex(),
			rows[i].worker.Status.String(),
			rows[i].worker.Signer.Hex(),
			params.FromGrains(rows[i].worker.Balance),
			params.FromGrains(rows[i].wallet),
		})
	}
	table.Render()
	return nil
}

func workerLogin(ctx *cli.Context) error {
	s := openSession(ctx)
	defer s.Close()

	from := s.account(ctx, 0)
	return exitOnError(printEvents(os.Stdout, workerTx(s.ctx, s.writer(ctx, from), events.Login, from)))
}

func workerLogout(ctx *cli.Context) error {
	s := openSession(ctx)
	defer s.Close()

	from := s.account(ctx, 0)
	return exitOnError(printEvents(os.Stdout, workerTx(s.ctx, s.writer(ctx, from), events.Logout, from)))
}

// workerTx submits a login or logout sent by from, the account the signer
// was unlocked for.
func workerTx(ctx context.Context, c *admin.Client, op events.Operation, from common.Address) *events.Stream {
	opts := admin.TxOptions{From: from}
	if op == events.Logout {
		return c.Logout(ctx, opts)
	}
	return c.Login(ctx, opts)
}

func workerDeposit(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		utils.Fatalf("This command requires an amount argument.")
	}
	amount, err := parseAmount(ctx.Args().First(), ctx.Bool(grainsFlag.Name))
	if err != nil {
		utils.Fatalf("Invalid amount: %v", err)
	}
	s := openSession(ctx)
	defer s.Close()

	from := s.account(ctx, 1)
	log.Info("Depositing", "account", from, "amount", utils.FormatGrains(amount))
	return exitOnError(printEvents(os.Stdout, s.writer(ctx, from).Deposit(s.ctx, from, amount, admin.TxOptions{})))
}

// parseAmount reads a deposit amount in ENG, or in grains when grains is set.
func parseAmount(s string, grains bool) (*big.Int, error) {
	if !grains {
		return params.ParseENG(s)
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%q is not an integer", s)
	}
	return v, nil
}
