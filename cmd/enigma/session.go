package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/fatih/color"
	"github.com/peizihui/enigma-contract/admin"
	"github.com/peizihui/enigma-contract/cmd/utils"
	"github.com/peizihui/enigma-contract/config"
	"github.com/peizihui/enigma-contract/enigmaclient"
	"github.com/peizihui/enigma-contract/events"
	"github.com/urfave/cli/v2"
)

// session is the state shared by the commands of one invocation.
type session struct {
	ctx    context.Context
	stop   context.CancelFunc
	cfg    *config.Config
	client *enigmaclient.Client
}

// openSession loads the configuration and dials the ledger. Interrupting
// the process cancels the session context.
func openSession(ctx *cli.Context) *session {
	cfg := utils.MakeConfig(ctx)
	utils.SetupLogging(cfg.Log.Verbosity)
	utils.SetupMetrics(cfg)

	sctx, stop := signal.NotifyContext(ctx.Context, os.Interrupt)
	client, err := enigmaclient.DialContext(sctx, cfg)
	if err != nil {
		stop()
		utils.Fatalf("Failed to connect to %s: %v", cfg.Endpoint, err)
	}
	return &session{ctx: sctx, stop: stop, cfg: cfg, client: client}
}

func (s *session) Close() {
	s.client.Close()
	s.stop()
}

// reader returns an admin client for read-only calls.
func (s *session) reader() *admin.Client {
	return s.client.Admin(nil)
}

// writer returns an admin client signing with the keystore key of from.
func (s *session) writer(ctx *cli.Context, from common.Address) *admin.Client {
	chainID, err := s.client.ChainID(s.ctx)
	if err != nil {
		utils.Fatalf("Failed to retrieve chain ID: %v", err)
	}
	ks := utils.MakeKeyStore(s.cfg.Keystore)
	return s.client.Admin(utils.MakeSigner(ctx, ks, from, chainID))
}

// account returns the address given as argument n, or the configured sender.
func (s *session) account(ctx *cli.Context, n int) common.Address {
	if ctx.NArg() > n {
		return utils.MakeAddress("account", ctx.Args().Get(n))
	}
	if s.cfg.Tx.From == (common.Address{}) {
		utils.Fatalf("No account given, pass it as argument or set --%s", utils.FromFlag.Name)
	}
	return s.cfg.Tx.From
}

// hashArg parses argument n as a 32 byte hash.
func hashArg(ctx *cli.Context, n int, what string) common.Hash {
	if ctx.NArg() <= n {
		utils.Fatalf("Missing %s argument", what)
	}
	b, err := hexutil.Decode(ctx.Args().Get(n))
	if err != nil || len(b) > common.HashLength {
		utils.Fatalf("Invalid %s %q", what, ctx.Args().Get(n))
	}
	return common.BytesToHash(b)
}

// uintArg parses argument n as an unsigned integer.
func uintArg(ctx *cli.Context, n int, what string) uint64 {
	if ctx.NArg() <= n {
		utils.Fatalf("Missing %s argument", what)
	}
	v, err := strconv.ParseUint(ctx.Args().Get(n), 10, 64)
	if err != nil {
		utils.Fatalf("Invalid %s %q: %v", what, ctx.Args().Get(n), err)
	}
	return v
}

// printEvents writes every event of stream to w until the stream ends and
// returns the error carried by an ERROR event.
func printEvents(w io.Writer, stream *events.Stream) error {
	var (
		failed  error
		hashed  = color.New(color.FgCyan)
		pending = color.New(color.FgYellow)
		done    = color.New(color.FgGreen, color.Bold)
		errored = color.New(color.FgRed, color.Bold)
	)
	for ev := range stream.Events() {
		switch {
		case ev.Err != nil:
			errored.Fprintf(w, "%-26s %s\n", ev.Name, ev.Err.Error())
			failed = ev.Err
		case ev.Name.IsReceipt():
			done.Fprintf(w, "%-26s block=%v gas=%d\n", ev.Name, ev.Receipt.BlockNumber, ev.Receipt.GasUsed)
		case ev.Confirmation > 0:
			pending.Fprintf(w, "%-26s %d\n", ev.Name, ev.Confirmation)
		default:
			hashed.Fprintf(w, "%-26s %s\n", ev.Name, ev.TxHash.Hex())
		}
	}
	return failed
}

// exitOnError turns a failed operation into a command error.
func exitOnError(err error) error {
	if err == nil {
		return nil
	}
	return cli.Exit(fmt.Sprintf("Fatal: %v", err), 1)
}
