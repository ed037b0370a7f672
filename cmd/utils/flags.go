// Copyright 2015 The go-ethereum Authors
// This file is part of go-ethereum.
//
// go-ethereum is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-ethereum is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-ethereum. If not, see <http://www.gnu.org/licenses/>.

// Package utils contains internal helper functions for enigma commands.
package utils

import (
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/peizihui/enigma-contract/config"
	"github.com/peizihui/enigma-contract/internal/flags"
	"github.com/peizihui/enigma-contract/metrics"
	"github.com/peizihui/enigma-contract/params"
	"github.com/urfave/cli/v2"
)

// These are all the command line flags we support.
// If you add to this list, please remember to include the
// flag in the appropriate command definition.
//
// The flags are defined here so their names and help texts
// are the same for all commands.

var (
	ConfigFileFlag = &cli.PathFlag{
		Name:      "config",
		Usage:     "TOML configuration file",
		TakesFile: true,
		Category:  flags.MiscCategory,
	}

	// Ledger connection
	NetworkFlag = &cli.StringFlag{
		Name:     "network",
		Usage:    "Network preset (" + strings.Join(params.NetworkNames(), ", ") + ")",
		Value:    config.Defaults.Network,
		Category: flags.LedgerCategory,
	}
	EndpointFlag = &cli.StringFlag{
		Name:     "rpc",
		Usage:    "Ledger RPC endpoint (HTTP, WS or IPC), overrides the network preset (required for kovan: provider URL with project key)",
		Category: flags.LedgerCategory,
	}

	// Contracts
	EnigmaContractFlag = &cli.StringFlag{
		Name:     "enigma",
		Usage:    "Address of the Enigma contract",
		Category: flags.ContractCategory,
	}
	TokenContractFlag = &cli.StringFlag{
		Name:     "token",
		Usage:    "Address of the ENG token contract",
		Category: flags.ContractCategory,
	}

	// Transaction defaults
	FromFlag = &cli.StringFlag{
		Name:     "from",
		Usage:    "Sender (worker) account address",
		Category: flags.TransactionCategory,
	}
	GasFlag = &cli.Uint64Flag{
		Name:     "gas",
		Usage:    "Gas limit of submitted transactions",
		Value:    params.DefaultGas,
		Category: flags.TransactionCategory,
	}
	GasPriceFlag = &cli.StringFlag{
		Name:     "gasprice",
		Usage:    "Gas price of submitted transactions, in wei",
		Value:    params.DefaultGasPrice.String(),
		Category: flags.TransactionCategory,
	}
	NonceFlag = &cli.Uint64Flag{
		Name:     "nonce",
		Usage:    "Nonce of the (first) submitted transaction (default = pending nonce)",
		Category: flags.TransactionCategory,
	}
	ConfirmationsFlag = &cli.Uint64Flag{
		Name:     "confirmations",
		Usage:    "Number of confirmation events reported before the receipt",
		Value:    params.DefaultConfirmations,
		Category: flags.TransactionCategory,
	}
	PollIntervalFlag = &cli.DurationFlag{
		Name:     "poll",
		Usage:    "Receipt polling interval",
		Value:    params.DefaultPollInterval,
		Category: flags.TransactionCategory,
	}

	// Account settings
	KeyStoreDirFlag = &cli.PathFlag{
		Name:      "keystore",
		Usage:     "Directory of the keystore holding the sender key",
		TakesFile: true,
		Category:  flags.AccountCategory,
	}
	PasswordFileFlag = &cli.PathFlag{
		Name:      "password",
		Usage:     "Password file to use for non-interactive password input",
		TakesFile: true,
		Category:  flags.AccountCategory,
	}

	// Logging
	VerbosityFlag = &cli.IntFlag{
		Name:     "verbosity",
		Usage:    "Logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
		Value:    config.Defaults.Log.Verbosity,
		Category: flags.LoggingCategory,
	}

	// Metrics
	MetricsEnabledFlag = &cli.BoolFlag{
		Name:     "metrics",
		Usage:    "Enable metrics collection and reporting",
		Category: flags.MetricsCategory,
	}
	MetricsHTTPFlag = &cli.StringFlag{
		Name:     "metrics.addr",
		Usage:    "Enable stand-alone metrics HTTP server listening interface",
		Value:    metrics.DefaultConfig.HTTP,
		Category: flags.MetricsCategory,
	}
	MetricsPortFlag = &cli.IntFlag{
		Name:     "metrics.port",
		Usage:    "Metrics HTTP server listening port",
		Value:    metrics.DefaultConfig.Port,
		Category: flags.MetricsCategory,
	}
)

var (
	// LedgerFlags select the endpoint and the contracts.
	LedgerFlags = []cli.Flag{
		ConfigFileFlag,
		NetworkFlag,
		EndpointFlag,
		EnigmaContractFlag,
		TokenContractFlag,
	}
	// TxFlags control the submitted transactions.
	TxFlags = []cli.Flag{
		FromFlag,
		GasFlag,
		GasPriceFlag,
		NonceFlag,
		ConfirmationsFlag,
		PollIntervalFlag,
		KeyStoreDirFlag,
		PasswordFileFlag,
	}
	// GlobalFlags apply to every command.
	GlobalFlags = []cli.Flag{
		VerbosityFlag,
		MetricsEnabledFlag,
		MetricsHTTPFlag,
		MetricsPortFlag,
	}
)

// MakeConfig loads the configuration: defaults, then the --config file, then
// the command line flags.
func MakeConfig(ctx *cli.Context) *config.Config {
	cfg := config.New()
	if file := ctx.Path(ConfigFileFlag.Name); file != "" {
		if err := config.Load(file, cfg); err != nil {
			Fatalf("%v", err)
		}
	}
	SetConfig(ctx, cfg)
	return cfg
}

// SetConfig applies the flags set on the command line to cfg.
func SetConfig(ctx *cli.Context, cfg *config.Config) {
	if ctx.IsSet(NetworkFlag.Name) {
		if err := cfg.ApplyNetwork(ctx.String(NetworkFlag.Name)); err != nil {
			Fatalf("Option %q: %v", NetworkFlag.Name, err)
		}
	}
	if ctx.IsSet(EndpointFlag.Name) {
		cfg.Endpoint = ctx.String(EndpointFlag.Name)
	}
	if ctx.IsSet(EnigmaContractFlag.Name) {
		cfg.EnigmaContract = MakeAddress(EnigmaContractFlag.Name, ctx.String(EnigmaContractFlag.Name))
	}
	if ctx.IsSet(TokenContractFlag.Name) {
		cfg.TokenContract = MakeAddress(TokenContractFlag.Name, ctx.String(TokenContractFlag.Name))
	}
	setTx(ctx, cfg)
	if ctx.IsSet(KeyStoreDirFlag.Name) {
		cfg.Keystore = ctx.Path(KeyStoreDirFlag.Name)
	}
	if ctx.IsSet(VerbosityFlag.Name) {
		cfg.Log.Verbosity = ctx.Int(VerbosityFlag.Name)
	}
	setMetrics(ctx, &cfg.Metrics)
}

func setTx(ctx *cli.Context, cfg *config.Config) {
	if ctx.IsSet(FromFlag.Name) {
		cfg.Tx.From = MakeAddress(FromFlag.Name, ctx.String(FromFlag.Name))
	}
	if ctx.IsSet(GasFlag.Name) {
		cfg.Tx.Gas = ctx.Uint64(GasFlag.Name)
	}
	if ctx.IsSet(GasPriceFlag.Name) {
		price, ok := new(big.Int).SetString(ctx.String(GasPriceFlag.Name), 10)
		if !ok || price.Sign() < 0 {
			Fatalf("Option %q: invalid gas price %q", GasPriceFlag.Name, ctx.String(GasPriceFlag.Name))
		}
		cfg.Tx.GasPrice = price
	}
	if ctx.IsSet(NonceFlag.Name) {
		cfg.Tx.Nonce = new(big.Int).SetUint64(ctx.Uint64(NonceFlag.Name))
	}
	if ctx.IsSet(ConfirmationsFlag.Name) {
		cfg.Watch.Confirmations = ctx.Uint64(ConfirmationsFlag.Name)
	}
	if ctx.IsSet(PollIntervalFlag.Name) {
		cfg.Watch.PollInterval = ctx.Duration(PollIntervalFlag.Name)
	}
}

func setMetrics(ctx *cli.Context, cfg *metrics.Config) {
	if ctx.IsSet(MetricsEnabledFlag.Name) {
		cfg.Enabled = ctx.Bool(MetricsEnabledFlag.Name)
	}
	if ctx.IsSet(MetricsHTTPFlag.Name) {
		cfg.HTTP = ctx.String(MetricsHTTPFlag.Name)
	}
	if ctx.IsSet(MetricsPortFlag.Name) {
		cfg.Port = ctx.Int(MetricsPortFlag.Name)
	}
}

// MakeAddress parses a hex encoded account or contract address given for
// the named option.
func MakeAddress(option, value string) common.Address {
	if !common.IsHexAddress(value) {
		Fatalf("Option %q: invalid address %q", option, value)
	}
	return common.HexToAddress(value)
}

// MakePasswordList reads password lines from the file specified by the --password flag.
func MakePasswordList(ctx *cli.Context) []string {
	path := ctx.Path(PasswordFileFlag.Name)
	if path == "" {
		return nil
	}
	text, err := os.ReadFile(path)
	if err != nil {
		Fatalf("Failed to read password file: %v", err)
	}
	lines := strings.Split(string(text), "\n")
	// Sanitise DOS line endings.
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], "\r")
	}
	return lines
}

// SetupMetrics starts metrics collection when enabled in cfg.
func SetupMetrics(cfg *config.Config) {
	metrics.Setup(cfg.Metrics)
}

// FormatGrains renders a grain amount as ENG for display.
func FormatGrains(grains *big.Int) string {
	return fmt.Sprintf("%s ENG", params.FromGrains(grains))
}
