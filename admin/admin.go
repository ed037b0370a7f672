// Package admin implements the worker administration operations against the
// Enigma and ENG token contracts: worker status and staking reads, secret
// contract state delta reads, login, logout and token deposits.
package admin

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/metrics"
	"github.com/peizihui/enigma-contract/contracts"
	"github.com/peizihui/enigma-contract/events"
	"github.com/peizihui/enigma-contract/txwatch"
)

// ErrInvalidRange is returned for a state delta range whose stop index lies
// before its start index.
var ErrInvalidRange = errors.New("admin: invalid state delta range")

// EnigmaContract is the staking/task contract as used by the client.
type EnigmaContract interface {
	Address() common.Address
	Workers(opts *bind.CallOpts, account common.Address) (*contracts.Worker, error)
	IsDeployed(opts *bind.CallOpts, scAddr common.Hash) (bool, error)
	GetCodeHash(opts *bind.CallOpts, scAddr common.Hash) (common.Hash, error)
	CountStateDeltas(opts *bind.CallOpts, scAddr common.Hash) (*big.Int, error)
	GetStateDeltaHash(opts *bind.CallOpts, scAddr common.Hash, index *big.Int) (common.Hash, error)
	GetStateDeltaHashes(opts *bind.CallOpts, scAddr common.Hash, start, stop *big.Int) ([]common.Hash, error)
	IsValidDeltaHash(opts *bind.CallOpts, scAddr, stateDeltaHash common.Hash) (bool, error)
	Login(opts *bind.TransactOpts) (*types.Transaction, error)
	Logout(opts *bind.TransactOpts) (*types.Transaction, error)
	Deposit(opts *bind.TransactOpts, custodian common.Address, amount *big.Int) (*types.Transaction, error)
}

// TokenContract is the ENG token contract as used by the deposit pipeline.
type TokenContract interface {
	BalanceOf(opts *bind.CallOpts, owner common.Address) (*big.Int, error)
	Allowance(opts *bind.CallOpts, owner, spender common.Address) (*big.Int, error)
	Approve(opts *bind.TransactOpts, spender common.Address, amount *big.Int) (*types.Transaction, error)
}

// Config holds the connection-wide settings of a Client.
type Config struct {
	Defaults TxOptions      // per-call options override these field by field
	Signer   bind.SignerFn  // signs every submitted transaction
	Watch    txwatch.Config // confirmation tracking
}

// Client exposes the admin operations. It keeps no ledger state: every call
// reads the contracts again.
type Client struct {
	enigma EnigmaContract
	token  TokenContract
	chain  txwatch.Backend
	cfg    Config
	log    log.Logger

	txSubmitted     metrics.Meter
	txFailed        metrics.Meter
	depositRejected metrics.Meter
	finalizeTimer   metrics.Timer
}

// New creates a client over the given contract bindings. chain is used to
// follow submitted transactions.
func New(enigma EnigmaContract, token TokenContract, chain txwatch.Backend, cfg Config) *Client {
	return &Client{
		enigma:          enigma,
		token:           token,
		chain:           chain,
		cfg:             cfg,
		log:             log.New("module", "admin", "enigma", enigma.Address()),
		txSubmitted:     metrics.GetOrRegisterMeter("admin/tx/submitted", nil),
		txFailed:        metrics.GetOrRegisterMeter("admin/tx/failed", nil),
		depositRejected: metrics.GetOrRegisterMeter("admin/deposit/rejected", nil),
		finalizeTimer:   metrics.GetOrRegisterTimer("admin/tx/finalize", nil),
	}
}

func callOpts(ctx context.Context, from common.Address) *bind.CallOpts {
	return &bind.CallOpts{Context: ctx, From: from}
}

func transportError(err error, format string, args ...interface{}) error {
	return events.NewError(events.KindTransport, err, format, args...)
}

// Worker returns the full worker record of account.
func (c *Client) Worker(ctx context.Context, account common.Address) (*contracts.Worker, error) {
	w, err := c.enigma.Workers(callOpts(ctx, account), account)
	if err != nil {
		return nil, transportError(err, "workers(%s)", account)
	}
	if w.Status, err = contracts.ParseWorkerStatus(uint8(w.Status)); err != nil {
		return nil, err
	}
	return w, nil
}

// WorkerStatus returns the lifecycle status of the worker account.
func (c *Client) WorkerStatus(ctx context.Context, account common.Address) (contracts.WorkerStatus, error) {
	w, err := c.Worker(ctx, account)
	if err != nil {
		return 0, err
	}
	return w.Status, nil
}

// StakedBalance returns the ENG staked by account, in grains.
func (c *Client) StakedBalance(ctx context.Context, account common.Address) (*big.Int, error) {
	w, err := c.enigma.Workers(callOpts(ctx, account), account)
	if err != nil {
		return nil, transportError(err, "workers(%s)", account)
	}
	return w.Balance, nil
}

// IsDeployed reports whether a secret contract is deployed at scAddr.
func (c *Client) IsDeployed(ctx context.Context, scAddr common.Hash) (bool, error) {
	deployed, err := c.enigma.IsDeployed(callOpts(ctx, c.cfg.Defaults.From), scAddr)
	if err != nil {
		return false, transportError(err, "isDeployed(%s)", scAddr)
	}
	return deployed, nil
}

// CodeHash returns the bytecode hash of the secret contract at scAddr.
func (c *Client) CodeHash(ctx context.Context, scAddr common.Hash) (common.Hash, error) {
	hash, err := c.enigma.GetCodeHash(callOpts(ctx, c.cfg.Defaults.From), scAddr)
	if err != nil {
		return common.Hash{}, transportError(err, "getCodeHash(%s)", scAddr)
	}
	return hash, nil
}

// CountStateDeltas returns the number of state deltas of the secret contract.
func (c *Client) CountStateDeltas(ctx context.Context, scAddr common.Hash) (uint64, error) {
	count, err := c.enigma.CountStateDeltas(callOpts(ctx, c.cfg.Defaults.From), scAddr)
	if err != nil {
		return 0, transportError(err, "countStateDeltas(%s)", scAddr)
	}
	if !count.IsUint64() {
		return 0, fmt.Errorf("admin: state delta count %v out of range", count)
	}
	return count.Uint64(), nil
}

// StateDeltaHash returns the state delta hash at index.
func (c *Client) StateDeltaHash(ctx context.Context, scAddr common.Hash, index uint64) (common.Hash, error) {
	hash, err := c.enigma.GetStateDeltaHash(callOpts(ctx, c.cfg.Defaults.From), scAddr, new(big.Int).SetUint64(index))
	if err != nil {
		return common.Hash{}, transportError(err, "getStateDeltaHash(%s, %d)", scAddr, index)
	}
	return hash, nil
}

// StateDeltaHashes returns the state delta hashes with indices in
// [start, stop), in index order.
func (c *Client) StateDeltaHashes(ctx context.Context, scAddr common.Hash, start, stop uint64) ([]common.Hash, error) {
	if stop < start {
		return nil, fmt.Errorf("%w: [%d, %d)", ErrInvalidRange, start, stop)
	}
	hashes, err := c.enigma.GetStateDeltaHashes(callOpts(ctx, c.cfg.Defaults.From), scAddr,
		new(big.Int).SetUint64(start), new(big.Int).SetUint64(stop))
	if err != nil {
		return nil, transportError(err, "getStateDeltaHashes(%s, %d, %d)", scAddr, start, stop)
	}
	if uint64(len(hashes)) != stop-start {
		return nil, fmt.Errorf("admin: got %d state delta hashes for range [%d, %d)", len(hashes), start, stop)
	}
	return hashes, nil
}

// IsValidDeltaHash reports whether stateDeltaHash is a known state delta of
// the secret contract.
func (c *Client) IsValidDeltaHash(ctx context.Context, scAddr, stateDeltaHash common.Hash) (bool, error) {
	valid, err := c.enigma.IsValidDeltaHash(callOpts(ctx, c.cfg.Defaults.From), scAddr, stateDeltaHash)
	if err != nil {
		return false, transportError(err, "isValidDeltaHash(%s, %s)", scAddr, stateDeltaHash)
	}
	return valid, nil
}
