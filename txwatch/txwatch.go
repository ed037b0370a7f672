// Package txwatch follows a submitted transaction from its hash to a final
// receipt, reporting each stage of the lifecycle.
package txwatch

import (
	"context"
	"errors"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/log"
	"github.com/peizihui/enigma-contract/params"
)

// ErrReverted is reported when a transaction was mined with a failed status.
var ErrReverted = errors.New("txwatch: transaction reverted")

// Backend is the chain access needed to follow a transaction.
type Backend interface {
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
}

// Stage is a state of the transaction lifecycle.
type Stage uint8

const (
	Idle Stage = iota
	Submitted
	Confirming
	Finalized
	Errored
)

func (s Stage) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitted:
		return "submitted"
	case Confirming:
		return "confirming"
	case Finalized:
		return "finalized"
	case Errored:
		return "errored"
	}
	return "unknown"
}

// Update is one lifecycle notification.
type Update struct {
	Stage         Stage
	TxHash        common.Hash
	Confirmations uint64         // set on Confirming
	Receipt       *types.Receipt // set once the transaction is mined
	Err           error          // set on Errored
}

// Config tunes how a transaction is followed.
type Config struct {
	Confirmations uint64        `toml:",omitempty"` // confirmation events before the receipt, 1 = the inclusion block
	PollInterval  time.Duration `toml:",omitempty"`
}

// DefaultConfig reports the receipt as soon as the transaction is mined.
var DefaultConfig = Config{
	Confirmations: params.DefaultConfirmations,
	PollInterval:  params.DefaultPollInterval,
}

func (c Config) pollInterval() time.Duration {
	if c.PollInterval <= 0 {
		return params.DefaultPollInterval
	}
	return c.PollInterval
}

// Track follows tx and hands every update to sink, in lifecycle order:
// Submitted, zero or more Confirming, then Finalized. Errored may replace
// any update after Submitted and ends tracking. Tracking also ends as soon
// as sink returns false or ctx is cancelled.
func Track(ctx context.Context, b Backend, tx *types.Transaction, cfg Config, sink func(Update) bool) {
	hash := tx.Hash()
	if !sink(Update{Stage: Submitted, TxHash: hash}) {
		return
	}
	receipt, err := WaitMined(ctx, b, hash, cfg.pollInterval())
	if err != nil {
		sink(Update{Stage: Errored, TxHash: hash, Err: err})
		return
	}
	if receipt.Status == types.ReceiptStatusFailed {
		sink(Update{Stage: Errored, TxHash: hash, Receipt: receipt, Err: ErrReverted})
		return
	}
	if cfg.Confirmations > 0 {
		if err := confirm(ctx, b, receipt, cfg, sink); err != nil {
			if !errors.Is(err, errStopped) {
				sink(Update{Stage: Errored, TxHash: hash, Receipt: receipt, Err: err})
			}
			return
		}
	}
	sink(Update{Stage: Finalized, TxHash: hash, Receipt: receipt})
}

var errStopped = errors.New("txwatch: stopped by sink")

// confirm reports one Confirming update per block from the inclusion block
// onwards until cfg.Confirmations have been reported.
func confirm(ctx context.Context, b Backend, receipt *types.Receipt, cfg Config, sink func(Update) bool) error {
	var (
		included = receipt.BlockNumber.Uint64()
		reported uint64
		ticker   = time.NewTicker(cfg.pollInterval())
	)
	defer ticker.Stop()

	for {
		head, err := b.HeaderByNumber(ctx, nil)
		if err != nil {
			return err
		}
		var depth uint64
		if n := head.Number.Uint64(); n >= included {
			depth = n - included + 1
		}
		for reported < depth && reported < cfg.Confirmations {
			reported++
			if !sink(Update{Stage: Confirming, TxHash: receipt.TxHash, Confirmations: reported, Receipt: receipt}) {
				return errStopped
			}
		}
		if reported >= cfg.Confirmations {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// WaitMined blocks until the transaction with the given hash is mined and
// returns its receipt. Lookups that fail for any reason other than the
// receipt not being available yet abort the wait.
func WaitMined(ctx context.Context, b Backend, hash common.Hash, poll time.Duration) (*types.Receipt, error) {
	if poll <= 0 {
		poll = params.DefaultPollInterval
	}
	queryTicker := time.NewTicker(poll)
	defer queryTicker.Stop()

	logger := log.New("hash", hash)
	for {
		receipt, err := b.TransactionReceipt(ctx, hash)
		switch {
		case err == nil && receipt != nil:
			return receipt, nil
		case err == nil, errors.Is(err, ethereum.NotFound):
			logger.Trace("Transaction not yet mined")
		default:
			logger.Debug("Receipt retrieval failed", "err", err)
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-queryTicker.C:
		}
	}
}
