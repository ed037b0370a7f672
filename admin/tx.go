package admin

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/peizihui/enigma-contract/events"
	"github.com/peizihui/enigma-contract/txwatch"
)

type sendFunc func(opts *bind.TransactOpts) (*types.Transaction, error)

// Login logs the worker in. The sender is taken from opts or the defaults.
func (c *Client) Login(ctx context.Context, opts TxOptions) *events.Stream {
	return c.run(ctx, func(stream *events.Stream) {
		c.submit(ctx, stream, events.Login, c.cfg.Defaults.Merge(opts), c.enigma.Login)
	})
}

// Logout logs the worker out. The sender is taken from opts or the defaults.
func (c *Client) Logout(ctx context.Context, opts TxOptions) *events.Stream {
	return c.run(ctx, func(stream *events.Stream) {
		c.submit(ctx, stream, events.Logout, c.cfg.Defaults.Merge(opts), c.enigma.Logout)
	})
}

// run executes fn on its own goroutine and returns the stream fn reports to.
// Cancelling ctx closes the stream.
func (c *Client) run(ctx context.Context, fn func(stream *events.Stream)) *events.Stream {
	stream := events.NewStream()
	go func() {
		defer stream.Finish()
		stop := context.AfterFunc(ctx, stream.Close)
		defer stop()
		fn(stream)
	}()
	return stream
}

// submit sends one transaction and forwards its lifecycle to stream as the
// events of op.
func (c *Client) submit(ctx context.Context, stream *events.Stream, op events.Operation, opts TxOptions, send sendFunc) {
	logger := c.log.New("op", strings.ToLower(string(op)), "from", opts.From)

	auth, err := opts.TransactOpts(ctx, c.cfg.Signer)
	if err != nil {
		stream.Fail(events.NewError(events.KindInvalidRequest, err, "%s", strings.ToLower(string(op))))
		return
	}
	tx, err := send(auth)
	if err != nil {
		c.txFailed.Mark(1)
		logger.Warn("Transaction submission failed", "err", err)
		stream.Fail(submitError(string(op), err))
		return
	}
	c.txSubmitted.Mark(1)
	logger.Debug("Submitted transaction", "hash", tx.Hash(), "nonce", tx.Nonce())

	start := time.Now()
	txwatch.Track(ctx, c.chain, tx, c.cfg.Watch, func(u txwatch.Update) bool {
		switch u.Stage {
		case txwatch.Submitted:
			return stream.Emit(events.Event{Name: op.TransactionHash(), TxHash: u.TxHash})
		case txwatch.Confirming:
			return stream.Emit(events.Event{Name: op.Confirmation(), TxHash: u.TxHash, Confirmation: u.Confirmations, Receipt: u.Receipt})
		case txwatch.Finalized:
			c.finalizeTimer.UpdateSince(start)
			logger.Info("Transaction finalized", "hash", u.TxHash, "block", u.Receipt.BlockNumber, "gas", u.Receipt.GasUsed)
			return stream.Emit(events.Event{Name: op.Receipt(), TxHash: u.TxHash, Receipt: u.Receipt})
		case txwatch.Errored:
			c.txFailed.Mark(1)
			logger.Warn("Transaction failed", "hash", u.TxHash, "err", u.Err)
			return stream.Emit(events.Event{Name: events.ErrorName, TxHash: u.TxHash, Receipt: u.Receipt, Err: trackError(string(op), u)})
		}
		return false
	})
}

// submitError classifies a failed submission: errors answered by the node
// are ledger rejections, anything else never reached the ledger.
func submitError(what string, err error) *events.Error {
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		return events.NewError(events.KindLedgerTransaction, err, "%s transaction rejected", strings.ToLower(what))
	}
	return events.NewError(events.KindTransport, err, "%s transaction not submitted", strings.ToLower(what))
}

func trackError(what string, u txwatch.Update) *events.Error {
	if errors.Is(u.Err, txwatch.ErrReverted) {
		return events.NewError(events.KindLedgerTransaction, u.Err, "%s transaction %s reverted", strings.ToLower(what), u.TxHash)
	}
	return events.NewError(events.KindTransport, u.Err, "%s transaction %s not confirmed", strings.ToLower(what), u.TxHash)
}
