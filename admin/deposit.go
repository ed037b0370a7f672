package admin

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"
	"github.com/holiman/uint256"
	"github.com/peizihui/enigma-contract/events"
	"github.com/peizihui/enigma-contract/txwatch"
)

var (
	errNonPositiveAmount = errors.New("deposit amount must be positive")
	errAmountOverflow    = errors.New("deposit amount exceeds 256 bits")
)

// depositRequest is the state of one deposit pipeline run.
type depositRequest struct {
	id      uuid.UUID
	account common.Address
	amount  *big.Int
	opts    TxOptions
}

// Deposit moves amount grains of ENG from account into its worker bank. The
// balance is checked first, then the Enigma contract is approved to spend
// amount, the allowance is checked and finally the deposit is submitted.
// Only the deposit transaction itself is reported as DEPOSIT_* events; a
// failure at any step ends the stream with a single ERROR event.
func (c *Client) Deposit(ctx context.Context, account common.Address, amount *big.Int, opts TxOptions) *events.Stream {
	opts = c.cfg.Defaults.Merge(opts)
	opts.From = account

	req := &depositRequest{
		id:      uuid.New(),
		account: account,
		opts:    opts,
	}
	if amount != nil {
		req.amount = new(big.Int).Set(amount)
	}
	return c.run(ctx, func(stream *events.Stream) {
		c.deposit(ctx, stream, req)
	})
}

func validateAmount(amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return errNonPositiveAmount
	}
	if _, overflow := uint256.FromBig(amount); overflow {
		return errAmountOverflow
	}
	return nil
}

func (c *Client) deposit(ctx context.Context, stream *events.Stream, req *depositRequest) {
	logger := c.log.New("deposit", req.id, "account", req.account, "amount", req.amount)

	if err := validateAmount(req.amount); err != nil {
		stream.Fail(events.NewError(events.KindInvalidRequest, err, "invalid deposit amount %v", req.amount))
		return
	}
	// The wallet must hold the full amount before anything is submitted.
	balance, err := c.token.BalanceOf(callOpts(ctx, req.account), req.account)
	if err != nil {
		stream.Fail(events.NewError(events.KindTransport, err, "balanceOf(%s)", req.account))
		return
	}
	if balance.Cmp(req.amount) < 0 {
		c.depositRejected.Mark(1)
		logger.Debug("Deposit rejected", "balance", balance)
		stream.Fail(events.NewError(events.KindInsufficientBalance, nil, "Not enough tokens in wallet: %v<%v", balance, req.amount))
		return
	}

	spender := c.enigma.Address()
	if !c.approve(ctx, stream, req, spender) {
		return
	}
	allowance, err := c.token.Allowance(callOpts(ctx, req.account), req.account, spender)
	if err != nil {
		stream.Fail(events.NewError(events.KindTransport, err, "allowance(%s, %s)", req.account, spender))
		return
	}
	if allowance.Cmp(req.amount) < 0 {
		c.depositRejected.Mark(1)
		logger.Debug("Deposit rejected", "allowance", allowance)
		stream.Fail(events.NewError(events.KindInsufficientApproval, nil, "Not enough tokens approved: %v<%v", allowance, req.amount))
		return
	}

	logger.Debug("Deposit approved", "allowance", allowance)
	c.submit(ctx, stream, events.Deposit, req.opts, func(auth *bind.TransactOpts) (*types.Transaction, error) {
		return c.enigma.Deposit(auth, req.account, req.amount)
	})
}

// approve grants spender an allowance of the deposit amount and waits for
// the approval to be mined. Its progress is not reported on the stream.
func (c *Client) approve(ctx context.Context, stream *events.Stream, req *depositRequest, spender common.Address) bool {
	auth, err := req.opts.TransactOpts(ctx, c.cfg.Signer)
	if err != nil {
		stream.Fail(events.NewError(events.KindInvalidRequest, err, "approve"))
		return false
	}
	tx, err := c.token.Approve(auth, spender, req.amount)
	if err != nil {
		c.txFailed.Mark(1)
		stream.Fail(submitError("approve", err))
		return false
	}
	c.txSubmitted.Mark(1)
	c.log.Trace("Submitted approval", "deposit", req.id, "hash", tx.Hash())

	receipt, err := txwatch.WaitMined(ctx, c.chain, tx.Hash(), c.cfg.Watch.PollInterval)
	if err != nil {
		c.txFailed.Mark(1)
		stream.Fail(trackError("approve", txwatch.Update{Stage: txwatch.Errored, TxHash: tx.Hash(), Err: err}))
		return false
	}
	if receipt.Status == types.ReceiptStatusFailed {
		c.txFailed.Mark(1)
		stream.Emit(events.Event{
			Name:    events.ErrorName,
			TxHash:  tx.Hash(),
			Receipt: receipt,
			Err:     trackError("approve", txwatch.Update{Stage: txwatch.Errored, TxHash: tx.Hash(), Receipt: receipt, Err: txwatch.ErrReverted}),
		})
		return false
	}
	// A caller-pinned nonce was consumed by the approval.
	if req.opts.Nonce != nil {
		req.opts.Nonce = new(big.Int).Add(req.opts.Nonce, big.NewInt(1))
	}
	return true
}
