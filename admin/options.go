package admin

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

var (
	errNoSender = errors.New("admin: no sender address in transaction options")
	errNoSigner = errors.New("admin: no signer configured")
)

// TxOptions are the transaction parameters of a state-changing call. Zero
// fields are unset and are filled from the client defaults.
type TxOptions struct {
	From     common.Address `toml:",omitempty"`
	Gas      uint64         `toml:",omitempty"`
	GasPrice *big.Int       `toml:",omitempty"`
	Nonce    *big.Int       `toml:"-"`
	Value    *big.Int       `toml:"-"`
}

// Merge returns o with every field that is set in override replaced by the
// override value.
func (o TxOptions) Merge(override TxOptions) TxOptions {
	if override.From != (common.Address{}) {
		o.From = override.From
	}
	if override.Gas != 0 {
		o.Gas = override.Gas
	}
	if override.GasPrice != nil {
		o.GasPrice = new(big.Int).Set(override.GasPrice)
	}
	if override.Nonce != nil {
		o.Nonce = new(big.Int).Set(override.Nonce)
	}
	if override.Value != nil {
		o.Value = new(big.Int).Set(override.Value)
	}
	return o
}

// TransactOpts converts the options into bind transaction options signed by
// signer.
func (o TxOptions) TransactOpts(ctx context.Context, signer bind.SignerFn) (*bind.TransactOpts, error) {
	if o.From == (common.Address{}) {
		return nil, errNoSender
	}
	if signer == nil {
		return nil, errNoSigner
	}
	return &bind.TransactOpts{
		From:     o.From,
		Nonce:    o.Nonce,
		Signer:   signer,
		Value:    o.Value,
		GasPrice: o.GasPrice,
		GasLimit: o.Gas,
		Context:  ctx,
	}, nil
}
