package main

import (
	"context"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/peizihui/enigma-contract/admin"
	"github.com/peizihui/enigma-contract/contracts"
	"github.com/peizihui/enigma-contract/events"
	"github.com/peizihui/enigma-contract/txwatch"
	"github.com/stretchr/testify/require"
)

// loginLedger records login/logout senders and mines every transaction at once.
type loginLedger struct {
	mu      sync.Mutex
	senders map[string]common.Address
	hashes  map[common.Hash]bool
}

func newLoginLedger() *loginLedger {
	return &loginLedger{senders: make(map[string]common.Address), hashes: make(map[common.Hash]bool)}
}

func (l *loginLedger) send(opts *bind.TransactOpts, method string) (*types.Transaction, error) {
	tx := types.NewTransaction(uint64(len(l.hashes)), common.Address{0x01}, big.NewInt(0), opts.GasLimit, opts.GasPrice, []byte(method))
	signed, err := opts.Signer(opts.From, tx)
	if err != nil {
		return nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.senders[method] = opts.From
	l.hashes[signed.Hash()] = true
	return signed, nil
}

func (l *loginLedger) Address() common.Address { return common.Address{0x01} }
func (l *loginLedger) Workers(*bind.CallOpts, common.Address) (*contracts.Worker, error) {
	return &contracts.Worker{Balance: new(big.Int)}, nil
}
func (l *loginLedger) IsDeployed(*bind.CallOpts, common.Hash) (bool, error) { return false, nil }
func (l *loginLedger) GetCodeHash(*bind.CallOpts, common.Hash) (common.Hash, error) {
	return common.Hash{}, nil
}
func (l *loginLedger) CountStateDeltas(*bind.CallOpts, common.Hash) (*big.Int, error) {
	return new(big.Int), nil
}
func (l *loginLedger) GetStateDeltaHash(*bind.CallOpts, common.Hash, *big.Int) (common.Hash, error) {
	return common.Hash{}, nil
}
func (l *loginLedger) GetStateDeltaHashes(*bind.CallOpts, common.Hash, *big.Int, *big.Int) ([]common.Hash, error) {
	return nil, nil
}
func (l *loginLedger) IsValidDeltaHash(*bind.CallOpts, common.Hash, common.Hash) (bool, error) {
	return false, nil
}
func (l *loginLedger) Login(opts *bind.TransactOpts) (*types.Transaction, error) {
	return l.send(opts, "login")
}
func (l *loginLedger) Logout(opts *bind.TransactOpts) (*types.Transaction, error) {
	return l.send(opts, "logout")
}
func (l *loginLedger) Deposit(opts *bind.TransactOpts, _ common.Address, _ *big.Int) (*types.Transaction, error) {
	return l.send(opts, "deposit")
}

func (l *loginLedger) TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.hashes[hash] {
		return nil, ethereum.NotFound
	}
	return &types.Receipt{Status: types.ReceiptStatusSuccessful, TxHash: hash, BlockNumber: big.NewInt(1)}, nil
}

func (l *loginLedger) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	return &types.Header{Number: big.NewInt(1)}, nil
}

func TestWorkerTxSenderFromArgument(t *testing.T) {
	var (
		worker   = common.HexToAddress("0x1111111111111111111111111111111111111111")
		operator = common.HexToAddress("0x2222222222222222222222222222222222222222")
	)
	// The signer is unlocked only for the account named on the command line.
	signer := func(addr common.Address, tx *types.Transaction) (*types.Transaction, error) {
		if addr != worker {
			return nil, bind.ErrNotAuthorized
		}
		return tx, nil
	}
	for _, defaultFrom := range []common.Address{{}, operator} {
		l := newLoginLedger()
		c := admin.New(l, nil, l, admin.Config{
			Defaults: admin.TxOptions{From: defaultFrom, Gas: 4712388, GasPrice: big.NewInt(1)},
			Signer:   signer,
			Watch:    txwatch.Config{PollInterval: time.Millisecond},
		})
		for _, op := range []events.Operation{events.Login, events.Logout} {
			receipt, err := workerTx(context.Background(), c, op, worker).Wait(context.Background())
			require.NoError(t, err, "default sender %s, %s", defaultFrom, op)
			require.NotNil(t, receipt)
		}
		require.Equal(t, worker, l.senders["login"])
		require.Equal(t, worker, l.senders["logout"])
	}
}
