package admin

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/peizihui/enigma-contract/contracts"
	"github.com/peizihui/enigma-contract/events"
	"github.com/peizihui/enigma-contract/txwatch"
	"github.com/stretchr/testify/require"
)

var (
	enigmaAddr = common.HexToAddress("0x00000000000000000000000000000000000e1911")
	tokenAddr  = common.HexToAddress("0x00000000000000000000000000000000000e4e47")
	worker     = common.HexToAddress("0x1111111111111111111111111111111111111111")
	operator   = common.HexToAddress("0x2222222222222222222222222222222222222222")
	scAddr     = common.HexToHash("0x5c")
)

type rpcError struct{ msg string }

func (e rpcError) Error() string  { return e.msg }
func (e rpcError) ErrorCode() int { return -32000 }

// ledger is a shared in-memory view of the transactions the fakes submit.
type ledger struct {
	mu       sync.Mutex
	sent     []sentTx
	reverted map[string]bool // method names whose transactions revert
	head     uint64
}

type sentTx struct {
	method string
	opts   *bind.TransactOpts
	tx     *types.Transaction
	args   []interface{}
}

func newLedger() *ledger {
	return &ledger{reverted: make(map[string]bool), head: 100}
}

func (l *ledger) send(opts *bind.TransactOpts, to common.Address, method string, args ...interface{}) (*types.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	nonce := uint64(len(l.sent))
	if opts.Nonce != nil {
		nonce = opts.Nonce.Uint64()
	}
	tx := types.NewTransaction(nonce, to, big.NewInt(0), opts.GasLimit, opts.GasPrice, []byte(method))
	signed, err := opts.Signer(opts.From, tx)
	if err != nil {
		return nil, err
	}
	l.sent = append(l.sent, sentTx{method: method, opts: opts, tx: signed, args: args})
	return signed, nil
}

func (l *ledger) methods() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var m []string
	for _, s := range l.sent {
		m = append(m, s.method)
	}
	return m
}

func (l *ledger) find(method string) *sentTx {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.sent {
		if l.sent[i].method == method {
			return &l.sent[i]
		}
	}
	return nil
}

func (l *ledger) TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, s := range l.sent {
		if s.tx.Hash() == hash {
			status := types.ReceiptStatusSuccessful
			if l.reverted[s.method] {
				status = types.ReceiptStatusFailed
			}
			return &types.Receipt{Status: status, TxHash: hash, BlockNumber: new(big.Int).SetUint64(l.head), GasUsed: 21000}, nil
		}
	}
	return nil, ethereum.NotFound
}

func (l *ledger) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	h := &types.Header{Number: new(big.Int).SetUint64(l.head)}
	l.head++
	return h, nil
}

type fakeEnigma struct {
	ledger  *ledger
	workers map[common.Address]*contracts.Worker
	deltas  []common.Hash
	readErr error
	sendErr error
}

func (e *fakeEnigma) Address() common.Address { return enigmaAddr }

func (e *fakeEnigma) Workers(opts *bind.CallOpts, account common.Address) (*contracts.Worker, error) {
	if e.readErr != nil {
		return nil, e.readErr
	}
	if w, ok := e.workers[account]; ok {
		return w, nil
	}
	return &contracts.Worker{Balance: new(big.Int)}, nil
}

func (e *fakeEnigma) IsDeployed(opts *bind.CallOpts, sc common.Hash) (bool, error) {
	return sc == scAddr, e.readErr
}

func (e *fakeEnigma) GetCodeHash(opts *bind.CallOpts, sc common.Hash) (common.Hash, error) {
	return common.Hash{0xc0, 0xde}, e.readErr
}

func (e *fakeEnigma) CountStateDeltas(opts *bind.CallOpts, sc common.Hash) (*big.Int, error) {
	return big.NewInt(int64(len(e.deltas))), e.readErr
}

func (e *fakeEnigma) GetStateDeltaHash(opts *bind.CallOpts, sc common.Hash, index *big.Int) (common.Hash, error) {
	if e.readErr != nil {
		return common.Hash{}, e.readErr
	}
	return e.deltas[index.Int64()], nil
}

func (e *fakeEnigma) GetStateDeltaHashes(opts *bind.CallOpts, sc common.Hash, start, stop *big.Int) ([]common.Hash, error) {
	if e.readErr != nil {
		return nil, e.readErr
	}
	return append([]common.Hash(nil), e.deltas[start.Int64():stop.Int64()]...), nil
}

func (e *fakeEnigma) IsValidDeltaHash(opts *bind.CallOpts, sc, hash common.Hash) (bool, error) {
	for _, d := range e.deltas {
		if d == hash {
			return true, e.readErr
		}
	}
	return false, e.readErr
}

func (e *fakeEnigma) Login(opts *bind.TransactOpts) (*types.Transaction, error) {
	if e.sendErr != nil {
		return nil, e.sendErr
	}
	return e.ledger.send(opts, enigmaAddr, "login")
}

func (e *fakeEnigma) Logout(opts *bind.TransactOpts) (*types.Transaction, error) {
	if e.sendErr != nil {
		return nil, e.sendErr
	}
	return e.ledger.send(opts, enigmaAddr, "logout")
}

func (e *fakeEnigma) Deposit(opts *bind.TransactOpts, custodian common.Address, amount *big.Int) (*types.Transaction, error) {
	if e.sendErr != nil {
		return nil, e.sendErr
	}
	return e.ledger.send(opts, enigmaAddr, "deposit", custodian, amount)
}

type fakeToken struct {
	ledger     *ledger
	balances   map[common.Address]*big.Int
	allowances map[common.Address]*big.Int
	approveCap *big.Int // caps the allowance granted by approve when set
	readErr    error
	sendErr    error
}

func (t *fakeToken) BalanceOf(opts *bind.CallOpts, owner common.Address) (*big.Int, error) {
	if t.readErr != nil {
		return nil, t.readErr
	}
	if b, ok := t.balances[owner]; ok {
		return b, nil
	}
	return new(big.Int), nil
}

func (t *fakeToken) Allowance(opts *bind.CallOpts, owner, spender common.Address) (*big.Int, error) {
	if a, ok := t.allowances[owner]; ok {
		return a, nil
	}
	return new(big.Int), nil
}

func (t *fakeToken) Approve(opts *bind.TransactOpts, spender common.Address, amount *big.Int) (*types.Transaction, error) {
	if t.sendErr != nil {
		return nil, t.sendErr
	}
	granted := amount
	if t.approveCap != nil && t.approveCap.Cmp(amount) < 0 {
		granted = t.approveCap
	}
	t.allowances[opts.From] = granted
	return t.ledger.send(opts, tokenAddr, "approve", spender, amount)
}

type harness struct {
	ledger *ledger
	enigma *fakeEnigma
	token  *fakeToken
	signed []common.Address
	client *Client
}

func newHarness(t *testing.T) *harness {
	h := &harness{ledger: newLedger()}
	h.enigma = &fakeEnigma{ledger: h.ledger, workers: make(map[common.Address]*contracts.Worker)}
	h.token = &fakeToken{
		ledger:     h.ledger,
		balances:   make(map[common.Address]*big.Int),
		allowances: make(map[common.Address]*big.Int),
	}
	var mu sync.Mutex
	signer := func(addr common.Address, tx *types.Transaction) (*types.Transaction, error) {
		mu.Lock()
		defer mu.Unlock()
		h.signed = append(h.signed, addr)
		return tx, nil
	}
	h.client = New(h.enigma, h.token, h.ledger, Config{
		Defaults: TxOptions{From: operator, Gas: 4712388, GasPrice: big.NewInt(100000000000)},
		Signer:   signer,
		Watch:    txwatch.Config{PollInterval: time.Millisecond},
	})
	return h
}

func collect(t *testing.T, stream *events.Stream) []events.Event {
	t.Helper()
	var evs []events.Event
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-stream.Events():
			if !ok {
				return evs
			}
			evs = append(evs, ev)
		case <-timeout:
			t.Fatalf("stream did not finish, got %d events", len(evs))
		}
	}
}

func names(evs []events.Event) []events.Name {
	n := make([]events.Name, len(evs))
	for i, ev := range evs {
		n[i] = ev.Name
	}
	return n
}

func TestWorkerStatus(t *testing.T) {
	h := newHarness(t)
	for _, status := range []contracts.WorkerStatus{
		contracts.WorkerUnregistered, contracts.WorkerRegistered, contracts.WorkerLoggedIn, contracts.WorkerLoggedOut,
	} {
		h.enigma.workers[worker] = &contracts.Worker{Status: status, Balance: big.NewInt(1)}
		got, err := h.client.WorkerStatus(context.Background(), worker)
		require.NoError(t, err)
		require.Equal(t, status, got)
	}

	h.enigma.workers[worker] = &contracts.Worker{Status: 4, Balance: big.NewInt(1)}
	_, err := h.client.WorkerStatus(context.Background(), worker)
	require.ErrorIs(t, err, contracts.ErrUnknownWorkerStatus)

	h.enigma.readErr = errors.New("connection refused")
	_, err = h.client.WorkerStatus(context.Background(), worker)
	require.ErrorIs(t, err, events.ErrTransport)
	require.ErrorIs(t, err, h.enigma.readErr)
}

func TestStakedBalance(t *testing.T) {
	h := newHarness(t)
	h.enigma.workers[worker] = &contracts.Worker{Status: contracts.WorkerLoggedIn, Balance: big.NewInt(900)}
	bal, err := h.client.StakedBalance(context.Background(), worker)
	require.NoError(t, err)
	require.Equal(t, int64(900), bal.Int64())

	h.enigma.readErr = errors.New("timeout")
	_, err = h.client.StakedBalance(context.Background(), worker)
	require.ErrorIs(t, err, events.ErrTransport)
}

func TestStateDeltaReads(t *testing.T) {
	h := newHarness(t)
	for i := 0; i < 8; i++ {
		h.enigma.deltas = append(h.enigma.deltas, common.Hash{byte(i + 1)})
	}
	ctx := context.Background()

	hashes, err := h.client.StateDeltaHashes(ctx, scAddr, 0, 5)
	require.NoError(t, err)
	require.Len(t, hashes, 5)
	for i, hash := range hashes {
		require.Equal(t, h.enigma.deltas[i], hash)
	}

	empty, err := h.client.StateDeltaHashes(ctx, scAddr, 3, 3)
	require.NoError(t, err)
	require.Empty(t, empty)

	_, err = h.client.StateDeltaHashes(ctx, scAddr, 5, 2)
	require.ErrorIs(t, err, ErrInvalidRange)

	count, err := h.client.CountStateDeltas(ctx, scAddr)
	require.NoError(t, err)
	require.Equal(t, uint64(8), count)

	hash, err := h.client.StateDeltaHash(ctx, scAddr, 2)
	require.NoError(t, err)
	require.Equal(t, common.Hash{3}, hash)

	valid, err := h.client.IsValidDeltaHash(ctx, scAddr, common.Hash{4})
	require.NoError(t, err)
	require.True(t, valid)
	valid, err = h.client.IsValidDeltaHash(ctx, scAddr, common.Hash{0xff})
	require.NoError(t, err)
	require.False(t, valid)

	deployed, err := h.client.IsDeployed(ctx, scAddr)
	require.NoError(t, err)
	require.True(t, deployed)

	codeHash, err := h.client.CodeHash(ctx, scAddr)
	require.NoError(t, err)
	require.Equal(t, common.Hash{0xc0, 0xde}, codeHash)

	h.enigma.readErr = errors.New("eof")
	_, err = h.client.StateDeltaHashes(ctx, scAddr, 0, 5)
	require.ErrorIs(t, err, events.ErrTransport)
	_, err = h.client.IsDeployed(ctx, scAddr)
	require.ErrorIs(t, err, events.ErrTransport)
}

func TestLoginEvents(t *testing.T) {
	h := newHarness(t)
	evs := collect(t, h.client.Login(context.Background(), TxOptions{From: worker}))
	require.Equal(t, []events.Name{events.LoginTransactionHash, events.LoginReceipt}, names(evs))

	sent := h.ledger.find("login")
	require.NotNil(t, sent)
	require.Equal(t, sent.tx.Hash(), evs[0].TxHash)
	require.Equal(t, worker, sent.opts.From)
	require.Equal(t, uint64(4712388), sent.opts.GasLimit)
	require.Equal(t, []common.Address{worker}, h.signed)
	require.Equal(t, types.ReceiptStatusSuccessful, evs[1].Receipt.Status)
}

func TestLogoutConfirmations(t *testing.T) {
	h := newHarness(t)
	h.client.cfg.Watch.Confirmations = 3
	evs := collect(t, h.client.Logout(context.Background(), TxOptions{}))
	require.Equal(t, []events.Name{
		events.LogoutTransactionHash,
		events.LogoutConfirmation,
		events.LogoutConfirmation,
		events.LogoutConfirmation,
		events.LogoutReceipt,
	}, names(evs))
	for i, ev := range evs[1:4] {
		require.Equal(t, uint64(i+1), ev.Confirmation)
	}
	require.Equal(t, operator, h.ledger.find("logout").opts.From)
}

func TestLoginReverted(t *testing.T) {
	h := newHarness(t)
	h.ledger.reverted["login"] = true
	evs := collect(t, h.client.Login(context.Background(), TxOptions{}))
	require.Equal(t, []events.Name{events.LoginTransactionHash, events.ErrorName}, names(evs))
	require.ErrorIs(t, evs[1].Err, events.ErrLedgerTransaction)
	require.ErrorIs(t, evs[1].Err, txwatch.ErrReverted)
	require.NotNil(t, evs[1].Receipt)
}

func TestSubmitErrors(t *testing.T) {
	h := newHarness(t)

	h.enigma.sendErr = rpcError{"insufficient funds for gas * price + value"}
	evs := collect(t, h.client.Logout(context.Background(), TxOptions{}))
	require.Equal(t, []events.Name{events.ErrorName}, names(evs))
	require.Equal(t, events.KindLedgerTransaction, evs[0].Err.Kind)

	h.enigma.sendErr = errors.New("dial tcp 127.0.0.1:9545: connection refused")
	evs = collect(t, h.client.Login(context.Background(), TxOptions{}))
	require.Equal(t, []events.Name{events.ErrorName}, names(evs))
	require.Equal(t, events.KindTransport, evs[0].Err.Kind)
	require.Empty(t, h.ledger.methods())
}

func TestLoginWithoutSender(t *testing.T) {
	h := newHarness(t)
	h.client.cfg.Defaults.From = common.Address{}
	evs := collect(t, h.client.Login(context.Background(), TxOptions{}))
	require.Equal(t, []events.Name{events.ErrorName}, names(evs))
	require.ErrorIs(t, evs[0].Err, events.ErrInvalidRequest)
	require.Empty(t, h.ledger.methods())
}

func TestStreamStopsOnCancel(t *testing.T) {
	h := newHarness(t)
	ctx, cancel := context.WithCancel(context.Background())
	stream := h.client.Login(ctx, TxOptions{})
	cancel()
	// No reader: the producer must still terminate and close the channel.
	select {
	case <-stream.Closed():
	case <-time.After(5 * time.Second):
		t.Fatal("stream not closed after cancellation")
	}
	collect(t, stream)
}
