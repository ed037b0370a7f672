// Package enigmaclient provides a client for the Enigma and ENG token
// contracts deployed on an Ethereum-compatible ledger.
package enigmaclient

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/peizihui/enigma-contract/admin"
	"github.com/peizihui/enigma-contract/config"
	"github.com/peizihui/enigma-contract/contracts"
	"github.com/peizihui/enigma-contract/events"
	"github.com/peizihui/enigma-contract/params"
	"github.com/peizihui/enigma-contract/txwatch"
)

// Backend is the ledger access needed by the client.
type Backend interface {
	bind.ContractBackend
	txwatch.Backend
	ChainID(ctx context.Context) (*big.Int, error)
}

// Client binds both contracts over one ledger connection.
type Client struct {
	backend Backend
	close   func()
	enigma  *contracts.Enigma
	token   *contracts.EnigmaToken
	cfg     config.Config
}

// Dial connects a client to the endpoint in cfg.
func Dial(cfg *config.Config) (*Client, error) {
	return DialContext(context.Background(), cfg)
}

func DialContext(ctx context.Context, cfg *config.Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c, err := rpc.DialContext(ctx, cfg.Endpoint)
	if err != nil {
		return nil, err
	}
	ec := ethclient.NewClient(c)
	client, err := NewClient(ec, cfg)
	if err != nil {
		ec.Close()
		return nil, err
	}
	client.close = ec.Close
	client.checkNetwork(ctx)
	log.Debug("Connected to ledger", "endpoint", cfg.Endpoint, "network", cfg.Network)
	return client, nil
}

// NewClient creates a client that uses the given backend.
func NewClient(backend Backend, cfg *config.Config) (*Client, error) {
	enigma, err := contracts.NewEnigma(cfg.EnigmaContract, backend)
	if err != nil {
		return nil, err
	}
	token, err := contracts.NewEnigmaToken(cfg.TokenContract, backend)
	if err != nil {
		return nil, err
	}
	return &Client{
		backend: backend,
		close:   func() {},
		enigma:  enigma,
		token:   token,
		cfg:     *cfg,
	}, nil
}

func (c *Client) Close() {
	c.close()
}

// checkNetwork warns when the endpoint serves another network than the
// configured preset. Configurations without a known preset are not checked.
func (c *Client) checkNetwork(ctx context.Context) {
	n, err := params.NetworkByName(c.cfg.Network)
	if err != nil {
		return
	}
	nb, ok := c.backend.(interface {
		NetworkID(ctx context.Context) (*big.Int, error)
	})
	if !ok {
		return
	}
	id, err := nb.NetworkID(ctx)
	if err != nil {
		log.Debug("Network ID unavailable", "err", err)
		return
	}
	if !id.IsUint64() || id.Uint64() != n.NetworkID {
		log.Warn("Endpoint network differs from preset", "network", n.Name, "want", n.NetworkID, "have", id)
	}
}

// Admin returns the worker administration client. signer signs every
// state-changing call and may be nil for read-only use.
func (c *Client) Admin(signer bind.SignerFn) *admin.Client {
	return admin.New(c.enigma, c.token, c.backend, admin.Config{
		Defaults: c.cfg.Tx,
		Signer:   signer,
		Watch:    c.cfg.Watch,
	})
}

// ChainID retrieves the chain ID used for transaction replay protection.
func (c *Client) ChainID(ctx context.Context) (*big.Int, error) {
	id, err := c.backend.ChainID(ctx)
	if err != nil {
		return nil, events.NewError(events.KindTransport, err, "chainId")
	}
	return id, nil
}

// EnigmaAddress returns the address of the bound Enigma contract.
func (c *Client) EnigmaAddress() common.Address {
	return c.enigma.Address()
}

// TokenAddress returns the address of the bound token contract.
func (c *Client) TokenAddress() common.Address {
	return c.token.Address()
}

// TokenBalance returns the ENG held by account, in grains.
func (c *Client) TokenBalance(ctx context.Context, account common.Address) (*big.Int, error) {
	balance, err := c.token.BalanceOf(&bind.CallOpts{Context: ctx, From: account}, account)
	if err != nil {
		return nil, events.NewError(events.KindTransport, err, "balanceOf(%s)", account)
	}
	return balance, nil
}

// TaskRecord returns the on-ledger record of a task.
func (c *Client) TaskRecord(ctx context.Context, taskID common.Hash) (*contracts.TaskRecord, error) {
	record, err := c.enigma.Tasks(&bind.CallOpts{Context: ctx, From: c.cfg.Tx.From}, taskID)
	if err != nil {
		return nil, events.NewError(events.KindTransport, err, "tasks(%s)", taskID)
	}
	return record, nil
}

// TaskRecordStatus returns the on-ledger status of a task.
func (c *Client) TaskRecordStatus(ctx context.Context, taskID common.Hash) (contracts.TaskStatus, error) {
	record, err := c.TaskRecord(ctx, taskID)
	if err != nil {
		return contracts.TaskRecordUndefined, err
	}
	return record.Status, nil
}

// WaitTaskFinal polls the task record every poll until its status is final
// and returns the final record.
func (c *Client) WaitTaskFinal(ctx context.Context, taskID common.Hash, poll time.Duration) (*contracts.TaskRecord, error) {
	if poll <= 0 {
		poll = params.DefaultPollInterval
	}
	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	for {
		record, err := c.TaskRecord(ctx, taskID)
		if err != nil {
			return nil, err
		}
		if record.Status.Final() {
			return record, nil
		}
		log.Trace("Task not final yet", "task", taskID, "status", record.Status)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
