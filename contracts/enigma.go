package contracts

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Enigma is a binding to a deployed Enigma contract.
type Enigma struct {
	address  common.Address
	contract *bind.BoundContract
}

// NewEnigma binds the Enigma contract deployed at address.
func NewEnigma(address common.Address, backend bind.ContractBackend) (*Enigma, error) {
	parsed, err := abi.JSON(strings.NewReader(EnigmaABI))
	if err != nil {
		return nil, err
	}
	return &Enigma{
		address:  address,
		contract: bind.NewBoundContract(address, parsed, backend, backend, backend),
	}, nil
}

// Address returns the address the contract is bound to.
func (e *Enigma) Address() common.Address {
	return e.address
}

// Workers calls workers(address). The status is returned as stored on the
// ledger, without validation.
func (e *Enigma) Workers(opts *bind.CallOpts, account common.Address) (*Worker, error) {
	var out []interface{}
	if err := e.contract.Call(opts, &out, "workers", account); err != nil {
		return nil, err
	}
	return &Worker{
		Signer:  *abi.ConvertType(out[0], new(common.Address)).(*common.Address),
		Status:  WorkerStatus(*abi.ConvertType(out[1], new(uint8)).(*uint8)),
		Report:  *abi.ConvertType(out[2], new([]byte)).(*[]byte),
		Balance: *abi.ConvertType(out[3], new(*big.Int)).(**big.Int),
	}, nil
}

// Tasks calls tasks(bytes32).
func (e *Enigma) Tasks(opts *bind.CallOpts, taskID common.Hash) (*TaskRecord, error) {
	var out []interface{}
	if err := e.contract.Call(opts, &out, "tasks", [32]byte(taskID)); err != nil {
		return nil, err
	}
	return &TaskRecord{
		Sender:      *abi.ConvertType(out[0], new(common.Address)).(*common.Address),
		InputsHash:  common.Hash(*abi.ConvertType(out[1], new([32]byte)).(*[32]byte)),
		OutputHash:  common.Hash(*abi.ConvertType(out[2], new([32]byte)).(*[32]byte)),
		GasLimit:    *abi.ConvertType(out[3], new(*big.Int)).(**big.Int),
		GasPx:       *abi.ConvertType(out[4], new(*big.Int)).(**big.Int),
		BlockNumber: *abi.ConvertType(out[5], new(*big.Int)).(**big.Int),
		Status:      TaskStatus(*abi.ConvertType(out[6], new(uint8)).(*uint8)),
		Proof:       *abi.ConvertType(out[7], new([]byte)).(*[]byte),
	}, nil
}

// IsDeployed calls isDeployed(bytes32).
func (e *Enigma) IsDeployed(opts *bind.CallOpts, scAddr common.Hash) (bool, error) {
	var out []interface{}
	if err := e.contract.Call(opts, &out, "isDeployed", [32]byte(scAddr)); err != nil {
		return false, err
	}
	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}

// GetCodeHash calls getCodeHash(bytes32).
func (e *Enigma) GetCodeHash(opts *bind.CallOpts, scAddr common.Hash) (common.Hash, error) {
	var out []interface{}
	if err := e.contract.Call(opts, &out, "getCodeHash", [32]byte(scAddr)); err != nil {
		return common.Hash{}, err
	}
	return common.Hash(*abi.ConvertType(out[0], new([32]byte)).(*[32]byte)), nil
}

// CountStateDeltas calls countStateDeltas(bytes32).
func (e *Enigma) CountStateDeltas(opts *bind.CallOpts, scAddr common.Hash) (*big.Int, error) {
	var out []interface{}
	if err := e.contract.Call(opts, &out, "countStateDeltas", [32]byte(scAddr)); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

// GetStateDeltaHash calls getStateDeltaHash(bytes32,uint256).
func (e *Enigma) GetStateDeltaHash(opts *bind.CallOpts, scAddr common.Hash, index *big.Int) (common.Hash, error) {
	var out []interface{}
	if err := e.contract.Call(opts, &out, "getStateDeltaHash", [32]byte(scAddr), index); err != nil {
		return common.Hash{}, err
	}
	return common.Hash(*abi.ConvertType(out[0], new([32]byte)).(*[32]byte)), nil
}

// GetStateDeltaHashes calls getStateDeltaHashes(bytes32,uint256,uint256)
// for the half-open index range [start, stop).
func (e *Enigma) GetStateDeltaHashes(opts *bind.CallOpts, scAddr common.Hash, start, stop *big.Int) ([]common.Hash, error) {
	var out []interface{}
	if err := e.contract.Call(opts, &out, "getStateDeltaHashes", [32]byte(scAddr), start, stop); err != nil {
		return nil, err
	}
	raw := *abi.ConvertType(out[0], new([][32]byte)).(*[][32]byte)
	hashes := make([]common.Hash, len(raw))
	for i, h := range raw {
		hashes[i] = h
	}
	return hashes, nil
}

// IsValidDeltaHash calls isValidDeltaHash(bytes32,bytes32).
func (e *Enigma) IsValidDeltaHash(opts *bind.CallOpts, scAddr, stateDeltaHash common.Hash) (bool, error) {
	var out []interface{}
	if err := e.contract.Call(opts, &out, "isValidDeltaHash", [32]byte(scAddr), [32]byte(stateDeltaHash)); err != nil {
		return false, err
	}
	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}

// Login submits login().
func (e *Enigma) Login(opts *bind.TransactOpts) (*types.Transaction, error) {
	return e.contract.Transact(opts, "login")
}

// Logout submits logout().
func (e *Enigma) Logout(opts *bind.TransactOpts) (*types.Transaction, error) {
	return e.contract.Transact(opts, "logout")
}

// Deposit submits deposit(address,uint256), moving amount grains of
// previously approved ENG into the custodian's worker bank.
func (e *Enigma) Deposit(opts *bind.TransactOpts, custodian common.Address, amount *big.Int) (*types.Transaction, error) {
	return e.contract.Transact(opts, "deposit", custodian, amount)
}
