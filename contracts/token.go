package contracts

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// EnigmaToken is a binding to the ENG token contract.
type EnigmaToken struct {
	address  common.Address
	contract *bind.BoundContract
}

// NewEnigmaToken binds the token contract deployed at address.
func NewEnigmaToken(address common.Address, backend bind.ContractBackend) (*EnigmaToken, error) {
	parsed, err := abi.JSON(strings.NewReader(EnigmaTokenABI))
	if err != nil {
		return nil, err
	}
	return &EnigmaToken{
		address:  address,
		contract: bind.NewBoundContract(address, parsed, backend, backend, backend),
	}, nil
}

func (t *EnigmaToken) Address() common.Address {
	return t.address
}

// BalanceOf calls balanceOf(address).
func (t *EnigmaToken) BalanceOf(opts *bind.CallOpts, owner common.Address) (*big.Int, error) {
	var out []interface{}
	if err := t.contract.Call(opts, &out, "balanceOf", owner); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

// Allowance calls allowance(address,address).
func (t *EnigmaToken) Allowance(opts *bind.CallOpts, owner, spender common.Address) (*big.Int, error) {
	var out []interface{}
	if err := t.contract.Call(opts, &out, "allowance", owner, spender); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

// Approve submits approve(address,uint256).
func (t *EnigmaToken) Approve(opts *bind.TransactOpts, spender common.Address, amount *big.Int) (*types.Transaction, error) {
	return t.contract.Transact(opts, "approve", spender, amount)
}
