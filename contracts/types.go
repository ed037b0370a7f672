// Package contracts contains bindings for the Enigma staking/task contract
// and the ENG token contract.
package contracts

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// WorkerStatus is the lifecycle state of a worker as recorded on the ledger.
type WorkerStatus uint8

const (
	WorkerUnregistered WorkerStatus = 0
	WorkerRegistered   WorkerStatus = 1
	WorkerLoggedIn     WorkerStatus = 2
	WorkerLoggedOut    WorkerStatus = 3
)

// ErrUnknownWorkerStatus is returned for status values outside the four
// defined worker states.
var ErrUnknownWorkerStatus = errors.New("contracts: unknown worker status")

// ParseWorkerStatus validates a raw on-ledger status value.
func ParseWorkerStatus(v uint8) (WorkerStatus, error) {
	s := WorkerStatus(v)
	if !s.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrUnknownWorkerStatus, v)
	}
	return s, nil
}

func (s WorkerStatus) Valid() bool {
	return s <= WorkerLoggedOut
}

func (s WorkerStatus) String() string {
	switch s {
	case WorkerUnregistered:
		return "Unregistered"
	case WorkerRegistered:
		return "Registered"
	case WorkerLoggedIn:
		return "LoggedIn"
	case WorkerLoggedOut:
		return "LoggedOut"
	}
	return fmt.Sprintf("WorkerStatus(%d)", uint8(s))
}

// Worker is a worker record returned by workers(address).
type Worker struct {
	Signer  common.Address
	Status  WorkerStatus
	Report  []byte
	Balance *big.Int // staked ENG, in grains
}

// TaskStatus is the on-ledger state of a task record.
type TaskStatus uint8

const (
	TaskRecordUndefined TaskStatus = iota
	TaskRecordCreated
	TaskReceiptVerified
	TaskReceiptFailed
	TaskReceiptFailedETH
	TaskReceiptFailedReturn
)

func (s TaskStatus) String() string {
	switch s {
	case TaskRecordUndefined:
		return "RecordUndefined"
	case TaskRecordCreated:
		return "RecordCreated"
	case TaskReceiptVerified:
		return "ReceiptVerified"
	case TaskReceiptFailed:
		return "ReceiptFailed"
	case TaskReceiptFailedETH:
		return "ReceiptFailedETH"
	case TaskReceiptFailedReturn:
		return "ReceiptFailedReturn"
	}
	return fmt.Sprintf("TaskStatus(%d)", uint8(s))
}

// Final reports whether the task will not change state anymore.
func (s TaskStatus) Final() bool {
	return s >= TaskReceiptVerified
}

// TaskRecord is a task record returned by tasks(bytes32).
type TaskRecord struct {
	Sender      common.Address
	InputsHash  common.Hash
	OutputHash  common.Hash
	GasLimit    *big.Int
	GasPx       *big.Int
	BlockNumber *big.Int
	Status      TaskStatus
	Proof       []byte
}
