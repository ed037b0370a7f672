// Package events defines the ordered progress notifications produced by
// state-changing ledger operations.
package events

import "strings"

// Name identifies an event delivered on a Stream.
type Name string

const (
	LoginTransactionHash Name = "LOGIN_TRANSACTION_HASH"
	LoginConfirmation    Name = "LOGIN_CONFIRMATION"
	LoginReceipt         Name = "LOGIN_RECEIPT"

	LogoutTransactionHash Name = "LOGOUT_TRANSACTION_HASH"
	LogoutConfirmation    Name = "LOGOUT_CONFIRMATION"
	LogoutReceipt         Name = "LOGOUT_RECEIPT"

	DepositTransactionHash Name = "DEPOSIT_TRANSACTION_HASH"
	DepositConfirmation    Name = "DEPOSIT_CONFIRMATION"
	DepositReceipt         Name = "DEPOSIT_RECEIPT"

	ErrorName Name = "ERROR"
)

// Operation is the prefix shared by the events of one kind of transaction.
type Operation string

const (
	Login   Operation = "LOGIN"
	Logout  Operation = "LOGOUT"
	Deposit Operation = "DEPOSIT"
)

func (op Operation) TransactionHash() Name { return Name(string(op) + "_TRANSACTION_HASH") }
func (op Operation) Confirmation() Name    { return Name(string(op) + "_CONFIRMATION") }
func (op Operation) Receipt() Name         { return Name(string(op) + "_RECEIPT") }

// IsReceipt reports whether n is the successful terminal event of an operation.
func (n Name) IsReceipt() bool {
	return strings.HasSuffix(string(n), "_RECEIPT")
}

// Terminal reports whether no event follows n on the same stream.
func (n Name) Terminal() bool {
	return n == ErrorName || n.IsReceipt()
}
