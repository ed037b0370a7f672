// Copyright 2020 The go-ethereum Authors
// This file is part of go-ethereum.
//
// go-ethereum is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-ethereum is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-ethereum. If not, see <http://www.gnu.org/licenses/>.

package utils

import (
	"fmt"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

// GetPassPhrase displays the given text (prompt) to the user and requests some
// textual data to be entered, but one which must not be echoed out into the terminal.
// The method returns the input provided by the user.
func GetPassPhrase(text string, confirmation bool) string {
	if text != "" {
		fmt.Println(text)
	}
	password, err := readPassword("Password: ")
	if err != nil {
		Fatalf("Failed to read password: %v", err)
	}
	if confirmation {
		confirm, err := readPassword("Repeat password: ")
		if err != nil {
			Fatalf("Failed to read password confirmation: %v", err)
		}
		if password != confirm {
			Fatalf("Passwords do not match")
		}
	}
	return password
}

func readPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	return string(password), err
}

// GetPassPhraseWithList retrieves the password associated with an account, either fetched
// from a list of preloaded passphrases, or requested interactively from the user.
func GetPassPhraseWithList(text string, confirmation bool, index int, passwords []string) string {
	// If a list of passwords was supplied, retrieve from them
	if len(passwords) > 0 {
		if index < len(passwords) {
			return passwords[index]
		}
		return passwords[len(passwords)-1]
	}
	// Otherwise prompt the user for the password
	password := GetPassPhrase(text, confirmation)
	return password
}

// MakeKeyStore opens the keystore directory with the standard scrypt
// parameters.
func MakeKeyStore(dir string) *keystore.KeyStore {
	if dir == "" {
		Fatalf("No keystore configured (--%s)", KeyStoreDirFlag.Name)
	}
	return keystore.NewKeyStore(dir, keystore.StandardScryptN, keystore.StandardScryptP)
}

// MakeSigner unlocks the keystore account of from and returns a signer for
// transactions on the chain with the given ID.
func MakeSigner(ctx *cli.Context, ks *keystore.KeyStore, from common.Address, chainID *big.Int) bind.SignerFn {
	account, err := ks.Find(accounts.Account{Address: from})
	if err != nil {
		Fatalf("Account %s: %v", from.Hex(), err)
	}
	password := GetPassPhraseWithList(fmt.Sprintf("Unlocking account %s", from.Hex()), false, 0, MakePasswordList(ctx))
	if err := ks.Unlock(account, password); err != nil {
		Fatalf("Failed to unlock account %s (%v)", from.Hex(), err)
	}
	log.Info("Unlocked account", "address", account.Address)
	return KeyStoreSigner(ks, account, chainID)
}

// KeyStoreSigner signs transactions of an unlocked keystore account.
func KeyStoreSigner(ks *keystore.KeyStore, account accounts.Account, chainID *big.Int) bind.SignerFn {
	return func(addr common.Address, tx *types.Transaction) (*types.Transaction, error) {
		if addr != account.Address {
			return nil, bind.ErrNotAuthorized
		}
		return ks.SignTx(account, tx, chainID)
	}
}
