// Copyright 2017 The go-ethereum Authors
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

// Package config holds the TOML configuration of the enigma client.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"unicode"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/naoina/toml"
	"github.com/peizihui/enigma-contract/admin"
	"github.com/peizihui/enigma-contract/metrics"
	"github.com/peizihui/enigma-contract/params"
	"github.com/peizihui/enigma-contract/txwatch"
)

var (
	ErrNoEndpoint       = errors.New("config: no RPC endpoint")
	ErrNoEnigmaContract = errors.New("config: no Enigma contract address")
	ErrNoTokenContract  = errors.New("config: no token contract address")
	ErrNoEndpointKey    = errors.New("config: network endpoint needs a project key")
)

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		var link string
		if unicode.IsUpper(rune(rt.Name()[0])) && rt.PkgPath() != "main" {
			link = fmt.Sprintf(", see https://pkg.go.dev/%s#%s for available fields", rt.PkgPath(), rt.Name())
		}
		return fmt.Errorf("field '%s' is not defined in %s%s", field, rt.String(), link)
	},
}

// LogConfig selects the log output.
type LogConfig struct {
	Verbosity int  // 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=trace
	Color     bool `toml:",omitempty"`
}

// Config is the complete client configuration.
type Config struct {
	Network        string         // preset the endpoint and gas limit default to
	Endpoint       string         `toml:",omitempty"`
	EnigmaContract common.Address // Enigma staking/task contract
	TokenContract  common.Address // ENG token contract
	Keystore       string         `toml:",omitempty"`

	Tx      admin.TxOptions
	Watch   txwatch.Config
	Metrics metrics.Config
	Log     LogConfig
}

// Defaults contains the settings of the develop network.
var Defaults = Config{
	Network:  params.DevelopNetwork.Name,
	Endpoint: params.DevelopNetwork.RPC,
	Tx: admin.TxOptions{
		Gas:      params.DefaultGas,
		GasPrice: params.DefaultGasPrice,
	},
	Watch:   txwatch.DefaultConfig,
	Metrics: metrics.DefaultConfig,
	Log:     LogConfig{Verbosity: int(log.LvlInfo)},
}

// New returns a copy of Defaults that does not share mutable state with it.
func New() *Config {
	cfg := Defaults
	cfg.Tx = admin.TxOptions{}.Merge(Defaults.Tx)
	return &cfg
}

// ApplyNetwork switches cfg to the named preset: the endpoint and the gas
// limit are replaced by the preset values.
func (c *Config) ApplyNetwork(name string) error {
	n, err := params.NetworkByName(name)
	if err != nil {
		return err
	}
	c.Network = n.Name
	c.Endpoint = n.RPC
	c.Tx.Gas = n.GasLimit()
	return nil
}

// Validate checks that cfg is complete enough to dial and bind the contracts.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return ErrNoEndpoint
	}
	if n, err := params.NetworkByName(c.Network); err == nil && n.KeyRequired && c.Endpoint == n.RPC {
		return fmt.Errorf("%w: set the full endpoint URL, e.g. %s<key>", ErrNoEndpointKey, n.RPC)
	}
	if c.EnigmaContract == (common.Address{}) {
		return ErrNoEnigmaContract
	}
	if c.TokenContract == (common.Address{}) {
		return ErrNoTokenContract
	}
	return nil
}

// Load reads the TOML file into cfg. Fields missing from the file keep their
// current values.
func Load(file string, cfg *Config) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = Decode(bufio.NewReader(f), cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// Decode reads TOML from r into cfg. A known network preset named by the
// input is applied first, so that the endpoint and gas limit follow it
// unless the input sets them too.
func Decode(r io.Reader, cfg *Config) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	var file Config
	if err := tomlSettings.Unmarshal(data, &file); err != nil {
		return err
	}
	if file.Network != "" {
		if _, err := params.NetworkByName(file.Network); err == nil {
			if err := cfg.ApplyNetwork(file.Network); err != nil {
				return err
			}
		}
	}
	return tomlSettings.Unmarshal(data, cfg)
}

// Dump writes cfg as TOML.
func Dump(w io.Writer, cfg *Config) error {
	out, err := tomlSettings.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
