package main

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/fatih/color"
	"github.com/peizihui/enigma-contract/events"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestParseAmount(t *testing.T) {
	v, err := parseAmount("1.5", false)
	require.NoError(t, err)
	require.Equal(t, int64(150000000), v.Int64())

	v, err = parseAmount("150", true)
	require.NoError(t, err)
	require.Equal(t, int64(150), v.Int64())

	_, err = parseAmount("1.5", true)
	require.Error(t, err)
}

func TestPrintEvents(t *testing.T) {
	color.NoColor = true

	hash := common.HexToHash("0xabc")
	stream := events.NewStream()
	go func() {
		defer stream.Finish()
		stream.Emit(events.Event{Name: events.LoginTransactionHash, TxHash: hash})
		stream.Emit(events.Event{Name: events.LoginConfirmation, TxHash: hash, Confirmation: 1})
		stream.Emit(events.Event{Name: events.LoginReceipt, TxHash: hash, Receipt: &types.Receipt{BlockNumber: big.NewInt(12), GasUsed: 21000}})
	}()
	var out bytes.Buffer
	require.NoError(t, printEvents(&out, stream))
	require.Contains(t, out.String(), "LOGIN_TRANSACTION_HASH")
	require.Contains(t, out.String(), hash.Hex())
	require.Contains(t, out.String(), "block=12 gas=21000")

	stream = events.NewStream()
	go func() {
		defer stream.Finish()
		stream.Fail(events.NewError(events.KindInsufficientBalance, nil, "Not enough tokens in wallet: %v<%v", 50, 100))
	}()
	out.Reset()
	err := printEvents(&out, stream)
	require.ErrorIs(t, err, events.ErrInsufficientBalance)
	require.Contains(t, out.String(), "NotEnoughTokens")
}

func TestFlagSet(t *testing.T) {
	all := flagSet([]cli.Flag{waitFlag}, []cli.Flag{startFlag, stopFlag})
	require.Len(t, all, 3)
	require.Equal(t, waitFlag, all[0])
}
