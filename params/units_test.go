package params

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToGrains(t *testing.T) {
	require.Equal(t, big.NewInt(100000000), ToGrains(1))
	require.Equal(t, big.NewInt(0), ToGrains(0))
	require.Equal(t, "250000000000", ToGrains(2500).String())
}

func TestFromGrains(t *testing.T) {
	tests := []struct {
		grains *big.Int
		want   string
	}{
		{nil, "0"},
		{big.NewInt(0), "0"},
		{big.NewInt(1), "0.00000001"},
		{big.NewInt(100000000), "1"},
		{big.NewInt(150000000), "1.5"},
		{big.NewInt(-150000000), "-1.5"},
		{big.NewInt(100000), "0.001"},
	}
	for _, tt := range tests {
		if got := FromGrains(tt.grains); got != tt.want {
			t.Errorf("FromGrains(%v) = %q, want %q", tt.grains, got, tt.want)
		}
	}
}

func TestParseENG(t *testing.T) {
	tests := []struct {
		in   string
		want string
		fail bool
	}{
		{in: "1", want: "100000000"},
		{in: "1.5", want: "150000000"},
		{in: ".5", want: "50000000"},
		{in: "0.00000001", want: "1"},
		{in: " 3 ", want: "300000000"},
		{in: "0.000000001", fail: true},
		{in: "-1", fail: true},
		{in: "", fail: true},
		{in: "abc", fail: true},
	}
	for _, tt := range tests {
		got, err := ParseENG(tt.in)
		if tt.fail {
			require.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		require.Equal(t, tt.want, got.String(), "input %q", tt.in)
	}
}

func TestNetworkByName(t *testing.T) {
	n, err := NetworkByName("develop")
	require.NoError(t, err)
	require.Equal(t, uint64(4447), n.NetworkID)
	require.Equal(t, DefaultGas, n.GasLimit())

	k, err := NetworkByName("kovan")
	require.NoError(t, err)
	require.Equal(t, DefaultKovanGas, k.GasLimit())

	_, err = NetworkByName("mainnet")
	require.Error(t, err)
	require.Equal(t, []string{"develop", "ganache", "ganache_remote", "kovan"}, NetworkNames())
}
