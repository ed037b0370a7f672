package params

import (
	"fmt"
	"sort"
)

// Network is a named ledger endpoint preset.
type Network struct {
	Name      string
	RPC       string
	NetworkID uint64
	Gas       uint64 // gas limit override, zero keeps DefaultGas

	// KeyRequired marks presets whose RPC is a provider base URL that only
	// works with a project key appended, given in full via the endpoint.
	KeyRequired bool
}

var (
	DevelopNetwork = Network{
		Name:      "develop",
		RPC:       "http://localhost:9545",
		NetworkID: 4447,
	}
	GanacheNetwork = Network{
		Name:      "ganache",
		RPC:       "http://127.0.0.1:8545",
		NetworkID: 2,
	}
	GanacheRemoteNetwork = Network{
		Name:      "ganache_remote",
		RPC:       "http://localhost:30000",
		NetworkID: 3,
	}
	KovanNetwork = Network{
		Name:        "kovan",
		RPC:         "https://kovan.infura.io/v3/",
		NetworkID:   42,
		Gas:         DefaultKovanGas,
		KeyRequired: true,
	}
)

var networks = map[string]Network{
	DevelopNetwork.Name:       DevelopNetwork,
	GanacheNetwork.Name:       GanacheNetwork,
	GanacheRemoteNetwork.Name: GanacheRemoteNetwork,
	KovanNetwork.Name:         KovanNetwork,
}

// NetworkByName returns the preset registered under name.
func NetworkByName(name string) (Network, error) {
	n, ok := networks[name]
	if !ok {
		return Network{}, fmt.Errorf("unknown network %q (known: %v)", name, NetworkNames())
	}
	return n, nil
}

// NetworkNames lists the preset names in sorted order.
func NetworkNames() []string {
	names := make([]string, 0, len(networks))
	for name := range networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GasLimit returns the preset gas override or DefaultGas.
func (n Network) GasLimit() uint64 {
	if n.Gas != 0 {
		return n.Gas
	}
	return DefaultGas
}
