// Package metrics configures collection of the client's meters and timers.
package metrics

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/log"
	gethmetrics "github.com/ethereum/go-ethereum/metrics"
	"github.com/ethereum/go-ethereum/metrics/exp"
)

// Config contains the configuration for the metric collection.
type Config struct {
	Enabled bool   `toml:",omitempty"`
	HTTP    string `toml:",omitempty"`
	Port    int    `toml:",omitempty"`
}

// DefaultConfig is the default config for metrics used by the enigma client.
var DefaultConfig = Config{
	Enabled: false,
	HTTP:    "127.0.0.1",
	Port:    6060,
}

// processRefresh is the period of the process level metrics collection.
const processRefresh = 3 * time.Second

// Setup enables metrics collection and the stand-alone expvar endpoint. It
// must run before any client is created, meters registered earlier stay
// no-ops.
func Setup(cfg Config) {
	if !cfg.Enabled {
		return
	}
	log.Info("Enabling metrics collection")
	gethmetrics.Enabled = true

	if cfg.HTTP != "" {
		address := fmt.Sprintf("%s:%d", cfg.HTTP, cfg.Port)
		log.Info("Enabling stand-alone metrics HTTP endpoint", "address", address)
		exp.Setup(address)
	}
	go gethmetrics.CollectProcessMetrics(processRefresh)
}

// Snapshot returns the counts of all registered meters and timers, keyed by
// metric name.
func Snapshot() map[string]int64 {
	counts := make(map[string]int64)
	gethmetrics.DefaultRegistry.Each(func(name string, i interface{}) {
		switch m := i.(type) {
		case gethmetrics.Meter:
			counts[name] = m.Count()
		case gethmetrics.Timer:
			counts[name] = m.Count()
		case gethmetrics.Counter:
			counts[name] = m.Count()
		}
	})
	return counts
}
