// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

// Package config loads BlockPool/allocator tuning from env, .env files,
// and flags via viper. Nothing in alloc, block, or valueops depends on
// this package; only cmd/oakbench consumes it, so the core stays free
// of the config layer's dependency surface.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ArenaKind selects the arena.Source a BlockPool draws blocks from.
type ArenaKind string

const (
	// ArenaHeap backs blocks with plain Go byte slices.
	ArenaHeap ArenaKind = "heap"
	// ArenaMmap backs blocks with anonymous mmap(2) mappings.
	ArenaMmap ArenaKind = "mmap"
)

// Bench holds the tunables cmd/oakbench's subcommands read to build a
// block.Pool and its allocators.
type Bench struct {
	// BlockSize is the fixed capacity of every block.Block the pool
	// grows, in bytes.
	BlockSize uint32
	// Arena selects the byte-region source.
	Arena ArenaKind
	// Values is the number of value allocations a run should perform.
	Values int
	// Readers and Writers size the goroutine pools for "oakbench contend".
	Readers int
	Writers int
	// Duration, as a Go duration string (e.g. "10s"), bounds
	// "oakbench contend"/"oakbench soak" run length.
	Duration string
	// MetricsAddr is the address the ephemeral Prometheus /metrics
	// listener binds to; empty disables it.
	MetricsAddr string
}

// Load reads environment, optional .env/.env.local files, and viper's
// default value layer into a Bench, in precedence order: flags > env >
// .env files > defaults.
func Load() Bench {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	viper.SetEnvPrefix("oak")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("block-size", 1<<20)
	viper.SetDefault("arena", string(ArenaHeap))
	viper.SetDefault("values", 100000)
	viper.SetDefault("readers", 8)
	viper.SetDefault("writers", 2)
	viper.SetDefault("duration", "10s")
	viper.SetDefault("metrics-addr", "")

	return Bench{
		BlockSize:   uint32(viper.GetInt("block-size")),
		Arena:       ArenaKind(viper.GetString("arena")),
		Values:      viper.GetInt("values"),
		Readers:     viper.GetInt("readers"),
		Writers:     viper.GetInt("writers"),
		Duration:    viper.GetString("duration"),
		MetricsAddr: viper.GetString("metrics-addr"),
	}
}

// BindFlags registers the Bench fields as persistent flags on cmd and
// binds them to viper, the same register-then-bind two-step every
// subcommand in this tree shares.
func BindFlags(cmd *cobra.Command) error {
	cmd.PersistentFlags().Int("block-size", 1<<20, "block capacity in bytes")
	cmd.PersistentFlags().String("arena", string(ArenaHeap), "arena source: heap or mmap")
	cmd.PersistentFlags().Int("values", 100000, "number of value allocations to perform")
	cmd.PersistentFlags().Int("readers", 8, "number of concurrent reader goroutines")
	cmd.PersistentFlags().Int("writers", 2, "number of concurrent writer goroutines")
	cmd.PersistentFlags().String("duration", "10s", "run duration")
	cmd.PersistentFlags().String("metrics-addr", "", "address to serve /metrics on, empty to disable")
	return viper.BindPFlags(cmd.PersistentFlags())
}

// Validate reports a descriptive error for an unusable Bench, rather
// than letting the allocator fail opaquely on a zero block size.
func (b Bench) Validate() error {
	if b.BlockSize == 0 {
		return fmt.Errorf("config: block-size must be positive")
	}
	switch b.Arena {
	case ArenaHeap, ArenaMmap:
	default:
		return fmt.Errorf("config: unknown arena kind %q", b.Arena)
	}
	return nil
}
