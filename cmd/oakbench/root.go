// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/OrHayat/Oak/alloc"
	"github.com/OrHayat/Oak/arena"
	"github.com/OrHayat/Oak/block"
	"github.com/OrHayat/Oak/config"
	"github.com/OrHayat/Oak/metrics"
)

// newRootCmd assembles the oakbench command tree, binding config's
// persistent flags once at the root so every subcommand inherits them.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "oakbench",
		Short: "drive the off-heap value-slice storage core under synthetic load",
	}
	if err := config.BindFlags(root); err != nil {
		log.Fatal().Err(err).Msg("failed to bind config flags")
	}

	root.AddCommand(newAllocCmd(), newContendCmd(), newSoakCmd())
	return root
}

// poolID is a per-run instance id, stamped onto every metric series this
// run exports so consecutive oakbench invocations scraping the same
// /metrics listener don't collide.
func poolID() string {
	return uuid.NewString()
}

// buildPool constructs a block.Pool backed by the arena named in b, and
// wraps both SeqExpand and SyncRecycle allocators over it.
func buildPool(b config.Bench) (*block.Pool, *alloc.SeqExpand, *alloc.SyncRecycle, error) {
	var source arena.Source
	switch b.Arena {
	case config.ArenaMmap:
		source = arena.NewMmapSource()
	default:
		source = arena.NewHeapSource()
	}
	pool := block.New(source, b.BlockSize)
	if _, err := pool.Grow(); err != nil {
		return nil, nil, nil, err
	}
	return pool, alloc.NewSeqExpand(pool), alloc.NewSyncRecycle(pool), nil
}

// serveMetrics starts the ephemeral Prometheus listener on addr, if
// non-empty, serving p's counters, and returns a shutdown func. A blank
// addr disables it.
func serveMetrics(addr string, p *metrics.Pool) func() {
	if addr == "" {
		return func() {}
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		p.WritePrometheus(w)
	})
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics listener stopped")
		}
	}()
	log.Info().Str("addr", addr).Msg("serving /metrics")
	return func() { _ = srv.Close() }
}
