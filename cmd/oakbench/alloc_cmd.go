// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/OrHayat/Oak/config"
	"github.com/OrHayat/Oak/metrics"
	"github.com/OrHayat/Oak/serializer"
	"github.com/OrHayat/Oak/valueops"
)

// newAllocCmd drives SeqExpand and SyncRecycle allocation patterns and
// reports the allocator-accounting property (§8): Allocated() only ever
// grows, even as SyncRecycle slices are freed and reused.
func newAllocCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "alloc",
		Short: "drive allocation patterns and report allocator accounting",
		RunE: func(cmd *cobra.Command, args []string) error {
			b := config.Load()
			if err := b.Validate(); err != nil {
				return err
			}

			pool, seq, rec, err := buildPool(b)
			if err != nil {
				return err
			}
			defer pool.Close()

			p := metrics.NewPool(poolID())
			defer p.Unregister()
			shutdown := serveMetrics(b.MetricsAddr, p)
			defer shutdown()

			ser := serializer.Bytes{}
			payload := []byte("oakbench-value")

			for i := 0; i < b.Values; i++ {
				key, err := seq.Allocate(uint32(len(payload)), false)
				if err != nil {
					return fmt.Errorf("seqexpand allocate: %w", err)
				}
				p.ObserveAllocated(uint64(key.AllocatedLength()))

				s, err := rec.Allocate(uint32(ser.Size(payload)), true)
				if err != nil {
					return fmt.Errorf("syncrecycle allocate: %w", err)
				}
				p.ObserveAllocated(uint64(s.AllocatedLength()))

				code, err := valueops.Put(rec, s, payload, ser, nil)
				if err != nil {
					return fmt.Errorf("put: %w", err)
				}
				p.ObserveResult(code)

				if i%2 == 0 {
					delCode, err := valueops.Delete(rec, s)
					if err != nil {
						return fmt.Errorf("delete: %w", err)
					}
					p.ObserveResult(delCode)
				}
			}

			log.Info().
				Uint64("seq_allocated", seq.Allocated()).
				Uint64("rec_allocated", rec.Allocated()).
				Uint64("pool_allocated", pool.Allocated()).
				Int("values", b.Values).
				Msg("alloc run complete")
			return nil
		},
	}
}
