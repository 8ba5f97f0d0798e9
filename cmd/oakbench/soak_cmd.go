// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/OrHayat/Oak/config"
	"github.com/OrHayat/Oak/metrics"
	"github.com/OrHayat/Oak/serializer"
	"github.com/OrHayat/Oak/valueops"
)

// newSoakCmd runs a long allocate/delete/reallocate cycle intended to
// surface ABA/generation bugs: every iteration reuses the same key's
// slot across its free-list lifetime, so a generation mix-up shows up
// as a stale descriptor wrongly succeeding. Reports go-metrics
// histogram p99 of WRITE critical-section duration.
func newSoakCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "soak",
		Short: "allocate/delete/reallocate in a loop to surface ABA bugs",
		RunE: func(cmd *cobra.Command, args []string) error {
			b := config.Load()
			if err := b.Validate(); err != nil {
				return err
			}
			dur, err := time.ParseDuration(b.Duration)
			if err != nil {
				return fmt.Errorf("parse duration: %w", err)
			}

			pool, _, rec, err := buildPool(b)
			if err != nil {
				return err
			}
			defer pool.Close()

			p := metrics.NewPool(poolID())
			defer p.Unregister()
			shutdown := serveMetrics(b.MetricsAddr, p)
			defer shutdown()

			ser := serializer.Bytes{}
			deadline := time.Now().Add(dur)
			iterations := 0

			for time.Now().Before(deadline) {
				s, err := rec.Allocate(24, true)
				if err != nil {
					return fmt.Errorf("allocate: %w", err)
				}

				start := time.Now()
				code, err := valueops.Put(rec, s, []byte("soak-value"), ser, nil)
				p.ObserveWriteDuration(time.Since(start))
				if err != nil {
					return fmt.Errorf("put: %w", err)
				}
				p.ObserveResult(code)

				delCode, err := valueops.Delete(rec, s)
				if err != nil {
					return fmt.Errorf("delete: %w", err)
				}
				p.ObserveResult(delCode)

				// s is DELETED but its generation hasn't moved yet —
				// that happens when the slot is popped off the free
				// list and reinitialized. Allocating again forces that
				// reuse, opening the ABA window: only now does s's
				// generation disagree with the header's, so the
				// following Read against the stale descriptor must
				// observe the mismatch and report RETRY, never a false
				// success against the new occupant's bytes.
				reused, err := rec.Allocate(24, true)
				if err != nil {
					return fmt.Errorf("reallocate: %w", err)
				}
				staleCode, err := valueops.Read(rec, s, func(v valueops.View) int { return v.Len() })
				if err != nil {
					return fmt.Errorf("stale read: %w", err)
				}
				p.ObserveResult(staleCode.Code)

				if _, err := valueops.Delete(rec, reused); err != nil {
					return fmt.Errorf("delete reused: %w", err)
				}

				iterations++
			}

			log.Info().
				Int("iterations", iterations).
				Int64("write_p99_ns", p.WriteDurationPercentile(0.99)).
				Msg("soak run complete")
			return nil
		},
	}
}
