// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/OrHayat/Oak"
	"github.com/OrHayat/Oak/config"
	"github.com/OrHayat/Oak/metrics"
	"github.com/OrHayat/Oak/serializer"
	"github.com/OrHayat/Oak/slice"
	"github.com/OrHayat/Oak/valueops"
)

// newContendCmd runs concurrent reader/writer goroutines against a
// shared pool of slices to exercise the ordering guarantees (§5) under
// load, tallying RETRY/FALSE/OK outcomes across the worker pool.
func newContendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "contend",
		Short: "run concurrent readers and writers against shared slices",
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
			const shared = 64
			slices := make([]slice.Slice, shared)
			for i := range slices {
				s, err := rec.Allocate(32, true)
				if err != nil {
					return fmt.Errorf("seed allocate: %w", err)
				}
				if _, err := valueops.Put(rec, s, []byte("seed"), ser, nil); err != nil {
					return fmt.Errorf("seed put: %w", err)
				}
				slices[i] = s
			}

			stop := make(chan struct{})
			time.AfterFunc(dur, func() { close(stop) })

			var wg sync.WaitGroup
			run := func(verb func(slice.Slice) (oak.Code, error)) {
				defer wg.Done()
				i := 0
				for {
					select {
					case <-stop:
						return
					default:
					}
					s := slices[i%shared]
					i++
					code, err := verb(s)
					if err != nil {
						log.Error().Err(err).Msg("verb failed")
						continue
					}
					p.ObserveResult(code)
				}
			}

			for i := 0; i < b.Readers; i++ {
				wg.Add(1)
				go run(func(s slice.Slice) (oak.Code, error) {
					res, err := valueops.Read(rec, s, func(v valueops.View) int { return v.Len() })
					return res.Code, err
				})
			}
			for i := 0; i < b.Writers; i++ {
				wg.Add(1)
				go run(func(s slice.Slice) (oak.Code, error) {
					return valueops.Compute(rec, s, func(v valueops.WritableView) {
						if v.Len() >= 4 {
							v.PutUint32(0, v.Uint32(0)+1)
						}
					})
				})
			}
			wg.Wait()

			log.Info().
				Int("readers", b.Readers).
				Int("writers", b.Writers).
				Dur("duration", dur).
				Msg("contend run complete")
			return nil
		},
	}
}
