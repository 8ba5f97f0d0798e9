// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

// Command oakbench drives the value-slice storage core through its
// three load shapes (alloc, contend, soak): a companion benchmarking
// command shipped alongside the storage engine.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if err := newRootCmd().Execute(); err != nil {
		log.Fatal().Err(err).Msg("oakbench failed")
	}
}
