// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package metrics_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/OrHayat/Oak"
	"github.com/OrHayat/Oak/metrics"
)

func TestPoolCountersExportToPrometheus(t *testing.T) {
	p := metrics.NewPool("test-pool-1")
	defer p.Unregister()

	p.ObserveAllocated(128)
	p.ObserveSpinWait()
	p.ObserveResult(oak.TRUE)
	p.ObserveResult(oak.FALSE)
	p.ObserveResult(oak.RETRY)
	p.ObserveFreeListDepth(3)
	p.ObserveWriteDuration(5 * time.Microsecond)

	var buf bytes.Buffer
	p.WritePrometheus(&buf)
	out := buf.String()

	require.True(t, strings.Contains(out, "oak_pool_bytes_allocated_total"))
	require.True(t, strings.Contains(out, `pool="test-pool-1"`))
	require.True(t, strings.Contains(out, "oak_pool_freelist_depth"))
}

func TestWriteDurationPercentileIsPositiveAfterSamples(t *testing.T) {
	p := metrics.NewPool("test-pool-2")
	defer p.Unregister()

	for i := 0; i < 100; i++ {
		p.ObserveWriteDuration(time.Duration(i+1) * time.Microsecond)
	}
	p99 := p.WriteDurationPercentile(0.99)
	require.Greater(t, p99, int64(0))
}
