// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

// Package metrics instruments the allocator and value-operations layers
// for cmd/oakbench. It is purely an observer: nothing in alloc, slice,
// or valueops imports this package, keeping the hot path allocation-free
// and metrics-free (§10.2).
package metrics

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/VictoriaMetrics/metrics"
	gometrics "github.com/rcrowley/go-metrics"

	"github.com/OrHayat/Oak"
)

// Pool is a named VictoriaMetrics metric set scoped to one BlockPool
// instance (labeled by its id, so more than one pool in a process
// doesn't collide when scraped). It tracks allocator bytes-in-use,
// free-list depth, and lock-wait spin counts.
type Pool struct {
	set *metrics.Set

	bytesAllocated *metrics.Counter
	freeListDepth  *metrics.Gauge
	freeListLen    atomic.Int64
	spinWaits      *metrics.Counter

	resultOK    *metrics.Counter
	resultFalse *metrics.Counter
	resultRetry *metrics.Counter

	writeDuration gometrics.Histogram
}

// NewPool registers a fresh metric set labeled by poolID and returns a
// Pool wrapping it. Callers should call Unregister when the pool they
// are instrumenting is closed, to avoid leaking metric series across
// repeated benchmark runs in the same process.
func NewPool(poolID string) *Pool {
	set := metrics.NewSet()
	label := fmt.Sprintf(`{pool=%q}`, poolID)

	p := &Pool{
		set:            set,
		bytesAllocated: set.NewCounter("oak_pool_bytes_allocated_total" + label),
		spinWaits:      set.NewCounter("oak_pool_spin_waits_total" + label),
		resultOK:       set.NewCounter(fmt.Sprintf(`oak_pool_verb_result_total{result="ok",pool=%q}`, poolID)),
		resultFalse:    set.NewCounter(fmt.Sprintf(`oak_pool_verb_result_total{result="false",pool=%q}`, poolID)),
		resultRetry:    set.NewCounter(fmt.Sprintf(`oak_pool_verb_result_total{result="retry",pool=%q}`, poolID)),
	}
	p.freeListDepth = set.NewGauge("oak_pool_freelist_depth"+label, func() float64 {
		return float64(p.freeListLen.Load())
	})
	p.writeDuration = gometrics.NewHistogram(gometrics.NewUniformSample(1024))
	return p
}

// ObserveAllocated adds n freshly bump-allocated bytes to the running
// total, meant to be called once per Allocate that reaches the bump
// path (not on a free-list hit, which reuses bytes already counted).
func (p *Pool) ObserveAllocated(n uint64) {
	p.bytesAllocated.Add(int(n))
}

// ObserveFreeListDepth records the current combined length of the
// allocator's free lists, sampled by the gauge on each scrape.
func (p *Pool) ObserveFreeListDepth(n int) {
	p.freeListLen.Store(int64(n))
}

// ObserveSpinWait increments the spin-wait counter once per Backoff.Wait
// call the instrumented code performs, a rough proxy for lock
// contention under cmd/oakbench's "contend" workload.
func (p *Pool) ObserveSpinWait() {
	p.spinWaits.Inc()
}

// ObserveResult increments the counter matching code, letting
// cmd/oakbench report OK/FALSE/RETRY rates for a run.
func (p *Pool) ObserveResult(code oak.Code) {
	switch code {
	case oak.TRUE:
		p.resultOK.Inc()
	case oak.FALSE:
		p.resultFalse.Inc()
	case oak.RETRY:
		p.resultRetry.Inc()
	}
}

// ObserveWriteDuration records how long a single WRITE critical section
// held the lock, consumed by "oakbench soak" for p99 reporting via
// go-metrics' histogram percentile estimator.
func (p *Pool) ObserveWriteDuration(d time.Duration) {
	p.writeDuration.Update(d.Nanoseconds())
}

// WriteDurationPercentile reports the estimated percentile (0..1) of
// recorded WRITE critical-section durations, in nanoseconds.
func (p *Pool) WriteDurationPercentile(q float64) int64 {
	return int64(p.writeDuration.Percentile(q))
}

// WritePrometheus serializes this pool's VictoriaMetrics set in
// Prometheus exposition format, the same call cmd/oakbench's ephemeral
// /metrics listener makes.
func (p *Pool) WritePrometheus(w io.Writer) {
	p.set.WritePrometheus(w)
}

// Unregister removes this pool's metric set so its series stop being
// reported; safe to call once a benchmark run using this Pool is done.
func (p *Pool) Unregister() {
	for _, name := range p.set.ListMetricNames() {
		p.set.UnregisterMetric(name)
	}
}
