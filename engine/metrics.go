package engine

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sibexico/pagesim/replacement"
)

// policyCounters accumulates totals for one policy
type policyCounters struct {
	runs       atomic.Uint64
	references atomic.Uint64
	faults     atomic.Uint64
}

// Metrics tracks simulator activity. Safe for concurrent use.
type Metrics struct {
	policies map[replacement.Policy]*policyCounters

	cacheHits   atomic.Uint64
	cacheMisses atomic.Uint64

	runLatency *Histogram

	startTime time.Time
	mu        sync.RWMutex
}

// NewMetrics creates a new metrics tracker
func NewMetrics() *Metrics {
	m := &Metrics{
		policies:   make(map[replacement.Policy]*policyCounters, len(replacement.Policies)),
		runLatency: NewHistogram(1000),
		startTime:  time.Now(),
	}
	for _, p := range replacement.Policies {
		m.policies[p] = &policyCounters{}
	}
	return m
}

// RecordRun adds one finished simulation
func (m *Metrics) RecordRun(r *replacement.Result, elapsed time.Duration) {
	if c, ok := m.policies[r.Policy]; ok {
		c.runs.Add(1)
		c.references.Add(uint64(r.Requests()))
		c.faults.Add(uint64(r.TotalFaults))
	}
	m.runLatency.Record(float64(elapsed.Microseconds()))
}

func (m *Metrics) RecordCacheHit() {
	m.cacheHits.Add(1)
}

func (m *Metrics) RecordCacheMiss() {
	m.cacheMisses.Add(1)
}

// Runs returns how many simulations of policy were executed
func (m *Metrics) Runs(policy replacement.Policy) uint64 {
	if c, ok := m.policies[policy]; ok {
		return c.runs.Load()
	}
	return 0
}

// Faults returns the total faults seen across all runs of policy
func (m *Metrics) Faults(policy replacement.Policy) uint64 {
	if c, ok := m.policies[policy]; ok {
		return c.faults.Load()
	}
	return 0
}

// References returns the total references replayed by policy
func (m *Metrics) References(policy replacement.Policy) uint64 {
	if c, ok := m.policies[policy]; ok {
		return c.references.Load()
	}
	return 0
}

// FaultRate returns faults per reference for policy, 0 when nothing ran
func (m *Metrics) FaultRate(policy replacement.Policy) float64 {
	refs := m.References(policy)
	if refs == 0 {
		return 0.0
	}
	return float64(m.Faults(policy)) / float64(refs)
}

func (m *Metrics) GetCacheHits() uint64 {
	return m.cacheHits.Load()
}

func (m *Metrics) GetCacheMisses() uint64 {
	return m.cacheMisses.Load()
}

func (m *Metrics) GetCacheHitRate() float64 {
	hits := m.cacheHits.Load()
	total := hits + m.cacheMisses.Load()
	if total == 0 {
		return 0.0
	}
	return float64(hits) / float64(total)
}

// GetRunLatency returns a snapshot of simulation latency in microseconds
func (m *Metrics) GetRunLatency() HistogramSnapshot {
	return m.runLatency.Snapshot()
}

func (m *Metrics) GetUptime() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return time.Since(m.startTime)
}

// LogMetrics logs all metrics using structured logging
func (m *Metrics) LogMetrics(logger *slog.Logger) {
	policyAttrs := make([]any, 0, len(replacement.Policies))
	for _, p := range replacement.Policies {
		policyAttrs = append(policyAttrs, slog.Group(string(p),
			slog.Uint64("runs", m.Runs(p)),
			slog.Uint64("references", m.References(p)),
			slog.Uint64("faults", m.Faults(p)),
			slog.Float64("fault_rate", m.FaultRate(p)),
		))
	}

	latency := m.GetRunLatency()
	logger.Info("Simulator Metrics",
		slog.Group("policies", policyAttrs...),
		slog.Group("cache",
			slog.Uint64("hits", m.GetCacheHits()),
			slog.Uint64("misses", m.GetCacheMisses()),
			slog.Float64("hit_rate", m.GetCacheHitRate()),
		),
		slog.Group("latency_us",
			slog.Int("count", latency.Count),
			slog.Float64("mean", latency.Mean),
			slog.Float64("p50", latency.P50),
			slog.Float64("p99", latency.P99),
			slog.Float64("max", latency.Max),
		),
		slog.Duration("uptime", m.GetUptime()),
	)
}

// Reset resets all metrics
func (m *Metrics) Reset() {
	for _, c := range m.policies {
		c.runs.Store(0)
		c.references.Store(0)
		c.faults.Store(0)
	}
	m.cacheHits.Store(0)
	m.cacheMisses.Store(0)
	m.runLatency.Reset()

	m.mu.Lock()
	m.startTime = time.Now()
	m.mu.Unlock()
}
