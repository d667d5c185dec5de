// Package engine runs page replacement simulations with configuration,
// logging, metrics and memoization around the replacement package.
package engine

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/sibexico/pagesim/replacement"
)

// Engine runs simulations. It is safe for concurrent use; each run owns its
// bookkeeping and the shared pieces (metrics, cache) are synchronized.
type Engine struct {
	config     *Config
	logger     *slog.Logger
	metrics    *Metrics
	cache      *resultCache // nil when disabled
	simulators map[replacement.Policy]replacement.Simulator
}

// New creates an engine from a validated configuration. A nil logger means
// slog.Default().
func New(config *Config, logger *slog.Logger) (*Engine, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	lookahead, err := replacement.ParseLookahead(config.OptimalLookahead)
	if err != nil {
		return nil, err
	}
	optimal, err := replacement.NewOptimalSimulator(lookahead)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		config:  config.Clone(),
		logger:  logger,
		metrics: NewMetrics(),
		simulators: map[replacement.Policy]replacement.Simulator{
			replacement.PolicyOptimal: optimal,
		},
	}
	for _, p := range []replacement.Policy{replacement.PolicyFIFO, replacement.PolicyLRU} {
		sim, err := replacement.NewSimulator(p)
		if err != nil {
			return nil, err
		}
		e.simulators[p] = sim
	}

	if config.CacheSize > 0 {
		e.cache, err = newResultCache(config.CacheSize)
		if err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Config returns a copy of the engine configuration
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Metrics returns the engine's metrics tracker
func (e *Engine) Metrics() *Metrics {
	return e.metrics
}

// Run simulates ref under policy with the given number of frames. The
// returned result may be shared with other callers and must not be modified.
func (e *Engine) Run(policy replacement.Policy, ref []replacement.PageID, frames int) (*replacement.Result, error) {
	sim, ok := e.simulators[policy]
	if !ok {
		return nil, replacement.NewSimError(replacement.ErrCodeUnknownPolicy, "Engine.Run",
			fmt.Sprintf("unknown replacement policy %q", string(policy)), nil)
	}

	var key string
	if e.cache != nil {
		key = cacheKey(policy, ref, frames)
		if r, ok := e.cache.get(key); ok {
			e.recordCacheHit()
			e.logger.Debug("simulation served from cache",
				slog.String("policy", string(policy)),
				slog.Int("frames", frames),
				slog.Int("requests", r.Requests()),
			)
			return r, nil
		}
		e.recordCacheMiss()
	}

	// The result keeps the reference slice, so it gets its own copy.
	start := time.Now()
	r, err := sim.Simulate(slices.Clone(ref), frames)
	if err != nil {
		e.logger.Warn("simulation rejected",
			slog.String("policy", string(policy)),
			slog.Int("frames", frames),
			slog.Any("error", err),
		)
		return nil, err
	}
	elapsed := time.Since(start)

	if e.config.EnableMetrics {
		e.metrics.RecordRun(r, elapsed)
	}
	e.logger.Debug("simulation finished",
		slog.String("policy", string(policy)),
		slog.Int("frames", frames),
		slog.Int("requests", r.Requests()),
		slog.Int("faults", r.TotalFaults),
		slog.Duration("elapsed", elapsed),
	)

	if e.cache != nil {
		e.cache.add(key, r)
	}
	return r, nil
}

// Compare runs every policy independently over the same input and returns
// their summaries in the order FIFO, LRU, Optimal. An invalid frame count is
// rejected before any policy runs.
func (e *Engine) Compare(ref []replacement.PageID, frames int) ([]replacement.Summary, error) {
	if frames < 1 {
		return nil, replacement.NewSimError(replacement.ErrCodeInvalidFrameCount, "Engine.Compare",
			fmt.Sprintf("frame count must be positive, got %d", frames), nil)
	}

	summaries := make([]replacement.Summary, 0, len(replacement.Policies))
	for _, policy := range replacement.Policies {
		r, err := e.Run(policy, ref, frames)
		if err != nil {
			return nil, fmt.Errorf("compare %s: %w", policy, err)
		}
		summaries = append(summaries, replacement.Summarize(r))
	}
	return summaries, nil
}

func (e *Engine) recordCacheHit() {
	if e.config.EnableMetrics {
		e.metrics.RecordCacheHit()
	}
}

func (e *Engine) recordCacheMiss() {
	if e.config.EnableMetrics {
		e.metrics.RecordCacheMiss()
	}
}
