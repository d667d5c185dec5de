package engine

import (
	"math"
	"sort"
	"sync"
)

// Histogram keeps the most recent samples and answers percentile queries
type Histogram struct {
	samples []float64
	mu      sync.Mutex
	maxSize int
}

// NewHistogram creates a histogram retaining at most maxSize samples
func NewHistogram(maxSize int) *Histogram {
	if maxSize <= 0 {
		maxSize = 1000
	}
	return &Histogram{
		samples: make([]float64, 0, maxSize),
		maxSize: maxSize,
	}
}

// Record adds a sample, dropping the oldest one when full
func (h *Histogram) Record(v float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.samples) >= h.maxSize {
		copy(h.samples, h.samples[1:])
		h.samples = h.samples[:len(h.samples)-1]
	}
	h.samples = append(h.samples, v)
}

// Reset clears all samples
func (h *Histogram) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.samples = h.samples[:0]
}

// HistogramSnapshot holds summary statistics of a histogram
type HistogramSnapshot struct {
	Count int
	Min   float64
	Max   float64
	Mean  float64
	P50   float64
	P99   float64
}

// Snapshot computes statistics over a sorted copy of the samples
func (h *Histogram) Snapshot() HistogramSnapshot {
	h.mu.Lock()
	sorted := append([]float64(nil), h.samples...)
	h.mu.Unlock()

	if len(sorted) == 0 {
		return HistogramSnapshot{}
	}
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}

	return HistogramSnapshot{
		Count: len(sorted),
		Min:   sorted[0],
		Max:   sorted[len(sorted)-1],
		Mean:  sum / float64(len(sorted)),
		P50:   percentile(sorted, 50),
		P99:   percentile(sorted, 99),
	}
}

// percentile interpolates linearly between the closest ranks
func percentile(sorted []float64, p float64) float64 {
	rank := (p / 100.0) * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower]
	}
	weight := rank - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}
