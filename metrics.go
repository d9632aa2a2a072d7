package sparsegrid

import (
	"sync/atomic"
	"time"
)

// MetricsCollector receives operational metrics. See metrics/prom for a
// Prometheus implementation.
type MetricsCollector interface {
	// RecordSave is called after each Store.Save with the encoded size.
	RecordSave(bytes int, duration time.Duration, err error)
	// RecordLoad is called after each Store.Load with the encoded size.
	RecordLoad(bytes int, duration time.Duration, err error)
	// RecordConvolution is called after each convolution of one
	// distribution set, with the callback counts of its cache.
	RecordConvolution(xfxCalls, cacheHits int, duration time.Duration, err error)
	// RecordEnsemble is called after each ensemble convolution.
	RecordEnsemble(members int, duration time.Duration, err error)
}

// NoopMetricsCollector discards all metrics.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSave(int, time.Duration, error)             {}
func (NoopMetricsCollector) RecordLoad(int, time.Duration, error)             {}
func (NoopMetricsCollector) RecordConvolution(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordEnsemble(int, time.Duration, error)         {}

// BasicMetricsCollector counts operations in memory.
type BasicMetricsCollector struct {
	SaveCount       atomic.Int64
	SaveErrors      atomic.Int64
	SaveBytes       atomic.Int64
	LoadCount       atomic.Int64
	LoadErrors      atomic.Int64
	LoadBytes       atomic.Int64
	ConvolveCount   atomic.Int64
	ConvolveErrors  atomic.Int64
	ConvolveNanos   atomic.Int64
	XFXCalls        atomic.Int64
	CacheHits       atomic.Int64
	EnsembleCount   atomic.Int64
	EnsembleErrors  atomic.Int64
	EnsembleMembers atomic.Int64
}

// RecordSave implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSave(bytes int, _ time.Duration, err error) {
	b.SaveCount.Add(1)
	if err != nil {
		b.SaveErrors.Add(1)
		return
	}
	b.SaveBytes.Add(int64(bytes))
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(bytes int, _ time.Duration, err error) {
	b.LoadCount.Add(1)
	if err != nil {
		b.LoadErrors.Add(1)
		return
	}
	b.LoadBytes.Add(int64(bytes))
}

// RecordConvolution implements MetricsCollector.
func (b *BasicMetricsCollector) RecordConvolution(xfxCalls, cacheHits int, d time.Duration, err error) {
	b.ConvolveCount.Add(1)
	b.ConvolveNanos.Add(d.Nanoseconds())
	b.XFXCalls.Add(int64(xfxCalls))
	b.CacheHits.Add(int64(cacheHits))
	if err != nil {
		b.ConvolveErrors.Add(1)
	}
}

// RecordEnsemble implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEnsemble(members int, _ time.Duration, err error) {
	b.EnsembleCount.Add(1)
	b.EnsembleMembers.Add(int64(members))
	if err != nil {
		b.EnsembleErrors.Add(1)
	}
}

// BasicMetricsStats is a snapshot of a BasicMetricsCollector.
type BasicMetricsStats struct {
	SaveCount, SaveErrors, SaveBytes                int64
	LoadCount, LoadErrors, LoadBytes                int64
	ConvolveCount, ConvolveErrors, ConvolveAvgNanos int64
	XFXCalls, CacheHits                             int64
	EnsembleCount, EnsembleErrors, EnsembleMembers  int64
}

// GetStats returns a snapshot of the counters.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	s := BasicMetricsStats{
		SaveCount:       b.SaveCount.Load(),
		SaveErrors:      b.SaveErrors.Load(),
		SaveBytes:       b.SaveBytes.Load(),
		LoadCount:       b.LoadCount.Load(),
		LoadErrors:      b.LoadErrors.Load(),
		LoadBytes:       b.LoadBytes.Load(),
		ConvolveCount:   b.ConvolveCount.Load(),
		ConvolveErrors:  b.ConvolveErrors.Load(),
		XFXCalls:        b.XFXCalls.Load(),
		CacheHits:       b.CacheHits.Load(),
		EnsembleCount:   b.EnsembleCount.Load(),
		EnsembleErrors:  b.EnsembleErrors.Load(),
		EnsembleMembers: b.EnsembleMembers.Load(),
	}
	if s.ConvolveCount > 0 {
		s.ConvolveAvgNanos = b.ConvolveNanos.Load() / s.ConvolveCount
	}
	return s
}
