// Package prom exports grid store and convolution metrics to Prometheus.
package prom

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/sparsegrid"
)

var _ sparsegrid.MetricsCollector = (*Collector)(nil)

// Collector implements sparsegrid.MetricsCollector with Prometheus
// instruments.
type Collector struct {
	opLatency   *prometheus.HistogramVec
	ops         *prometheus.CounterVec
	bytes       *prometheus.CounterVec
	xfxCalls    prometheus.Counter
	cacheHits   prometheus.Counter
	ensembleLen prometheus.Histogram
}

// New creates a Collector and registers its instruments with reg. A nil reg
// registers with prometheus.DefaultRegisterer.
func New(namespace string, reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_latency_seconds",
			Help:      "Latency of grid operations",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op", "status"}),
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Grid operations by type and status",
		}, []string{"op", "status"}),
		bytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_bytes_total",
			Help:      "Encoded grid bytes written and read",
		}, []string{"op"}),
		xfxCalls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "distribution_calls_total",
			Help:      "Distribution callback invocations",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "distribution_cache_hits_total",
			Help:      "Distribution evaluations served from the cache",
		}),
		ensembleLen: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ensemble_members",
			Help:      "Members per ensemble convolution",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}

	for _, col := range []prometheus.Collector{c.opLatency, c.ops, c.bytes, c.xfxCalls, c.cacheHits, c.ensembleLen} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func (c *Collector) observe(op string, d time.Duration, err error) {
	s := status(err)
	c.opLatency.WithLabelValues(op, s).Observe(d.Seconds())
	c.ops.WithLabelValues(op, s).Inc()
}

// RecordSave implements sparsegrid.MetricsCollector.
func (c *Collector) RecordSave(bytes int, d time.Duration, err error) {
	c.observe("save", d, err)
	if err == nil {
		c.bytes.WithLabelValues("save").Add(float64(bytes))
	}
}

// RecordLoad implements sparsegrid.MetricsCollector.
func (c *Collector) RecordLoad(bytes int, d time.Duration, err error) {
	c.observe("load", d, err)
	if err == nil {
		c.bytes.WithLabelValues("load").Add(float64(bytes))
	}
}

// RecordConvolution implements sparsegrid.MetricsCollector.
func (c *Collector) RecordConvolution(xfxCalls, cacheHits int, d time.Duration, err error) {
	c.observe("convolve", d, err)
	c.xfxCalls.Add(float64(xfxCalls))
	c.cacheHits.Add(float64(cacheHits))
}

// RecordEnsemble implements sparsegrid.MetricsCollector.
func (c *Collector) RecordEnsemble(members int, d time.Duration, err error) {
	c.observe("ensemble", d, err)
	c.ensembleLen.Observe(float64(members))
}
