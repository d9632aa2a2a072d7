package sparsegrid

import (
	"log/slog"

	"github.com/hupe1980/sparsegrid/codec"
	"github.com/hupe1980/sparsegrid/internal/resource"
	"github.com/hupe1980/sparsegrid/persistence"
)

type options struct {
	codec            codec.Codec
	compression      persistence.Compression
	logger           *Logger
	metricsCollector MetricsCollector
	resources        resource.Config
	controller       *resource.Controller
}

func defaultOptions() options {
	return options{
		codec:            codec.Default,
		compression:      persistence.CompressionLZ4,
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		resources:        resource.Config{MaxWorkers: 1},
	}
}

func applyOptions(optFns []Option) options {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}
	if o.controller == nil {
		o.controller = resource.NewController(o.resources)
	}
	return o
}

// Option configures a Store or an ensemble convolution.
type Option func(*options)

// WithCodec sets the codec of the grid description written by Save. If nil
// is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression sets the body compression written by Save.
func WithCompression(c persistence.Compression) Option {
	return func(o *options) { o.compression = c }
}

// WithLogger sets the logger. Pass nil to disable logging.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithLogLevel replaces the logger with a text logger at level.
func WithLogLevel(level slog.Level) Option {
	return func(o *options) { o.logger = NewTextLogger(level) }
}

// WithMetricsCollector sets the metrics collector. Pass nil to disable
// metrics.
//
// Example:
//
//	metrics := &sparsegrid.BasicMetricsCollector{}
//	store := sparsegrid.NewStore(bs, sparsegrid.WithMetricsCollector(metrics))
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithResourceConfig bounds workers, memory held by loads and store IO.
func WithResourceConfig(cfg resource.Config) Option {
	return func(o *options) {
		o.resources = cfg
		o.controller = nil
	}
}

// WithMaxWorkers sets the number of ensemble members convolved at once.
func WithMaxWorkers(n int) Option {
	return func(o *options) {
		o.resources.MaxWorkers = int64(n)
		o.controller = nil
	}
}
