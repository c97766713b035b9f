package notesync

import (
	"log/slog"
	"time"

	"github.com/hupe1980/notesync/codec"
	"github.com/hupe1980/notesync/notify"
)

const (
	// DefaultLoadTimeout bounds the initial GET.
	DefaultLoadTimeout = 30 * time.Second
	// DefaultSaveTimeout bounds each PUT.
	DefaultSaveTimeout = 30 * time.Second
)

type options struct {
	codec            codec.Codec
	metricsCollector MetricsCollector
	logger           *Logger
	hub              *notify.Hub
	loadTimeout      time.Duration
	saveTimeout      time.Duration
	createIfMissing  bool
}

// Option configures a Store.
type Option func(*options)

// WithCodec configures the JSON implementation used on the wire.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection (default).
//
// Example:
//
//	metrics := &notesync.BasicMetricsCollector{}
//	store := notesync.New(t, url, notesync.WithMetricsCollector(metrics))
//	// ... use store ...
//	stats := metrics.GetStats()
//	fmt.Printf("Saves: %d, coalesced: %d\n", stats.SaveCount, stats.CoalescedCount)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := notesync.NewJSONLogger(slog.LevelInfo)
//	store := notesync.New(t, url, notesync.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithHub publishes store events on a shared hub instead of a private one.
func WithHub(hub *notify.Hub) Option {
	return func(o *options) {
		o.hub = hub
	}
}

// WithLoadTimeout bounds the initial GET. Non-positive values keep the default.
func WithLoadTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.loadTimeout = d
		}
	}
}

// WithSaveTimeout bounds each PUT. Non-positive values keep the default.
func WithSaveTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.saveTimeout = d
		}
	}
}

// WithCreateIfMissing treats a 404 on load as an empty document.
func WithCreateIfMissing() Option {
	return func(o *options) {
		o.createIfMissing = true
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		codec:            codec.Default,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		loadTimeout:      DefaultLoadTimeout,
		saveTimeout:      DefaultSaveTimeout,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.hub == nil {
		o.hub = notify.NewHub()
	}
	return o
}
