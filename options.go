package bitvec

type options struct {
	logger  *Logger
	metrics MetricsCollector
}

func defaultOptions() options {
	return options{
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
	}
}

// Option configures New and NewSync.
type Option func(*options)

// WithLogger configures structured logging of rank table rebuilds (Debug)
// and rejected indices (Warn).
//
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// cache behaviour. Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &bitvec.BasicMetricsCollector{}
//	bv, _ := bitvec.New(1<<20, bitvec.WithMetricsCollector(metrics))
//	// ... use bv ...
//	fmt.Println(metrics.RebuildCount.Load())
func WithMetricsCollector(c MetricsCollector) Option {
	return func(o *options) {
		if c == nil {
			c = NoopMetricsCollector{}
		}
		o.metrics = c
	}
}
