package engine

import "go.uber.org/zap"

const (
	// DefaultMaxDepth bounds dependency expansion from any selected
	// component.
	DefaultMaxDepth = 10
	// DefaultConcurrency caps concurrent producer invocations per batch.
	DefaultConcurrency = 4
)

// Options configures an Engine. The zero value is completed by defaults()
// so every field is optional.
type Options struct {
	Logger      *zap.Logger
	Strategy    Strategy
	MaxDepth    int
	Concurrency int
	DryRun      bool
	Progress    Progress
}

func (o Options) defaults() Options {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Strategy == "" {
		o.Strategy = StrategyStrict
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.Concurrency <= 0 {
		o.Concurrency = DefaultConcurrency
	}
	return o
}

// Option mutates engine options.
type Option func(*Options)

// WithLogger sets the engine logger. The engine holds no global state and
// logs nothing unless given a logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithStrategy sets the dependency-failure strategy.
func WithStrategy(s Strategy) Option {
	return func(o *Options) { o.Strategy = s }
}

// WithMaxDepth sets the dependency expansion depth limit.
func WithMaxDepth(depth int) Option {
	return func(o *Options) { o.MaxDepth = depth }
}

// WithConcurrency caps concurrent producer invocations within a batch.
func WithConcurrency(n int) Option {
	return func(o *Options) { o.Concurrency = n }
}

// WithDryRun makes execution report steps without invoking producer side
// effects.
func WithDryRun(dryRun bool) Option {
	return func(o *Options) { o.DryRun = dryRun }
}

// WithProgress registers a callback invoked with step status changes. The
// callback must be safe for concurrent use: StepRunning arrives from the
// worker about to invoke the producer, the rest from the orchestrator.
func WithProgress(p Progress) Option {
	return func(o *Options) { o.Progress = p }
}
