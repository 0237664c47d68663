package pagerank

import (
	"log/slog"
	"math"

	"github.com/hupe1980/pagerank/graph"
	"github.com/hupe1980/pagerank/power"
	"github.com/hupe1980/pagerank/resource"
)

const (
	// DefaultBeta is the default damping factor; the tax rate is 1 - beta.
	DefaultBeta = 0.8
	// DefaultIterations is the default iteration budget.
	DefaultIterations = 100
	// DefaultTopK is the default size of the top-K report.
	DefaultTopK = 10
)

type options struct {
	beta             float64
	iterations       int
	topK             int
	workers          int
	tolerance        float64
	strictMass       bool
	dangling         power.DanglingPolicy
	sinks            graph.SinkPolicy
	sinksSet         bool
	commentPrefix    string
	resources        *resource.Controller
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures Load and New.
type Option func(*options)

// WithBeta sets the damping factor. The fraction 1 - beta of all mass is
// spread uniformly every step. Must be in [0, 1].
func WithBeta(beta float64) Option {
	return func(o *options) {
		o.beta = beta
	}
}

// WithIterations sets the number of steps Run performs. With WithConvergence
// it is an upper bound.
func WithIterations(n int) Option {
	return func(o *options) {
		o.iterations = n
	}
}

// WithTopK sets the default k used by the CLI and by TopK(0).
func WithTopK(k int) Option {
	return func(o *options) {
		o.topK = k
	}
}

// WithWorkers configures the number of shards the multiply is split into.
//
// Each shard beyond the first allocates its own accumulator of MaxNode+1
// float64s, so memory grows linearly with workers. Small graphs are never
// sharded. Results differ from the sequential path only by floating-point
// summation order.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithConvergence makes Run stop early once the largest absolute rank
// change over valid nodes drops below tol. Zero disables the check.
func WithConvergence(tol float64) Option {
	return func(o *options) {
		o.tolerance = tol
	}
}

// WithStrictMass re-zeroes invalid indices after every step so that only
// valid nodes hold rank.
func WithStrictMass() Option {
	return func(o *options) {
		o.strictMass = true
	}
}

// WithDanglingPolicy selects how the rank of valid nodes without outgoing
// edges is treated. The default drops it.
func WithDanglingPolicy(p power.DanglingPolicy) Option {
	return func(o *options) {
		o.dangling = p
	}
}

// WithSinkPolicy selects whether destination-only nodes are valid.
// The default excludes them. Load builds the graph with p; New rejects a
// graph built with a different policy.
func WithSinkPolicy(p graph.SinkPolicy) Option {
	return func(o *options) {
		o.sinks = p
		o.sinksSet = true
	}
}

// WithConservingMass configures textbook PageRank: sink-only nodes are
// valid, dangling mass is redistributed and invalid indices are re-zeroed.
// Valid mass then stays at 1 after every step.
func WithConservingMass() Option {
	return func(o *options) {
		o.sinks = graph.SinksIncluded
		o.sinksSet = true
		o.dangling = power.DanglingRedistribute
		o.strictMass = true
	}
}

// WithCommentPrefix sets the prefix marking comment lines in edge lists.
// It only affects Load; New takes a graph that is already parsed.
func WithCommentPrefix(prefix string) Option {
	return func(o *options) {
		o.commentPrefix = prefix
	}
}

// WithResourceController bounds workers, shard memory and IO throughput.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.resources = rc
	}
}

// WithMetricsCollector configures a metrics collector.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &pagerank.BasicMetricsCollector{}
//	sess, _ := pagerank.New(g, pagerank.WithMetricsCollector(metrics))
//	_, _ = sess.Run(ctx)
//	fmt.Println(metrics.GetStats().IterationCount)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := pagerank.NewJSONLogger(slog.LevelInfo)
//	sess, _ := pagerank.New(g, pagerank.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
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

func applyOptions(optFns []Option) (options, error) {
	o := options{
		beta:             DefaultBeta,
		iterations:       DefaultIterations,
		topK:             DefaultTopK,
		workers:          1,
		commentPrefix:    "#",
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}

	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}

	switch {
	case math.IsNaN(o.beta) || o.beta < 0 || o.beta > 1:
		return o, &ErrInvalidOption{Name: "beta", Value: o.beta}
	case o.iterations < 0:
		return o, &ErrInvalidOption{Name: "iterations", Value: o.iterations}
	case o.tolerance < 0:
		return o, &ErrInvalidOption{Name: "tolerance", Value: o.tolerance}
	}

	return o, nil
}

func (o options) graphOptions() []graph.Option {
	return []graph.Option{
		graph.WithCommentPrefix(o.commentPrefix),
		graph.WithSinkPolicy(o.sinks),
		graph.WithResources(o.resources),
	}
}

func (o options) engineOptions() []power.Option {
	return []power.Option{
		power.WithTaxRate(1 - o.beta),
		power.WithDanglingPolicy(o.dangling),
		power.WithWorkers(o.workers),
		power.WithResources(o.resources),
	}
}
