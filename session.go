package pagerank

import (
	"context"
	"fmt"
	"io"
	"iter"
	"sync"
	"time"

	"github.com/hupe1980/pagerank/blobstore"
	"github.com/hupe1980/pagerank/graph"
	"github.com/hupe1980/pagerank/power"
	"github.com/hupe1980/pagerank/rank"
	"github.com/hupe1980/pagerank/report"
	"github.com/hupe1980/pagerank/resource"
)

// RunStats summarizes a Run.
type RunStats struct {
	// Iterations is the number of steps Run performed.
	Iterations int
	// Converged reports whether Run stopped on the convergence tolerance.
	Converged  bool
	Delta      float64
	ValidMass  float64
	LeakedMass float64
	Duration   time.Duration
}

// Session owns one graph, its rank vector and the engine advancing it.
// Independent sessions share nothing.
//
// Step and Run are serialized against reporting. Ranging over Full holds a
// read lock for the duration of the loop, so Step must not be called from
// inside such a loop.
type Session struct {
	mu        sync.RWMutex
	g         *graph.Graph
	state     *rank.State
	engine    *power.Engine
	opts      options
	iteration int
}

// Load reads an edge list from store and starts a session over it.
// Nothing is written to store.
func Load(ctx context.Context, store blobstore.BlobStore, name string, optFns ...Option) (*Session, error) {
	opts, err := applyOptions(optFns)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	g, err := graph.Load(ctx, store, name, opts.graphOptions()...)
	took := time.Since(start)

	if err != nil {
		opts.metricsCollector.RecordIngest(0, 0, took, err)
		opts.logger.WithPath(name).LogIngest(ctx, 0, 0, 0, took, err)
		return nil, translateError(err)
	}

	opts.metricsCollector.RecordIngest(g.Edges(), g.UsedNodes(), took, nil)
	opts.logger.WithPath(name).LogIngest(ctx, g.Edges(), g.MaxNode(), g.UsedNodes(), took, nil)

	return newSession(g, opts)
}

// New starts a session over an already built graph.
// A sink policy set through the options must match the one g was built with.
func New(g *graph.Graph, optFns ...Option) (*Session, error) {
	opts, err := applyOptions(optFns)
	if err != nil {
		return nil, err
	}
	if opts.sinksSet && g.SinkPolicy() != opts.sinks {
		return nil, &ErrInvalidOption{Name: "sink policy", Value: fmt.Sprintf("%s (graph built with %s)", opts.sinks, g.SinkPolicy())}
	}
	return newSession(g, opts)
}

func newSession(g *graph.Graph, opts options) (*Session, error) {
	state, err := rank.New(g)
	if err != nil {
		return nil, translateError(err)
	}

	engine, err := power.New(opts.engineOptions()...)
	if err != nil {
		return nil, translateError(err)
	}

	return &Session{
		g:      g,
		state:  state,
		engine: engine,
		opts:   opts,
	}, nil
}

// Graph returns the session's graph.
func (s *Session) Graph() *graph.Graph {
	return s.g
}

// Iteration returns the number of steps performed so far.
func (s *Session) Iteration() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.iteration
}

// Rank returns the current rank of node n.
func (s *Session) Rank(n uint32) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Rank(n)
}

// ValidMass returns the rank sum over valid nodes.
func (s *Session) ValidMass() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.ValidMass()
}

// Resources returns the configured resource controller, possibly nil.
func (s *Session) Resources() *resource.Controller {
	return s.opts.resources
}

// Step performs exactly one damped multiply.
func (s *Session) Step(ctx context.Context) (power.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step(ctx)
}

func (s *Session) step(ctx context.Context) (power.Stats, error) {
	st, err := s.engine.Step(ctx, s.g, s.state)
	if err != nil {
		return st, translateError(err)
	}

	if s.opts.strictMass {
		s.state.ZeroInvalid()
		st.LeakedMass = 0
	}

	s.iteration++
	s.opts.metricsCollector.RecordIteration(st.Delta, st.ValidMass, st.Duration)
	s.opts.logger.WithIteration(s.iteration).LogIteration(ctx, st)

	return st, nil
}

// Run performs the configured number of steps, stopping early when a
// convergence tolerance is set and reached.
func (s *Session) Run(ctx context.Context) (RunStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	var rs RunStats

	for range s.opts.iterations {
		st, err := s.step(ctx)
		if err != nil {
			rs.Duration = time.Since(start)
			s.opts.logger.LogRun(ctx, rs, err)
			return rs, err
		}

		rs.Iterations++
		rs.Delta = st.Delta
		rs.ValidMass = st.ValidMass
		rs.LeakedMass = st.LeakedMass

		if s.opts.tolerance > 0 && st.Delta < s.opts.tolerance {
			rs.Converged = true
			break
		}
	}

	if rs.Iterations == 0 {
		rs.ValidMass = s.state.ValidMass()
	}

	rs.Duration = time.Since(start)
	s.opts.logger.LogRun(ctx, rs, nil)

	return rs, nil
}

// Full yields (node, rank) for every valid node in ascending id order.
func (s *Session) Full() iter.Seq2[uint32, float64] {
	return func(yield func(uint32, float64) bool) {
		s.mu.RLock()
		defer s.mu.RUnlock()
		for id, r := range report.Full(s.g, s.state) {
			if !yield(id, r) {
				return
			}
		}
	}
}

// TopK returns the k highest ranked valid nodes. k == 0 selects the
// configured default.
func (s *Session) TopK(k int) ([]report.Entry, error) {
	if k == 0 {
		k = s.opts.topK
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := report.TopK(s.g, s.state, k)
	return entries, translateError(err)
}

// WriteFull writes the full rank table to name. On failure the partial
// blob is discarded and the error wraps ErrOutputIO.
func (s *Session) WriteFull(ctx context.Context, store blobstore.BlobStore, name string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start := time.Now()
	err := s.write(ctx, store, name, func(w io.Writer) error {
		return report.WriteFull(w, report.Full(s.g, s.state))
	})
	took := time.Since(start)

	s.opts.metricsCollector.RecordReport(ReportFull, s.g.UsedNodes(), took, err)
	s.opts.logger.WithPath(name).LogReport(ctx, ReportFull, s.g.UsedNodes(), took, err)

	return err
}

// WriteTopK writes the top-k table to name and returns its entries.
// k == 0 selects the configured default.
func (s *Session) WriteTopK(ctx context.Context, store blobstore.BlobStore, name string, k int) ([]report.Entry, error) {
	entries, err := s.TopK(k)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	err = s.write(ctx, store, name, func(w io.Writer) error {
		return report.WriteTopK(w, entries)
	})
	took := time.Since(start)

	s.opts.metricsCollector.RecordReport(ReportTopK, len(entries), took, err)
	s.opts.logger.WithPath(name).LogReport(ctx, ReportTopK, len(entries), took, err)

	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Session) write(ctx context.Context, store blobstore.BlobStore, name string, fn func(io.Writer) error) error {
	blob, err := store.Create(ctx, name)
	if err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrOutputIO, name, err)
	}

	if err := fn(resource.NewRateLimitedWriter(ctx, blob, s.opts.resources)); err != nil {
		_ = blob.Abort(ctx)
		return fmt.Errorf("%w: write %s: %w", ErrOutputIO, name, err)
	}

	if err := blob.Close(); err != nil {
		return fmt.Errorf("%w: commit %s: %w", ErrOutputIO, name, err)
	}
	return nil
}
