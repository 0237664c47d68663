// Package power advances a rank.State by damped sparse power iteration.
//
// One Step computes
//
//	acc[d]   = Σ rank[n] / outDegree[n]   over edges n→d, n valid
//	rank'[i] = (1 - tax) * acc[i] + tax / usedNodes   for every index i
//
// and installs rank' as a new vector. Taxation is applied across the whole
// index range, so invalid indices pick up tax/usedNodes each step; reports
// skip them and callers that need strict conservation call
// rank.State.ZeroInvalid after the step.
//
// With more than one worker the valid nodes are split into contiguous,
// edge-balanced shards. Each shard accumulates into its own vector; shards
// are summed per destination range only after every shard has finished, so
// no partial result ever reaches the rank vector.
package power

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/hupe1980/pagerank/graph"
	"github.com/hupe1980/pagerank/rank"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrInvalidTaxRate is returned by New for a tax rate outside [0, 1].
	ErrInvalidTaxRate = errors.New("power: tax rate must be in [0, 1]")
	// ErrStateMismatch is returned by Step when the state was not derived
	// from the graph passed alongside it.
	ErrStateMismatch = errors.New("power: rank state was not initialized from this graph")
)

// Stats describes one completed step.
type Stats struct {
	// Delta is the largest absolute rank change over valid nodes.
	Delta float64
	// ValidMass is the rank sum over valid nodes after the step.
	ValidMass float64
	// LeakedMass is the rank sum over invalid indices after the step.
	LeakedMass float64
	// DanglingMass is the mass held by dangling nodes before the step.
	DanglingMass float64
	// Shards is the number of accumulation shards used.
	Shards   int
	Duration time.Duration
}

// Engine performs damped sparse multiply steps.
// An Engine holds no per-graph state and may be reused across graphs, but
// concurrent Steps on the same rank.State are not allowed.
type Engine struct {
	opts Options
}

// New creates an Engine.
func New(optFns ...Option) (*Engine, error) {
	opts := Options{
		TaxRate: DefaultTaxRate,
		Workers: 1,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	if math.IsNaN(opts.TaxRate) || opts.TaxRate < 0 || opts.TaxRate > 1 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTaxRate, opts.TaxRate)
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if limit := opts.Resources.MaxWorkers(); limit > 0 && opts.Workers > limit {
		opts.Workers = limit
	}

	return &Engine{opts: opts}, nil
}

// Options returns the effective engine configuration.
func (e *Engine) Options() Options {
	return e.opts
}

// Step advances s by exactly one damped multiply.
func (e *Engine) Step(ctx context.Context, g *graph.Graph, s *rank.State) (Stats, error) {
	if s.Graph() != g || s.Len() != g.Len() {
		return Stats{}, ErrStateMismatch
	}

	start := time.Now()

	shards := e.plan(g)

	var (
		acc      []float64
		dangling float64
		err      error
	)
	// Every shard beyond the first needs a private accumulator. Without
	// the memory for them the step runs unsharded.
	extra := int64(len(shards)-1) * int64(g.Len()) * 8
	if len(shards) > 1 && !e.opts.Resources.TryAcquireMemory(extra) {
		shards = [][]uint32{g.IDs()}
	}

	if len(shards) == 1 {
		acc = make([]float64, g.Len())
		dangling, err = accumulate(ctx, g, s, shards[0], acc)
	} else {
		acc, dangling, err = e.accumulateParallel(ctx, g, s, shards)
		e.opts.Resources.ReleaseMemory(extra)
	}
	if err != nil {
		return Stats{}, err
	}

	stats := e.finish(g, s, acc, dangling)
	stats.Shards = len(shards)

	if _, err := s.Swap(acc); err != nil {
		return Stats{}, err
	}

	stats.Duration = time.Since(start)
	return stats, nil
}

// finish turns the accumulator into the next rank vector in place and
// measures it against the current one.
func (e *Engine) finish(g *graph.Graph, s *rank.State, acc []float64, dangling float64) Stats {
	tax := e.opts.TaxRate
	used := float64(s.UsedNodes())
	keep := 1 - tax
	teleport := tax / used

	var total float64
	for i, a := range acc {
		acc[i] = keep*a + teleport
		total += acc[i]
	}

	share := 0.0
	if e.opts.Dangling == DanglingRedistribute {
		share = keep * dangling / used
	}

	cur := s.Vector()
	stats := Stats{DanglingMass: dangling}
	for _, id := range g.IDs() {
		acc[id] += share
		stats.ValidMass += acc[id]
		if d := math.Abs(acc[id] - cur[id]); d > stats.Delta {
			stats.Delta = d
		}
	}
	stats.LeakedMass = total + share*used - stats.ValidMass

	return stats
}

// accumulate scatters the rank of the valid nodes in ids into acc and
// returns the mass held by dangling nodes among them.
func accumulate(ctx context.Context, g *graph.Graph, s *rank.State, ids []uint32, acc []float64) (float64, error) {
	cur := s.Vector()
	var dangling float64

	for i, n := range ids {
		if i&0xfff == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}

		deg := s.OutDegree(n)
		if deg == 0 {
			dangling += cur[n]
			continue
		}

		w := cur[n] / float64(deg)
		for _, d := range g.Out(n) {
			acc[d] += w
		}
	}

	return dangling, nil
}

// plan splits the valid ids into at most Workers contiguous shards holding
// roughly equal numbers of edges.
func (e *Engine) plan(g *graph.Graph) [][]uint32 {
	ids := g.IDs()

	shards := e.opts.Workers
	if byEdges := g.Edges() / minShardEdges; byEdges < shards {
		shards = byEdges
	}
	if shards <= 1 {
		return [][]uint32{ids}
	}

	target := (g.Edges() + shards - 1) / shards
	out := make([][]uint32, 0, shards)

	begin, load := 0, 0
	for i, n := range ids {
		load += g.OutDegree(n)
		if load >= target && len(out) < shards-1 {
			out = append(out, ids[begin:i+1])
			begin, load = i+1, 0
		}
	}
	if begin < len(ids) {
		out = append(out, ids[begin:])
	}
	return out
}

func (e *Engine) accumulateParallel(ctx context.Context, g *graph.Graph, s *rank.State, shards [][]uint32) ([]float64, float64, error) {
	rc := e.opts.Resources
	n := g.Len()

	accs := make([][]float64, len(shards))
	dangling := make([]float64, len(shards))

	grp, gctx := errgroup.WithContext(ctx)
	for i, ids := range shards {
		grp.Go(func() error {
			if err := rc.AcquireWorker(gctx); err != nil {
				return err
			}
			defer rc.ReleaseWorker()

			acc := make([]float64, n)
			d, err := accumulate(gctx, g, s, ids, acc)
			if err != nil {
				return err
			}
			accs[i], dangling[i] = acc, d
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, 0, err
	}

	// Merge shards into the first accumulator, split by destination range.
	dst := accs[0]
	span := (n + len(shards) - 1) / len(shards)

	grp, gctx = errgroup.WithContext(ctx)
	for lo := 0; lo < n; lo += span {
		hi := min(lo+span, n)
		grp.Go(func() error {
			if err := rc.AcquireWorker(gctx); err != nil {
				return err
			}
			defer rc.ReleaseWorker()

			for _, src := range accs[1:] {
				for i := lo; i < hi; i++ {
					dst[i] += src[i]
				}
			}
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, 0, err
	}

	var total float64
	for _, d := range dangling {
		total += d
	}
	return dst, total, nil
}
