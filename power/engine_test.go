package power

import (
	"context"
	"testing"

	"github.com/hupe1980/pagerank/graph"
	"github.com/hupe1980/pagerank/rank"
	"github.com/hupe1980/pagerank/resource"
	"github.com/hupe1980/pagerank/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newState(t testing.TB, g *graph.Graph) *rank.State {
	t.Helper()
	s, err := rank.New(g)
	require.NoError(t, err)
	return s
}

func newEngine(t testing.TB, opts ...Option) *Engine {
	t.Helper()
	e, err := New(opts...)
	require.NoError(t, err)
	return e
}

func TestNew_Defaults(t *testing.T) {
	e := newEngine(t)
	assert.Equal(t, DefaultTaxRate, e.Options().TaxRate)
	assert.Equal(t, DanglingDrop, e.Options().Dangling)
	assert.Equal(t, 1, e.Options().Workers)
}

func TestNew_InvalidTaxRate(t *testing.T) {
	for _, rate := range []float64{-0.1, 1.5} {
		_, err := New(WithTaxRate(rate))
		assert.ErrorIs(t, err, ErrInvalidTaxRate)
	}
}

func TestNew_WorkersCappedByController(t *testing.T) {
	rc := resource.NewController(resource.Config{MaxWorkers: 2})
	e := newEngine(t, WithWorkers(8), WithResources(rc))
	assert.Equal(t, 2, e.Options().Workers)
}

func TestStep_CycleIsFixedPoint(t *testing.T) {
	g := testutil.EdgeList{{0, 1}, {1, 2}, {2, 0}}.Build()
	s := newState(t, g)
	e := newEngine(t)

	for range 20 {
		stats, err := e.Step(context.Background(), g, s)
		require.NoError(t, err)
		assert.InDelta(t, 0, stats.Delta, 1e-15)
	}
	for n := uint32(0); n < 3; n++ {
		assert.InDelta(t, 1.0/3.0, s.Rank(n), 1e-12)
	}
}

func TestStep_TwoNodeCycle(t *testing.T) {
	g := testutil.EdgeList{{0, 1}, {1, 0}}.Build()
	s := newState(t, g)
	e := newEngine(t, WithTaxRate(0.15))

	_, err := e.Step(context.Background(), g, s)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, s.Rank(0), 1e-15)
	assert.InDelta(t, 0.5, s.Rank(1), 1e-15)
}

func TestStep_SinkExcluded(t *testing.T) {
	// 1 is never a source: it is invalid but still receives mass.
	g := testutil.EdgeList{{0, 1}}.Build()
	s := newState(t, g)
	e := newEngine(t)

	stats, err := e.Step(context.Background(), g, s)
	require.NoError(t, err)

	assert.InDelta(t, 0.2, s.Rank(0), 1e-12)
	assert.InDelta(t, 1.0, s.Rank(1), 1e-12)
	assert.InDelta(t, 0.2, stats.ValidMass, 1e-12)
	assert.InDelta(t, 1.0, stats.LeakedMass, 1e-12)
	assert.InDelta(t, 0.8, stats.Delta, 1e-12)
}

func TestStep_DanglingDrop(t *testing.T) {
	g := testutil.EdgeList{{0, 1}}.Build(graph.WithSinkPolicy(graph.SinksIncluded))
	s := newState(t, g)
	e := newEngine(t)

	stats, err := e.Step(context.Background(), g, s)
	require.NoError(t, err)

	assert.InDelta(t, 0.1, s.Rank(0), 1e-12)
	assert.InDelta(t, 0.5, s.Rank(1), 1e-12)
	assert.InDelta(t, 0.5, stats.DanglingMass, 1e-12)
	assert.InDelta(t, 0.6, stats.ValidMass, 1e-12)
	assert.InDelta(t, 0, stats.LeakedMass, 1e-12)
}

func TestStep_DanglingRedistribute(t *testing.T) {
	g := testutil.EdgeList{{0, 1}}.Build(graph.WithSinkPolicy(graph.SinksIncluded))
	s := newState(t, g)
	e := newEngine(t, WithDanglingPolicy(DanglingRedistribute))

	for range 50 {
		stats, err := e.Step(context.Background(), g, s)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, stats.ValidMass, 1e-12)
	}

	// Stationary: r0 = 0.1 + 0.4*r1, r1 = 0.8*r0 + 0.1 + 0.4*r1.
	assert.InDelta(t, 5.0/14.0, s.Rank(0), 1e-9)
	assert.InDelta(t, 9.0/14.0, s.Rank(1), 1e-9)
}

func TestStep_TaxationOnGaps(t *testing.T) {
	// ids 1 and 2 are unused; taxation still reaches them.
	g := testutil.EdgeList{{0, 3}, {3, 0}}.Build()
	s := newState(t, g)
	e := newEngine(t)

	stats, err := e.Step(context.Background(), g, s)
	require.NoError(t, err)

	assert.InDelta(t, 0.1, s.Rank(1), 1e-12)
	assert.InDelta(t, 0.1, s.Rank(2), 1e-12)
	assert.InDelta(t, 0.2, stats.LeakedMass, 1e-12)

	s.ZeroInvalid()
	assert.InDelta(t, 1.0, s.TotalMass(), 1e-12)
}

func TestStep_MatchesDenseReference(t *testing.T) {
	rng := testutil.NewRNG(4711)
	edges := rng.ZipfGraph(2000, 6, 1.2)

	for _, sinks := range []graph.SinkPolicy{graph.SinksExcluded, graph.SinksIncluded} {
		t.Run(sinks.String(), func(t *testing.T) {
			g := edges.Build(graph.WithSinkPolicy(sinks))
			s := newState(t, g)
			e := newEngine(t)

			for range 30 {
				_, err := e.Step(context.Background(), g, s)
				require.NoError(t, err)
			}

			want := testutil.DenseRank(edges, DefaultTaxRate, 30, sinks)
			assert.Less(t, testutil.MaxAbsDiff(want, s.Vector()), 1e-12)
		})
	}
}

func TestStep_ParallelMatchesSequential(t *testing.T) {
	defer func(v int) { minShardEdges = v }(minShardEdges)
	minShardEdges = 256

	rng := testutil.NewRNG(99)
	edges := rng.ZipfGraph(5000, 8, 1.1)
	g := edges.Build(graph.WithSinkPolicy(graph.SinksIncluded))

	seq := newState(t, g)
	par := newState(t, g)

	rc := resource.NewController(resource.Config{MaxWorkers: 4})
	es := newEngine(t, WithDanglingPolicy(DanglingRedistribute))
	ep := newEngine(t, WithDanglingPolicy(DanglingRedistribute), WithWorkers(4), WithResources(rc))

	for range 10 {
		a, err := es.Step(context.Background(), g, seq)
		require.NoError(t, err)
		b, err := ep.Step(context.Background(), g, par)
		require.NoError(t, err)

		assert.Equal(t, 1, a.Shards)
		assert.Equal(t, 4, b.Shards)
		assert.InDelta(t, a.DanglingMass, b.DanglingMass, 1e-12)
	}

	assert.Less(t, testutil.MaxAbsDiff(seq.Vector(), par.Vector()), 1e-12)
	assert.Zero(t, rc.MemoryUsage(), "shard memory must be released")
}

func TestStep_ParallelFallsBackWithoutMemory(t *testing.T) {
	defer func(v int) { minShardEdges = v }(minShardEdges)
	minShardEdges = 16

	edges := testutil.NewRNG(1).UniformGraph(1000, 4)
	g := edges.Build()
	s := newState(t, g)

	rc := resource.NewController(resource.Config{MemoryLimitBytes: 1024, MaxWorkers: 4})
	e := newEngine(t, WithWorkers(4), WithResources(rc))

	stats, err := e.Step(context.Background(), g, s)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Shards)
	assert.Zero(t, rc.MemoryUsage())

	want := testutil.DenseRank(edges, DefaultTaxRate, 1, graph.SinksExcluded)
	assert.Less(t, testutil.MaxAbsDiff(want, s.Vector()), 1e-12)
}

func TestStep_CanceledLeavesStateUntouched(t *testing.T) {
	defer func(v int) { minShardEdges = v }(minShardEdges)
	minShardEdges = 16

	g := testutil.NewRNG(1).UniformGraph(1000, 4).Build()
	s := newState(t, g)
	before := append([]float64(nil), s.Vector()...)

	rc := resource.NewController(resource.Config{MaxWorkers: 4})
	e := newEngine(t, WithWorkers(4), WithResources(rc))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Step(ctx, g, s)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, before, s.Vector())
}

func TestStep_Canceled(t *testing.T) {
	g := testutil.NewRNG(1).UniformGraph(10_000, 2).Build()
	s := newState(t, g)
	e := newEngine(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Step(ctx, g, s)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStep_StateMismatch(t *testing.T) {
	g1 := testutil.EdgeList{{0, 1}, {1, 0}}.Build()
	g2 := testutil.EdgeList{{0, 1}, {1, 0}}.Build()

	_, err := newEngine(t).Step(context.Background(), g2, newState(t, g1))
	assert.ErrorIs(t, err, ErrStateMismatch)
}

func TestPlan_BalancesEdges(t *testing.T) {
	defer func(v int) { minShardEdges = v }(minShardEdges)
	minShardEdges = 10

	g := testutil.NewRNG(7).UniformGraph(500, 4).Build()
	e := newEngine(t, WithWorkers(3))

	shards := e.plan(g)
	require.Len(t, shards, 3)

	total := 0
	for _, ids := range shards {
		total += len(ids)
		load := 0
		for _, n := range ids {
			load += g.OutDegree(n)
		}
		assert.InDelta(t, g.Edges()/3, load, float64(g.Edges())/10)
	}
	assert.Equal(t, g.UsedNodes(), total)
}

func BenchmarkStep(b *testing.B) {
	edges := testutil.NewRNG(42).UniformGraph(100_000, 8)
	g := edges.Build()

	for _, workers := range []int{1, 4} {
		b.Run(map[int]string{1: "sequential", 4: "sharded"}[workers], func(b *testing.B) {
			s := newState(b, g)
			e := newEngine(b, WithWorkers(workers))
			b.ReportAllocs()
			b.ResetTimer()
			for b.Loop() {
				if _, err := e.Step(context.Background(), g, s); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
