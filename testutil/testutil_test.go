package testutil

import (
	"strings"
	"testing"

	"github.com/hupe1980/pagerank/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniformGraph(t *testing.T) {
	rng := NewRNG(4711)

	edges := rng.UniformGraph(100, 5)
	assert.Len(t, edges, 500)

	g := edges.Build()
	assert.Equal(t, 100, g.UsedNodes(), "every node must be a source")
	assert.Equal(t, 500, g.Edges())
}

func TestZipfGraph(t *testing.T) {
	rng := NewRNG(4711)

	edges := rng.ZipfGraph(1000, 4, 1.3)
	for _, e := range edges {
		assert.Zero(t, e.Src%2)
		assert.Less(t, e.Dst, uint32(1000))
	}

	assert.Equal(t, 500, edges.Build().UsedNodes())
}

func TestReset(t *testing.T) {
	rng := NewRNG(4711)
	a := rng.UniformGraph(10, 2)
	rng.Reset()
	b := rng.UniformGraph(10, 2)

	assert.Equal(t, a, b)
}

func TestEdgeList_Text(t *testing.T) {
	edges := EdgeList{{0, 1}, {1, 0}}

	g, err := graph.Parse(strings.NewReader(edges.Text()), "gen")
	require.NoError(t, err)
	assert.Equal(t, 2, g.Edges())
	assert.Contains(t, edges.Text(), "0\t1\n")
}

func TestDenseRank_Cycle(t *testing.T) {
	edges := EdgeList{{0, 1}, {1, 2}, {2, 0}}

	r := DenseRank(edges, 0.2, 50, graph.SinksExcluded)
	for _, v := range r {
		assert.InDelta(t, 1.0/3.0, v, 1e-12)
	}
}

func TestMaxAbsDiff(t *testing.T) {
	assert.Equal(t, 0.5, MaxAbsDiff([]float64{1, 2}, []float64{1, 2.5}))
	assert.True(t, MaxAbsDiff([]float64{1}, nil) > 1e300)
}
