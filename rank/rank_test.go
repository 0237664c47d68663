package rank

import (
	"testing"

	"github.com/hupe1980/pagerank/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cycle() *graph.Graph {
	b := graph.NewBuilder()
	b.AddEdge(0, 1)
	b.AddEdge(1, 2)
	b.AddEdge(2, 0)
	return b.Build()
}

func TestNew_Uniform(t *testing.T) {
	s, err := New(cycle())
	require.NoError(t, err)

	assert.Equal(t, 3, s.UsedNodes())
	assert.Equal(t, 3, s.Len())
	for n := uint32(0); n < 3; n++ {
		assert.InDelta(t, 1.0/3.0, s.Rank(n), 1e-15)
		assert.Equal(t, uint32(1), s.OutDegree(n))
	}
	assert.InDelta(t, 1.0, s.ValidMass(), 1e-12)
}

func TestNew_SparseRange(t *testing.T) {
	b := graph.NewBuilder()
	b.AddEdge(1, 9) // 9 is a sink, 0 and 2..8 unused
	b.AddEdge(5, 1)
	b.AddEdge(5, 5)
	s, err := New(b.Build())
	require.NoError(t, err)

	assert.Equal(t, 10, s.Len())
	assert.Equal(t, 2, s.UsedNodes())
	assert.Equal(t, 0.5, s.Rank(1))
	assert.Equal(t, 0.5, s.Rank(5))
	assert.Equal(t, uint32(2), s.OutDegree(5))

	for _, n := range []uint32{0, 2, 3, 4, 6, 7, 8, 9} {
		assert.Zero(t, s.Rank(n), "invalid index %d", n)
	}
	assert.Zero(t, s.Rank(1000))
}

func TestNew_Degenerate(t *testing.T) {
	_, err := New(graph.NewBuilder().Build())
	assert.ErrorIs(t, err, ErrDegenerate)
}

func TestSwap(t *testing.T) {
	s, err := New(cycle())
	require.NoError(t, err)

	_, err = s.Swap(make([]float64, 2))
	assert.ErrorIs(t, err, ErrLengthMismatch)

	prev, err := s.Swap([]float64{0.5, 0.25, 0.25})
	require.NoError(t, err)
	assert.Len(t, prev, 3)
	assert.Equal(t, 0.5, s.Rank(0))
	assert.Equal(t, []float64{0.5, 0.25, 0.25}, s.Vector())
}

func TestZeroInvalid(t *testing.T) {
	b := graph.NewBuilder()
	b.AddEdge(1, 4)
	b.AddEdge(3, 1)
	s, err := New(b.Build())
	require.NoError(t, err)

	_, err = s.Swap([]float64{0.1, 0.3, 0.1, 0.3, 0.2})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, s.TotalMass(), 1e-12)
	assert.InDelta(t, 0.6, s.ValidMass(), 1e-12)

	s.ZeroInvalid()
	assert.Equal(t, []float64{0, 0.3, 0, 0.3, 0}, s.Vector())
	assert.InDelta(t, s.ValidMass(), s.TotalMass(), 1e-15)
}
