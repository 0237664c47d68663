// Package rank owns the PageRank probability vector of a graph.
//
// A State is derived once from a graph.Graph: out-degrees are cached and the
// vector starts as the uniform distribution over valid nodes. The iteration
// engine then replaces the vector wholesale once per step; nothing mutates it
// in place mid-pass.
package rank

import (
	"errors"
	"fmt"

	"github.com/hupe1980/pagerank/graph"
	"github.com/hupe1980/pagerank/internal/conv"
)

// ErrDegenerate is returned when a graph has no valid nodes.
var ErrDegenerate = errors.New("rank: graph has no valid nodes")

// ErrLengthMismatch is returned by Swap when the new vector does not cover
// the graph's index range.
var ErrLengthMismatch = errors.New("rank: vector length mismatch")

// State is the live rank vector of one graph.
type State struct {
	g         *graph.Graph
	rank      []float64
	outDegree []uint32
	usedNodes int
}

// New computes out-degrees and the uniform initial distribution for g.
func New(g *graph.Graph) (*State, error) {
	used := g.UsedNodes()
	if used == 0 {
		return nil, ErrDegenerate
	}

	n := g.Len()
	s := &State{
		g:         g,
		rank:      make([]float64, n),
		outDegree: make([]uint32, n),
		usedNodes: used,
	}

	initial := 1.0 / float64(used)
	for _, id := range g.IDs() {
		deg, err := conv.IntToUint32(g.OutDegree(id))
		if err != nil {
			return nil, fmt.Errorf("rank: out-degree of node %d: %w", id, err)
		}
		s.outDegree[id] = deg
		s.rank[id] = initial
	}

	return s, nil
}

// Graph returns the graph the state was derived from.
func (s *State) Graph() *graph.Graph {
	return s.g
}

// UsedNodes returns the number of valid nodes.
func (s *State) UsedNodes() int {
	return s.usedNodes
}

// Len returns the length of the rank vector, MaxNode()+1.
func (s *State) Len() int {
	return len(s.rank)
}

// Rank returns the current rank of n. Out-of-range ids rank 0.
func (s *State) Rank(n uint32) float64 {
	if int(n) >= len(s.rank) {
		return 0
	}
	return s.rank[n]
}

// OutDegree returns the cached out-degree of n. Only meaningful for valid n.
func (s *State) OutDegree(n uint32) uint32 {
	return s.outDegree[n]
}

// Vector returns the live rank vector. The slice is replaced by the next
// Swap and must be treated as read-only.
func (s *State) Vector() []float64 {
	return s.rank
}

// Swap installs next as the rank vector and returns the previous one so the
// caller can reuse its memory.
func (s *State) Swap(next []float64) ([]float64, error) {
	if len(next) != len(s.rank) {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrLengthMismatch, len(next), len(s.rank))
	}
	prev := s.rank
	s.rank = next
	return prev, nil
}

// ValidMass returns the sum of ranks over valid nodes.
func (s *State) ValidMass() float64 {
	var sum float64
	for _, id := range s.g.IDs() {
		sum += s.rank[id]
	}
	return sum
}

// TotalMass returns the sum over the whole index range, including mass
// the taxation step leaves on invalid indices.
func (s *State) TotalMass() float64 {
	var sum float64
	for _, r := range s.rank {
		sum += r
	}
	return sum
}

// ZeroInvalid clears every invalid index, restoring the invariant that only
// valid nodes hold rank.
func (s *State) ZeroInvalid() {
	next := 0
	for _, id := range s.g.IDs() {
		clear(s.rank[next:id])
		next = int(id) + 1
	}
	clear(s.rank[next:])
}
