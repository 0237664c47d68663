package graph

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// Graph is an immutable directed graph over a dense identifier range.
type Graph struct {
	valid   *roaring.Bitmap
	ids     []uint32 // valid ids, ascending
	adj     [][]uint32
	maxNode int
	edges   int
	sinks   SinkPolicy
}

// MaxNode returns the largest identifier seen as a source or destination,
// or -1 for an empty graph.
func (g *Graph) MaxNode() int {
	return g.maxNode
}

// Len returns the size of the addressable index range, MaxNode()+1.
func (g *Graph) Len() int {
	return g.maxNode + 1
}

// UsedNodes returns the number of valid nodes.
func (g *Graph) UsedNodes() int {
	return len(g.ids)
}

// Edges returns the number of edges ingested, duplicates included.
func (g *Graph) Edges() int {
	return g.edges
}

// SinkPolicy returns the policy the graph was built with.
func (g *Graph) SinkPolicy() SinkPolicy {
	return g.sinks
}

// IsValid reports whether n is a valid node.
func (g *Graph) IsValid(n uint32) bool {
	return g.valid.Contains(n)
}

// Out returns the destinations of n's outgoing edges in input order.
// The slice is shared and must not be modified. Invalid and dangling nodes
// return nil.
func (g *Graph) Out(n uint32) []uint32 {
	if int(n) >= len(g.adj) {
		return nil
	}
	return g.adj[n]
}

// OutDegree returns len(Out(n)).
func (g *Graph) OutDegree(n uint32) int {
	return len(g.Out(n))
}

// IDs returns the valid node identifiers in ascending order.
// The slice is shared and must not be modified.
func (g *Graph) IDs() []uint32 {
	return g.ids
}

// Valid iterates the valid node identifiers in ascending order.
func (g *Graph) Valid() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		for _, n := range g.ids {
			if !yield(n) {
				return
			}
		}
	}
}
