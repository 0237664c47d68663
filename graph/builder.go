package graph

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// Builder accumulates edges into a Graph. It is not safe for concurrent use.
type Builder struct {
	opts    Options
	valid   *roaring.Bitmap
	targets *roaring.Bitmap
	adj     [][]uint32
	maxNode int
	edges   int
}

// NewBuilder creates an empty Builder.
func NewBuilder(optFns ...Option) *Builder {
	return newBuilder(applyOptions(optFns))
}

func newBuilder(opts Options) *Builder {
	return &Builder{
		opts:    opts,
		valid:   roaring.New(),
		targets: roaring.New(),
		maxNode: -1,
	}
}

// grow extends the addressable range to cover id. The range never shrinks.
func (b *Builder) grow(id uint32) {
	if int(id) <= b.maxNode {
		return
	}
	b.maxNode = int(id)
	if need := b.maxNode + 1; need > len(b.adj) {
		b.adj = append(b.adj, make([][]uint32, need-len(b.adj))...)
	}
}

// AddEdge appends dst to src's adjacency list and marks src valid.
// Self loops and repeated edges are kept; each occurrence counts.
func (b *Builder) AddEdge(src, dst uint32) {
	b.grow(dst)
	b.grow(src)
	b.valid.Add(src)
	if b.opts.Sinks == SinksIncluded {
		b.targets.Add(dst)
	}
	b.adj[src] = append(b.adj[src], dst)
	b.edges++
}

// Edges returns the number of edges added so far.
func (b *Builder) Edges() int {
	return b.edges
}

// Build freezes the accumulated edges into a Graph. The Builder must not be
// used afterwards.
func (b *Builder) Build() *Graph {
	valid := b.valid
	if b.opts.Sinks == SinksIncluded {
		valid.Or(b.targets)
	}
	valid.RunOptimize()

	g := &Graph{
		valid:   valid,
		ids:     valid.ToArray(),
		adj:     b.adj,
		maxNode: b.maxNode,
		edges:   b.edges,
		sinks:   b.opts.Sinks,
	}

	b.valid, b.targets, b.adj = nil, nil, nil
	return g
}
