package testutil

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"sync"

	"github.com/hupe1980/pagerank/graph"
)

// Edge is one directed edge of a generated graph.
type Edge struct {
	Src, Dst uint32
}

// EdgeList is a generated edge list in emission order.
type EdgeList []Edge

// Build loads the edges into a graph.
func (l EdgeList) Build(opts ...graph.Option) *graph.Graph {
	b := graph.NewBuilder(opts...)
	for _, e := range l {
		b.AddEdge(e.Src, e.Dst)
	}
	return b.Build()
}

// Text renders the edges as a tab-separated edge list with a comment header.
func (l EdgeList) Text() string {
	var sb strings.Builder
	sb.WriteString("# Directed graph\n# FromNodeId\tToNodeId\n")
	for _, e := range l {
		fmt.Fprintf(&sb, "%d\t%d\n", e.Src, e.Dst)
	}
	return sb.String()
}

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// UniformGraph generates nodes*avgDegree edges over ids [0, nodes).
// Every node gets at least one outgoing edge, so all ids are valid under
// either sink policy and the graph has no dangling nodes.
func (r *RNG) UniformGraph(nodes, avgDegree int) EdgeList {
	r.mu.Lock()
	defer r.mu.Unlock()

	edges := make(EdgeList, 0, nodes*avgDegree)
	for n := range nodes {
		edges = append(edges, Edge{Src: uint32(n), Dst: uint32(r.rand.Intn(nodes))})
	}
	for len(edges) < cap(edges) {
		edges = append(edges, Edge{
			Src: uint32(r.rand.Intn(nodes)),
			Dst: uint32(r.rand.Intn(nodes)),
		})
	}

	return edges
}

// ZipfGraph is like UniformGraph but draws destinations from a Zipf
// distribution with skew s > 1, so a few hubs collect most in-links.
// Sources are spread over even ids only; odd ids appear as pure sinks.
func (r *RNG) ZipfGraph(nodes, avgDegree int, s float64) EdgeList {
	r.mu.Lock()
	defer r.mu.Unlock()

	z := rand.NewZipf(r.rand, s, 1, uint64(nodes-1))
	sources := (nodes + 1) / 2

	edges := make(EdgeList, 0, sources*avgDegree)
	for n := range sources {
		edges = append(edges, Edge{Src: uint32(2 * n), Dst: uint32(z.Uint64())})
	}
	for len(edges) < cap(edges) {
		edges = append(edges, Edge{
			Src: uint32(2 * r.rand.Intn(sources)),
			Dst: uint32(z.Uint64()),
		})
	}

	return edges
}

// DenseRank computes ranks by straightforward dense iteration: uniform
// start over valid nodes, dangling mass dropped, tax spread over the whole
// index range. It shares no code with the power package and serves as
// ground truth.
func DenseRank(edges EdgeList, taxRate float64, iterations int, sinks graph.SinkPolicy) []float64 {
	maxNode := -1
	for _, e := range edges {
		maxNode = max(maxNode, int(e.Src), int(e.Dst))
	}
	n := maxNode + 1

	deg := make([]int, n)
	valid := make([]bool, n)
	for _, e := range edges {
		deg[e.Src]++
		valid[e.Src] = true
		if sinks == graph.SinksIncluded {
			valid[e.Dst] = true
		}
	}

	used := 0
	for _, v := range valid {
		if v {
			used++
		}
	}

	rank := make([]float64, n)
	for i, v := range valid {
		if v {
			rank[i] = 1 / float64(used)
		}
	}

	for range iterations {
		next := make([]float64, n)
		for _, e := range edges {
			next[e.Dst] += rank[e.Src] / float64(deg[e.Src])
		}
		for i := range next {
			next[i] = (1-taxRate)*next[i] + taxRate/float64(used)
		}
		rank = next
	}

	return rank
}

// MaxAbsDiff returns the largest absolute element-wise difference.
// Slices of different length compare as +Inf.
func MaxAbsDiff(a, b []float64) float64 {
	if len(a) != len(b) {
		return math.Inf(1)
	}
	var d float64
	for i := range a {
		d = max(d, math.Abs(a[i]-b[i]))
	}
	return d
}
