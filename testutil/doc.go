// Package testutil provides testing utilities for pagerank.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random edge lists and computing
// reference ranks to check the iteration engine against.
//
// # Random Graph Generation
//
//	rng := testutil.NewRNG(seed)
//	edges := rng.UniformGraph(10_000, 5) // every node has out-degree ≥ 1
//	g := edges.Build()
//	text := edges.Text()                  // "src\tdst\n" lines
//
// # Reference Rank (Ground Truth)
//
//	want := testutil.DenseRank(edges, 0.2, 100, graph.SinksExcluded)
//	diff := testutil.MaxAbsDiff(want, s.Vector())
package testutil
