// Package graph holds the sparse adjacency structure PageRank iterates over.
//
// Node identifiers are used directly as indices: the addressable range is
// 0..MaxNode() even when most indices in it are unused. A roaring bitmap
// records which indices are valid, i.e. appeared as the source of at least
// one edge. Every component that walks the full index range must skip
// invalid indices.
//
// Graphs are built once, either edge by edge through a Builder or by parsing
// an edge list with Parse/Load, and are immutable afterwards.
//
// # Edge List Format
//
// One edge per line. Blank lines and lines starting with the comment prefix
// ("#" by default) are ignored. Every other line must contain at least two
// non-negative integers; any run of non-digit characters separates them, so
// "12 34", "12,34" and "12 -> 34" are equivalent. Extra integers on a line
// are ignored.
package graph
