// Package report projects a rank.State onto the valid nodes of its graph:
// the full table in ascending id order and the top-K nodes by rank.
//
// Both text formats are fixed:
//
//	full:  "<node>  <rank>"                       one line per valid node
//	top-K: " i  node#   PageRank" header, then "<pos:02>  <node:06> <rank>"
//
// Ranks are printed with eight fractional digits.
package report

import (
	"bufio"
	"cmp"
	"errors"
	"fmt"
	"io"
	"iter"
	"slices"

	"github.com/hupe1980/pagerank/graph"
	"github.com/hupe1980/pagerank/rank"
)

// TopKHeader is the first line of a top-K report.
const TopKHeader = " i  node#   PageRank"

// ErrInvalidK is returned by TopK for k < 1.
var ErrInvalidK = errors.New("report: k must be positive")

// RangeError is returned by TopK when k exceeds the number of valid nodes.
type RangeError struct {
	K     int
	Valid int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("report: k=%d exceeds %d valid nodes", e.K, e.Valid)
}

// Entry is one row of a top-K report.
type Entry struct {
	// Position is the 1-based rank position.
	Position int
	Node     uint32
	Rank     float64
}

// Full yields (node, rank) for every valid node of g in ascending id order.
// The sequence reads s lazily and can be ranged over any number of times;
// it reflects the rank vector current at iteration time.
func Full(g *graph.Graph, s *rank.State) iter.Seq2[uint32, float64] {
	return func(yield func(uint32, float64) bool) {
		for _, id := range g.IDs() {
			if !yield(id, s.Rank(id)) {
				return
			}
		}
	}
}

// TopK returns the k valid nodes with the highest rank, ordered by
// descending rank. Equal ranks keep ascending node id order.
func TopK(g *graph.Graph, s *rank.State, k int) ([]Entry, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidK, k)
	}
	if used := g.UsedNodes(); k > used {
		return nil, &RangeError{K: k, Valid: used}
	}

	all := make([]Entry, 0, g.UsedNodes())
	for id, r := range Full(g, s) {
		all = append(all, Entry{Node: id, Rank: r})
	}

	slices.SortStableFunc(all, func(a, b Entry) int {
		return cmp.Compare(b.Rank, a.Rank)
	})

	top := all[:k:k]
	for i := range top {
		top[i].Position = i + 1
	}
	return top, nil
}

// WriteFull writes one "<node>  <rank>" line per element of seq.
func WriteFull(w io.Writer, seq iter.Seq2[uint32, float64]) error {
	bw := bufio.NewWriter(w)
	for id, r := range seq {
		if _, err := fmt.Fprintf(bw, "%d  %.8f\n", id, r); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteTopK writes the header line followed by one line per entry.
func WriteTopK(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, TopKHeader); err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(bw, "%02d  %06d %.8f\n", e.Position, e.Node, e.Rank); err != nil {
			return err
		}
	}
	return bw.Flush()
}
