package pagerank

import (
	"errors"
	"fmt"

	"github.com/hupe1980/pagerank/graph"
	"github.com/hupe1980/pagerank/power"
	"github.com/hupe1980/pagerank/rank"
	"github.com/hupe1980/pagerank/report"
)

var (
	// ErrIngestionIO is returned when the edge list cannot be opened or read.
	ErrIngestionIO = errors.New("edge list unreadable")

	// ErrFormat is returned when a non-blank, non-comment line does not hold
	// two node ids. Use errors.As with *graph.FormatError for path and line.
	ErrFormat = errors.New("malformed edge list")

	// ErrDegenerateGraph is returned when ingestion yields no valid nodes.
	ErrDegenerateGraph = errors.New("graph has no valid nodes")

	// ErrOutputIO is returned when a report cannot be written.
	ErrOutputIO = errors.New("report not written")

	// ErrRange is returned when k exceeds the number of valid nodes.
	ErrRange = errors.New("k out of range")

	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrStateMismatch is returned when a rank vector does not belong to
	// the graph it is stepped against.
	ErrStateMismatch = errors.New("rank state does not match graph")
)

// ErrInvalidOption indicates an option value outside its domain.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidOption struct {
	Name  string
	Value any
	cause error
}

func (e *ErrInvalidOption) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Name, e.Value)
}

func (e *ErrInvalidOption) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Ingestion.
	var fe *graph.FormatError
	if errors.As(err, &fe) {
		return fmt.Errorf("%w: %w", ErrFormat, err)
	}
	var ioe *graph.IOError
	if errors.As(err, &ioe) {
		return fmt.Errorf("%w: %w", ErrIngestionIO, err)
	}
	if errors.Is(err, rank.ErrDegenerate) {
		return fmt.Errorf("%w: %w", ErrDegenerateGraph, err)
	}

	// Iteration.
	if errors.Is(err, power.ErrStateMismatch) {
		return fmt.Errorf("%w: %w", ErrStateMismatch, err)
	}
	if errors.Is(err, power.ErrInvalidTaxRate) {
		return &ErrInvalidOption{Name: "tax rate", Value: err.Error(), cause: err}
	}

	// Reporting.
	var re *report.RangeError
	if errors.As(err, &re) {
		return fmt.Errorf("%w: %w", ErrRange, err)
	}
	if errors.Is(err, report.ErrInvalidK) {
		return fmt.Errorf("%w: %w", ErrInvalidK, err)
	}

	return err
}
