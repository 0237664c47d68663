package pagerank

import (
	"math"
	"sync/atomic"
	"time"
)

// Report kinds passed to MetricsCollector.RecordReport.
const (
	ReportFull = "full"
	ReportTopK = "topk"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems;
// observability.PrometheusCollector is a ready-made implementation.
type MetricsCollector interface {
	// RecordIngest is called after an edge list was read.
	// edges and usedNodes are zero when err is non-nil.
	RecordIngest(edges, usedNodes int, duration time.Duration, err error)

	// RecordIteration is called after each step with the largest rank
	// change over valid nodes and the valid mass after the step.
	RecordIteration(delta, validMass float64, duration time.Duration)

	// RecordReport is called after each report write.
	// kind is ReportFull or ReportTopK.
	RecordReport(kind string, rows int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordIngest(int, int, time.Duration, error)     {}
func (NoopMetricsCollector) RecordIteration(float64, float64, time.Duration) {}
func (NoopMetricsCollector) RecordReport(string, int, time.Duration, error)  {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	IngestCount         atomic.Int64
	IngestErrors        atomic.Int64
	IngestEdges         atomic.Int64
	IngestNanos         atomic.Int64
	IterationCount      atomic.Int64
	IterationTotalNanos atomic.Int64
	ReportCount         atomic.Int64
	ReportErrors        atomic.Int64
	ReportRows          atomic.Int64

	lastDelta atomic.Uint64
	lastMass  atomic.Uint64
}

// RecordIngest implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIngest(edges, _ int, duration time.Duration, err error) {
	b.IngestCount.Add(1)
	b.IngestNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.IngestErrors.Add(1)
		return
	}
	b.IngestEdges.Add(int64(edges))
}

// RecordIteration implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIteration(delta, validMass float64, duration time.Duration) {
	b.IterationCount.Add(1)
	b.IterationTotalNanos.Add(duration.Nanoseconds())
	b.lastDelta.Store(math.Float64bits(delta))
	b.lastMass.Store(math.Float64bits(validMass))
}

// RecordReport implements MetricsCollector.
func (b *BasicMetricsCollector) RecordReport(_ string, rows int, _ time.Duration, err error) {
	b.ReportCount.Add(1)
	if err != nil {
		b.ReportErrors.Add(1)
		return
	}
	b.ReportRows.Add(int64(rows))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		IngestCount:       b.IngestCount.Load(),
		IngestErrors:      b.IngestErrors.Load(),
		IngestEdges:       b.IngestEdges.Load(),
		IterationCount:    b.IterationCount.Load(),
		IterationAvgNanos: b.getAvgIterationNanos(),
		LastDelta:         math.Float64frombits(b.lastDelta.Load()),
		LastValidMass:     math.Float64frombits(b.lastMass.Load()),
		ReportCount:       b.ReportCount.Load(),
		ReportErrors:      b.ReportErrors.Load(),
		ReportRows:        b.ReportRows.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgIterationNanos() int64 {
	count := b.IterationCount.Load()
	if count == 0 {
		return 0
	}
	return b.IterationTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	IngestCount       int64
	IngestErrors      int64
	IngestEdges       int64
	IterationCount    int64
	IterationAvgNanos int64
	LastDelta         float64
	LastValidMass     float64
	ReportCount       int64
	ReportErrors      int64
	ReportRows        int64
}
