// Package observability exports pagerank metrics to Prometheus.
//
// PrometheusCollector implements pagerank.MetricsCollector on a private
// registry. Batch runs usually end with WriteTextfile so that a node
// exporter textfile collector can pick the numbers up.
package observability

import (
	"time"

	"github.com/hupe1980/pagerank/resource"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusOK    = "ok"
	statusError = "error"
)

// PrometheusCollector records ingestion, iteration and report metrics.
type PrometheusCollector struct {
	registry  *prometheus.Registry
	namespace string

	ingestTotal    *prometheus.CounterVec
	ingestDuration prometheus.Histogram
	graphEdges     prometheus.Gauge
	graphNodes     prometheus.Gauge

	iterationsTotal   prometheus.Counter
	iterationDuration prometheus.Histogram
	rankDelta         prometheus.Gauge
	validMass         prometheus.Gauge

	reportsTotal *prometheus.CounterVec
	reportRows   *prometheus.GaugeVec
}

// NewPrometheusCollector creates a collector whose metric names start with
// namespace ("pagerank" if empty).
func NewPrometheusCollector(namespace string) *PrometheusCollector {
	if namespace == "" {
		namespace = "pagerank"
	}

	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &PrometheusCollector{
		registry:  reg,
		namespace: namespace,

		ingestTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingest_total",
			Help:      "Edge list ingestions by status",
		}, []string{"status"}),
		ingestDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ingest_duration_seconds",
			Help:      "Time spent reading and parsing edge lists",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
		}),
		graphEdges: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_edges",
			Help:      "Edges in the last ingested graph",
		}),
		graphNodes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_valid_nodes",
			Help:      "Valid nodes in the last ingested graph",
		}),

		iterationsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "iterations_total",
			Help:      "Completed power iteration steps",
		}),
		iterationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "iteration_duration_seconds",
			Help:      "Duration of one power iteration step",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
		}),
		rankDelta: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rank_delta",
			Help:      "Largest absolute rank change over valid nodes in the last step",
		}),
		validMass: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "valid_mass",
			Help:      "Rank sum over valid nodes after the last step",
		}),

		reportsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_total",
			Help:      "Report writes by kind and status",
		}, []string{"kind", "status"}),
		reportRows: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "report_rows",
			Help:      "Rows in the last report of each kind",
		}, []string{"kind"}),
	}
}

// Registry returns the registry holding the collector's metrics.
func (p *PrometheusCollector) Registry() *prometheus.Registry {
	return p.registry
}

// RecordIngest implements pagerank.MetricsCollector.
func (p *PrometheusCollector) RecordIngest(edges, usedNodes int, duration time.Duration, err error) {
	p.ingestDuration.Observe(duration.Seconds())
	if err != nil {
		p.ingestTotal.WithLabelValues(statusError).Inc()
		return
	}
	p.ingestTotal.WithLabelValues(statusOK).Inc()
	p.graphEdges.Set(float64(edges))
	p.graphNodes.Set(float64(usedNodes))
}

// RecordIteration implements pagerank.MetricsCollector.
func (p *PrometheusCollector) RecordIteration(delta, validMass float64, duration time.Duration) {
	p.iterationsTotal.Inc()
	p.iterationDuration.Observe(duration.Seconds())
	p.rankDelta.Set(delta)
	p.validMass.Set(validMass)
}

// RecordReport implements pagerank.MetricsCollector.
func (p *PrometheusCollector) RecordReport(kind string, rows int, _ time.Duration, err error) {
	if err != nil {
		p.reportsTotal.WithLabelValues(kind, statusError).Inc()
		return
	}
	p.reportsTotal.WithLabelValues(kind, statusOK).Inc()
	p.reportRows.WithLabelValues(kind).Set(float64(rows))
}

// ObserveResources exports the memory reserved through rc and its limits.
// Call it at most once per collector.
func (p *PrometheusCollector) ObserveResources(rc *resource.Controller) {
	factory := promauto.With(p.registry)

	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: p.namespace,
		Name:      "resource_memory_bytes",
		Help:      "Memory currently reserved for shard accumulators",
	}, func() float64 {
		return float64(rc.MemoryUsage())
	})
	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: p.namespace,
		Name:      "resource_max_workers",
		Help:      "Configured worker limit",
	}, func() float64 {
		return float64(rc.MaxWorkers())
	})
}

// WriteTextfile writes all metrics in the text exposition format to path,
// atomically, for the node exporter textfile collector.
func (p *PrometheusCollector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, p.registry)
}
