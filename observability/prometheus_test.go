package observability

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hupe1980/pagerank"
	"github.com/hupe1980/pagerank/blobstore"
	"github.com/hupe1980/pagerank/resource"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ pagerank.MetricsCollector = (*PrometheusCollector)(nil)

func TestPrometheusCollector_Record(t *testing.T) {
	p := NewPrometheusCollector("")

	p.RecordIngest(42, 7, 3*time.Millisecond, nil)
	p.RecordIngest(0, 0, time.Millisecond, errors.New("boom"))
	p.RecordIteration(0.01, 0.99, time.Millisecond)
	p.RecordIteration(0.001, 1, time.Millisecond)
	p.RecordReport(pagerank.ReportTopK, 10, time.Millisecond, nil)
	p.RecordReport(pagerank.ReportFull, 0, time.Millisecond, errors.New("disk full"))

	assert.Equal(t, 1.0, promtest.ToFloat64(p.ingestTotal.WithLabelValues(statusOK)))
	assert.Equal(t, 1.0, promtest.ToFloat64(p.ingestTotal.WithLabelValues(statusError)))
	assert.Equal(t, 42.0, promtest.ToFloat64(p.graphEdges))
	assert.Equal(t, 7.0, promtest.ToFloat64(p.graphNodes))
	assert.Equal(t, 2.0, promtest.ToFloat64(p.iterationsTotal))
	assert.Equal(t, 0.001, promtest.ToFloat64(p.rankDelta))
	assert.Equal(t, 1.0, promtest.ToFloat64(p.validMass))
	assert.Equal(t, 10.0, promtest.ToFloat64(p.reportRows.WithLabelValues(pagerank.ReportTopK)))
	assert.Equal(t, 1.0, promtest.ToFloat64(p.reportsTotal.WithLabelValues(pagerank.ReportFull, statusError)))
}

func TestPrometheusCollector_Session(t *testing.T) {
	ctx := context.Background()
	p := NewPrometheusCollector("pr")

	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "edges.txt", []byte("0 1\n1 2\n2 0\n")))

	s, err := pagerank.Load(ctx, store, "edges.txt",
		pagerank.WithMetricsCollector(p),
		pagerank.WithIterations(5),
	)
	require.NoError(t, err)
	_, err = s.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, 5.0, promtest.ToFloat64(p.iterationsTotal))
	assert.Equal(t, 3.0, promtest.ToFloat64(p.graphEdges))

	expected := `
# HELP pr_graph_valid_nodes Valid nodes in the last ingested graph
# TYPE pr_graph_valid_nodes gauge
pr_graph_valid_nodes 3
`
	assert.NoError(t, promtest.GatherAndCompare(p.Registry(), strings.NewReader(expected), "pr_graph_valid_nodes"))
}

func TestPrometheusCollector_ObserveResources(t *testing.T) {
	p := NewPrometheusCollector("")
	rc := resource.NewController(resource.Config{MaxWorkers: 3})
	p.ObserveResources(rc)

	require.NoError(t, rc.AcquireMemory(context.Background(), 1024))
	defer rc.ReleaseMemory(1024)

	expected := `
# HELP pagerank_resource_memory_bytes Memory currently reserved for shard accumulators
# TYPE pagerank_resource_memory_bytes gauge
pagerank_resource_memory_bytes 1024
# HELP pagerank_resource_max_workers Configured worker limit
# TYPE pagerank_resource_max_workers gauge
pagerank_resource_max_workers 3
`
	assert.NoError(t, promtest.GatherAndCompare(p.Registry(), strings.NewReader(expected),
		"pagerank_resource_memory_bytes", "pagerank_resource_max_workers"))
}

func TestPrometheusCollector_WriteTextfile(t *testing.T) {
	p := NewPrometheusCollector("")
	p.RecordIteration(0.5, 1, time.Millisecond)

	path := filepath.Join(t.TempDir(), "pagerank.prom")
	require.NoError(t, p.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "pagerank_iterations_total 1")
	assert.Contains(t, string(data), "pagerank_rank_delta 0.5")
}
