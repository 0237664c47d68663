package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/hupe1980/pagerank"
	"github.com/hupe1980/pagerank/blobstore"
	"github.com/hupe1980/pagerank/internal/location"
	"github.com/hupe1980/pagerank/observability"
	"github.com/hupe1980/pagerank/report"
)

// run reads the edge list, iterates, and writes the full table, the
// validation table and the top-K table. Ingestion failures abort before any
// output exists.
func run(ctx context.Context, cfg Config, stdout io.Writer) (err error) {
	logger, err := cfg.Logger()
	if err != nil {
		return err
	}

	in, err := location.Parse(cfg.Input)
	if err != nil {
		return err
	}
	out, err := location.Parse(cfg.Output)
	if err != nil {
		return err
	}
	topOut, err := location.Parse(cfg.TopOutput)
	if err != nil {
		return err
	}

	rc := cfg.Resources()

	var mc pagerank.MetricsCollector = pagerank.NoopMetricsCollector{}
	if cfg.MetricsFile != "" {
		prom := observability.NewPrometheusCollector("")
		prom.ObserveResources(rc)
		mc = prom
		defer func() {
			if werr := prom.WriteTextfile(cfg.MetricsFile); werr != nil {
				err = errors.Join(err, fmt.Errorf("metrics file: %w", werr))
			}
		}()
	}

	opts, err := cfg.Options(logger, mc, rc)
	if err != nil {
		return err
	}

	stores := newStoreCache(location.Options{Region: cfg.Region})

	totalStart := time.Now()

	inStore, err := stores.open(ctx, in)
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "reading edge list", "input", in.String())
	sess, err := pagerank.Load(ctx, inStore, in.Name, opts...)
	if err != nil {
		return err
	}
	readTook := time.Since(totalStart)

	logger.InfoContext(ctx, "running sparse multiply",
		"iterations", cfg.Iterations,
		"beta", cfg.Beta,
		"workers", cfg.Workers,
	)
	multStart := time.Now()
	if _, err := sess.Run(ctx); err != nil {
		return err
	}
	multTook := time.Since(multStart)

	writeStart := time.Now()

	outStore, err := stores.open(ctx, out)
	if err != nil {
		return err
	}
	if err := sess.WriteFull(ctx, outStore, out.Name); err != nil {
		return err
	}

	// One more step, written next to the full table, shows how far the
	// ranks still move.
	if cfg.Validation {
		if _, err := sess.Step(ctx); err != nil {
			return err
		}
		if err := sess.WriteFull(ctx, outStore, out.Name+".validation"); err != nil {
			return err
		}
	}

	topStore, err := stores.open(ctx, topOut)
	if err != nil {
		return err
	}
	entries, err := sess.WriteTopK(ctx, topStore, topOut.Name, cfg.Top)
	if err != nil {
		return err
	}
	if err := report.WriteTopK(stdout, entries); err != nil {
		return err
	}

	logger.InfoContext(ctx, "finished",
		"reading", readTook,
		"pagerank", multTook,
		"sorting_and_writing", time.Since(writeStart),
		"total", time.Since(totalStart),
	)

	return nil
}

// storeCache opens each distinct backend once per run.
type storeCache struct {
	opts   location.Options
	stores map[location.Location]blobstore.BlobStore
}

func newStoreCache(opts location.Options) *storeCache {
	return &storeCache{
		opts:   opts,
		stores: make(map[location.Location]blobstore.BlobStore),
	}
}

func (c *storeCache) open(ctx context.Context, l location.Location) (blobstore.BlobStore, error) {
	key := l.Sibling("")
	if s, ok := c.stores[key]; ok {
		return s, nil
	}

	s, err := l.Open(ctx, c.opts)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", l, err)
	}
	c.stores[key] = s
	return s, nil
}
