// Package pagerank computes PageRank over large sparse directed graphs.
//
// A Session owns one graph, its rank vector and the power-iteration engine
// advancing it. Edge lists are read from any blobstore.BlobStore (local
// files, memory, S3, MinIO), optionally compressed, and reports are written
// back the same way.
//
// # Quick Start
//
//	ctx := context.Background()
//	store := blobstore.NewLocalStore(".")
//
//	sess, err := pagerank.Load(ctx, store, "web-Google.txt",
//	    pagerank.WithBeta(0.8),
//	    pagerank.WithIterations(100),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if _, err := sess.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	_ = sess.WriteFull(ctx, store, "PageRank.txt")
//	top, _ := sess.WriteTopK(ctx, store, "Top10PageRank.txt", 10)
//
// # Input
//
// One edge per line. The first two runs of decimal digits on a line are the
// source and destination ids; everything else separates them, so "12 34",
// "12,34" and "12 -> 34" are equivalent. Blank lines and lines starting
// with "#" are skipped. Gzip, zstd and lz4 input is detected by magic bytes.
//
// # Semantics
//
// Node ids index a dense vector of MaxNode+1 entries. A node is valid once
// it appears as a source; valid nodes start at 1/usedNodes and only valid
// nodes are reported. Each step computes
//
//	rank'[i] = beta * Σ rank[n]/outDegree[n] + (1 - beta)/usedNodes
//
// over the whole index range. By default destination-only nodes stay
// invalid and the mass of dangling nodes is dropped. WithSinkPolicy,
// WithDanglingPolicy and WithStrictMass change each of these;
// WithConservingMass turns on all three.
//
// # Errors
//
// Failures are matchable with errors.Is against ErrIngestionIO, ErrFormat,
// ErrDegenerateGraph, ErrOutputIO, ErrRange and ErrInvalidK. The underlying
// *graph.FormatError carries path and line number.
package pagerank
