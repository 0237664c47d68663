package graph

import (
	"context"

	"github.com/hupe1980/pagerank/blobstore"
	"github.com/hupe1980/pagerank/internal/compress"
	"github.com/hupe1980/pagerank/resource"
)

// Load opens name in store and parses it as an edge list.
//
// gzip, zstd and lz4 compressed inputs are decoded transparently. Reads are
// throttled when WithResources supplies a controller with an IO limit.
func Load(ctx context.Context, store blobstore.BlobStore, name string, optFns ...Option) (*Graph, error) {
	opts := applyOptions(optFns)

	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, &IOError{Path: name, Op: "open", Err: err}
	}
	defer blob.Close()

	raw, err := blobstore.NewReader(ctx, blob)
	if err != nil {
		return nil, &IOError{Path: name, Op: "open", Err: err}
	}
	defer raw.Close()

	r, _, err := compress.NewReader(resource.NewRateLimitedReader(ctx, raw, opts.Resources))
	if err != nil {
		return nil, &IOError{Path: name, Op: "decompress", Err: err}
	}
	defer r.Close()

	return parse(ctx, r, name, opts)
}
