// Package blobstore provides the storage abstraction used to read edge lists
// and write rank reports.
//
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem, mmap reads, atomic temp-file + rename writes
//   - MemoryStore: in-process map, mainly for tests
//   - s3.Store: Amazon S3 with ranged reads and multipart uploads
//   - minio.Store: MinIO and other S3-compatible services
//
// # Write Semantics
//
// Blobs returned by Create are published only when Close succeeds. Abort
// discards the partial write, so a failed report never leaves a truncated
// file behind.
//
//	w, err := store.Create(ctx, "PageRank.txt")
//	if err != nil { ... }
//	if err := writeReport(w); err != nil {
//	    _ = w.Abort(ctx)
//	    return err
//	}
//	return w.Close()
package blobstore
