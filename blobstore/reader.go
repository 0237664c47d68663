package blobstore

import (
	"bytes"
	"context"
	"io"
)

// NewReader returns a sequential reader over the entire blob.
//
// Mappable blobs are read zero-copy. Everything else is streamed with a single
// ranged read, which for remote stores is one GET request.
// Closing the returned reader does not close b.
func NewReader(ctx context.Context, b Blob) (io.ReadCloser, error) {
	if m, ok := b.(Mappable); ok {
		data, err := m.Bytes()
		if err != nil {
			return nil, err
		}
		return io.NopCloser(bytes.NewReader(data)), nil
	}
	if b.Size() == 0 {
		return io.NopCloser(bytes.NewReader(nil)), nil
	}
	return b.ReadRange(ctx, 0, b.Size())
}
