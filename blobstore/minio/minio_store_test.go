package minio

import (
	"context"
	"io"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Key(t *testing.T) {
	s := NewStore(nil, "graphs", "snap/")
	assert.Equal(t, "snap/web.txt", s.key("web.txt"))
	assert.Equal(t, "snap/out/PageRank.txt", s.key("out/PageRank.txt"))

	s = NewStore(nil, "graphs", "")
	assert.Equal(t, "web.txt", s.key("web.txt"))
}

func TestDial(t *testing.T) {
	s, err := Dial("localhost:9000", false, "graphs", "snap/")
	require.NoError(t, err)
	assert.Equal(t, "graphs", s.bucket)
	assert.Equal(t, "snap/", s.prefix)
}

// TestMinioStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestMinioStore_Integration(t *testing.T) {
	bucket := "test-pagerank"

	client, err := minio.New("localhost:9000", &minio.Options{
		Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
		Secure: false,
	})
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()

	if _, err = client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	store := NewStore(client, bucket, "test-prefix/")

	data := []byte("0 1\n1 2\n2 0\n")
	require.NoError(t, store.Put(ctx, "cycle.txt", data))

	blob, err := store.Open(ctx, "cycle.txt")
	require.NoError(t, err)
	require.Equal(t, int64(len(data)), blob.Size())

	rc, err := blob.ReadRange(ctx, 4, 3)
	require.NoError(t, err)
	part, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "1 2", string(part))
	require.NoError(t, rc.Close())
	require.NoError(t, blob.Close())

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, names, "cycle.txt")

	wb, err := store.Create(ctx, "aborted.txt")
	require.NoError(t, err)
	_, err = wb.Write([]byte("partial"))
	require.NoError(t, err)
	require.NoError(t, wb.Abort(ctx))

	_, err = store.Open(ctx, "aborted.txt")
	require.Error(t, err)

	require.NoError(t, store.Delete(ctx, "cycle.txt"))
	_, err = store.Open(ctx, "cycle.txt")
	require.Error(t, err)
}
