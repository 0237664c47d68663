package compress

import (
	"bytes"
	"io"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const edges = "# FromNodeId\tToNodeId\n0\t11342\n0\t824020\n11342\t0\n"

func gzipped(t *testing.T) []byte {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write([]byte(edges))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func zstded(t *testing.T) []byte {
	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	defer enc.Close()
	return enc.EncodeAll([]byte(edges), nil)
}

func lz4ed(t *testing.T) []byte {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	_, err := w.Write([]byte(edges))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestNewReader(t *testing.T) {
	tests := []struct {
		name   string
		input  []byte
		format Format
	}{
		{"none", []byte(edges), None},
		{"gzip", gzipped(t), Gzip},
		{"zstd", zstded(t), Zstd},
		{"lz4", lz4ed(t), LZ4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, format, err := NewReader(bytes.NewReader(tt.input))
			require.NoError(t, err)
			defer r.Close()

			assert.Equal(t, tt.format, format)
			assert.Equal(t, tt.name, format.String())

			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, edges, string(got))
		})
	}
}

func TestNewReader_ShortInput(t *testing.T) {
	for _, in := range []string{"", "1", "1 2"} {
		r, format, err := NewReader(bytes.NewReader([]byte(in)))
		require.NoError(t, err)
		assert.Equal(t, None, format)

		got, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, in, string(got))
	}
}

func TestNewReader_CorruptGzip(t *testing.T) {
	_, format, err := NewReader(bytes.NewReader([]byte{0x1f, 0x8b, 0x00}))
	assert.Equal(t, Gzip, format)
	assert.Error(t, err)
}
