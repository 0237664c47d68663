package graph

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/hupe1980/pagerank/blobstore"
	"github.com/hupe1980/pagerank/resource"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_AddEdge(t *testing.T) {
	b := NewBuilder()
	b.AddEdge(2, 5)
	b.AddEdge(0, 2)
	b.AddEdge(2, 0)
	b.AddEdge(2, 5) // duplicate kept
	b.AddEdge(7, 7) // self loop
	assert.Equal(t, 5, b.Edges())

	g := b.Build()

	assert.Equal(t, 7, g.MaxNode())
	assert.Equal(t, 8, g.Len())
	assert.Equal(t, 3, g.UsedNodes())
	assert.Equal(t, 5, g.Edges())
	assert.Equal(t, []uint32{0, 2, 7}, g.IDs())
	assert.Equal(t, []uint32{5, 0, 5}, g.Out(2))
	assert.Equal(t, 3, g.OutDegree(2))
	assert.Equal(t, []uint32{7}, g.Out(7))

	assert.True(t, g.IsValid(2))
	assert.False(t, g.IsValid(5), "sink-only destination")
	assert.False(t, g.IsValid(3), "never referenced")
	assert.Nil(t, g.Out(5))
	assert.Nil(t, g.Out(100))

	assert.Equal(t, []uint32{0, 2, 7}, slices.Collect(g.Valid()))
	assert.Equal(t, 3, g.UsedNodes())
}

func TestBuilder_Empty(t *testing.T) {
	g := NewBuilder().Build()
	assert.Equal(t, -1, g.MaxNode())
	assert.Equal(t, 0, g.Len())
	assert.Equal(t, 0, g.UsedNodes())
	assert.Empty(t, g.IDs())
}

func TestBuilder_SinkPolicy(t *testing.T) {
	build := func(p SinkPolicy) *Graph {
		b := NewBuilder(WithSinkPolicy(p))
		b.AddEdge(0, 1) // 1 never appears as a source
		b.AddEdge(0, 4)
		b.AddEdge(4, 0)
		return b.Build()
	}

	excluded := build(SinksExcluded)
	assert.Equal(t, []uint32{0, 4}, excluded.IDs())
	assert.False(t, excluded.IsValid(1))
	assert.Equal(t, SinksExcluded, excluded.SinkPolicy())

	included := build(SinksIncluded)
	assert.Equal(t, []uint32{0, 1, 4}, included.IDs())
	assert.True(t, included.IsValid(1))
	assert.Equal(t, 0, included.OutDegree(1))
	assert.Equal(t, "include", included.SinkPolicy().String())
}

func TestParse(t *testing.T) {
	input := strings.Join([]string{
		"# Directed graph (each unordered pair of nodes is saved once): web-Google.txt",
		"# FromNodeId\tToNodeId",
		"",
		"0\t11",
		"0 , 3",
		"   ",
		"3 -> 0",
		"11\t3\t999", // extra ids ignored
		"  # indented comment",
		"3 12\r",
	}, "\n")

	g, err := Parse(strings.NewReader(input), "web.txt")
	require.NoError(t, err)

	assert.Equal(t, 12, g.MaxNode())
	assert.Equal(t, []uint32{0, 3, 11}, g.IDs())
	assert.Equal(t, []uint32{11, 3}, g.Out(0))
	assert.Equal(t, []uint32{0, 12}, g.Out(3))
	assert.Equal(t, []uint32{3}, g.Out(11))
	assert.Equal(t, 5, g.Edges())
}

func TestParse_CustomCommentPrefix(t *testing.T) {
	g, err := Parse(strings.NewReader("% konect\n1 2\n"), "out.txt", WithCommentPrefix("%"))
	require.NoError(t, err)
	assert.Equal(t, 1, g.UsedNodes())
}

func TestParse_FormatErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		line   int
		text   string
		reason string
	}{
		{"letters", "0 1\nabc def\n", 2, "abc def", "expected two node ids"},
		{"single id", "# c\n\n7\n", 3, "7", "expected two node ids"},
		{"overflow", "1 99999999999\n", 1, "1 99999999999", "node id out of range"},
		{"too long", "0 1\n1 " + strings.Repeat("2", maxLineBytes) + "\n", 2, "", "line exceeds 1048576 bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Parse(strings.NewReader(tt.input), "bad.txt")
			require.Error(t, err)
			assert.Nil(t, g)

			var fe *FormatError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, "bad.txt", fe.Path)
			assert.Equal(t, tt.line, fe.Line)
			assert.Equal(t, tt.text, fe.Text)
			assert.Equal(t, tt.reason, fe.Reason)
			assert.Contains(t, err.Error(), "bad.txt")
		})
	}
}

func TestParse_MaxNodeID(t *testing.T) {
	_, err := Parse(strings.NewReader("1 2\n3 1001\n"), "big.txt", WithMaxNodeID(1000))
	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 2, fe.Line)

	g, err := Parse(strings.NewReader("1 1000\n"), "ok.txt", WithMaxNodeID(1000))
	require.NoError(t, err)
	assert.Equal(t, 1000, g.MaxNode())
}

func TestParse_ReadError(t *testing.T) {
	long := strings.Repeat("1", maxLineBytes+1)
	_, err := Parse(strings.NewReader(long), "long.txt")

	var ioe *IOError
	require.ErrorAs(t, err, &ioe)
	assert.Equal(t, "read", ioe.Op)
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte("0 1\n1 2\n2 0\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	require.NoError(t, store.Put(ctx, "cycle.txt", []byte("0 1\n1 2\n2 0\n")))
	require.NoError(t, store.Put(ctx, "cycle.txt.gz", buf.Bytes()))

	for _, name := range []string{"cycle.txt", "cycle.txt.gz"} {
		t.Run(name, func(t *testing.T) {
			rc := resource.NewController(resource.Config{IOLimitBytesPerSec: 1 << 20})
			g, err := Load(ctx, store, name, WithResources(rc))
			require.NoError(t, err)
			assert.Equal(t, []uint32{0, 1, 2}, g.IDs())
			assert.Equal(t, []uint32{0}, g.Out(2))
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(context.Background(), blobstore.NewMemoryStore(), "missing.txt")

	var ioe *IOError
	require.ErrorAs(t, err, &ioe)
	assert.Equal(t, "open", ioe.Op)
	assert.Equal(t, "missing.txt", ioe.Path)
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestLoad_LocalFormatError(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewLocalStore(t.TempDir())
	require.NoError(t, store.Put(ctx, "web.txt", []byte("0 1\nabc def\n")))

	_, err := Load(ctx, store, "web.txt")
	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 2, fe.Line)
}
