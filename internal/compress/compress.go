// Package compress transparently decodes compressed edge lists.
//
// Public graph dumps are usually distributed gzip-compressed
// (web-Google.txt.gz); zstd and lz4 frames are accepted as well. The format
// is detected from the leading magic bytes, not from the file name.
package compress

import (
	"bufio"
	"bytes"
	"errors"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Format identifies the encoding of an input stream.
type Format int

const (
	// None is uncompressed text.
	None Format = iota
	// Gzip is RFC 1952 gzip.
	Gzip
	// Zstd is a Zstandard frame.
	Zstd
	// LZ4 is an LZ4 frame.
	LZ4
)

func (f Format) String() string {
	switch f {
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	default:
		return "none"
	}
}

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// Detect reports the format of the stream buffered in br without consuming it.
func Detect(br *bufio.Reader) (Format, error) {
	head, err := br.Peek(4)
	if err != nil && !errors.Is(err, io.EOF) {
		return None, err
	}
	switch {
	case bytes.HasPrefix(head, zstdMagic):
		return Zstd, nil
	case bytes.HasPrefix(head, lz4Magic):
		return LZ4, nil
	case bytes.HasPrefix(head, gzipMagic):
		return Gzip, nil
	default:
		return None, nil
	}
}

// NewReader wraps r with the decoder matching its magic bytes.
// Uncompressed input is passed through. Closing the returned reader releases
// decoder state but never closes r.
func NewReader(r io.Reader) (io.ReadCloser, Format, error) {
	br := bufio.NewReaderSize(r, 64*1024)

	format, err := Detect(br)
	if err != nil {
		return nil, None, err
	}

	switch format {
	case Gzip:
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, format, err
		}
		return zr, format, nil
	case Zstd:
		dec, err := zstd.NewReader(br, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, format, err
		}
		return dec.IOReadCloser(), format, nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(br)), format, nil
	default:
		return io.NopCloser(br), format, nil
	}
}
