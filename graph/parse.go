package graph

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"strconv"
)

const maxLineBytes = 1 << 20

// Parse reads an edge list from r and builds a Graph.
//
// path only labels errors. Ingestion is all or nothing: the first malformed
// line, including one longer than 1 MiB, aborts with a *FormatError and a read
// failure with an *IOError.
func Parse(r io.Reader, path string, optFns ...Option) (*Graph, error) {
	return parse(context.Background(), r, path, applyOptions(optFns))
}

func parse(ctx context.Context, r io.Reader, path string, opts Options) (*Graph, error) {
	b := newBuilder(opts)

	comment := []byte(opts.CommentPrefix)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo&0xffff == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if len(comment) > 0 && bytes.HasPrefix(line, comment) {
			continue
		}

		src, dst, reason := parseEdge(line, uint64(opts.MaxNodeID))
		if reason != "" {
			return nil, &FormatError{
				Path:   path,
				Line:   lineNo,
				Text:   string(line),
				Reason: reason,
			}
		}
		b.AddEdge(src, dst)
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, &FormatError{
				Path:   path,
				Line:   lineNo + 1,
				Reason: "line exceeds " + strconv.Itoa(maxLineBytes) + " bytes",
			}
		}
		return nil, &IOError{Path: path, Op: "read", Err: err}
	}

	return b.Build(), nil
}

// parseEdge extracts the first two digit runs of line.
func parseEdge(line []byte, maxID uint64) (src, dst uint32, reason string) {
	var ids [2]uint64
	found := 0

	for i := 0; i < len(line) && found < 2; {
		if !isDigit(line[i]) {
			i++
			continue
		}
		var v uint64
		for ; i < len(line) && isDigit(line[i]); i++ {
			if v > maxID {
				continue // keep consuming the run; already out of range
			}
			v = v*10 + uint64(line[i]-'0')
		}
		if v > maxID {
			return 0, 0, "node id out of range"
		}
		ids[found] = v
		found++
	}

	if found < 2 {
		return 0, 0, "expected two node ids"
	}
	return uint32(ids[0]), uint32(ids[1]), ""
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
