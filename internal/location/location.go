// Package location resolves the input and output arguments of the CLI into
// a blob store and a blob name.
//
// Accepted forms:
//
//	web-Google.txt                     local file, relative to the working dir
//	/data/web-Google.txt.zst           local file
//	file:///data/web-Google.txt        local file
//	s3://bucket/graphs/web-Google.txt  AWS S3, default credential chain
//	minio://host:9000/bucket/key       MinIO over plain HTTP
//	minios://host:9000/bucket/key      MinIO over TLS
package location

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/hupe1980/pagerank/blobstore"
	"github.com/hupe1980/pagerank/blobstore/minio"
	"github.com/hupe1980/pagerank/blobstore/s3"
)

// Scheme identifies a storage backend.
type Scheme string

const (
	SchemeFile   Scheme = "file"
	SchemeS3     Scheme = "s3"
	SchemeMinio  Scheme = "minio"
	SchemeMinioS Scheme = "minios"
)

var (
	// ErrUnsupportedScheme is returned for URLs with an unknown scheme.
	ErrUnsupportedScheme = errors.New("location: unsupported scheme")
	// ErrIncomplete is returned when a remote location lacks a bucket or key.
	ErrIncomplete = errors.New("location: missing bucket or key")
)

// Location is a parsed blob address.
type Location struct {
	Scheme Scheme
	// Endpoint is the MinIO host[:port]; empty otherwise.
	Endpoint string
	// Bucket is the S3 or MinIO bucket; empty for local files.
	Bucket string
	// Dir is the local directory holding the file; empty for remote.
	Dir string
	// Name is the blob name within the store.
	Name string
}

// Parse parses raw into a Location without touching any backend.
func Parse(raw string) (Location, error) {
	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok {
		return local(raw), nil
	}

	switch Scheme(strings.ToLower(scheme)) {
	case SchemeFile:
		u, err := url.Parse(raw)
		if err != nil {
			return Location{}, fmt.Errorf("location: %w", err)
		}
		return local(filepath.FromSlash(u.Path)), nil

	case SchemeS3:
		bucket, key, _ := strings.Cut(rest, "/")
		if bucket == "" || key == "" {
			return Location{}, fmt.Errorf("%w: %s", ErrIncomplete, raw)
		}
		return Location{Scheme: SchemeS3, Bucket: bucket, Name: key}, nil

	case SchemeMinio, SchemeMinioS:
		parts := strings.SplitN(rest, "/", 3)
		if len(parts) < 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
			return Location{}, fmt.Errorf("%w: %s", ErrIncomplete, raw)
		}
		return Location{
			Scheme:   Scheme(strings.ToLower(scheme)),
			Endpoint: parts[0],
			Bucket:   parts[1],
			Name:     parts[2],
		}, nil
	}

	return Location{}, fmt.Errorf("%w: %q", ErrUnsupportedScheme, scheme)
}

func local(path string) Location {
	return Location{
		Scheme: SchemeFile,
		Dir:    filepath.Dir(path),
		Name:   filepath.Base(path),
	}
}

// Sibling returns a location in the same store with a different name.
func (l Location) Sibling(name string) Location {
	l.Name = name
	return l
}

func (l Location) String() string {
	switch l.Scheme {
	case SchemeFile:
		return filepath.Join(l.Dir, l.Name)
	case SchemeS3:
		return "s3://" + l.Bucket + "/" + l.Name
	}
	return string(l.Scheme) + "://" + l.Endpoint + "/" + l.Bucket + "/" + l.Name
}

// Options configures backend clients built by Open.
type Options struct {
	// Region overrides the AWS region for s3:// locations.
	Region string
}

// Open builds the store that holds l. Remote clients take credentials from
// the environment.
func (l Location) Open(ctx context.Context, opts Options) (blobstore.BlobStore, error) {
	switch l.Scheme {
	case SchemeFile:
		return blobstore.NewLocalStore(l.Dir), nil
	case SchemeS3:
		var optFns []func(*s3.Options)
		if opts.Region != "" {
			optFns = append(optFns, s3.WithRegion(opts.Region))
		}
		store, err := s3.New(ctx, l.Bucket, optFns...)
		if err != nil {
			return nil, err
		}
		return store, nil
	case SchemeMinio, SchemeMinioS:
		store, err := minio.Dial(l.Endpoint, l.Scheme == SchemeMinioS, l.Bucket, "")
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, l.Scheme)
}
