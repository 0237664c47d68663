// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("graphs/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	sess, err := pagerank.Load(ctx, store, "web-Google.txt.gz")
//
// # Features
//
//   - Edge lists are streamed with a single ranged GET
//   - Reports are written through the multipart uploader and are only
//     visible once the upload completes
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
