// Package minio provides a BlobStore implementation using the MinIO client.
//
// It works against MinIO and other S3-compatible services (Ceph, Garage,
// SeaweedFS) without pulling in the AWS SDK.
//
// # Basic Usage
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	    Secure: false,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store := minioblob.NewStore(client, "graphs", "snap/")
//	sess, err := pagerank.Load(ctx, store, "web-Google.txt")
//
// Credentials can also be taken from the environment with Dial, which reads
// MINIO_ACCESS_KEY/MINIO_SECRET_KEY (or the AWS_* equivalents).
package minio
