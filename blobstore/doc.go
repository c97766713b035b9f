// Package blobstore provides storage abstraction for note documents.
//
// Store is the interface for reading and writing whole documents by key.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - MemoryStore: In-memory map, for tests and ephemeral sessions
//   - LocalStore: Local filesystem with atomic replace on write
//   - CompressedStore: zstd or lz4 wrapper around any other Store
//   - minio.Store: MinIO and other S3-compatible object stores
//   - s3.Store: Amazon S3 with multipart uploads for large documents
//   - dynamo.Store: Amazon DynamoDB, one item per document
//
// # Custom Implementations
//
//	type Store interface {
//	    Get(ctx, key) ([]byte, error)  // ErrNotFound when missing
//	    Put(ctx, key, data) error      // Atomic full replace
//	    Delete(ctx, key) error         // Missing keys are not an error
//	}
package blobstore
