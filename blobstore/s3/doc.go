// Package s3 provides an S3 implementation of the blobstore.Store interface.
//
// # Usage
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	store := s3.NewStore(awss3.NewFromConfig(cfg), "my-bucket", "notes/")
//
// Documents at or above UploadConfig.PartSize are written with the multipart
// uploader; smaller documents use a single PutObject with a CRC32C checksum.
package s3
