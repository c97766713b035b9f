package main

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	miniogo "github.com/minio/minio-go/v7"
	miniocreds "github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/urfave/cli/v2"

	"github.com/hupe1980/notesync/blobstore"
	"github.com/hupe1980/notesync/blobstore/dynamo"
	"github.com/hupe1980/notesync/blobstore/minio"
	blobs3 "github.com/hupe1980/notesync/blobstore/s3"
	"github.com/hupe1980/notesync/transport"
)

const (
	backendHTTP     = "http"
	backendMemory   = "memory"
	backendFile     = "file"
	backendMinio    = "minio"
	backendS3       = "s3"
	backendDynamoDB = "dynamodb"
)

// newTransport returns the transport for --backend. Blob backends address
// the document by the path of --url.
func newTransport(c *cli.Context) (transport.Transport, error) {
	if c.String("backend") == backendHTTP {
		var opts []transport.HTTPOption
		if r := c.Float64("rate-limit"); r > 0 {
			opts = append(opts, transport.WithRateLimit(r, 1))
		}
		return transport.NewHTTP(opts...), nil
	}

	store, err := openBlobStore(c)
	if err != nil {
		return nil, err
	}

	return transport.NewBlob(store), nil
}

func newBlobStore(c *cli.Context) (blobstore.Store, error) {
	switch backend := c.String("backend"); backend {
	case backendMemory:
		return blobstore.NewMemoryStore(), nil
	case backendFile:
		return blobstore.NewLocalStore(c.String("dir")), nil
	case backendMinio:
		return newMinioStore(c)
	case backendS3:
		return newS3Store(c)
	case backendDynamoDB:
		return newDynamoStore(c)
	case backendHTTP:
		return nil, fmt.Errorf("backend %q has no blob store", backend)
	default:
		return nil, fmt.Errorf("unknown backend %q", backend)
	}
}

func newMinioStore(c *cli.Context) (blobstore.Store, error) {
	endpoint := c.String("endpoint")
	if endpoint == "" {
		return nil, fmt.Errorf("backend %s requires --endpoint", backendMinio)
	}
	bucket := c.String("bucket")
	if bucket == "" {
		return nil, fmt.Errorf("backend %s requires --bucket", backendMinio)
	}

	client, err := miniogo.New(endpoint, &miniogo.Options{
		Creds:  miniocreds.NewStaticV4(c.String("access-key"), c.String("secret-key"), ""),
		Secure: !c.Bool("insecure"),
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	return minio.NewStore(client, bucket, c.String("prefix")), nil
}

func loadAWSConfig(ctx context.Context, c *cli.Context) (aws.Config, error) {
	var optFns []func(*config.LoadOptions) error
	if ak, sk := c.String("access-key"), c.String("secret-key"); ak != "" && sk != "" {
		optFns = append(optFns, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(ak, sk, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}

	return cfg, nil
}

func newS3Store(c *cli.Context) (blobstore.Store, error) {
	bucket := c.String("bucket")
	if bucket == "" {
		return nil, fmt.Errorf("backend %s requires --bucket", backendS3)
	}

	cfg, err := loadAWSConfig(c.Context, c)
	if err != nil {
		return nil, err
	}

	endpoint := c.String("endpoint")
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return blobs3.NewStore(client, bucket, c.String("prefix")), nil
}

func newDynamoStore(c *cli.Context) (blobstore.Store, error) {
	cfg, err := loadAWSConfig(c.Context, c)
	if err != nil {
		return nil, err
	}

	endpoint := c.String("endpoint")
	client := dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	return dynamo.NewStore(client, c.String("table")), nil
}
