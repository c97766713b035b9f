package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/hupe1980/notesync"
	"github.com/hupe1980/notesync/blobstore"
	"github.com/hupe1980/notesync/codec"
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "notesync",
		Usage: "inspect and edit note documents",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "url",
				Usage:   "document URL; for blob backends only the path is used as key",
				Value:   "/notes.json",
				EnvVars: []string{"NOTESYNC_URL"},
			},
			&cli.StringFlag{
				Name:    "backend",
				Usage:   "document backend: http, memory, file, minio, s3 or dynamodb",
				Value:   backendHTTP,
				EnvVars: []string{"NOTESYNC_BACKEND"},
			},
			&cli.StringFlag{
				Name:    "dir",
				Usage:   "root directory of the file backend",
				Value:   ".",
				EnvVars: []string{"NOTESYNC_DIR"},
			},
			&cli.StringFlag{
				Name:    "bucket",
				Usage:   "bucket of the minio and s3 backends",
				EnvVars: []string{"NOTESYNC_BUCKET"},
			},
			&cli.StringFlag{
				Name:    "prefix",
				Usage:   "key prefix of the minio and s3 backends",
				EnvVars: []string{"NOTESYNC_PREFIX"},
			},
			&cli.StringFlag{
				Name:    "endpoint",
				Usage:   "override the minio, s3 or dynamodb endpoint",
				EnvVars: []string{"NOTESYNC_ENDPOINT"},
			},
			&cli.StringFlag{
				Name:    "access-key",
				Usage:   "static access key for minio, s3 and dynamodb",
				EnvVars: []string{"NOTESYNC_ACCESS_KEY"},
			},
			&cli.StringFlag{
				Name:    "secret-key",
				Usage:   "static secret key for minio, s3 and dynamodb",
				EnvVars: []string{"NOTESYNC_SECRET_KEY"},
			},
			&cli.BoolFlag{
				Name:  "insecure",
				Usage: "use plain HTTP for the minio endpoint",
			},
			&cli.StringFlag{
				Name:    "table",
				Usage:   "table of the dynamodb backend",
				Value:   "notesync-documents",
				EnvVars: []string{"NOTESYNC_TABLE"},
			},
			&cli.StringFlag{
				Name:  "compression",
				Usage: "compression of blob backends: none, zstd or lz4",
				Value: "none",
			},
			&cli.StringFlag{
				Name:  "codec",
				Usage: "JSON implementation: go-json or json",
				Value: codec.Default.Name(),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
				Value: "warn",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "text or json",
				Value: "text",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "timeout of each load and save request",
				Value: notesync.DefaultSaveTimeout,
			},
			&cli.Float64Flag{
				Name:  "rate-limit",
				Usage: "maximum HTTP requests per second, 0 for unlimited",
			},
			&cli.BoolFlag{
				Name:  "create",
				Usage: "treat a missing document as empty",
			},
		},
		Commands: []*cli.Command{
			listCommand(),
			addCommand(),
			deleteCommand(),
			setTextCommand(),
			navigateCommand("next", "print the note after the given one"),
			navigateCommand("prev", "print the note before the given one"),
			flushCommand(),
			serveCommand(),
		},
	}
}

func newLogger(c *cli.Context) (*notesync.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.String("log-level"))); err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	switch c.String("log-format") {
	case "text":
		return notesync.NewLogger(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: level})), nil
	case "json":
		return notesync.NewLogger(slog.NewJSONHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: level})), nil
	default:
		return nil, fmt.Errorf("invalid --log-format %q", c.String("log-format"))
	}
}

// openStore creates a store for --url on the configured backend and waits
// for the initial load.
func openStore(c *cli.Context) (*notesync.Store, error) {
	logger, err := newLogger(c)
	if err != nil {
		return nil, err
	}

	t, err := newTransport(c)
	if err != nil {
		return nil, err
	}

	cd, ok := codec.ByName(c.String("codec"))
	if !ok {
		return nil, fmt.Errorf("unknown codec %q", c.String("codec"))
	}

	timeout := c.Duration("timeout")
	opts := []notesync.Option{
		notesync.WithCodec(cd),
		notesync.WithLogger(logger),
		notesync.WithLoadTimeout(timeout),
		notesync.WithSaveTimeout(timeout),
	}
	if c.Bool("create") {
		opts = append(opts, notesync.WithCreateIfMissing())
	}

	store := notesync.New(t, c.String("url"), opts...)
	if err := store.WaitLoaded(c.Context); err != nil {
		_ = store.Close()
		return nil, err
	}

	return store, nil
}

// openBlobStore returns the configured backend as a blob store.
func openBlobStore(c *cli.Context) (blobstore.Store, error) {
	store, err := newBlobStore(c)
	if err != nil {
		return nil, err
	}

	compression, err := blobstore.ParseCompression(c.String("compression"))
	if err != nil {
		return nil, err
	}
	if compression != blobstore.CompressionNone {
		store = blobstore.NewCompressedStore(store, compression)
	}

	return store, nil
}

// requestTimeout bounds a single CLI round trip.
func requestTimeout(c *cli.Context) time.Duration {
	if d := c.Duration("timeout"); d > 0 {
		return d
	}
	return notesync.DefaultSaveTimeout
}
