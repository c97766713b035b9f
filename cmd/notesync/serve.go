package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/notesync"
	"github.com/hupe1980/notesync/blobstore"
	"github.com/hupe1980/notesync/codec"
	"github.com/hupe1980/notesync/transport"
)

// maxDocumentBytes caps the body of a PUT.
const maxDocumentBytes = 32 << 20

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "serve documents of a blob backend over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Usage:   "listen address",
				Value:   ":8080",
				EnvVars: []string{"NOTESYNC_ADDR"},
			},
		},
		Action: func(c *cli.Context) error {
			logger, err := newLogger(c)
			if err != nil {
				return err
			}

			cd, ok := codec.ByName(c.String("codec"))
			if !ok {
				return fmt.Errorf("unknown codec %q", c.String("codec"))
			}

			store, err := openBlobStore(c)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
			mux.Handle("/", newDocumentHandler(store, cd, logger, reg))

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, &http.Server{
				Addr:              c.String("addr"),
				Handler:           mux,
				ReadHeaderTimeout: 10 * time.Second,
			}, logger)
		},
	}
}

// serve runs srv until ctx is cancelled and then drains open requests.
func serve(ctx context.Context, srv *http.Server, logger *notesync.Logger) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.InfoContext(ctx, "serving documents", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// documentHandler serves whole documents addressed by URL path. PUT bodies
// must decode as a valid document.
type documentHandler struct {
	store    blobstore.Store
	codec    codec.Codec
	logger   *notesync.Logger
	requests *prometheus.CounterVec
}

func newDocumentHandler(store blobstore.Store, c codec.Codec, logger *notesync.Logger, reg prometheus.Registerer) *documentHandler {
	return &documentHandler{
		store:  store,
		codec:  c,
		logger: logger,
		requests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "notesync",
			Subsystem: "server",
			Name:      "requests_total",
			Help:      "Number of document requests by method and status code",
		}, []string{"method", "code"}),
	}
}

func (h *documentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	code := h.serve(w, r)
	h.requests.WithLabelValues(r.Method, strconv.Itoa(code)).Inc()
}

func (h *documentHandler) serve(w http.ResponseWriter, r *http.Request) int {
	key, err := transport.Key(r.URL.Path)
	if err != nil || key == "" {
		return h.fail(w, http.StatusBadRequest, "missing document key")
	}

	switch r.Method {
	case http.MethodGet:
		data, err := h.store.Get(r.Context(), key)
		if errors.Is(err, blobstore.ErrNotFound) {
			return h.fail(w, http.StatusNotFound, "document not found")
		}
		if err != nil {
			h.logger.ErrorContext(r.Context(), "get document", "key", key, "error", err)
			return h.fail(w, http.StatusInternalServerError, "read failed")
		}

		w.Header().Set("Content-Type", transport.ContentTypeJSON)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return http.StatusOK

	case http.MethodPut:
		data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDocumentBytes))
		if err != nil {
			return h.fail(w, http.StatusRequestEntityTooLarge, err.Error())
		}
		if _, err := codec.Decode(h.codec, data); err != nil {
			return h.fail(w, http.StatusBadRequest, err.Error())
		}
		if err := h.store.Put(r.Context(), key, data); err != nil {
			h.logger.ErrorContext(r.Context(), "put document", "key", key, "error", err)
			return h.fail(w, http.StatusInternalServerError, "write failed")
		}

		h.logger.DebugContext(r.Context(), "stored document", "key", key, "bytes", len(data))
		w.WriteHeader(http.StatusNoContent)
		return http.StatusNoContent

	default:
		w.Header().Set("Allow", "GET, PUT")
		return h.fail(w, http.StatusMethodNotAllowed, fmt.Sprintf("method %s not allowed", r.Method))
	}
}

func (h *documentHandler) fail(w http.ResponseWriter, code int, msg string) int {
	http.Error(w, msg, code)
	return code
}
