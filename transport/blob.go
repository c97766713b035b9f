package transport

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/hupe1980/notesync/blobstore"
)

// Blob serves requests from a blobstore.Store. The object key is the
// request URL's path without its leading slash.
type Blob struct {
	store blobstore.Store
}

// NewBlob creates a transport over store.
func NewBlob(store blobstore.Store) *Blob {
	return &Blob{store: store}
}

// Key returns the object key a URL maps to.
func Key(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	p := u.Path
	if p == "" {
		p = u.Opaque
	}
	return strings.TrimPrefix(p, "/"), nil
}

// Do executes a GET or PUT against the store.
func (b *Blob) Do(ctx context.Context, req *Request) (*Response, error) {
	ctx, cancel := withTimeout(ctx, req)
	defer cancel()

	key, err := Key(req.URL)
	if err != nil || key == "" {
		return status(http.StatusBadRequest)
	}

	switch req.Method {
	case http.MethodGet:
		data, err := b.store.Get(ctx, key)
		if errors.Is(err, blobstore.ErrNotFound) {
			return status(http.StatusNotFound)
		}
		if err != nil {
			return nil, b.classify(ctx, err)
		}
		return &Response{StatusCode: http.StatusOK, Body: data}, nil
	case http.MethodPut:
		if err := b.store.Put(ctx, key, req.Body); err != nil {
			return nil, b.classify(ctx, err)
		}
		return &Response{StatusCode: http.StatusNoContent}, nil
	default:
		return status(http.StatusMethodNotAllowed)
	}
}

func (b *Blob) classify(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return Classify(ctxErr)
	}
	return Classify(err)
}

func status(code int) (*Response, error) {
	return &Response{StatusCode: code}, &ErrHTTPStatus{StatusCode: code}
}
