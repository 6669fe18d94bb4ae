// Package httpd serves bundles over HTTP and exposes health and metrics endpoints.
package httpd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.trai.ch/bundler/internal/core/domain"
	"go.trai.ch/bundler/internal/core/ports"
)

// BundleHandler answers requests whose path matches a bundle URL and hands
// every other request to next.
type BundleHandler struct {
	registry *domain.Registry
	provider ports.BundleProvider
	logger   ports.Logger
	next     http.Handler
	now      func() time.Time
}

// NewBundleHandler creates a BundleHandler. A nil next answers unmatched paths with 404.
func NewBundleHandler(
	registry *domain.Registry,
	provider ports.BundleProvider,
	logger ports.Logger,
	next http.Handler,
) *BundleHandler {
	if next == nil {
		next = http.NotFoundHandler()
	}
	return &BundleHandler{
		registry: registry,
		provider: provider,
		logger:   logger,
		next:     next,
		now:      time.Now,
	}
}

func (h *BundleHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	def, ok := h.registry.LookupURL(r.URL.Path)
	if !ok {
		h.next.ServeHTTP(w, r)
		return
	}

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	artifact, err := h.provider.GetBundle(r.Context(), def.Key)
	if err != nil {
		h.fail(w, r, def.Key, err)
		return
	}
	if len(artifact.Content) == 0 {
		http.NotFound(w, r)
		return
	}

	ttl := def.CacheTTL()
	header := w.Header()
	header.Set("Content-Type", artifact.ContentType())
	header.Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int64(ttl/time.Second)))
	header.Set("Expires", h.now().Add(ttl).UTC().Format(http.TimeFormat))

	etag := `"` + artifact.Digest + `"`
	if artifact.Digest != "" {
		header.Set("ETag", etag)
		if etagMatches(r.Header.Get("If-None-Match"), etag) {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}

	header.Set("Content-Length", strconv.Itoa(len(artifact.Content)))
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(artifact.Content)
}

func (h *BundleHandler) fail(w http.ResponseWriter, r *http.Request, key string, err error) {
	switch {
	case errors.Is(err, domain.ErrBundleNotFound):
		http.NotFound(w, r)
	case errors.Is(err, context.Canceled) && r.Context().Err() != nil:
		// The client went away; nobody is left to answer.
	default:
		if h.logger != nil {
			h.logger.Error(err)
		}
		http.Error(w, "failed to build bundle "+key, http.StatusInternalServerError)
	}
}

// etagMatches reports whether an If-None-Match header value names etag.
func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	for candidate := range strings.SplitSeq(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
