package httpd_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bundler/internal/adapters/httpd"
	"go.trai.ch/bundler/internal/core/domain"
	"go.trai.ch/bundler/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type handlerFixture struct {
	handler  *httpd.BundleHandler
	provider *mocks.MockBundleProvider
	logger   *mocks.MockLogger
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	reg, err := domain.NewRegistry(
		domain.BundleDefinition{Key: "app", URLPath: "/scripts/app.js", SourceFiles: []string{"a.js"}, TTL: 10 * time.Minute},
		domain.BundleDefinition{Key: "site", URLPath: "/content/site.css", SourceFiles: []string{"site.less"}},
	)
	require.NoError(t, err)

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	f := &handlerFixture{
		provider: mocks.NewMockBundleProvider(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
	}
	f.handler = httpd.NewBundleHandler(reg, f.provider, f.logger, next)
	f.handler.SetNow(func() time.Time { return fixedNow })
	return f
}

func (f *handlerFixture) do(method, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func TestBundleHandler_ServesScript(t *testing.T) {
	f := newHandlerFixture(t)
	body := "console.log(1);\nconsole.log(2);\n"
	f.provider.EXPECT().GetBundle(gomock.Any(), "app").
		Return(domain.Artifact{Content: []byte(body), Digest: "abc123"}, nil)

	rec := f.do(http.MethodGet, "/scripts/app.js", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, body, rec.Body.String())
	assert.Equal(t, "application/javascript; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=600", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "Sun, 01 Mar 2026 12:10:00 GMT", rec.Header().Get("Expires"))
	assert.Equal(t, "32", rec.Header().Get("Content-Length"))
	assert.Equal(t, `"abc123"`, rec.Header().Get("ETag"))
}

func TestBundleHandler_StyleDefaultTTL(t *testing.T) {
	f := newHandlerFixture(t)
	f.provider.EXPECT().GetBundle(gomock.Any(), "site").
		Return(domain.Artifact{Content: []byte(".a{}"), Style: true}, nil)

	rec := f.do(http.MethodGet, "/CONTENT/Site.css", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/css; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=300", rec.Header().Get("Cache-Control"))
	assert.Empty(t, rec.Header().Get("ETag"))
}

func TestBundleHandler_Head(t *testing.T) {
	f := newHandlerFixture(t)
	f.provider.EXPECT().GetBundle(gomock.Any(), "app").
		Return(domain.Artifact{Content: []byte("x();")}, nil)

	rec := f.do(http.MethodHead, "/scripts/app.js", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, "4", rec.Header().Get("Content-Length"))
}

func TestBundleHandler_NotModified(t *testing.T) {
	tests := []struct {
		name        string
		ifNoneMatch string
		want        int
	}{
		{name: "exact", ifNoneMatch: `"abc123"`, want: http.StatusNotModified},
		{name: "weak in list", ifNoneMatch: `"zzz", W/"abc123"`, want: http.StatusNotModified},
		{name: "wildcard", ifNoneMatch: "*", want: http.StatusNotModified},
		{name: "stale", ifNoneMatch: `"old"`, want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newHandlerFixture(t)
			f.provider.EXPECT().GetBundle(gomock.Any(), "app").
				Return(domain.Artifact{Content: []byte("x();"), Digest: "abc123"}, nil)

			rec := f.do(http.MethodGet, "/scripts/app.js", http.Header{"If-None-Match": {tt.ifNoneMatch}})
			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusNotModified {
				assert.Empty(t, rec.Body.String())
			}
		})
	}
}

func TestBundleHandler_FallsThrough(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(http.MethodGet, "/scripts/other.js", nil)
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestBundleHandler_MethodNotAllowed(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(http.MethodPost, "/scripts/app.js", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET, HEAD", rec.Header().Get("Allow"))
}

func TestBundleHandler_EmptyBundle(t *testing.T) {
	f := newHandlerFixture(t)
	f.provider.EXPECT().GetBundle(gomock.Any(), "app").Return(domain.Artifact{}, nil)

	rec := f.do(http.MethodGet, "/scripts/app.js", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBundleHandler_Errors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		want     int
		logError bool
	}{
		{
			name: "not found",
			err:  zerr.Wrap(domain.ErrBundleNotFound, "app"),
			want: http.StatusNotFound,
		},
		{
			name:     "compile failure",
			err:      zerr.Wrap(errors.Join(domain.ErrStyleCompileFailed, errors.New("line 1")), "site.less"),
			want:     http.StatusInternalServerError,
			logError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newHandlerFixture(t)
			f.provider.EXPECT().GetBundle(gomock.Any(), "app").Return(domain.Artifact{}, tt.err)
			if tt.logError {
				f.logger.EXPECT().Error(tt.err).Times(1)
			}

			rec := f.do(http.MethodGet, "/scripts/app.js", nil)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestBundleHandler_ClientGone(t *testing.T) {
	f := newHandlerFixture(t)
	f.provider.EXPECT().GetBundle(gomock.Any(), "app").Return(domain.Artifact{}, context.Canceled)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	req := httptest.NewRequestWithContext(ctx, http.MethodGet, "/scripts/app.js", nil)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Empty(t, rec.Body.String())
}

func TestNewBundleHandler_NilNext(t *testing.T) {
	reg, err := domain.NewRegistry()
	require.NoError(t, err)
	h := httpd.NewBundleHandler(reg, nil, nil, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing.js", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
