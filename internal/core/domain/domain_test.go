package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bundler/internal/core/domain"
)

func boolPtr(b bool) *bool { return &b }

func TestBundleDefinition_CacheTTL(t *testing.T) {
	def := domain.BundleDefinition{Key: "app"}
	assert.Equal(t, domain.DefaultCacheTTL, def.CacheTTL())

	def.TTL = 30 * time.Second
	assert.Equal(t, 30*time.Second, def.CacheTTL())
}

func TestBundleDefinition_ResolveStyle(t *testing.T) {
	tests := []struct {
		name     string
		def      domain.BundleDefinition
		compiled bool
		want     bool
	}{
		{name: "script url", def: domain.BundleDefinition{URLPath: "/js/app.js"}, want: false},
		{name: "css url", def: domain.BundleDefinition{URLPath: "/css/site.CSS"}, want: true},
		{name: "compiled style source", def: domain.BundleDefinition{URLPath: "/bundle"}, compiled: true, want: true},
		{
			name: "override wins over url",
			def:  domain.BundleDefinition{URLPath: "/css/site.css", IsStyleBundle: boolPtr(false)},
			want: false,
		},
		{
			name:     "override wins over compiled source",
			def:      domain.BundleDefinition{URLPath: "/x", IsStyleBundle: boolPtr(false)},
			compiled: true,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.def.ResolveStyle(tt.compiled))
		})
	}
}

func TestCacheEntry_Expired(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	entry := domain.CacheEntry{ExpiresAt: now}

	assert.False(t, entry.Expired(now.Add(-time.Nanosecond)))
	assert.True(t, entry.Expired(now))
	assert.True(t, entry.Expired(now.Add(time.Second)))
}

func TestArtifact_ContentType(t *testing.T) {
	assert.Equal(t, "text/css; charset=utf-8", domain.Artifact{Style: true}.ContentType())
	assert.Equal(t, "application/javascript; charset=utf-8", domain.Artifact{}.ContentType())
	assert.Equal(t, domain.KindStyle, domain.Artifact{Style: true}.Kind())
	assert.Equal(t, "script", domain.Artifact{}.Kind().String())
}

func TestRegistry_Lookup(t *testing.T) {
	reg, err := domain.NewRegistry(
		domain.BundleDefinition{Key: "App", URLPath: "/scripts/App.js", SourceFiles: []string{"a.js"}},
		domain.BundleDefinition{Key: "site", URLPath: "/css/site.css"},
	)
	require.NoError(t, err)
	assert.Equal(t, 2, reg.Len())

	def, ok := reg.Lookup("APP")
	require.True(t, ok)
	assert.Equal(t, "App", def.Key)

	def, ok = reg.LookupURL("/SCRIPTS/app.js")
	require.True(t, ok)
	assert.Equal(t, "App", def.Key)

	_, ok = reg.Lookup("missing")
	assert.False(t, ok)

	var keys []string
	for key := range reg.All() {
		keys = append(keys, key)
	}
	assert.Equal(t, []string{"app", "site"}, keys)
}

func TestRegistry_Duplicates(t *testing.T) {
	_, err := domain.NewRegistry(
		domain.BundleDefinition{Key: "app"},
		domain.BundleDefinition{Key: "APP"},
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDuplicateBundleKey))

	_, err = domain.NewRegistry(
		domain.BundleDefinition{Key: "a", URLPath: "/x.js"},
		domain.BundleDefinition{Key: "b", URLPath: "/X.js"},
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDuplicateURLPath))

	_, err = domain.NewRegistry(domain.BundleDefinition{Key: "  "})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidBundle))
}

func TestRegistry_CopiesSourceFiles(t *testing.T) {
	sources := []string{"a.js", "b.js"}
	reg, err := domain.NewRegistry(domain.BundleDefinition{Key: "app", SourceFiles: sources})
	require.NoError(t, err)

	sources[0] = "changed.js"
	def, _ := reg.Lookup("app")
	assert.Equal(t, []string{"a.js", "b.js"}, def.SourceFiles)
}

func TestNormalizeSourcePath(t *testing.T) {
	tests := map[string]string{
		"js/a.js":        "js/a.js",
		"/js/a.js":       "js/a.js",
		"~/js/a.js":      "js/a.js",
		`js\sub\b.js`:    "js/sub/b.js",
		"js/./x/../a.js": "js/a.js",
		"":               "",
	}
	for in, want := range tests {
		assert.Equal(t, want, domain.NormalizeSourcePath(in), in)
	}
}

func TestWatchIndex_Affected(t *testing.T) {
	reg, err := domain.NewRegistry(
		domain.BundleDefinition{Key: "app", SourceFiles: []string{"js/a.js", "js/shared.js"}},
		domain.BundleDefinition{Key: "admin", SourceFiles: []string{"~/js/shared.js"}},
		domain.BundleDefinition{Key: "site", SourceFiles: []string{"css/site.less"}},
	)
	require.NoError(t, err)

	idx := domain.NewWatchIndex(reg)

	assert.Equal(t, []string{"app"}, idx.Affected("js/a.js"))
	assert.Equal(t, []string{"admin", "app"}, idx.Affected("/JS/Shared.js"))
	assert.Empty(t, idx.Affected("css/vars.less"))

	idx.Track("SITE", []string{"css/vars.less", "css/mixins.less"})
	assert.Equal(t, []string{"site"}, idx.Affected("css/vars.less"))
	assert.Equal(t, []string{"site"}, idx.Affected("css/mixins.less"))

	// A rebuild that no longer imports mixins.less drops the edge.
	idx.Track("site", []string{"css/vars.less"})
	assert.Empty(t, idx.Affected("css/mixins.less"))
	assert.Equal(t, []string{"site"}, idx.Affected("css/site.less"))
}

func TestCompileOptions_WithIncludePath(t *testing.T) {
	base := domain.DefaultCompileOptions()
	base.IncludePaths = []string{"/shared"}
	base.GlobalVars = map[string]string{"b": "2", "a": "1"}

	opts := base.WithIncludePath("/root/css")
	assert.Equal(t, []string{"/root/css", "/shared"}, opts.IncludePaths)
	assert.Equal(t, []string{"/shared"}, base.IncludePaths)
	assert.Equal(t, []string{"a", "b"}, domain.SortedVars(opts.GlobalVars))

	opts.GlobalVars["c"] = "3"
	assert.NotContains(t, base.GlobalVars, "c")
}
