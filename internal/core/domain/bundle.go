package domain

import (
	"path"
	"strings"
	"time"
)

// BundleDefinition describes one servable bundle. It is immutable once loaded.
type BundleDefinition struct {
	// Key identifies the bundle. Lookups compare keys case-insensitively.
	Key string
	// URLPath is the request path the bundle is served under.
	URLPath string
	// SourceFiles are root-relative paths, concatenated in declaration order.
	SourceFiles []string
	// TTL is how long a built bundle stays cached. Zero means DefaultCacheTTL.
	TTL time.Duration
	// Minify enables minification of the concatenated output.
	Minify bool
	// IsStyleBundle overrides style/script classification when set.
	IsStyleBundle *bool
}

// CacheTTL returns the effective cache lifetime of the bundle.
func (d *BundleDefinition) CacheTTL() time.Duration {
	if d.TTL <= 0 {
		return DefaultCacheTTL
	}
	return d.TTL
}

// ResolveStyle reports whether the bundle is served as a style sheet.
// An explicit override wins. Otherwise a bundle is a style sheet when its URL
// ends in ".css" or when at least one source went through the style compiler.
func (d *BundleDefinition) ResolveStyle(compiledStyle bool) bool {
	if d.IsStyleBundle != nil {
		return *d.IsStyleBundle
	}
	return compiledStyle || strings.EqualFold(path.Ext(d.URLPath), ".css")
}

// CanonicalKey folds a bundle key to the form used for map lookups.
func CanonicalKey(key string) string {
	return strings.ToLower(key)
}

// Artifact is the output of a single bundle assembly.
type Artifact struct {
	// Content is the assembled bundle text.
	Content []byte
	// Style reports whether Content is a style sheet rather than a script.
	Style bool
	// Digest is the hex xxhash64 of Content.
	Digest string
	// Dependencies are root-relative paths pulled in through @import directives.
	Dependencies []string
	// BuiltAt is the time the assembly finished.
	BuiltAt time.Time
}

// ContentType returns the HTTP content type of the artifact.
func (a Artifact) ContentType() string {
	if a.Style {
		return "text/css; charset=utf-8"
	}
	return "application/javascript; charset=utf-8"
}

// Kind returns the content kind used to select a minifier.
func (a Artifact) Kind() ContentKind {
	if a.Style {
		return KindStyle
	}
	return KindScript
}

// CacheEntry is an artifact together with its expiry time.
type CacheEntry struct {
	Artifact  Artifact
	ExpiresAt time.Time
}

// Expired reports whether the entry is no longer servable at now.
func (e CacheEntry) Expired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}

// ManifestEntry describes one bundle written by a static build.
type ManifestEntry struct {
	Key     string `json:"key"`
	URLPath string `json:"urlPath"`
	File    string `json:"file"`
	Digest  string `json:"digest"`
	Size    int    `json:"size"`
	Style   bool   `json:"style"`
}
