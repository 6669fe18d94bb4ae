package domain

import (
	"path"
	"slices"
	"strings"
	"sync"
)

// NormalizeSourcePath converts a source reference into the root-relative,
// forward-slash form used throughout the bundler. Leading "~" and "/" are
// dropped so "~/js/a.js", "/js/a.js" and "js/a.js" name the same file.
func NormalizeSourcePath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.TrimLeft(p, "~/")
	if p == "" {
		return ""
	}
	return path.Clean(p)
}

func indexKey(p string) string {
	return strings.ToLower(NormalizeSourcePath(p))
}

// WatchIndex maps source paths to the bundle keys that depend on them.
// Declared sources are fixed at construction; @import dependencies are
// replaced each time a bundle is rebuilt through Track.
type WatchIndex struct {
	mu      sync.RWMutex
	static  map[string]map[string]struct{}
	dynamic map[string]map[string]struct{}
	tracked map[string][]string
}

// NewWatchIndex builds the index from the declared sources of every bundle in reg.
func NewWatchIndex(reg *Registry) *WatchIndex {
	w := &WatchIndex{
		static:  make(map[string]map[string]struct{}),
		dynamic: make(map[string]map[string]struct{}),
		tracked: make(map[string][]string),
	}
	for key, def := range reg.All() {
		for _, src := range def.SourceFiles {
			addEdge(w.static, indexKey(src), key)
		}
	}
	return w
}

// Track records the dependencies discovered while building the bundle key,
// replacing whatever was recorded for it before.
func (w *WatchIndex) Track(key string, deps []string) {
	key = CanonicalKey(key)

	w.mu.Lock()
	defer w.mu.Unlock()

	for _, old := range w.tracked[key] {
		if keys, ok := w.dynamic[old]; ok {
			delete(keys, key)
			if len(keys) == 0 {
				delete(w.dynamic, old)
			}
		}
	}

	normalized := make([]string, 0, len(deps))
	for _, dep := range deps {
		k := indexKey(dep)
		if k == "" {
			continue
		}
		normalized = append(normalized, k)
		addEdge(w.dynamic, k, key)
	}
	w.tracked[key] = normalized
}

// Affected returns the sorted bundle keys that depend on the file at p.
func (w *WatchIndex) Affected(p string) []string {
	k := indexKey(p)

	w.mu.RLock()
	defer w.mu.RUnlock()

	var keys []string
	for key := range w.static[k] {
		keys = append(keys, key)
	}
	for key := range w.dynamic[k] {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return slices.Compact(keys)
}

func addEdge(m map[string]map[string]struct{}, p, key string) {
	keys, ok := m[p]
	if !ok {
		keys = make(map[string]struct{})
		m[p] = keys
	}
	keys[key] = struct{}{}
}
