package domain

import (
	"iter"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Registry is the immutable set of bundle definitions, indexed by key and URL path.
type Registry struct {
	byKey map[string]*BundleDefinition
	byURL map[string]*BundleDefinition
	keys  []string
}

// NewRegistry validates defs and indexes them.
func NewRegistry(defs ...BundleDefinition) (*Registry, error) {
	r := &Registry{
		byKey: make(map[string]*BundleDefinition, len(defs)),
		byURL: make(map[string]*BundleDefinition, len(defs)),
		keys:  make([]string, 0, len(defs)),
	}

	for i := range defs {
		def := defs[i]
		def.SourceFiles = slices.Clone(def.SourceFiles)

		if strings.TrimSpace(def.Key) == "" {
			return nil, zerr.Wrap(ErrInvalidBundle, "bundle key is empty")
		}
		key := CanonicalKey(def.Key)
		if _, exists := r.byKey[key]; exists {
			return nil, zerr.Wrap(ErrDuplicateBundleKey, def.Key)
		}

		if def.URLPath != "" {
			url := strings.ToLower(def.URLPath)
			if other, exists := r.byURL[url]; exists {
				return nil, zerr.Wrap(ErrDuplicateURLPath, def.URLPath+" (also used by "+other.Key+")")
			}
			r.byURL[url] = &def
		}

		r.byKey[key] = &def
		r.keys = append(r.keys, key)
	}

	slices.Sort(r.keys)
	return r, nil
}

// Lookup returns the definition registered under key, ignoring case.
func (r *Registry) Lookup(key string) (*BundleDefinition, bool) {
	def, ok := r.byKey[CanonicalKey(key)]
	return def, ok
}

// LookupURL returns the definition served under the request path p, ignoring case.
func (r *Registry) LookupURL(p string) (*BundleDefinition, bool) {
	def, ok := r.byURL[strings.ToLower(p)]
	return def, ok
}

// All yields every definition ordered by canonical key.
func (r *Registry) All() iter.Seq2[string, *BundleDefinition] {
	return func(yield func(string, *BundleDefinition) bool) {
		for _, key := range r.keys {
			if !yield(key, r.byKey[key]) {
				return
			}
		}
	}
}

// Len returns the number of registered bundles.
func (r *Registry) Len() int {
	return len(r.keys)
}
