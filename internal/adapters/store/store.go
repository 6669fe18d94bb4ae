// Package store writes statically built bundles and their manifest to disk.
package store

import (
	"encoding/json"
	"errors"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/bundler/internal/core/domain"
	"go.trai.ch/bundler/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ArtifactStore = (*Store)(nil)

// Manifest is the document written to manifest.json.
type Manifest struct {
	Bundles []domain.ManifestEntry `json:"bundles"`
}

// Store implements ports.ArtifactStore on the local file system.
type Store struct{}

// NewStore creates a Store.
func NewStore() *Store {
	return &Store{}
}

// Put writes the artifact to outDir at the bundle's URL path.
func (s *Store) Put(outDir string, def *domain.BundleDefinition, artifact domain.Artifact) (domain.ManifestEntry, error) {
	rel, err := artifactPath(def)
	if err != nil {
		return domain.ManifestEntry{}, err
	}

	filename := filepath.Join(outDir, filepath.FromSlash(rel))
	if err := writeFile(filename, artifact.Content); err != nil {
		return domain.ManifestEntry{}, zerr.With(
			zerr.Wrap(errors.Join(domain.ErrArtifactWriteFailed, err), def.Key),
			"path", filename,
		)
	}

	return domain.ManifestEntry{
		Key:     def.Key,
		URLPath: def.URLPath,
		File:    rel,
		Digest:  artifact.Digest,
		Size:    len(artifact.Content),
		Style:   artifact.Style,
	}, nil
}

// WriteManifest writes manifest.json to outDir with entries sorted by key.
func (s *Store) WriteManifest(outDir string, entries []domain.ManifestEntry) error {
	sorted := slices.Clone(entries)
	slices.SortFunc(sorted, func(a, b domain.ManifestEntry) int {
		return strings.Compare(domain.CanonicalKey(a.Key), domain.CanonicalKey(b.Key))
	})
	if sorted == nil {
		sorted = []domain.ManifestEntry{}
	}

	data, err := json.MarshalIndent(Manifest{Bundles: sorted}, "", "  ")
	if err != nil {
		return zerr.Wrap(errors.Join(domain.ErrManifestWriteFailed, err), "failed to encode manifest")
	}

	filename := filepath.Join(outDir, domain.ManifestFileName)
	if err := writeFile(filename, append(data, '\n')); err != nil {
		return zerr.With(zerr.Wrap(errors.Join(domain.ErrManifestWriteFailed, err), filename), "path", filename)
	}
	return nil
}

// ReadManifest loads the manifest previously written to outDir.
func ReadManifest(outDir string) (*Manifest, error) {
	filename := filepath.Join(outDir, domain.ManifestFileName)
	//nolint:gosec // Path is built from the caller's output directory
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read manifest")
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, zerr.Wrap(err, "failed to decode manifest")
	}
	return &m, nil
}

// artifactPath maps a bundle's URL path onto a slash-separated file path
// relative to the output directory.
func artifactPath(def *domain.BundleDefinition) (string, error) {
	rel := strings.TrimPrefix(path.Clean("/"+def.URLPath), "/")
	if rel == "" || rel == domain.ManifestFileName {
		return "", zerr.Wrap(domain.ErrArtifactWriteFailed, "bundle "+def.Key+" has no file name in its url path")
	}
	return rel, nil
}

// writeFile writes data through a temporary file so readers never see a partial bundle.
func writeFile(filename string, data []byte) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(filename)+".*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(domain.FilePerm); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), filename)
}
