package ports

import "go.trai.ch/bundler/internal/core/domain"

// ArtifactStore persists statically built bundles.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ArtifactStore interface {
	// Put writes artifact below outDir at the bundle's URL path and returns its manifest entry.
	Put(outDir string, def *domain.BundleDefinition, artifact domain.Artifact) (domain.ManifestEntry, error)
	// WriteManifest writes the manifest describing every bundle in entries.
	WriteManifest(outDir string, entries []domain.ManifestEntry) error
}
