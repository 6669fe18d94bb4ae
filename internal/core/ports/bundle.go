package ports

import (
	"context"
	"time"

	"go.trai.ch/bundler/internal/core/domain"
)

//go:generate mockgen -source=bundle.go -destination=mocks/mock_bundle.go -package=mocks

// BundleAssembler produces an artifact from a bundle definition.
type BundleAssembler interface {
	// Assemble reads, compiles and concatenates the sources of def.
	Assemble(ctx context.Context, def *domain.BundleDefinition) (domain.Artifact, error)
}

// BundleProvider returns built bundles, from cache or by building them.
type BundleProvider interface {
	// GetBundle returns the artifact for key.
	GetBundle(ctx context.Context, key string) (domain.Artifact, error)
}

// BundleInvalidator drops cached state for a bundle.
type BundleInvalidator interface {
	// Invalidate removes any cached artifact and in-flight build slot for key.
	Invalidate(key string)
}

// BundleCache stores built artifacts with a time-to-live.
type BundleCache interface {
	// TryGet returns the live artifact for key.
	TryGet(key string) (domain.Artifact, bool)
	// Set stores artifact under key until ttl elapses.
	Set(key string, artifact domain.Artifact, ttl time.Duration)
	// Invalidate removes key.
	Invalidate(key string)
	// Epoch returns a counter that changes whenever key is invalidated.
	Epoch(key string) uint64
	// SetAt stores artifact only if key has not been invalidated since epoch was read.
	SetAt(key string, artifact domain.Artifact, ttl time.Duration, epoch uint64) bool
}
