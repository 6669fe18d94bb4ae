package ports

import (
	"context"

	"go.trai.ch/bundler/internal/core/domain"
)

// Minifier shrinks script or style text.
//
//go:generate mockgen -source=minifier.go -destination=mocks/mock_minifier.go -package=mocks
type Minifier interface {
	// Minify returns the minified form of text.
	Minify(ctx context.Context, text string, kind domain.ContentKind) (string, error)
}
