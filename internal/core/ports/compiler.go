package ports

import (
	"context"

	"go.trai.ch/bundler/internal/core/domain"
)

// StyleCompiler compiles style-language source text to CSS.
//
//go:generate mockgen -source=compiler.go -destination=mocks/mock_compiler.go -package=mocks
type StyleCompiler interface {
	// Compile compiles source. virtualPath is the root-relative path of the file,
	// used in diagnostics and relative url() rewriting.
	Compile(ctx context.Context, source, virtualPath string, opts domain.CompileOptions) (domain.CompileResult, error)
}
