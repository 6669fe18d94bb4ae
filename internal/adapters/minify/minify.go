// Package minify implements ports.Minifier on top of tdewolff/minify.
package minify

import (
	"context"
	"errors"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/js"
	"go.trai.ch/bundler/internal/core/domain"
	"go.trai.ch/bundler/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	mediaTypeStyle  = "text/css"
	mediaTypeScript = "application/javascript"
)

var _ ports.Minifier = (*Minifier)(nil)

// Minifier minifies CSS and JavaScript in process.
type Minifier struct {
	m *minify.M
}

// New creates a Minifier with the CSS and JavaScript minifiers registered.
func New() *Minifier {
	m := minify.New()
	m.AddFunc(mediaTypeStyle, css.Minify)
	m.AddFunc(mediaTypeScript, js.Minify)
	return &Minifier{m: m}
}

// Minify returns the minified form of text.
func (m *Minifier) Minify(ctx context.Context, text string, kind domain.ContentKind) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	mediaType := mediaTypeScript
	if kind == domain.KindStyle {
		mediaType = mediaTypeStyle
	}

	out, err := m.m.String(mediaType, text)
	if err != nil {
		return "", zerr.With(zerr.Wrap(errors.Join(domain.ErrMinifyFailed, err), "failed to minify"), "kind", kind.String())
	}
	return out, nil
}
