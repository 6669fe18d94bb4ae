// Package assembler builds bundle content from ordered source files.
package assembler

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/bundler/internal/core/domain"
	"go.trai.ch/bundler/internal/core/ports"
	"go.trai.ch/bundler/internal/metrics"
	"go.trai.ch/zerr"
)

var _ ports.BundleAssembler = (*Assembler)(nil)

// Options configures an Assembler.
type Options struct {
	// Compile holds the base style compiler settings. Each compiled file gets
	// its own directory prepended to IncludePaths.
	Compile domain.CompileOptions
	// ImportScope selects how repeated imports are suppressed.
	ImportScope domain.ImportScope
}

// Assembler concatenates, compiles and minifies bundle sources below a root directory.
type Assembler struct {
	root     string
	fs       ports.FileSystem
	compiler ports.StyleCompiler
	minifier ports.Minifier
	logger   ports.Logger
	tracer   ports.Tracer
	inliner  *Inliner
	compile  domain.CompileOptions
}

// New creates an Assembler reading sources below root.
func New(
	root string,
	fsys ports.FileSystem,
	compiler ports.StyleCompiler,
	minifier ports.Minifier,
	logger ports.Logger,
	tracer ports.Tracer,
	opts Options,
) *Assembler {
	return &Assembler{
		root:     filepath.Clean(root),
		fs:       fsys,
		compiler: compiler,
		minifier: minifier,
		logger:   logger,
		tracer:   tracer,
		inliner:  NewInliner(fsys, logger, opts.ImportScope),
		compile:  opts.Compile,
	}
}

// sourcePart is the processed text of one source file.
type sourcePart struct {
	text  string
	style bool
	deps  []string
}

// Assemble builds def. Missing sources are skipped with a warning; a read or
// compile failure fails the whole bundle. Each source contributes its text
// followed by a newline, in declaration order.
func (a *Assembler) Assemble(ctx context.Context, def *domain.BundleDefinition) (domain.Artifact, error) {
	ctx, span := a.tracer.Start(ctx, "assemble "+def.Key,
		ports.WithAttribute("bundle.key", def.Key),
		ports.WithAttribute("bundle.sources", len(def.SourceFiles)),
	)
	defer span.End()

	var (
		b             strings.Builder
		compiledStyle bool
		deps          []string
	)

	for _, src := range def.SourceFiles {
		part, err := a.assembleSource(ctx, src)
		if err != nil {
			if errors.Is(err, domain.ErrSourceFileMissing) {
				a.logger.Warn(fmt.Sprintf("bundle %s: %v", def.Key, err))
				continue
			}
			err = zerr.Wrap(err, "failed to assemble bundle "+def.Key)
			span.RecordError(err)
			return domain.Artifact{}, err
		}

		compiledStyle = compiledStyle || part.style
		deps = append(deps, part.deps...)
		b.WriteString(part.text)
		b.WriteByte('\n')
	}

	style := def.ResolveStyle(compiledStyle)
	content := b.String()
	if def.Minify && content != "" {
		content = a.minify(ctx, def, content, style, span)
	}

	slices.Sort(deps)
	deps = slices.Compact(deps)

	span.SetAttribute("bundle.bytes", len(content))
	span.SetAttribute("bundle.style", style)

	return domain.Artifact{
		Content:      []byte(content),
		Style:        style,
		Digest:       Digest([]byte(content)),
		Dependencies: deps,
		BuiltAt:      time.Now(),
	}, nil
}

func (a *Assembler) assembleSource(ctx context.Context, src string) (sourcePart, error) {
	rel := domain.NormalizeSourcePath(src)
	abs := filepath.Join(a.root, filepath.FromSlash(rel))

	data, err := a.fs.ReadFile(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return sourcePart{}, zerr.With(zerr.Wrap(domain.ErrSourceFileMissing, rel), "path", abs)
		}
		return sourcePart{}, zerr.Wrap(errors.Join(domain.ErrSourceReadFailed, err), rel)
	}

	if !strings.EqualFold(filepath.Ext(rel), domain.StyleExtension) {
		return sourcePart{text: string(data)}, nil
	}
	return a.compileStyle(ctx, rel, abs, string(data))
}

func (a *Assembler) compileStyle(ctx context.Context, rel, abs, text string) (sourcePart, error) {
	inlined, imported := a.inliner.Inline(text, abs)

	opts := a.compile.WithIncludePath(filepath.Dir(abs))
	res, err := a.compiler.Compile(ctx, inlined, "/"+rel, opts)
	if err != nil {
		metrics.StyleCompilations.WithLabelValues("error").Inc()
		return sourcePart{}, zerr.Wrap(errors.Join(domain.ErrStyleCompileFailed, err), rel)
	}
	metrics.StyleCompilations.WithLabelValues("ok").Inc()

	return sourcePart{
		text:  res.CSS,
		style: true,
		deps:  a.relativeDeps(append(imported, res.IncludedPaths...)),
	}, nil
}

func (a *Assembler) minify(
	ctx context.Context,
	def *domain.BundleDefinition,
	content string,
	style bool,
	span ports.Span,
) string {
	kind := domain.KindScript
	if style {
		kind = domain.KindStyle
	}

	out, err := a.minifier.Minify(ctx, content, kind)
	if err != nil {
		err = zerr.Wrap(errors.Join(domain.ErrMinifyFailed, err), def.Key)
		a.logger.Warn(fmt.Sprintf("serving unminified %s bundle %s: %v", kind, def.Key, err))
		metrics.MinifyFailed.WithLabelValues(domain.CanonicalKey(def.Key)).Inc()
		span.SetAttribute("bundle.minify_failed", true)
		return content
	}
	return out
}

// relativeDeps converts absolute paths to root-relative slash paths, dropping
// anything outside the root.
func (a *Assembler) relativeDeps(paths []string) []string {
	deps := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(a.root, p)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		deps = append(deps, filepath.ToSlash(rel))
	}
	return deps
}

// Digest returns the hex xxhash64 of content.
func Digest(content []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(content))
}
