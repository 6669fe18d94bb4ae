package assembler

import (
	"fmt"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/bundler/internal/core/domain"
	"go.trai.ch/bundler/internal/core/ports"
	"go.trai.ch/zerr"
)

// Inliner replaces @import directives with the contents of the imported files.
type Inliner struct {
	fs     ports.FileSystem
	logger ports.Logger
	scope  domain.ImportScope
}

// NewInliner creates an Inliner. An empty scope means domain.ImportScopeCall.
func NewInliner(fsys ports.FileSystem, logger ports.Logger, scope domain.ImportScope) *Inliner {
	if scope == "" {
		scope = domain.ImportScopeCall
	}
	return &Inliner{fs: fsys, logger: logger, scope: scope}
}

// Inline expands every @import in text, which is the content of the file at
// filePath. Imports resolve relative to the importing file. A file already
// visited expands to nothing, and so does a missing file (with a warning).
// Remote references are kept as written.
//
// The returned paths are every local file referenced, sorted, including
// missing ones so their later creation can be noticed.
func (in *Inliner) Inline(text, filePath string) (string, []string) {
	filePath = filepath.Clean(filePath)
	visited := map[string]struct{}{filePath: {}}
	refs := make(map[string]struct{})

	out := in.expand(text, filepath.Dir(filePath), visited, refs)

	deps := make([]string, 0, len(refs))
	for p := range refs {
		deps = append(deps, p)
	}
	slices.Sort(deps)
	return out, deps
}

func (in *Inliner) expand(text, baseDir string, visited, refs map[string]struct{}) string {
	var b strings.Builder
	b.Grow(len(text))

	pos := 0
	for {
		d, ok := nextImport(text, pos)
		if !ok {
			b.WriteString(text[pos:])
			return b.String()
		}

		b.WriteString(text[pos:d.start])
		pos = d.end

		if isRemoteRef(d.ref) {
			b.WriteString(text[d.start:d.end])
			continue
		}
		b.WriteString(in.importFile(d.ref, baseDir, visited, refs))
	}
}

func (in *Inliner) importFile(ref, baseDir string, visited, refs map[string]struct{}) string {
	target := resolveImport(ref, baseDir)
	refs[target] = struct{}{}

	if _, seen := visited[target]; seen {
		return ""
	}

	data, err := in.fs.ReadFile(target)
	if err != nil {
		err = zerr.With(zerr.Wrap(domain.ErrImportNotFound, ref), "path", target)
		in.logger.Warn(fmt.Sprintf("skipping @import %q: %v", ref, err))
		return ""
	}

	visited[target] = struct{}{}
	out := in.expand(string(data), filepath.Dir(target), visited, refs)
	if in.scope == domain.ImportScopeBranch {
		delete(visited, target)
	}
	return out
}

// resolveImport turns an import reference into an absolute path. References
// without an extension get the style extension appended.
func resolveImport(ref, baseDir string) string {
	ref = strings.ReplaceAll(ref, "\\", "/")
	if path.Ext(ref) == "" {
		ref += domain.StyleExtension
	}
	if strings.HasPrefix(ref, "/") {
		return filepath.Clean(filepath.FromSlash(ref))
	}
	return filepath.Clean(filepath.Join(baseDir, filepath.FromSlash(ref)))
}
