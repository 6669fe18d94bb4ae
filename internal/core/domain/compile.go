package domain

import (
	"maps"
	"slices"
)

// ContentKind distinguishes script and style text for minification.
type ContentKind uint8

const (
	// KindScript is JavaScript text.
	KindScript ContentKind = iota
	// KindStyle is CSS text.
	KindStyle
)

// String returns the lowercase name of the kind.
func (k ContentKind) String() string {
	if k == KindStyle {
		return "style"
	}
	return "script"
}

// StyleExtension is the file extension routed through the style compiler.
const StyleExtension = ".less"

// MathMode controls how the style compiler evaluates arithmetic.
type MathMode string

const (
	// MathStrict only evaluates math inside parentheses.
	MathStrict MathMode = "strict"
	// MathLoose evaluates math everywhere.
	MathLoose MathMode = "loose"
)

// LineNumbersMode controls source line annotations in compiled output.
type LineNumbersMode string

const (
	// LineNumbersNone disables line annotations.
	LineNumbersNone LineNumbersMode = "none"
	// LineNumbersComments emits annotations as comments.
	LineNumbersComments LineNumbersMode = "comments"
	// LineNumbersMediaQuery emits annotations as debug media queries.
	LineNumbersMediaQuery LineNumbersMode = "mediaquery"
)

// ImportScope controls how widely the import inliner suppresses repeated files.
type ImportScope string

const (
	// ImportScopeCall inlines every file at most once per top-level source.
	ImportScopeCall ImportScope = "call"
	// ImportScopeBranch only skips files that are ancestors of the current import,
	// so cycles terminate but shared partials are inlined at every occurrence.
	ImportScopeBranch ImportScope = "branch"
)

// CompileOptions are passed to the style compiler for every compiled source.
type CompileOptions struct {
	IncludePaths      []string
	Math              MathMode
	StrictUnits       bool
	DumpLineNumbers   LineNumbersMode
	JavascriptEnabled bool
	GlobalVars        map[string]string
	ModifyVars        map[string]string
}

// DefaultCompileOptions returns the compiler settings used when none are configured.
func DefaultCompileOptions() CompileOptions {
	return CompileOptions{
		Math:              MathLoose,
		StrictUnits:       false,
		DumpLineNumbers:   LineNumbersNone,
		JavascriptEnabled: true,
	}
}

// WithIncludePath returns a copy of o with dir placed first in the include paths.
func (o CompileOptions) WithIncludePath(dir string) CompileOptions {
	out := o
	out.IncludePaths = append([]string{dir}, o.IncludePaths...)
	out.GlobalVars = maps.Clone(o.GlobalVars)
	out.ModifyVars = maps.Clone(o.ModifyVars)
	return out
}

// SortedVars returns the keys of vars in lexical order.
func SortedVars(vars map[string]string) []string {
	return slices.Sorted(maps.Keys(vars))
}

// CompileResult is the output of one style compilation.
type CompileResult struct {
	CSS string
	// IncludedPaths lists absolute paths the compiler itself resolved, if it reports them.
	IncludedPaths []string
}
