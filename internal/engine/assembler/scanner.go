package assembler

import "strings"

const importKeyword = "@import"

// importDirective is one parsed @import statement.
type importDirective struct {
	// start and end delimit the whole statement, including the trailing semicolon.
	start, end int
	// ref is the quoted path exactly as written.
	ref string
}

// nextImport finds the first well-formed @import directive in s at or after from.
// Recognized forms, with a case-insensitive keyword:
//
//	@import "p";
//	@import 'p';
//	@import url("p");
//	@import (reference) "p";
//
// Directives inside block comments, line comments and string literals are
// ignored. Text that starts with the keyword but does not parse is skipped.
func nextImport(s string, from int) (importDirective, bool) {
	for i := from; i < len(s); {
		switch {
		case isQuote(s[i]):
			i = skipString(s, i)
		case strings.HasPrefix(s[i:], "/*"):
			i = skipBlockComment(s, i)
		case strings.HasPrefix(s[i:], "//") && !isURLContext(s, i):
			i = skipLineComment(s, i)
		case hasPrefixFold(s[i:], importKeyword):
			if d, ok := parseImport(s, i); ok {
				return d, true
			}
			i += len(importKeyword)
		default:
			i++
		}
	}
	return importDirective{}, false
}

// skipString returns the position after the string literal opening at i.
// An unterminated string ends at the line break, as in CSS.
func skipString(s string, i int) int {
	quote := s[i]
	for i++; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case quote:
			return i + 1
		case '\n':
			return i
		}
	}
	return len(s)
}

func skipBlockComment(s string, i int) int {
	end := strings.Index(s[i+2:], "*/")
	if end < 0 {
		return len(s)
	}
	return i + 2 + end + 2
}

func skipLineComment(s string, i int) int {
	end := strings.IndexByte(s[i:], '\n')
	if end < 0 {
		return len(s)
	}
	return i + end
}

// isURLContext reports whether the "//" at i belongs to an unquoted URL such
// as url(//cdn/x.png) or http://host rather than starting a comment.
func isURLContext(s string, i int) bool {
	return i > 0 && (s[i-1] == ':' || s[i-1] == '(')
}

// parseImport parses the directive whose keyword begins at start.
func parseImport(s string, start int) (importDirective, bool) {
	pos := start + len(importKeyword)

	// At least one whitespace character must follow the keyword.
	next := skipSpace(s, pos)
	if next == pos {
		return importDirective{}, false
	}
	pos = next

	// Optional import options, e.g. (reference) or (css, optional).
	if pos < len(s) && s[pos] == '(' {
		closing := strings.IndexByte(s[pos+1:], ')')
		if closing <= 0 {
			return importDirective{}, false
		}
		pos = skipSpace(s, pos+closing+2)
	}

	if hasPrefixFold(s[pos:], "url(") {
		pos += len("url(")
	}

	if pos >= len(s) || !isQuote(s[pos]) {
		return importDirective{}, false
	}
	pos++

	refStart := pos
	for pos < len(s) && !isQuote(s[pos]) && s[pos] != ')' {
		pos++
	}
	if pos == refStart || pos >= len(s) || !isQuote(s[pos]) {
		return importDirective{}, false
	}
	ref := s[refStart:pos]
	pos++

	if pos < len(s) && s[pos] == ')' {
		pos++
	}
	pos = skipSpace(s, pos)
	if pos >= len(s) || s[pos] != ';' {
		return importDirective{}, false
	}

	return importDirective{start: start, end: pos + 1, ref: ref}, true
}

func skipSpace(s string, pos int) int {
	for pos < len(s) {
		switch s[pos] {
		case ' ', '\t', '\n', '\r', '\f', '\v':
			pos++
		default:
			return pos
		}
	}
	return pos
}

func isQuote(c byte) bool {
	return c == '"' || c == '\''
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// isRemoteRef reports whether ref points outside the local filesystem.
func isRemoteRef(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "//") ||
		strings.HasPrefix(lower, "data:")
}
