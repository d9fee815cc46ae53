// Package ignore compiles gitignore-syntax patterns into matchers and
// composes them, level by level, into an oracle that answers "is path P
// ignored?" honoring nested .gitignore files and parent-directory shadowing.
//
// Grounded on the teacher's internal/walker/ignore.go (rule struct, regexp
// compilation) and on vbhat161/go-path-ignore's match/gitignore parser (a
// single-pass translation of ** and escapes, and wasilibs/go-re2 as the
// compiled-matcher engine).
package ignore

import (
	"strings"

	regexp "github.com/wasilibs/go-re2"
)

// Pattern is one compiled gitignore line.
type Pattern struct {
	// Source is the pattern body after normalization (no leading "!" or
	// "/", no trailing "/"). A leading "\#" or "\!" and trailing "\ " are
	// already reduced to their literal characters here; any other escape
	// such as "\*" is kept as written.
	Source string

	IsNegation      bool
	IsDirectoryOnly bool
	IsAnchored      bool

	// BaseDirectory is the root-relative directory of the .gitignore that
	// introduced this pattern; empty for root-level, additional, and
	// exclude-file patterns.
	BaseDirectory string

	SourceFile string
	LineNumber int

	re *regexp.Regexp
}

const regexMetaChars = `.+^$(){}|`

// CompilePattern turns one raw gitignore line into a Pattern. It returns
// (nil, nil) when the line is blank or a comment.
func CompilePattern(raw, sourceFile string, lineNumber int, baseDirectory string) (*Pattern, error) {
	// Only leading whitespace is trimmed unconditionally; trailing
	// whitespace is handled below by stripTrailingWhitespace, which (unlike
	// strings.TrimSpace) knows to preserve an escaped trailing space.
	body := strings.TrimLeft(raw, " \t")
	if strings.TrimSpace(body) == "" {
		return nil, nil
	}

	if strings.HasPrefix(body, `\#`) {
		body = "#" + body[2:]
	} else if strings.HasPrefix(body, "#") {
		return nil, nil
	}

	body = stripTrailingWhitespace(body)

	p := &Pattern{
		BaseDirectory: baseDirectory,
		SourceFile:    sourceFile,
		LineNumber:    lineNumber,
	}

	if strings.HasPrefix(body, `\!`) {
		body = "!" + body[2:]
	} else if strings.HasPrefix(body, "!") {
		p.IsNegation = true
		body = body[1:]
	}

	if strings.HasSuffix(body, "/") {
		p.IsDirectoryOnly = true
		body = strings.TrimSuffix(body, "/")
	}

	if strings.HasPrefix(body, "/") {
		p.IsAnchored = true
		body = body[1:]
	} else if strings.Contains(body, "/") {
		p.IsAnchored = true
	}

	p.Source = body

	re, err := compileBody(body, p.IsAnchored)
	if err != nil {
		return nil, err
	}
	p.re = re
	return p, nil
}

// stripTrailingWhitespace removes unescaped trailing spaces, preserving one
// literal space per escaped-space run found at the end of the line.
func stripTrailingWhitespace(body string) string {
	escaped := 0
	for strings.HasSuffix(body, `\ `) {
		body = body[:len(body)-2]
		escaped++
	}
	body = strings.TrimRight(body, " ")
	return body + strings.Repeat(" ", escaped)
}

// compileBody converts a gitignore pattern body into an anchored regular
// expression in a single left-to-right pass. Escape sequences and "**"
// tokens are resolved to their final regex fragment as they are scanned, so
// nothing emitted here is ever re-interpreted by a later wildcard rule (the
// naive text-substitution bug this guards against: "\*" being re-expanded
// by the "*" rule, or "**" being eaten by the "*" rule first).
func compileBody(body string, anchored bool) (*regexp.Regexp, error) {
	runes := []rune(body)
	n := len(runes)
	var out strings.Builder

	at := func(i int, lit string) bool {
		lr := []rune(lit)
		if i+len(lr) > n {
			return false
		}
		for k, r := range lr {
			if runes[i+k] != r {
				return false
			}
		}
		return true
	}

	i := 0
	for i < n {
		switch {
		case i == 0 && at(i, "**/"):
			out.WriteString(`(?:.*/)?`)
			i += 3
		case at(i, "/**/"):
			out.WriteString(`/(?:[^/]+/)*`)
			i += 4
		case at(i, "/**") && i+3 == n:
			out.WriteString(`/.*`)
			i += 3
		case at(i, "**"):
			out.WriteString(`.*`)
			i += 2
		case runes[i] == '*':
			out.WriteString(`[^/]*`)
			i++
		case runes[i] == '?':
			out.WriteString(`[^/]`)
			i++
		case runes[i] == '[':
			j := i + 1
			for j < n && runes[j] != ']' {
				j++
			}
			if j < n {
				out.WriteString(translateCharClass(string(runes[i : j+1])))
				i = j + 1
			} else {
				out.WriteString(`\[`)
				i++
			}
		case runes[i] == '\\' && i+1 < n:
			next := runes[i+1]
			if strings.ContainsRune(`*?[]#! \`, next) {
				out.WriteString(regexp.QuoteMeta(string(next)))
				i += 2
			} else {
				out.WriteString(regexp.QuoteMeta(string(runes[i])))
				i++
			}
		case strings.ContainsRune(regexMetaChars, runes[i]):
			out.WriteString(regexp.QuoteMeta(string(runes[i])))
			i++
		default:
			out.WriteString(string(runes[i]))
			i++
		}
	}

	var full string
	if anchored {
		full = "^" + out.String() + "$"
	} else {
		full = "^(?:.*/)?" + out.String() + "$"
	}
	return regexp.Compile(full)
}

// translateCharClass rewrites gitignore's "[!...]" negated class to the
// regex-standard "[^...]" and leaves everything else verbatim.
func translateCharClass(cls string) string {
	if strings.HasPrefix(cls, "[!") {
		return "[^" + cls[2:]
	}
	return cls
}

// Matches reports whether relPath (forward-slash, root-relative, no leading
// slash) matches this pattern. isDir tells a directory-only pattern whether
// the path currently refers to a directory.
func (p *Pattern) Matches(relPath string, isDir bool) bool {
	if p.IsDirectoryOnly && !isDir {
		return false
	}
	target := relPath
	if p.BaseDirectory != "" {
		if target == p.BaseDirectory {
			target = ""
		} else if strings.HasPrefix(target, p.BaseDirectory+"/") {
			target = target[len(p.BaseDirectory)+1:]
		} else {
			return false
		}
	}
	return p.re.MatchString(target)
}

// ParseFile parses every line of a gitignore-syntax file, skipping malformed
// lines rather than aborting (spec.md §7: "Malformed gitignore line" never
// stops the walk).
func ParseFile(data []byte, sourceFile, baseDirectory string) []*Pattern {
	lines := strings.Split(string(data), "\n")
	patterns := make([]*Pattern, 0, len(lines))
	for i, line := range lines {
		line = strings.TrimRight(line, "\r")
		p, err := CompilePattern(line, sourceFile, i+1, baseDirectory)
		if err != nil || p == nil {
			continue
		}
		patterns = append(patterns, p)
	}
	return patterns
}
