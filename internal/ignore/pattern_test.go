package ignore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompilePattern_BlankAndComment(t *testing.T) {
	for _, raw := range []string{"", "   ", "# a comment", "  # indented comment"} {
		p, err := CompilePattern(raw, "test", 1, "")
		require.NoError(t, err)
		require.Nil(t, p, "expected no pattern for %q", raw)
	}
}

func TestCompilePattern_EscapedHash(t *testing.T) {
	p, err := CompilePattern(`\#notacomment`, "test", 1, "")
	require.NoError(t, err)
	require.NotNil(t, p)
	require.True(t, p.Matches("#notacomment", false))
}

func TestCompilePattern_Flags(t *testing.T) {
	tests := []struct {
		pattern  string
		negate   bool
		dirOnly  bool
		anchored bool
	}{
		{"*.txt", false, false, false},
		{"!important.txt", true, false, false},
		{"temp/", false, true, false},
		{"/root/file", false, false, true},
		{"dir/subdir/", false, true, true},
		{"**/*.go", false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			p, err := CompilePattern(tt.pattern, "test", 1, "")
			require.NoError(t, err)
			require.NotNil(t, p)
			require.Equal(t, tt.negate, p.IsNegation)
			require.Equal(t, tt.dirOnly, p.IsDirectoryOnly)
			require.Equal(t, tt.anchored, p.IsAnchored)
		})
	}
}

func TestCompilePattern_EscapedBang(t *testing.T) {
	p, err := CompilePattern(`\!literal`, "test", 1, "")
	require.NoError(t, err)
	require.NotNil(t, p)
	require.False(t, p.IsNegation)
	require.True(t, p.Matches("!literal", false))
}

func TestPattern_Matches(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		isDir   bool
		want    bool
	}{
		{"*.txt", "file.txt", false, true},
		{"*.txt", "file.go", false, false},
		{"*.txt", "nested/file.txt", false, true},
		{"/root.txt", "root.txt", false, true},
		{"/root.txt", "nested/root.txt", false, false},
		{"temp/", "temp", true, true},
		{"temp/", "temp", false, false},
		{"**/*.go", "src/main.go", false, true},
		{"**/*.go", "deep/nested/file.go", false, true},
		{"**/*.go", "main.go", false, true},
		{"src/**", "src/file.txt", false, true},
		{"src/**", "src/deep/file.txt", false, true},
		{"src/**", "other/file.txt", false, false},
		{"a/**/b", "a/b", false, true},
		{"a/**/b", "a/x/y/b", false, true},
		{"a/**/b", "a/x/y/c", false, false},
		{"foo?bar", "fooXbar", false, true},
		{"foo?bar", "foo/bar", false, false},
		{"[abc].txt", "a.txt", false, true},
		{"[abc].txt", "d.txt", false, false},
		{"[!abc].txt", "d.txt", false, true},
		{"[!abc].txt", "a.txt", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.path, func(t *testing.T) {
			p, err := CompilePattern(tt.pattern, "test", 1, "")
			require.NoError(t, err)
			require.NotNil(t, p)
			require.Equal(t, tt.want, p.Matches(tt.path, tt.isDir))
		})
	}
}

func TestPattern_EscapeSequences(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{`\*literal`, "*literal", true},
		{`\*literal`, "xliteral", false},
		{`\?mark`, "?mark", true},
		{`\[bracket`, "[bracket", true},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			p, err := CompilePattern(tt.pattern, "test", 1, "")
			require.NoError(t, err)
			require.NotNil(t, p)
			require.Equal(t, tt.want, p.Matches(tt.path, false))
		})
	}
}

func TestPattern_BaseDirectoryScoping(t *testing.T) {
	p, err := CompilePattern("*.log", "sub/.gitignore", 1, "sub")
	require.NoError(t, err)
	require.NotNil(t, p)
	require.True(t, p.Matches("sub/debug.log", false))
	require.False(t, p.Matches("other/debug.log", false))
	require.False(t, p.Matches("debug.log", false))
}

func TestStripTrailingWhitespace(t *testing.T) {
	require.Equal(t, "foo", stripTrailingWhitespace("foo   "))
	require.Equal(t, "foo ", stripTrailingWhitespace(`foo\ `))
	require.Equal(t, "foo  ", stripTrailingWhitespace(`foo\ \ `))
}

// An escaped trailing space must survive the full CompilePattern pipeline,
// not just the stripTrailingWhitespace helper in isolation: a naive
// strings.TrimSpace pass before stripTrailingWhitespace runs would eat the
// space (and the backslash that protects it) before it ever gets there.
func TestCompilePattern_PreservesEscapedTrailingSpace(t *testing.T) {
	p, err := CompilePattern(`foo\ `, "test", 1, "")
	require.NoError(t, err)
	require.NotNil(t, p)
	require.Equal(t, "foo ", p.Source)
	require.True(t, p.Matches("foo ", false))
	require.False(t, p.Matches("foo", false))
}

func TestCompilePattern_TrailingUnescapedSpaceStripped(t *testing.T) {
	p, err := CompilePattern("foo   ", "test", 1, "")
	require.NoError(t, err)
	require.NotNil(t, p)
	require.Equal(t, "foo", p.Source)
}

func TestParseFile(t *testing.T) {
	data := []byte("*.log\n\n# comment\n!keep.log\ntemp/\n")
	patterns := ParseFile(data, "test.gitignore", "")
	require.Len(t, patterns, 3)
	require.Equal(t, "*.log", patterns[0].Source)
	require.True(t, patterns[1].IsNegation)
	require.True(t, patterns[2].IsDirectoryOnly)
}

// "[unterminated" has no closing bracket, so it compiles with a literal "["
// rather than failing; what is checked is that the lines around it survive.
func TestParseFile_UnterminatedClassKeepsOtherLines(t *testing.T) {
	data := []byte("*.log\n[unterminated\nvalid.txt\n")
	patterns := ParseFile(data, "test.gitignore", "")
	var sources []string
	for _, p := range patterns {
		sources = append(sources, p.Source)
	}
	require.Contains(t, sources, "*.log")
	require.Contains(t, sources, "valid.txt")
}
