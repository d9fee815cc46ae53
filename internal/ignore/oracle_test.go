package ignore

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bmt-toolkit/bmt/internal/vfs"
)

func newOracleFS() *vfs.MemFS {
	fs := vfs.NewMemFS()
	fs.MkdirAll("/repo")
	return fs
}

func TestOracle_SimpleIgnore(t *testing.T) {
	fs := newOracleFS()
	fs.WriteFile("/repo/.gitignore", "*.log\n")
	fs.WriteFile("/repo/debug.log", "x")

	o, err := NewOracle(fs, "/repo", nil, false)
	require.NoError(t, err)

	res, err := o.IsIgnored("/repo/debug.log", false)
	require.NoError(t, err)
	require.True(t, res.Ignored)
}

func TestOracle_ParentDirectoryShadowsChild(t *testing.T) {
	fs := newOracleFS()
	fs.WriteFile("/repo/.gitignore", "build/\n")
	fs.MkdirAll("/repo/build")
	fs.WriteFile("/repo/build/keep.txt", "x")
	// A .gitignore inside the ignored directory cannot un-ignore its own
	// contents: the parent shadow check wins regardless of local negation.
	fs.WriteFile("/repo/build/.gitignore", "!keep.txt\n")

	o, err := NewOracle(fs, "/repo", nil, false)
	require.NoError(t, err)

	res, err := o.IsIgnored("/repo/build/keep.txt", false)
	require.NoError(t, err)
	require.True(t, res.Ignored, "parent-ignored directory must shadow children")
}

func TestOracle_NegationCanUnignoreAtSameLevel(t *testing.T) {
	fs := newOracleFS()
	fs.WriteFile("/repo/.gitignore", "*.log\n!important.log\n")
	fs.WriteFile("/repo/important.log", "x")

	o, err := NewOracle(fs, "/repo", nil, false)
	require.NoError(t, err)

	res, err := o.IsIgnored("/repo/important.log", false)
	require.NoError(t, err)
	require.False(t, res.Ignored)
}

func TestOracle_DirectoryItselfIgnored(t *testing.T) {
	fs := newOracleFS()
	fs.WriteFile("/repo/.gitignore", "build/\n")
	fs.MkdirAll("/repo/build")

	o, err := NewOracle(fs, "/repo", nil, false)
	require.NoError(t, err)

	res, err := o.IsIgnored("/repo/build", true)
	require.NoError(t, err)
	require.True(t, res.Ignored)
}

func TestOracle_AdditionalIgnoresCombineWithGitignore(t *testing.T) {
	fs := newOracleFS()
	fs.WriteFile("/repo/.gitignore", "*.log\n")
	fs.WriteFile("/repo/scratch.tmp", "x")

	o, err := NewOracle(fs, "/repo", []string{"*.tmp"}, false)
	require.NoError(t, err)

	res, err := o.IsIgnored("/repo/scratch.tmp", false)
	require.NoError(t, err)
	require.True(t, res.Ignored)
}

func TestOracle_ClearCache(t *testing.T) {
	fs := newOracleFS()
	fs.WriteFile("/repo/.gitignore", "*.log\n")

	o, err := NewOracle(fs, "/repo", nil, false)
	require.NoError(t, err)

	_, err = o.IsIgnored("/repo/debug.log", false)
	require.NoError(t, err)

	o.ClearCache()
	require.Len(t, o.store.cache, 0)
}
