package rewriter

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recase/internal/replacer"
	"recase/internal/table"
)

func newReplacer(t *testing.T, search, replacement string) *replacer.Replacer {
	t.Helper()
	tbl, err := table.Build(search, replacement)
	require.NoError(t, err)
	r, err := replacer.New(tbl.Patterns, tbl.Replacements)
	require.NoError(t, err)
	return r
}

func writeFile(t *testing.T, dir, name, content string, perm os.FileMode) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), perm))
	return path
}

func TestRewriteFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "main.go", "var fooBar = FOO_BAR // foo-bar\n", 0640)
	r := newReplacer(t, "fooBar", "bazQux")

	result, err := RewriteFile(path, r)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, 3, result.Stats.Total())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "var bazQux = BAZ_QUX // baz-qux\n", string(got))

	fp, err := Fingerprint(path)
	require.NoError(t, err)
	assert.Equal(t, fp, result.Fingerprint)

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0640), info.Mode().Perm())
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestRewriteFileWithoutMatches(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "readme.md", "nothing to see\n", 0644)
	before, err := os.Stat(path)
	require.NoError(t, err)

	result, err := RewriteFile(path, newReplacer(t, "fooBar", "bazQux"))
	require.NoError(t, err)
	assert.False(t, result.Changed)
	assert.Empty(t, result.Fingerprint)

	after, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRewriteFileSkipsBinary(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "blob.bin", "fooBar\x00fooBar", 0644)

	result, err := RewriteFile(path, newReplacer(t, "fooBar", "bazQux"))
	require.NoError(t, err)
	assert.True(t, result.Binary)
	assert.False(t, result.Changed)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fooBar\x00fooBar", string(got))
}

func TestRewriteFileMissing(t *testing.T) {
	_, err := RewriteFile(filepath.Join(t.TempDir(), "missing.go"), newReplacer(t, "a", "b"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestStreamFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "in.txt", "FooBar foo_bar", 0644)

	var out bytes.Buffer
	result, err := StreamFile(path, newReplacer(t, "fooBar", "bazQux"), &out)
	require.NoError(t, err)
	assert.Equal(t, "BazQux baz_qux", out.String())
	assert.Equal(t, 2, result.Stats.Total())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "FooBar foo_bar", string(got), "source must not change")
}

func TestRewriteFileIdenticalReplacement(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "same.txt", "fooBar foo_bar\n", 0644)
	before, err := os.Stat(path)
	require.NoError(t, err)

	result, err := RewriteFile(path, newReplacer(t, "fooBar", "fooBar"))
	require.NoError(t, err)
	assert.False(t, result.Changed)
	assert.Equal(t, 2, result.Stats.Total(), "matches are still counted")
	assert.Empty(t, result.Fingerprint)

	after, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, os.SameFile(before, after), "file must not be replaced")
	assert.Equal(t, before.ModTime(), after.ModTime())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestRewriteFileThroughSymlink(t *testing.T) {
	dir := t.TempDir()
	target := writeFile(t, dir, "target.txt", "fooBar\n", 0644)
	link := filepath.Join(dir, "link.txt")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	result, err := RewriteFile(link, newReplacer(t, "fooBar", "bazQux"))
	require.NoError(t, err)
	assert.True(t, result.Changed)

	resolved, err := filepath.EvalSymlinks(target)
	require.NoError(t, err)
	assert.Equal(t, resolved, result.Target)

	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink, "link must stay a symlink")

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "bazQux\n", string(got))
}
