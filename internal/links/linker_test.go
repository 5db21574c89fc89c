//go:build !windows

package links

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string, perm os.FileMode) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), perm))
}

func TestOSLinker_Soft(t *testing.T) {
	dir := t.TempDir()
	from := filepath.Join(dir, "src.txt")
	to := filepath.Join(dir, "dst.txt")
	writeFile(t, from, "hello", 0o644)

	require.NoError(t, OSLinker{}.Link(KindSoft, from, to))

	info, err := os.Lstat(to)
	require.NoError(t, err)
	assert.True(t, info.Mode()&os.ModeSymlink != 0, "expected a symlink")

	target, err := os.Readlink(to)
	require.NoError(t, err)
	assert.Equal(t, from, target)
}

func TestOSLinker_DefaultIsSoft(t *testing.T) {
	dir := t.TempDir()
	from := filepath.Join(dir, "folder")
	to := filepath.Join(dir, "link")
	require.NoError(t, os.Mkdir(from, 0o755))

	require.NoError(t, OSLinker{}.Link("", from, to))

	info, err := os.Lstat(to)
	require.NoError(t, err)
	assert.True(t, info.Mode()&os.ModeSymlink != 0, "expected a symlink")

	resolved, err := os.Stat(to)
	require.NoError(t, err)
	assert.True(t, resolved.IsDir())
}

func TestOSLinker_Soft_ExistingDestination(t *testing.T) {
	dir := t.TempDir()
	from := filepath.Join(dir, "src.txt")
	to := filepath.Join(dir, "dst.txt")
	writeFile(t, from, "hello", 0o644)
	writeFile(t, to, "already here", 0o644)

	assert.Error(t, OSLinker{}.Link(KindSoft, from, to))

	data, err := os.ReadFile(to)
	require.NoError(t, err)
	assert.Equal(t, "already here", string(data))
}

func TestOSLinker_Hard(t *testing.T) {
	dir := t.TempDir()
	from := filepath.Join(dir, "src.txt")
	to := filepath.Join(dir, "dst.txt")
	writeFile(t, from, "hello", 0o644)

	require.NoError(t, OSLinker{}.Link(KindHard, from, to))

	fromInfo, err := os.Stat(from)
	require.NoError(t, err)
	toInfo, err := os.Lstat(to)
	require.NoError(t, err)

	assert.True(t, os.SameFile(fromInfo, toInfo))
}

func TestOSLinker_Hard_MissingSource(t *testing.T) {
	dir := t.TempDir()

	err := OSLinker{}.Link(KindHard, filepath.Join(dir, "nope"), filepath.Join(dir, "dst"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, statErr := os.Lstat(filepath.Join(dir, "dst"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestOSLinker_Copy(t *testing.T) {
	dir := t.TempDir()
	from := filepath.Join(dir, "src.sh")
	to := filepath.Join(dir, "dst.sh")
	writeFile(t, from, "#!/bin/sh\necho hi\n", 0o755)

	require.NoError(t, OSLinker{}.Link(KindCopy, from, to))

	info, err := os.Lstat(to)
	require.NoError(t, err)
	assert.True(t, info.Mode().IsRegular())
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())

	// later edits to the source do not propagate
	writeFile(t, from, "changed", 0o755)

	data, err := os.ReadFile(to)
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/sh\necho hi\n", string(data))
}

func TestOSLinker_Copy_ExistingDestination(t *testing.T) {
	dir := t.TempDir()
	from := filepath.Join(dir, "src.txt")
	to := filepath.Join(dir, "dst.txt")
	writeFile(t, from, "new", 0o644)
	writeFile(t, to, "old", 0o644)

	err := OSLinker{}.Link(KindCopy, from, to)
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrExist)

	data, err := os.ReadFile(to)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no temporary copy may be left behind")
}

func TestOSLinker_ExistingDestination_AllKinds(t *testing.T) {
	for _, kind := range []Kind{KindHard, KindSoft, KindCopy} {
		t.Run(string(kind), func(t *testing.T) {
			dir := t.TempDir()
			from := filepath.Join(dir, "src.txt")
			to := filepath.Join(dir, "dst.txt")
			writeFile(t, from, "new", 0o644)
			writeFile(t, to, "old", 0o644)

			assert.ErrorIs(t, OSLinker{}.Link(kind, from, to), fs.ErrExist)

			data, err := os.ReadFile(to)
			require.NoError(t, err)
			assert.Equal(t, "old", string(data))
		})
	}
}

func TestOSLinker_Copy_Failures(t *testing.T) {
	dir := t.TempDir()
	srcDir := filepath.Join(dir, "folder")
	require.NoError(t, os.Mkdir(srcDir, 0o755))

	t.Run("missing source", func(t *testing.T) {
		err := OSLinker{}.Link(KindCopy, filepath.Join(dir, "nope"), filepath.Join(dir, "dst"))

		var meta *MetadataError
		require.ErrorAs(t, err, &meta)
		assert.Equal(t, filepath.Join(dir, "nope"), meta.Path)
	})

	t.Run("directory source", func(t *testing.T) {
		err := OSLinker{}.Link(KindCopy, srcDir, filepath.Join(dir, "dst"))
		assert.Error(t, err)
	})

	t.Run("missing destination directory", func(t *testing.T) {
		from := filepath.Join(dir, "file.txt")
		writeFile(t, from, "x", 0o644)

		err := OSLinker{}.Link(KindCopy, from, filepath.Join(dir, "missing", "dst"))
		assert.Error(t, err)
	})

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp", "temporary copy left behind")
	}
}
