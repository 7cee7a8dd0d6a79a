package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeWriteFileReplacesContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")
	require.NoError(t, SafeWriteFile(path, []byte("one")))
	require.NoError(t, SafeWriteFile(path, []byte("two")))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(b))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")

	assert.Error(t, SafeWriteFile(filepath.Join(dir, "missing", "x"), []byte("x")))
}

func TestFindUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, EnsureDir(nested))
	require.NoError(t, os.WriteFile(filepath.Join(root, "dashboard.json"), []byte("{}"), 0o644))

	got, err := FindUp(nested, "dashboard.json")
	require.NoError(t, err)
	assert.Equal(t, root, got)

	_, err = FindUp(nested, "nothing-here.json")
	assert.Error(t, err)
}

func TestPrettyJSON(t *testing.T) {
	b, err := PrettyJSON(map[string]int{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", string(b))
}
