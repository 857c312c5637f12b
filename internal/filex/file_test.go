package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDir(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "a", "b")

	got, err := EnsureDir(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// idempotent
	_, err = EnsureDir(dir)
	assert.NoError(t, err)
}

func TestEnsureParentDir(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, "sub", "data.json")

	require.NoError(t, EnsureParentDir(path))

	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
