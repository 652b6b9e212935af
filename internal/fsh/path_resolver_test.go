package fsh

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardPathResolver_CanonicalPath(t *testing.T) {
	t.Parallel()
	r := NewPathResolver()

	t.Run("resolves symlinks", func(t *testing.T) {
		t.Parallel()
		if runtime.GOOS == "windows" {
			t.Skip("symlink creation requires privileges on windows")
		}

		tmpDir := t.TempDir()
		realDir := filepath.Join(tmpDir, "real")
		require.NoError(t, os.Mkdir(realDir, 0o755))

		linkPath := filepath.Join(tmpDir, "link")
		require.NoError(t, os.Symlink(realDir, linkPath))

		got, err := r.CanonicalPath(linkPath)
		require.NoError(t, err)

		want, err := r.CanonicalPath(realDir)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("non-existent path errors", func(t *testing.T) {
		t.Parallel()
		_, err := r.CanonicalPath(filepath.Join(t.TempDir(), "missing"))
		assert.Error(t, err)
	})
}

func TestStandardPathResolver_Abs(t *testing.T) {
	t.Parallel()
	r := NewPathResolver()

	got, err := r.Abs("somefile.json")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
}
