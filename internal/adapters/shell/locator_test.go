package shell_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/envy/internal/adapters/shell"
	"go.trai.ch/envy/internal/core/domain"
)

func writeTool(t *testing.T, dir, name string, mode os.FileMode) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), mode))
	return path
}

func TestLocator_LookPath(t *testing.T) {
	binDir := t.TempDir()
	uv := writeTool(t, binDir, "uv", 0o700)
	writeTool(t, binDir, "notes", 0o600)

	locator := shell.NewLocatorWithEnv([]string{"PATH=" + binDir})

	t.Run("found", func(t *testing.T) {
		got, err := locator.LookPath("uv")
		require.NoError(t, err)
		assert.Equal(t, uv, got)
	})

	t.Run("not executable", func(t *testing.T) {
		_, err := locator.LookPath("notes")
		assert.ErrorContains(t, err, domain.ErrMissingTool.Error())
	})

	t.Run("missing", func(t *testing.T) {
		_, err := locator.LookPath("python3")
		assert.ErrorContains(t, err, domain.ErrMissingTool.Error())
	})

	t.Run("absolute path", func(t *testing.T) {
		got, err := locator.LookPath(uv)
		require.NoError(t, err)
		assert.Equal(t, uv, got)
	})

	t.Run("directory is not a tool", func(t *testing.T) {
		_, err := locator.LookPath(binDir)
		assert.Error(t, err)
	})
}

func TestLocator_LookPath_NoPATH(t *testing.T) {
	locator := shell.NewLocatorWithEnv([]string{"HOME=/tmp"})

	_, err := locator.LookPath("uv")
	assert.Error(t, err)
}

func TestLookPath_LastPATHWins(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	want := writeTool(t, second, "uv", 0o700)

	got, err := shell.LookPath("uv", []string{"PATH=" + first, "PATH=" + second})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLookPath_NameWithSeparatorSkipsPATH(t *testing.T) {
	binDir := t.TempDir()
	writeTool(t, binDir, "uv", 0o700)
	nested := filepath.Join(binDir, "bin")
	require.NoError(t, os.MkdirAll(nested, 0o750))
	writeTool(t, nested, "uv", 0o700)

	// "bin/uv" exists under a PATH entry, but a relative path is never joined onto PATH.
	_, err := shell.LookPath(filepath.Join("bin", "uv"), []string{"PATH=" + binDir})
	assert.Error(t, err)

	root := t.TempDir()
	local := filepath.Join(root, "bin")
	require.NoError(t, os.MkdirAll(local, 0o750))
	want := writeTool(t, local, "uv", 0o700)

	got, err := shell.NewLocatorWithEnv([]string{"PATH=" + binDir}).LookPath(want)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
