package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/envy/internal/adapters/fs"
	"go.trai.ch/envy/internal/core/domain"
)

func TestHasher_HashFile(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	c := filepath.Join(dir, "c.txt")
	require.NoError(t, os.WriteFile(a, []byte("numpy==1.26.4\n"), 0o600))
	require.NoError(t, os.WriteFile(b, []byte("numpy==1.26.4\n"), 0o600))
	require.NoError(t, os.WriteFile(c, []byte("numpy==2.0.0\n"), 0o600))

	h := fs.NewHasher()

	hashA, err := h.HashFile(a)
	require.NoError(t, err)
	hashB, err := h.HashFile(b)
	require.NoError(t, err)
	hashC, err := h.HashFile(c)
	require.NoError(t, err)

	assert.Len(t, hashA, 16)
	assert.Equal(t, hashA, hashB, "identical content must hash identically")
	assert.NotEqual(t, hashA, hashC)
}

func TestHasher_HashFile_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	got, err := fs.NewHasher().HashFile(path)
	require.NoError(t, err)
	// XXH64 of the empty input with seed 0.
	assert.Equal(t, "ef46db3751d8e999", got)
}

func TestHasher_HashFile_Missing(t *testing.T) {
	_, err := fs.NewHasher().HashFile(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorContains(t, err, domain.ErrFileOpenFailed.Error())
}
