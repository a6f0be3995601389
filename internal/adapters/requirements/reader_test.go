package requirements_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/envy/internal/adapters/requirements"
	"go.trai.ch/envy/internal/core/domain"
)

func TestReader_ReadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "requirements.in")
	require.NoError(t, os.WriteFile(path, []byte("pkgA\npkgB>=2\n"), 0o600))

	m, err := requirements.NewReader().ReadManifest(path)
	require.NoError(t, err)

	assert.Equal(t, path, m.Path)
	assert.Equal(t, []string{"pkga", "pkgb"}, m.Names())
}

func TestReader_ReadLock(t *testing.T) {
	lock, err := requirements.NewReader().ReadLock(filepath.Join("testdata", "uv_lock.txt"))
	require.NoError(t, err)

	assert.Len(t, lock.Pins, 7)
	pin, ok := lock.Lookup("Charset_Normalizer")
	require.True(t, ok)
	assert.Equal(t, "3.3.2", pin.Version)
}

func TestReader_Missing(t *testing.T) {
	dir := t.TempDir()
	r := requirements.NewReader()

	_, err := r.ReadManifest(filepath.Join(dir, "requirements.in"))
	assert.ErrorContains(t, err, domain.ErrManifestReadFailed.Error())

	_, err = r.ReadLock(filepath.Join(dir, "requirements.txt"))
	assert.ErrorContains(t, err, domain.ErrLockReadFailed.Error())
}
