package requirements

import (
	"os"

	"go.trai.ch/envy/internal/core/domain"
	"go.trai.ch/envy/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.RequirementsReader = (*Reader)(nil)

// Reader implements ports.RequirementsReader on the local filesystem.
type Reader struct{}

// NewReader creates a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// ReadManifest parses the manifest at path.
func (r *Reader) ReadManifest(path string) (domain.Manifest, error) {
	f, err := os.Open(path) //nolint:gosec // Path comes from the resolved settings
	if err != nil {
		return domain.Manifest{}, zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", path)
	}
	defer f.Close() //nolint:errcheck // Read only

	reqs, err := ParseManifest(f)
	if err != nil {
		return domain.Manifest{}, zerr.With(err, "path", path)
	}

	return domain.Manifest{Path: path, Requirements: reqs}, nil
}

// ReadLock parses the lock file at path.
func (r *Reader) ReadLock(path string) (domain.Lockfile, error) {
	f, err := os.Open(path) //nolint:gosec // Path comes from the resolved settings
	if err != nil {
		return domain.Lockfile{}, zerr.With(zerr.Wrap(err, domain.ErrLockReadFailed.Error()), "path", path)
	}
	defer f.Close() //nolint:errcheck // Read only

	pins, err := ParsePins(f)
	if err != nil {
		return domain.Lockfile{}, zerr.With(err, "path", path)
	}

	return domain.Lockfile{Path: path, Pins: pins}, nil
}
