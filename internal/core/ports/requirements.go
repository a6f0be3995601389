package ports

import "go.trai.ch/envy/internal/core/domain"

// RequirementsReader parses the manifest and lock file formats.
//
//go:generate mockgen -source=requirements.go -destination=mocks/mock_requirements.go -package=mocks
type RequirementsReader interface {
	// ReadManifest parses the list of direct dependencies.
	ReadManifest(path string) (domain.Manifest, error)

	// ReadLock parses a compiled lock file.
	ReadLock(path string) (domain.Lockfile, error)
}
