// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/envy/internal/core/domain"
)

// Toolchain is the external resolver/installer, one method per capability.
// Every method blocks until the underlying process exits; failures carry the
// tool's own diagnostic unmodified.
//
//go:generate go run go.uber.org/mock/mockgen -source=toolchain.go -destination=mocks/mock_toolchain.go -package=mocks
type Toolchain interface {
	// CreateEnvironment creates the isolated environment at settings.EnvDir
	// using settings.PythonVersion.
	CreateEnvironment(ctx context.Context, settings domain.Settings) error

	// CompileManifest resolves the manifest into a fully pinned lock file.
	// The resolver runs from settings.Root with relative paths.
	CompileManifest(ctx context.Context, settings domain.Settings) error

	// SyncEnvironment makes the environment's installed packages match the lock file exactly,
	// installing, changing and removing packages as needed.
	SyncEnvironment(ctx context.Context, settings domain.Settings) error

	// InstalledPackages lists the packages currently installed in the environment.
	InstalledPackages(ctx context.Context, settings domain.Settings) ([]domain.Pin, error)

	// InstallAccelerator installs the hardware specific runtime into the environment
	// and returns the variant it selected.
	InstallAccelerator(ctx context.Context, settings domain.Settings) (domain.AcceleratorVariant, error)
}
