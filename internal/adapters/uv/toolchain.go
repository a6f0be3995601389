// Package uv binds the toolchain port to the uv resolver/installer.
package uv

import (
	"context"
	"strings"

	"go.trai.ch/envy/internal/adapters/requirements"
	"go.trai.ch/envy/internal/core/domain"
	"go.trai.ch/envy/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Toolchain = (*Toolchain)(nil)

// Toolchain implements ports.Toolchain by running uv as a child process.
type Toolchain struct {
	runner      ports.CommandRunner
	accelerator ports.AcceleratorInstaller
}

// New creates a Toolchain.
func New(runner ports.CommandRunner, accelerator ports.AcceleratorInstaller) *Toolchain {
	return &Toolchain{runner: runner, accelerator: accelerator}
}

// CreateEnvironment runs `uv venv <path> --python <version>`.
func (t *Toolchain) CreateEnvironment(ctx context.Context, settings domain.Settings) error {
	cmd := t.command(settings, "venv", settings.Rel(settings.EnvDir), "--python", settings.PythonVersion)
	if _, err := t.runner.Run(ctx, cmd); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrEnvironmentCreationFailed.Error()), "path", settings.EnvDir)
	}
	return nil
}

// CompileManifest runs `uv pip compile <manifest> -o <lock>` from the project
// root with relative paths, so the header comment uv writes into the lock file
// does not depend on where the project is checked out.
func (t *Toolchain) CompileManifest(ctx context.Context, settings domain.Settings) error {
	cmd := t.command(settings, "pip", "compile", settings.Rel(settings.Manifest), "-o", settings.Rel(settings.LockFile))
	if _, err := t.runner.Run(ctx, cmd); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCompileFailed.Error()), "manifest", settings.Manifest)
	}
	return nil
}

// SyncEnvironment runs `uv pip sync <lock> --python <env interpreter>`, which
// installs, upgrades and removes packages until the environment equals the lock.
func (t *Toolchain) SyncEnvironment(ctx context.Context, settings domain.Settings) error {
	cmd := t.command(settings, "pip", "sync", settings.Rel(settings.LockFile), "--python", interpreter(settings))
	if _, err := t.runner.Run(ctx, cmd); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrSyncFailed.Error()), "lock", settings.LockFile)
	}
	return nil
}

// InstalledPackages runs `uv pip freeze --python <env interpreter>`.
func (t *Toolchain) InstalledPackages(ctx context.Context, settings domain.Settings) ([]domain.Pin, error) {
	cmd := t.command(settings, "pip", "freeze", "--python", interpreter(settings))
	res, err := t.runner.Run(ctx, cmd)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrInventoryFailed.Error())
	}

	pins, err := requirements.ParsePins(strings.NewReader(res.Stdout))
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrInventoryFailed.Error())
	}
	return pins, nil
}

// InstallAccelerator detects the accelerator variant and installs it.
func (t *Toolchain) InstallAccelerator(ctx context.Context, settings domain.Settings) (domain.AcceleratorVariant, error) {
	variant := t.accelerator.Detect(ctx, settings.Accelerator)
	if err := t.accelerator.Install(ctx, settings, variant); err != nil {
		return variant, err
	}
	return variant, nil
}

func (t *Toolchain) command(settings domain.Settings, args ...string) domain.Command {
	return domain.Command{
		Name: settings.Resolver,
		Args: args,
		Dir:  settings.Root,
		// Progress bars are redrawn with carriage returns and would flood the log.
		Env: []string{"UV_NO_PROGRESS=1"},
	}
}

func interpreter(settings domain.Settings) string {
	return settings.Rel(domain.EnvInterpreter(settings.EnvDir))
}
