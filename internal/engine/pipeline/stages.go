package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"go.trai.ch/envy/internal/core/domain"
	"go.trai.ch/zerr"
)

// CheckPreconditions verifies that every tool is reachable on PATH.
// All tools are checked so that each missing one is reported.
func (p *Pipeline) CheckPreconditions(_ context.Context, tools ...string) domain.Outcome {
	var missing []string
	for _, tool := range compactTools(tools) {
		path, err := p.locator.LookPath(tool)
		if err != nil {
			p.logger.Warn(fmt.Sprintf("required tool %q was not found on PATH", tool))
			missing = append(missing, tool)
			continue
		}
		p.logger.Debug(fmt.Sprintf("found %s at %s", tool, path))
	}

	if len(missing) > 0 {
		err := zerr.With(domain.ErrMissingTool, "tools", strings.Join(missing, ", "))
		return domain.Fatal(domain.StepPreconditions, domain.KindMissingTool, err)
	}
	return domain.Succeeded(domain.StepPreconditions, "")
}

func compactTools(tools []string) []string {
	out := make([]string, 0, len(tools))
	for _, tool := range tools {
		if tool != "" && !slices.Contains(out, tool) {
			out = append(out, tool)
		}
	}
	return out
}

func (p *Pipeline) preconditions(ctx context.Context, run *runState) domain.Outcome {
	return p.CheckPreconditions(ctx, run.settings.RequiredTools()...)
}

// provisionEnvironment creates the environment once. An existing directory is
// reused as is; its contents are not inspected and it is never deleted.
func (p *Pipeline) provisionEnvironment(ctx context.Context, run *runState) domain.Outcome {
	envDir := run.settings.EnvDir
	rel := run.settings.Rel(envDir)

	info, err := os.Stat(envDir)
	switch {
	case err == nil && info.IsDir():
		return domain.Succeeded(domain.StepProvision, "reusing existing environment at "+rel)
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		wrapped := zerr.With(zerr.Wrap(err, domain.ErrEnvironmentCreationFailed.Error()), "path", envDir)
		return domain.Fatal(domain.StepProvision, domain.KindEnvironmentCreationFailed, wrapped)
	}

	p.logger.Info(fmt.Sprintf("creating environment at %s (python %s)", rel, run.settings.PythonVersion))
	if err := p.toolchain.CreateEnvironment(ctx, run.settings); err != nil {
		return domain.Fatal(domain.StepProvision, domain.KindEnvironmentCreationFailed, err)
	}
	return domain.Succeeded(domain.StepProvision, "created environment at "+rel)
}

// compile always re-resolves the manifest and checks the produced lock file.
func (p *Pipeline) compile(ctx context.Context, run *runState) domain.Outcome {
	settings := run.settings

	manifest, err := p.reader.ReadManifest(settings.Manifest)
	if err != nil {
		return domain.Fatal(domain.StepCompile, domain.KindCompileFailed, err)
	}
	p.logger.Debug(fmt.Sprintf("manifest declares %d direct requirement(s)", len(manifest.Requirements)))

	previous, err := p.hasher.HashFile(settings.LockFile)
	if err != nil {
		p.logger.Debug("no previous lock file: " + err.Error())
		previous = ""
	}

	if err := p.toolchain.CompileManifest(ctx, settings); err != nil {
		return domain.Fatal(domain.StepCompile, domain.KindCompileFailed, err)
	}

	lock, err := p.reader.ReadLock(settings.LockFile)
	if err != nil {
		return domain.Fatal(domain.StepCompile, domain.KindCompileFailed, err)
	}

	if missing := lock.Covers(manifest); len(missing) > 0 {
		err := zerr.With(domain.ErrLockIncomplete, "missing", strings.Join(missing, ", "))
		return domain.Fatal(domain.StepCompile, domain.KindCompileFailed, err)
	}

	digest, err := p.hasher.HashFile(settings.LockFile)
	if err != nil {
		return domain.Fatal(domain.StepCompile, domain.KindCompileFailed, err)
	}

	run.lock = lock
	run.lockDigest = digest

	rel := settings.Rel(settings.LockFile)
	if previous == digest {
		return domain.Succeeded(domain.StepCompile, fmt.Sprintf("%s unchanged (%d pins)", rel, len(lock.Pins)))
	}
	return domain.Succeeded(domain.StepCompile, fmt.Sprintf("%s updated (%d pins)", rel, len(lock.Pins)))
}

// sync makes the environment equal the lock file and verifies the result.
// A partially applied sync is not rolled back.
func (p *Pipeline) sync(ctx context.Context, run *runState) domain.Outcome {
	settings := run.settings

	detail := ""
	if before, err := p.toolchain.InstalledPackages(ctx, settings); err != nil {
		p.logger.Debug("could not preview sync: " + err.Error())
	} else {
		plan := domain.PlanSync(before, run.lock)
		detail = plan.Summary()
		if !plan.Empty() {
			p.logger.Debug(plan.Describe())
		}
	}

	if err := p.toolchain.SyncEnvironment(ctx, settings); err != nil {
		return domain.Fatal(domain.StepSync, domain.KindSyncFailed, err)
	}

	after, err := p.toolchain.InstalledPackages(ctx, settings)
	if err != nil {
		return domain.Fatal(domain.StepSync, domain.KindSyncFailed, err)
	}

	if plan := domain.PlanSync(after, run.lock); !plan.Empty() {
		p.logger.Debug(plan.Describe())
		err := zerr.With(domain.ErrSyncDrift, "drift", plan.Summary())
		return domain.Fatal(domain.StepSync, domain.KindSyncFailed, err)
	}

	return domain.Succeeded(domain.StepSync, detail)
}

// accelerator is best effort and branches only on the run mode.
func (p *Pipeline) accelerator(ctx context.Context, run *runState) domain.Outcome {
	if run.mode.IsDryRun() {
		return domain.Skipped(domain.StepAccelerator, "dry run, accelerator runtime not installed")
	}

	variant, err := p.toolchain.InstallAccelerator(ctx, run.settings)
	if err != nil {
		return domain.SoftFailure(domain.StepAccelerator, domain.KindAcceleratorInstallFailed, err)
	}

	run.variant = &variant
	return domain.Succeeded(domain.StepAccelerator,
		fmt.Sprintf("installed %s build from %s", variant.Name(), variant.IndexURL))
}

// handoff is terminal. Provisioning already succeeded, so failures are soft.
func (p *Pipeline) handoff(ctx context.Context, run *runState) domain.Outcome {
	if err := p.session.Handoff(ctx, run.settings); err != nil {
		return domain.SoftFailure(domain.StepHandoff, domain.KindHandoffFailed, err)
	}
	return domain.Succeeded(domain.StepHandoff, "")
}
