// Package pipeline runs the provisioning stages in order.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.trai.ch/envy/internal/core/domain"
	"go.trai.ch/envy/internal/core/ports"
)

// DegradedModeNotice is logged when the accelerator install fails.
const DegradedModeNotice = "the application may run in a degraded (CPU-only) mode"

// Pipeline provisions an environment from a manifest, one stage at a time.
type Pipeline struct {
	locator   ports.ToolLocator
	toolchain ports.Toolchain
	reader    ports.RequirementsReader
	hasher    ports.Hasher
	store     ports.RunRecordStore
	tracer    ports.Tracer
	logger    ports.Logger
	session   ports.Session
	now       func() time.Time
}

// New creates a new Pipeline.
func New(
	locator ports.ToolLocator,
	toolchain ports.Toolchain,
	reader ports.RequirementsReader,
	hasher ports.Hasher,
	store ports.RunRecordStore,
	tracer ports.Tracer,
	logger ports.Logger,
	session ports.Session,
) *Pipeline {
	return &Pipeline{
		locator:   locator,
		toolchain: toolchain,
		reader:    reader,
		hasher:    hasher,
		store:     store,
		tracer:    tracer,
		logger:    logger,
		session:   session,
		now:       time.Now,
	}
}

// stageFunc is one pipeline stage. It reads and extends the run state.
type stageFunc func(ctx context.Context, run *runState) domain.Outcome

// runState carries what earlier stages produced to later ones.
type runState struct {
	settings domain.Settings
	mode     domain.RunMode

	lock       domain.Lockfile
	lockDigest string
	variant    *domain.AcceleratorVariant
}

// Run executes every stage, including the session handoff.
// A fatal stage stops the run; the returned error is a *domain.StepError.
func (p *Pipeline) Run(ctx context.Context, settings domain.Settings, mode domain.RunMode) (domain.Report, error) {
	run := &runState{settings: settings, mode: mode}

	report, err := p.provision(ctx, run)
	if err != nil {
		return report, err
	}

	return report, p.execute(ctx, run, &report, domain.StepHandoff, p.handoff)
}

// Provision executes every stage up to and including the accelerator install.
// It is the body of watch mode, which must not open a session on every change.
func (p *Pipeline) Provision(ctx context.Context, settings domain.Settings, mode domain.RunMode) (domain.Report, error) {
	return p.provision(ctx, &runState{settings: settings, mode: mode})
}

func (p *Pipeline) provision(ctx context.Context, run *runState) (domain.Report, error) {
	report := domain.Report{Mode: run.mode}

	stages := []struct {
		step domain.Step
		fn   stageFunc
	}{
		{domain.StepPreconditions, p.preconditions},
		{domain.StepProvision, p.provisionEnvironment},
		{domain.StepCompile, p.compile},
		{domain.StepSync, p.sync},
		{domain.StepAccelerator, p.accelerator},
	}

	for _, s := range stages {
		if err := p.execute(ctx, run, &report, s.step, s.fn); err != nil {
			return report, err
		}
	}

	p.recordRun(run)
	return report, nil
}

// execute runs a single stage inside a span and applies the outcome policy:
// fatal stops, soft failures warn, skips inform.
func (p *Pipeline) execute(
	ctx context.Context,
	run *runState,
	report *domain.Report,
	step domain.Step,
	fn stageFunc,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	outcome := func() domain.Outcome {
		ctx, span := p.tracer.Start(ctx, string(step))
		defer span.End()

		out := fn(ctx, run)
		span.SetAttribute("envy.status", out.Status.String())
		if out.Err != nil {
			span.RecordError(out.Err)
		}
		return out
	}()

	report.Add(outcome)

	switch outcome.Status {
	case domain.StatusFatal:
		return outcome.Error()
	case domain.StatusSoftFailure:
		p.logger.Warn(fmt.Sprintf("%s failed: %s", step, outcome.Detail))
		if step == domain.StepAccelerator {
			p.logger.Warn(DegradedModeNotice)
		}
	case domain.StatusSkipped:
		p.logger.Info(fmt.Sprintf("%s skipped: %s", step, outcome.Detail))
	case domain.StatusSuccess:
		if outcome.Detail != "" {
			p.logger.Info(fmt.Sprintf("%s: %s", step, outcome.Detail))
		}
	}

	return nil
}

// recordRun stores the run summary. A failure to persist it never fails the run.
func (p *Pipeline) recordRun(run *runState) {
	record := domain.RunRecord{
		LockDigest: run.lockDigest,
		PinCount:   len(run.lock.Pins),
		Mode:       run.mode.String(),
		Timestamp:  p.now().UTC(),
	}
	if run.variant != nil {
		record.Accelerator = run.variant.Name()
	}

	if err := p.store.Put(run.settings.Root, record); err != nil {
		p.logger.Warn("could not record run: " + err.Error())
	}
}
