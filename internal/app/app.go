// Package app implements the application layer for envy.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.trai.ch/envy/internal/adapters/detector"
	"go.trai.ch/envy/internal/adapters/telemetry"
	"go.trai.ch/envy/internal/core/domain"
	"go.trai.ch/envy/internal/core/ports"
	"go.trai.ch/envy/internal/engine/pipeline"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	pipeline     *pipeline.Pipeline
	accelerator  ports.AcceleratorInstaller
	session      ports.Session
	store        ports.RunRecordStore
	watcher      ports.Watcher
	renderer     ports.Renderer
	logger       ports.Logger

	detect         func() detector.Environment
	getwd          func() (string, error)
	debounceWindow time.Duration
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	p *pipeline.Pipeline,
	accelerator ports.AcceleratorInstaller,
	session ports.Session,
	store ports.RunRecordStore,
	watcher ports.Watcher,
	renderer ports.Renderer,
	log ports.Logger,
) *App {
	return &App{
		configLoader:   loader,
		pipeline:       p,
		accelerator:    accelerator,
		session:        session,
		store:          store,
		watcher:        watcher,
		renderer:       renderer,
		logger:         log,
		detect:         detector.Detect,
		getwd:          os.Getwd,
		debounceWindow: defaultDebounceWindow,
	}
}

// WithEnvironment replaces process environment detection.
// This is primarily used for testing to inject the run mode and terminal state.
func (a *App) WithEnvironment(env detector.Environment) *App {
	a.detect = func() detector.Environment { return env }
	return a
}

// WithWorkingDir pins the directory the configuration is discovered from.
func (a *App) WithWorkingDir(dir string) *App {
	a.getwd = func() (string, error) { return dir, nil }
	return a
}

// LogOptions configures the log output format.
type LogOptions struct {
	JSON    bool
	Verbose bool
}

// logConfigurer is implemented by loggers whose format can change at startup.
type logConfigurer interface {
	SetJSON(enable bool)
	SetVerbose(enable bool)
}

// ConfigureLogging applies the log options when the logger supports them.
func (a *App) ConfigureLogging(opts LogOptions) {
	if l, ok := a.logger.(logConfigurer); ok {
		l.SetJSON(opts.JSON)
		l.SetVerbose(opts.Verbose)
	}
}

// UpOptions configuration for the Up method.
type UpOptions struct {
	// NoShell prints activation instructions instead of starting a subshell.
	NoShell bool
}

// Up provisions the environment and hands the operator over to it.
func (a *App) Up(ctx context.Context, opts UpOptions) error {
	settings, err := a.loadSettings()
	if err != nil {
		return err
	}

	env := a.detect()
	settings.Interactive = env.Interactive && !opts.NoShell
	a.logger.Debug(fmt.Sprintf("run mode: %s", env.Mode))

	shutdown := a.setupTelemetry()
	defer shutdown()

	report, err := a.pipeline.Run(ctx, settings, env.Mode)
	if err != nil {
		return zerr.Wrap(err, domain.ErrProvisioningFailed.Error())
	}

	a.logSummary(report)
	return nil
}

// Shell hands the operator over to an existing environment without provisioning.
func (a *App) Shell(ctx context.Context) error {
	settings, err := a.loadSettings()
	if err != nil {
		return err
	}

	settings.Interactive = a.detect().Interactive
	return a.session.Handoff(ctx, settings)
}

// Doctor reports whether a run could start and which accelerator build it would pick.
// It never changes anything on disk.
func (a *App) Doctor(ctx context.Context) error {
	settings, err := a.loadSettings()
	if err != nil {
		return err
	}

	env := a.detect()
	a.logger.Info(fmt.Sprintf("project root: %s", settings.Root))
	a.logger.Info(fmt.Sprintf("run mode: %s", env.Mode))

	outcome := a.pipeline.CheckPreconditions(ctx, settings.RequiredTools()...)

	variant := a.accelerator.Detect(ctx, settings.Accelerator)
	a.logger.Info(fmt.Sprintf("accelerator: %s build from %s", variant.Name(), variant.IndexURL))

	if info, statErr := os.Stat(settings.EnvDir); statErr == nil && info.IsDir() {
		a.logger.Info("environment: " + settings.Rel(settings.EnvDir))
	} else {
		a.logger.Info("environment: not created yet")
	}

	record, err := a.store.Get(settings.Root)
	switch {
	case err != nil:
		a.logger.Warn("could not read last run: " + err.Error())
	case record == nil:
		a.logger.Info("last run: never")
	default:
		a.logger.Info(fmt.Sprintf("last run: %s, %d pins, lock %s, mode %s",
			record.Timestamp.Format(time.RFC3339), record.PinCount, record.LockDigest, record.Mode))
	}

	return outcome.Error()
}

func (a *App) loadSettings() (domain.Settings, error) {
	cwd, err := a.getwd()
	if err != nil {
		return domain.Settings{}, zerr.Wrap(err, "failed to get working directory")
	}

	settings, err := a.configLoader.Load(cwd)
	if err != nil {
		return domain.Settings{}, zerr.Wrap(err, "failed to load configuration")
	}
	return settings, nil
}

// setupTelemetry routes pipeline spans to the renderer.
func (a *App) setupTelemetry() func() {
	if a.renderer == nil {
		return func() {}
	}
	tp := telemetry.Setup(a.renderer)
	return func() {
		_ = tp.Shutdown(context.Background())
	}
}

func (a *App) logSummary(report domain.Report) {
	warnings := report.Warnings()
	if len(warnings) == 0 {
		a.logger.Info("environment ready")
		return
	}
	a.logger.Warn(fmt.Sprintf("environment ready with %d warning(s)", len(warnings)))
}
