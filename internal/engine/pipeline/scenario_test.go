package pipeline_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/envy/internal/adapters/cas"
	"go.trai.ch/envy/internal/adapters/fs"
	"go.trai.ch/envy/internal/adapters/requirements"
	"go.trai.ch/envy/internal/adapters/telemetry"
	"go.trai.ch/envy/internal/core/domain"
	"go.trai.ch/envy/internal/core/ports/mocks"
	"go.trai.ch/envy/internal/engine/pipeline"
	"go.uber.org/mock/gomock"
)

const scenarioLock = `# This file was autogenerated by uv via the following command:
#    uv pip compile requirements.in -o requirements.txt
pkga==1.2.3
    # via -r requirements.in
pkgb==0.9.0
    # via pkga
`

// fakeToolchain keeps an in-memory environment and scripts the resolver's output.
type fakeToolchain struct {
	lock      string
	installed map[string]domain.Pin
	installs  []string
	removals  []string
	creates   int
}

func newFakeToolchain() *fakeToolchain {
	return &fakeToolchain{lock: scenarioLock, installed: make(map[string]domain.Pin)}
}

func (f *fakeToolchain) CreateEnvironment(_ context.Context, s domain.Settings) error {
	f.creates++
	return os.MkdirAll(s.EnvDir, 0o750)
}

func (f *fakeToolchain) CompileManifest(_ context.Context, s domain.Settings) error {
	return os.WriteFile(s.LockFile, []byte(f.lock), 0o600)
}

func (f *fakeToolchain) SyncEnvironment(_ context.Context, s domain.Settings) error {
	lock, err := requirements.NewReader().ReadLock(s.LockFile)
	if err != nil {
		return err
	}

	want := make(map[string]domain.Pin, len(lock.Pins))
	for _, pin := range lock.Pins {
		want[pin.Key()] = pin
		if current, ok := f.installed[pin.Key()]; !ok || current.Version != pin.Version {
			f.installs = append(f.installs, pin.String())
		}
	}
	for key, pin := range f.installed {
		if _, ok := want[key]; !ok {
			f.removals = append(f.removals, pin.String())
		}
	}
	f.installed = want
	return nil
}

func (f *fakeToolchain) InstalledPackages(_ context.Context, _ domain.Settings) ([]domain.Pin, error) {
	pins := make([]domain.Pin, 0, len(f.installed))
	for _, pin := range f.installed {
		pins = append(pins, domain.Pin{Name: pin.Name, Version: pin.Version})
	}
	return pins, nil
}

func (f *fakeToolchain) InstallAccelerator(_ context.Context, _ domain.Settings) (domain.AcceleratorVariant, error) {
	return domain.AcceleratorVariant{IndexURL: "https://download.pytorch.org/whl/cpu"}, nil
}

func TestPipeline_Scenario_SyncIsExactAndIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any()).AnyTimes()

	locator := mocks.NewMockToolLocator(ctrl)
	locator.EXPECT().LookPath(gomock.Any()).Return("/usr/bin/tool", nil).AnyTimes()

	session := mocks.NewMockSession(ctrl)
	session.EXPECT().Handoff(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	settings := domain.DefaultSettings(t.TempDir())
	require.NoError(t, os.WriteFile(settings.Manifest, []byte("pkgA\n"), 0o600))

	toolchain := newFakeToolchain()
	store := cas.NewStore()
	p := pipeline.New(
		locator,
		toolchain,
		requirements.NewReader(),
		fs.NewHasher(),
		store,
		telemetry.NewNoOpTracer(),
		log,
		session,
	)

	// First run against an empty environment.
	report, err := p.Run(context.Background(), settings, domain.RunModeDryRun)
	require.NoError(t, err)
	assert.True(t, report.Succeeded())
	assert.Equal(t, 1, toolchain.creates)
	assert.ElementsMatch(t, []string{"pkga==1.2.3", "pkgb==0.9.0"}, toolchain.installs)
	assert.Empty(t, toolchain.removals)

	first, err := store.Get(settings.Root)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, 2, first.PinCount)

	firstLock, err := os.ReadFile(settings.LockFile)
	require.NoError(t, err)

	// Second run with an unchanged manifest installs nothing further.
	toolchain.installs = nil
	report, err = p.Run(context.Background(), settings, domain.RunModeDryRun)
	require.NoError(t, err)
	assert.True(t, report.Succeeded())
	assert.Equal(t, 1, toolchain.creates)
	assert.Empty(t, toolchain.installs)
	assert.Empty(t, toolchain.removals)

	sync, ok := report.Outcome(domain.StepSync)
	require.True(t, ok)
	assert.Equal(t, "environment already matches lock file", sync.Detail)

	secondLock, err := os.ReadFile(settings.LockFile)
	require.NoError(t, err)
	assert.Equal(t, firstLock, secondLock)

	second, err := store.Get(settings.Root)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, first.LockDigest, second.LockDigest)
}

func TestPipeline_Scenario_ExtraneousPackagesRemoved(t *testing.T) {
	ctrl := gomock.NewController(t)

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any()).AnyTimes()

	locator := mocks.NewMockToolLocator(ctrl)
	locator.EXPECT().LookPath(gomock.Any()).Return("/usr/bin/tool", nil).AnyTimes()

	settings := domain.DefaultSettings(t.TempDir())
	require.NoError(t, os.WriteFile(settings.Manifest, []byte("pkgA\n"), 0o600))

	toolchain := newFakeToolchain()
	toolchain.installed["leftover"] = domain.Pin{Name: "leftover", Version: "0.1.0"}

	p := pipeline.New(locator, toolchain, requirements.NewReader(), fs.NewHasher(), cas.NewStore(),
		telemetry.NewNoOpTracer(), log, mocks.NewMockSession(ctrl))

	_, err := p.Provision(context.Background(), settings, domain.RunModeDryRun)
	require.NoError(t, err)
	assert.Equal(t, []string{"leftover==0.1.0"}, toolchain.removals)

	installed, err := toolchain.InstalledPackages(context.Background(), settings)
	require.NoError(t, err)
	lock, err := requirements.NewReader().ReadLock(settings.LockFile)
	require.NoError(t, err)
	assert.True(t, domain.PlanSync(installed, lock).Empty())
}

func TestPipeline_Scenario_ManifestDiffersFromDirectPins(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		lock     string
		missing  string
	}{
		{
			name:     "requirement excluded by platform marker",
			manifest: "pkgA\npywin32 ; sys_platform == \"win32\"\n",
			lock:     scenarioLock,
		},
		{
			name:     "unnamed direct reference",
			manifest: "pkgA\ngit+https://example.com/org/pkgc.git@v1.0\n./vendor/pkgd\n",
			lock: scenarioLock +
				"pkgc @ git+https://example.com/org/pkgc.git@0123abcd\n    # via -r requirements.in\n" +
				"pkgd @ file:///project/vendor/pkgd\n    # via -r requirements.in\n",
		},
		{
			name:     "named requirement absent from lock",
			manifest: "pkgA\npkgE\n",
			lock:     scenarioLock,
			missing:  "pkge",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			log := mocks.NewMockLogger(ctrl)
			log.EXPECT().Debug(gomock.Any()).AnyTimes()
			log.EXPECT().Info(gomock.Any()).AnyTimes()
			log.EXPECT().Warn(gomock.Any()).AnyTimes()

			locator := mocks.NewMockToolLocator(ctrl)
			locator.EXPECT().LookPath(gomock.Any()).Return("/usr/bin/tool", nil).AnyTimes()

			settings := domain.DefaultSettings(t.TempDir())
			require.NoError(t, os.WriteFile(settings.Manifest, []byte(tt.manifest), 0o600))

			toolchain := newFakeToolchain()
			toolchain.lock = tt.lock
			p := pipeline.New(
				locator,
				toolchain,
				requirements.NewReader(),
				fs.NewHasher(),
				cas.NewStore(),
				telemetry.NewNoOpTracer(),
				log,
				mocks.NewMockSession(ctrl),
			)

			report, err := p.Provision(context.Background(), settings, domain.RunModeDryRun)
			if tt.missing != "" {
				require.Error(t, err)
				assert.ErrorContains(t, err, domain.ErrLockIncomplete.Error())
				assert.Empty(t, toolchain.installs, "sync must not run after a failed compile")
				return
			}

			require.NoError(t, err)
			assert.True(t, report.Succeeded())
			for _, line := range strings.Split(strings.TrimSpace(tt.lock), "\n") {
				if !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "#") {
					name, _, _ := strings.Cut(line, " ")
					name, _, _ = strings.Cut(name, "==")
					_, ok := toolchain.installed[domain.NormalizeName(name)]
					assert.True(t, ok, "%s should be installed", name)
				}
			}
		})
	}
}
