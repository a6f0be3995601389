// Package config provides the configuration loader for envy.
package config

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/envy/internal/core/domain"
	"go.trai.ch/envy/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the only envy.yaml schema version understood by this loader.
const SupportedVersion = "1"

// Loader implements ports.ConfigLoader using an optional envy.yaml file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load resolves the settings for a run started in cwd. The nearest envy.yaml in
// cwd or one of its parents is applied over the defaults; without one, cwd is the
// project root and the defaults apply unchanged.
func (l *Loader) Load(cwd string) (domain.Settings, error) {
	cwd, err := filepath.Abs(cwd)
	if err != nil {
		return domain.Settings{}, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	configPath, found := findConfiguration(cwd)
	if !found {
		l.Logger.Debug("no " + domain.ConfigFileName + " found, using defaults")
		settings := domain.DefaultSettings(cwd)
		return settings, settings.Validate()
	}

	l.Logger.Debug("using configuration " + configPath)

	var envyfile Envyfile
	if err := readAndUnmarshalYAML(configPath, &envyfile); err != nil {
		return domain.Settings{}, zerr.With(err, "path", configPath)
	}

	if envyfile.Version != "" && envyfile.Version != SupportedVersion {
		err := zerr.With(domain.ErrUnsupportedConfigVersion, "version", envyfile.Version)
		return domain.Settings{}, zerr.With(err, "path", configPath)
	}

	settings := apply(domain.DefaultSettings(filepath.Dir(configPath)), &envyfile)
	if err := settings.Validate(); err != nil {
		return domain.Settings{}, zerr.With(err, "path", configPath)
	}
	return settings, nil
}

// findConfiguration walks from cwd up to the filesystem root.
func findConfiguration(cwd string) (string, bool) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", false
		}
		currentDir = parentDir
	}
}

func apply(settings domain.Settings, f *Envyfile) domain.Settings {
	root := settings.Root

	settings.EnvDir = resolvePath(root, f.Environment.Path, settings.EnvDir)
	settings.Manifest = resolvePath(root, f.Lock.Manifest, settings.Manifest)
	settings.LockFile = resolvePath(root, f.Lock.Output, settings.LockFile)
	settings.PythonVersion = orDefault(f.Environment.Python, settings.PythonVersion)
	settings.Interpreter = resolveTool(root, f.Tools.Interpreter, settings.Interpreter)
	settings.Resolver = resolveTool(root, f.Tools.Resolver, settings.Resolver)
	settings.Shell = resolveTool(root, f.Shell, settings.Shell)

	accel := &settings.Accelerator
	if len(f.Accelerator.Packages) > 0 {
		accel.Packages = append([]string(nil), f.Accelerator.Packages...)
	}
	accel.IndexBase = strings.TrimSuffix(orDefault(f.Accelerator.IndexBase, accel.IndexBase), "/")
	accel.IndexURL = orDefault(f.Accelerator.IndexURL, accel.IndexURL)
	accel.CUDAProbe = resolveTool(root, f.Accelerator.CUDAProbe, accel.CUDAProbe)

	return settings
}

func resolvePath(root, configured, fallback string) string {
	configured = strings.TrimSpace(configured)
	switch {
	case configured == "":
		return fallback
	case filepath.IsAbs(configured):
		return filepath.Clean(configured)
	default:
		return filepath.Clean(filepath.Join(root, configured))
	}
}

// resolveTool anchors a relative tool path ("./bin/uv") at root. Bare names
// ("uv") are left for the PATH lookup.
func resolveTool(root, configured, fallback string) string {
	configured = strings.TrimSpace(configured)
	if strings.ContainsRune(configured, '/') || strings.ContainsRune(configured, filepath.Separator) {
		return resolvePath(root, configured, fallback)
	}
	return orDefault(configured, fallback)
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is found by walking up from the working directory
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	decoder := yaml.NewDecoder(bytes.NewReader(configFile))
	decoder.KnownFields(true)
	// An empty file decodes to io.EOF and means "all defaults".
	if parseErr := decoder.Decode(target); parseErr != nil && !errors.Is(parseErr, io.EOF) {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
