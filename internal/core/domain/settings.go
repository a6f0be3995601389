package domain

import (
	"path/filepath"

	"go.trai.ch/zerr"
)

// Settings is the resolved configuration of a provisioning run.
// All paths are absolute once produced by the config loader.
type Settings struct {
	// Root is the project directory; external tools run from here.
	Root string
	// Manifest is the author-edited list of direct dependencies.
	Manifest string
	// LockFile is the compiled, fully pinned output.
	LockFile string
	// EnvDir is the isolated environment installation root.
	EnvDir string
	// PythonVersion is the interpreter version used when the environment is created.
	PythonVersion string
	// Interpreter and Resolver are the executables checked before anything runs.
	Interpreter string
	Resolver    string
	// Accelerator configures the hardware dependent install.
	Accelerator AcceleratorSettings
	// Shell is the program started by the session handoff. Empty means $SHELL.
	Shell string
	// Interactive requests a subshell from the handoff. When false the handoff
	// prints activation instructions instead. Decided by the caller, not the config file.
	Interactive bool
}

// AcceleratorSettings configures the best-effort accelerator install.
type AcceleratorSettings struct {
	Packages []string
	// IndexBase is the wheel index root; the variant suffix (cu118, cpu) is appended.
	IndexBase string
	// IndexURL overrides variant detection entirely when set.
	IndexURL string
	// CUDAProbe is the executable queried for the CUDA toolkit version.
	CUDAProbe string
}

// DefaultSettings returns the settings used when no config file is present.
func DefaultSettings(root string) Settings {
	return Settings{
		Root:          root,
		Manifest:      filepath.Join(root, DefaultManifestFile),
		LockFile:      filepath.Join(root, DefaultLockFile),
		EnvDir:        filepath.Join(root, DefaultEnvDir),
		PythonVersion: DefaultPythonVersion,
		Interpreter:   DefaultInterpreterTool,
		Resolver:      DefaultResolverTool,
		Accelerator: AcceleratorSettings{
			Packages:  DefaultAcceleratorPackages(),
			IndexBase: DefaultAcceleratorIndexBase,
			CUDAProbe: DefaultCUDAProbe,
		},
	}
}

// RequiredTools returns the executables that must be reachable before a run.
func (s Settings) RequiredTools() []string {
	return []string{s.Interpreter, s.Resolver}
}

// Rel returns path relative to the project root, or path itself when that is not possible.
func (s Settings) Rel(path string) string {
	rel, err := filepath.Rel(s.Root, path)
	if err != nil {
		return path
	}
	return rel
}

// Validate checks that every mandatory setting is present.
func (s Settings) Validate() error {
	required := []struct {
		key   string
		value string
	}{
		{"root", s.Root},
		{"lock.manifest", s.Manifest},
		{"lock.output", s.LockFile},
		{"environment.path", s.EnvDir},
		{"environment.python", s.PythonVersion},
		{"tools.interpreter", s.Interpreter},
		{"tools.resolver", s.Resolver},
	}
	for _, r := range required {
		if r.value == "" {
			return zerr.With(ErrInvalidSetting, "key", r.key)
		}
	}
	if len(s.Accelerator.Packages) == 0 {
		return zerr.With(ErrInvalidSetting, "key", "accelerator.packages")
	}
	if s.Accelerator.IndexURL == "" && s.Accelerator.IndexBase == "" {
		return zerr.With(ErrInvalidSetting, "key", "accelerator.index_base")
	}
	return nil
}
