package domain

import (
	"path/filepath"
	"runtime"
)

const (
	// EnvyDirName is the name of the internal state directory.
	EnvyDirName = ".envy"

	// StateFileName is the name of the run record file inside the state directory.
	StateFileName = "state.json"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "envy.yaml"

	// DefaultEnvDir is the default location of the isolated environment.
	DefaultEnvDir = ".venv"

	// DefaultPythonVersion is the interpreter version used when creating the environment.
	DefaultPythonVersion = "3.11"

	// DefaultManifestFile is the default manifest of direct dependencies.
	DefaultManifestFile = "requirements.in"

	// DefaultLockFile is the default output of the manifest compilation.
	DefaultLockFile = "requirements.txt"

	// DefaultInterpreterTool is the interpreter that must be reachable on PATH.
	DefaultInterpreterTool = "python3"

	// DefaultResolverTool is the resolver/installer that must be reachable on PATH.
	DefaultResolverTool = "uv"

	// DefaultCUDAProbe is the executable used to detect the CUDA toolkit.
	DefaultCUDAProbe = "nvcc"

	// DefaultAcceleratorIndexBase is the base of the accelerator wheel index.
	DefaultAcceleratorIndexBase = "https://download.pytorch.org/whl"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultAcceleratorPackages returns the packages installed by the accelerator step.
func DefaultAcceleratorPackages() []string {
	return []string{"torch", "torchvision", "torchaudio"}
}

// DefaultStatePath returns the default path of the run record relative to a project root.
// It joins .envy and state.json.
func DefaultStatePath() string {
	return filepath.Join(EnvyDirName, StateFileName)
}

// EnvBinDir returns the directory holding the environment's executables.
func EnvBinDir(envDir string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(envDir, "Scripts")
	}
	return filepath.Join(envDir, "bin")
}

// EnvInterpreter returns the path of the environment's Python interpreter.
func EnvInterpreter(envDir string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(EnvBinDir(envDir), "python.exe")
	}
	return filepath.Join(EnvBinDir(envDir), "python")
}
