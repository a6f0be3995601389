package domain

import "go.trai.ch/zerr"

var (
	// ErrMissingTool is returned when a required external executable cannot be found on PATH.
	ErrMissingTool = zerr.New("required tool not found")

	// ErrEnvironmentCreationFailed is returned when the isolated environment cannot be created.
	ErrEnvironmentCreationFailed = zerr.New("failed to create environment")

	// ErrCompileFailed is returned when the manifest cannot be compiled into a lock file.
	ErrCompileFailed = zerr.New("failed to compile manifest")

	// ErrSyncFailed is returned when the environment cannot be synchronized to the lock file.
	ErrSyncFailed = zerr.New("failed to sync environment")

	// ErrAcceleratorInstallFailed is returned when the accelerator runtime cannot be installed.
	ErrAcceleratorInstallFailed = zerr.New("failed to install accelerator runtime")

	// ErrHandoffFailed is returned when the interactive session cannot be started.
	ErrHandoffFailed = zerr.New("failed to start environment session")

	// ErrCommandFailed is returned when an external command exits unsuccessfully.
	ErrCommandFailed = zerr.New("command failed")

	// ErrEmptyCommand is returned when a command has no executable name.
	ErrEmptyCommand = zerr.New("empty command")

	// ErrManifestReadFailed is returned when the manifest file cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read manifest")

	// ErrManifestParseFailed is returned when a manifest line cannot be parsed.
	ErrManifestParseFailed = zerr.New("failed to parse manifest")

	// ErrLockReadFailed is returned when the lock file cannot be read.
	ErrLockReadFailed = zerr.New("failed to read lock file")

	// ErrLockParseFailed is returned when a lock file entry cannot be parsed.
	ErrLockParseFailed = zerr.New("failed to parse lock file")

	// ErrLockIncomplete is returned when the lock file does not pin every direct requirement.
	ErrLockIncomplete = zerr.New("lock file does not pin every direct requirement")

	// ErrSyncDrift is returned when the installed package set differs from the lock file after a sync.
	ErrSyncDrift = zerr.New("installed packages do not match lock file")

	// ErrInventoryFailed is returned when the installed package set cannot be listed.
	ErrInventoryFailed = zerr.New("failed to list installed packages")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrUnsupportedConfigVersion is returned when the config file declares an unknown version.
	ErrUnsupportedConfigVersion = zerr.New("unsupported config version")

	// ErrInvalidSetting is returned when a configured value is empty or malformed.
	ErrInvalidSetting = zerr.New("invalid setting")

	// ErrStoreCreateFailed is returned when the state directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create state directory")

	// ErrStoreReadFailed is returned when the run record cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read run record")

	// ErrStoreUnmarshalFailed is returned when the run record cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal run record")

	// ErrStoreMarshalFailed is returned when the run record cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal run record")

	// ErrStoreWriteFailed is returned when the run record cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write run record")

	// ErrFileOpenFailed is returned when a file cannot be opened.
	ErrFileOpenFailed = zerr.New("failed to open file")

	// ErrFileHashFailed is returned when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrEnvironmentMissing is returned when a command needs an environment that does not exist yet.
	ErrEnvironmentMissing = zerr.New("environment does not exist, run 'envy up' first")

	// ErrWatchFailed is returned when the file watcher cannot be started.
	ErrWatchFailed = zerr.New("failed to watch files")

	// ErrWatcherStarted is returned when Start is called on a running watcher.
	ErrWatcherStarted = zerr.New("watcher already started")

	// ErrProvisioningFailed is returned by the CLI when the pipeline stopped on a fatal step.
	ErrProvisioningFailed = zerr.New("provisioning failed")
)
