package domain

import "strings"

// DryRunEnvVar is the environment toggle that selects the run mode.
const DryRunEnvVar = "DRY_RUN"

// RunMode selects between a normal run and a dry run.
// It is read once when the process starts and stays constant for the whole run.
// Only the accelerator step looks at it.
type RunMode uint8

const (
	// RunModeNormal performs every step.
	RunModeNormal RunMode = iota
	// RunModeDryRun skips the accelerator install.
	RunModeDryRun
)

// ParseRunMode interprets the value of the dry-run toggle.
// Unset, empty, "0" and "false" select the normal mode; anything else is a dry run.
func ParseRunMode(value string) RunMode {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "0", "false":
		return RunModeNormal
	default:
		return RunModeDryRun
	}
}

// IsDryRun reports whether the mode is a dry run.
func (m RunMode) IsDryRun() bool {
	return m == RunModeDryRun
}

func (m RunMode) String() string {
	if m == RunModeDryRun {
		return "dry-run"
	}
	return "normal"
}
