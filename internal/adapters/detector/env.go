// Package detector inspects the process environment once, at startup.
package detector

import (
	"os"

	"go.trai.ch/envy/internal/core/domain"
	"golang.org/x/term"
)

// Environment is what the CLI needs to know about how it was invoked.
type Environment struct {
	// Mode is the run mode selected by DRY_RUN.
	Mode domain.RunMode
	// Interactive is true when both stdin and stdout are terminals outside CI.
	Interactive bool
	// CI is true when the CI variable is set to "true" or "1".
	CI bool
}

// Detect reads the run mode toggle and the terminal state of the process.
func Detect() Environment {
	ci := IsCI(os.Getenv("CI"))
	tty := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) //nolint:gosec // fds fit in int

	return Environment{
		Mode:        domain.ParseRunMode(os.Getenv(domain.DryRunEnvVar)),
		Interactive: tty && !ci,
		CI:          ci,
	}
}

// IsCI interprets the value of the CI variable.
func IsCI(value string) bool {
	return value == "true" || value == "1"
}
