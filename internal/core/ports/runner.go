package ports

import (
	"context"

	"go.trai.ch/envy/internal/core/domain"
)

// CommandRunner executes external processes.
//
//go:generate go run go.uber.org/mock/mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type CommandRunner interface {
	// Run starts the command and waits for it to exit.
	// A non-zero exit status is reported as an error that includes the captured stderr.
	Run(ctx context.Context, cmd domain.Command) (domain.CommandResult, error)
}

// ToolLocator resolves executables on the search path.
type ToolLocator interface {
	// LookPath returns the absolute path of the named executable.
	LookPath(name string) (string, error)
}
