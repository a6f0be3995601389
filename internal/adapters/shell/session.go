package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/creack/pty"
	"go.trai.ch/envy/internal/core/domain"
	"go.trai.ch/envy/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

// Session implements ports.Session. Interactive callers get a subshell running in a
// PTY with the environment activated; everyone else gets activation instructions.
type Session struct {
	logger ports.Logger
	stdin  *os.File
	stdout io.Writer
}

// NewSession creates a Session bound to the process terminal.
func NewSession(logger ports.Logger) *Session {
	return &Session{
		logger: logger,
		stdin:  os.Stdin,
		stdout: os.Stdout,
	}
}

// Handoff activates the environment for the operator.
func (s *Session) Handoff(ctx context.Context, settings domain.Settings) error {
	if _, err := os.Stat(settings.EnvDir); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrEnvironmentMissing.Error()), "path", settings.EnvDir)
	}

	if !settings.Interactive {
		s.logger.Info(ActivationHint(settings))
		return nil
	}

	shell := resolveShell(settings.Shell, os.Getenv("SHELL"))
	s.logger.Info(fmt.Sprintf("entering %s with %s activated (exit to leave)", shell, settings.Rel(settings.EnvDir)))

	if err := s.spawn(ctx, shell, ActivatedEnv(os.Environ(), settings.EnvDir), settings.Root); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrHandoffFailed.Error()), "shell", shell)
	}
	return nil
}

func (s *Session) spawn(ctx context.Context, shell string, env []string, dir string) error {
	cmd := exec.CommandContext(ctx, shell) //nolint:gosec // shell comes from configuration or $SHELL
	cmd.Env = env
	cmd.Dir = dir

	size, err := pty.GetsizeFull(s.stdin)
	if err != nil {
		size = nil
	}

	ptmx, err := pty.StartWithSize(cmd, size)
	if err != nil {
		return zerr.Wrap(err, "failed to start pty")
	}
	defer func() { _ = ptmx.Close() }()

	fd := int(s.stdin.Fd()) //nolint:gosec // file descriptors fit in int
	if term.IsTerminal(fd) {
		oldState, rawErr := term.MakeRaw(fd)
		if rawErr != nil {
			return zerr.Wrap(rawErr, "failed to switch terminal to raw mode")
		}
		defer func() { _ = term.Restore(fd, oldState) }()
	}

	// Reading stdin blocks until the next keystroke, so the copy into the PTY
	// is left running; it ends with the process.
	go func() { _, _ = io.Copy(ptmx, s.stdin) }()

	var g errgroup.Group
	g.Go(func() error {
		_, copyErr := io.Copy(s.stdout, ptmx)
		// Reading a PTY whose child has exited reports EIO on Linux.
		if copyErr != nil && !isPTYClosed(copyErr) {
			return copyErr
		}
		return nil
	})

	waitErr := cmd.Wait()
	_ = ptmx.Close()
	if copyErr := g.Wait(); copyErr != nil && waitErr == nil {
		return copyErr
	}

	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		// The operator's last command decides the shell's exit status; that is not a handoff failure.
		return nil
	}
	return waitErr
}

func isPTYClosed(err error) bool {
	var pathErr *os.PathError
	return errors.As(err, &pathErr)
}

// resolveShell picks the configured shell, then $SHELL, then the platform default.
func resolveShell(configured, fromEnv string) string {
	switch {
	case configured != "":
		return configured
	case fromEnv != "":
		return fromEnv
	case runtime.GOOS == "windows":
		return "cmd.exe"
	default:
		return "/bin/sh"
	}
}

// ActivatedEnv returns env with the environment activated: VIRTUAL_ENV set,
// its bin directory first on PATH and PYTHONHOME removed.
func ActivatedEnv(env []string, envDir string) []string {
	abs, err := filepath.Abs(envDir)
	if err != nil {
		abs = envDir
	}

	filtered := make([]string, 0, len(env)+1)
	for _, entry := range env {
		k, _, _ := strings.Cut(entry, "=")
		if k == "PYTHONHOME" || k == "VIRTUAL_ENV" {
			continue
		}
		filtered = append(filtered, entry)
	}

	return mergeEnvironment(filtered, []string{
		"VIRTUAL_ENV=" + abs,
		"PATH=" + domain.EnvBinDir(abs),
	})
}

// ActivationHint returns the instructions printed when no subshell is started.
func ActivationHint(settings domain.Settings) string {
	rel := settings.Rel(settings.EnvDir)
	if runtime.GOOS == "windows" {
		return fmt.Sprintf("environment ready; activate it with: %s", filepath.Join(rel, "Scripts", "activate"))
	}
	return fmt.Sprintf("environment ready; activate it with: source %s", filepath.Join(rel, "bin", "activate"))
}
