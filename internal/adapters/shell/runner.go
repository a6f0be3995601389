// Package shell runs external tools and hands the operator an activated subshell.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/envy/internal/core/domain"
	"go.trai.ch/envy/internal/core/ports"
	"go.trai.ch/zerr"
)

// Runner implements ports.CommandRunner using os/exec.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a Runner that streams tool output into logger.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{logger: logger}
}

// Run executes cmd and waits for it to exit. Each output line is forwarded to the
// logger while it is produced; stdout lines at debug level, stderr lines at info level.
// A non-zero exit returns an error whose cause is the tool's stderr, unmodified.
func (r *Runner) Run(ctx context.Context, cmd domain.Command) (domain.CommandResult, error) {
	if cmd.Name == "" {
		return domain.CommandResult{}, domain.ErrEmptyCommand
	}

	env := mergeEnvironment(os.Environ(), cmd.Env)

	executable := cmd.Name
	if !filepath.IsAbs(executable) {
		if lp, err := lookPath(executable, env); err == nil {
			executable = lp
		}
	}

	c := exec.CommandContext(ctx, executable, cmd.Args...) //nolint:gosec // tool names come from configuration
	c.Args[0] = cmd.Name
	c.Dir = cmd.Dir
	c.Env = env

	var stdout, stderr bytes.Buffer
	stdoutLog := &logWriter{logger: r.logger, level: levelDebug}
	stderrLog := &logWriter{logger: r.logger, level: levelInfo}
	c.Stdout = io.MultiWriter(&stdout, stdoutLog)
	c.Stderr = io.MultiWriter(&stderr, stderrLog)

	r.logger.Debug("running " + cmd.String())
	runErr := c.Run()
	_ = stdoutLog.Close()
	_ = stderrLog.Close()

	result := domain.CommandResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode(runErr),
	}
	if runErr == nil {
		return result, nil
	}

	return result, commandError(cmd, result, runErr)
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// commandError keeps the tool's own diagnostic as the root cause so callers
// can show it verbatim.
func commandError(cmd domain.Command, result domain.CommandResult, runErr error) error {
	cause := runErr
	if msg := strings.TrimRight(result.Stderr, "\r\n"); msg != "" {
		cause = errors.New(msg)
	}

	err := zerr.Wrap(cause, domain.ErrCommandFailed.Error())
	err = zerr.With(err, "command", cmd.String())
	return zerr.With(err, "exit_code", result.ExitCode)
}

// mergeEnvironment layers overrides ("KEY=VALUE") on top of the inherited environment.
// A PATH override is prepended to the inherited PATH.
func mergeEnvironment(sysEnv, overrides []string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(overrides))
	order := make([]string, 0, len(sysEnv)+len(overrides))

	set := func(k, v string) {
		if _, exists := envMap[k]; !exists {
			order = append(order, k)
		}
		envMap[k] = v
	}

	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			set(k, v)
		}
	}

	for _, entry := range overrides {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if k == "PATH" {
			if sysPath := envMap["PATH"]; sysPath != "" {
				v = v + string(os.PathListSeparator) + sysPath
			}
		}
		set(k, v)
	}

	result := make([]string, 0, len(order))
	for _, k := range order {
		result = append(result, k+"="+envMap[k])
	}
	return result
}

const (
	levelDebug = "debug"
	levelInfo  = "info"
)

type logWriter struct {
	logger ports.Logger
	level  string
	buf    []byte
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

// Close flushes a trailing line that had no newline.
func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	msg := strings.TrimSuffix(string(line), "\r")
	if msg == "" {
		return
	}

	if w.level == levelInfo {
		w.logger.Info(msg)
	} else {
		w.logger.Debug(msg)
	}
}
