package shell

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"go.trai.ch/envy/internal/core/domain"
	"go.trai.ch/zerr"
)

// Locator implements ports.ToolLocator against the process PATH.
type Locator struct {
	env func() []string
}

// NewLocator creates a Locator reading PATH from the process environment.
func NewLocator() *Locator {
	return &Locator{env: os.Environ}
}

// LookPath returns the absolute path of the named executable.
func (l *Locator) LookPath(name string) (string, error) {
	if filepath.IsAbs(name) {
		if err := findExecutable(name); err != nil {
			return "", zerr.With(domain.ErrMissingTool, "tool", name)
		}
		return name, nil
	}

	path, err := lookPath(name, l.env())
	if err != nil {
		return "", zerr.With(domain.ErrMissingTool, "tool", name)
	}
	return path, nil
}

// lookPath searches the directories named by PATH in env. Names containing a
// path separator are not searched; they are checked as given.
func lookPath(file string, env []string) (string, error) {
	if strings.ContainsRune(file, '/') || strings.ContainsRune(file, filepath.Separator) {
		for _, candidate := range candidates(file) {
			if err := findExecutable(candidate); err == nil {
				return candidate, nil
			}
		}
		return "", exec.ErrNotFound
	}

	var path string
	for _, e := range env {
		if v, ok := strings.CutPrefix(e, "PATH="); ok {
			path = v
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: an empty element means ".".
			dir = "."
		}
		for _, candidate := range candidates(filepath.Join(dir, file)) {
			if err := findExecutable(candidate); err == nil {
				return candidate, nil
			}
		}
	}
	return "", exec.ErrNotFound
}

func candidates(path string) []string {
	if runtime.GOOS != "windows" || filepath.Ext(path) != "" {
		return []string{path}
	}
	return []string{path, path + ".exe", path + ".bat", path + ".cmd"}
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	m := d.Mode()
	if m.IsDir() {
		return os.ErrPermission
	}
	if runtime.GOOS == "windows" || m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
