//go:build e2e

package e2e_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

var envyBinary string

// fakeUV stands in for the resolver. It keeps the "installed" set in a
// file inside the environment so sync and freeze round-trip.
const fakeUV = `#!/bin/sh
set -e
state() { echo "$(dirname "$(dirname "$1")")/installed.txt"; }
case "$1 $2" in
venv*)
	mkdir -p "$2/bin"
	echo "created $2" >&2
	;;
"pip compile")
	grep -v '^#' "$3" | grep -v '^$' | sed 's/$/==1.0.0/' > "$5"
	;;
"pip sync")
	cp "$3" "$(state "$5")"
	;;
"pip freeze")
	f="$(state "$4")"
	if [ -f "$f" ]; then cat "$f"; fi
	;;
*)
	echo "fake uv: unsupported: $*" >&2
	exit 2
	;;
esac
`

const fakePython = `#!/bin/sh
echo "Python 3.11.0"
`

func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "envy-e2e-*")
	if err != nil {
		panic(err)
	}

	envyBinary = filepath.Join(tmpDir, "envy")

	//nolint:gosec // Building binary with static arguments, not user input
	cmd := exec.Command("go", "build", "-o", envyBinary, "./cmd/envy")
	cmd.Dir = ".."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		panic("failed to build envy binary: " + err.Error())
	}

	exitCode := m.Run()

	_ = os.RemoveAll(tmpDir)

	os.Exit(exitCode)
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir:   "testdata",
		Setup: setupE2E,
	})
}

func setupE2E(env *testscript.Env) error {
	env.Setenv("NO_COLOR", "1")
	env.Setenv("CI", "true")

	toolsDir := filepath.Join(env.WorkDir, ".tools")
	if err := os.MkdirAll(toolsDir, 0o750); err != nil {
		return err
	}
	for name, body := range map[string]string{"uv": fakeUV, "python3": fakePython} {
		//nolint:gosec // Test fixtures must be executable
		if err := os.WriteFile(filepath.Join(toolsDir, name), []byte(body), 0o755); err != nil {
			return err
		}
	}

	binDir := filepath.Dir(envyBinary)
	currentPath := env.Getenv("PATH")
	env.Setenv("PATH", binDir+string(os.PathListSeparator)+toolsDir+string(os.PathListSeparator)+currentPath)

	homeDir := filepath.Join(env.WorkDir, ".home")
	if err := os.MkdirAll(homeDir, 0o750); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)

	return nil
}
