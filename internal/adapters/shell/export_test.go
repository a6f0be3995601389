package shell

import "io"

var (
	MergeEnvironment = mergeEnvironment
	LookPath         = lookPath
	ResolveShell     = resolveShell
)

// NewLocatorWithEnv creates a Locator that reads PATH from env instead of the process.
func NewLocatorWithEnv(env []string) *Locator {
	return &Locator{env: func() []string { return env }}
}

// SetOutput redirects the session's terminal output.
func (s *Session) SetOutput(w io.Writer) {
	s.stdout = w
}
