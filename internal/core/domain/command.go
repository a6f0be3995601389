package domain

import "strings"

// Command is an external process invocation.
type Command struct {
	Name string
	Args []string
	// Dir is the working directory. Empty means the current directory.
	Dir string
	// Env holds extra "KEY=VALUE" entries layered over the inherited environment.
	Env []string
}

// String renders the command line for logs and diagnostics.
func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// CommandResult holds what a finished process wrote.
type CommandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}
