package app

import "go.trai.ch/envy/internal/core/ports"

// Components holds everything the CLI needs from the dependency graph.
type Components struct {
	App    *App
	Logger ports.Logger
}
