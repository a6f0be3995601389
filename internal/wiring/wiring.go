// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/envy/internal/adapters/accelerator"
	_ "go.trai.ch/envy/internal/adapters/cas"
	_ "go.trai.ch/envy/internal/adapters/config"
	_ "go.trai.ch/envy/internal/adapters/fs"
	_ "go.trai.ch/envy/internal/adapters/linear"
	_ "go.trai.ch/envy/internal/adapters/logger"
	_ "go.trai.ch/envy/internal/adapters/requirements"
	_ "go.trai.ch/envy/internal/adapters/shell"
	_ "go.trai.ch/envy/internal/adapters/telemetry"
	_ "go.trai.ch/envy/internal/adapters/uv"
	_ "go.trai.ch/envy/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/envy/internal/app"
	_ "go.trai.ch/envy/internal/engine/pipeline"
)
