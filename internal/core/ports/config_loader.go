package ports

import "go.trai.ch/envy/internal/core/domain"

// ConfigLoader defines the interface for loading the provisioning configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load finds the configuration for the given working directory and returns resolved settings.
	// Defaults rooted at cwd are returned when no config file exists.
	Load(cwd string) (domain.Settings, error)
}
