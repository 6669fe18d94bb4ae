package ports

import "go.trai.ch/bundler/internal/core/domain"

// ConfigLoader defines the interface for loading the bundle configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load locates and reads the configuration. path may name a file or a
	// directory to start searching upwards from.
	Load(path string) (*domain.Config, error)
}
