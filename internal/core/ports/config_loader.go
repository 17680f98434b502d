package ports

import "github.com/ripplebuild/ripple/internal/core/domain"

// ConfigLoader defines the interface for loading the project configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load discovers the configuration file walking up from cwd and
	// returns the resolved configuration.
	Load(cwd string) (*domain.Config, error)
}
