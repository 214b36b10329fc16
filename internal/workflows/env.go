package workflows

import (
	"fmt"

	"github.com/PolarWolf314/tokn/internal/configs"
	logger "github.com/PolarWolf314/tokn/internal/logging"
	"github.com/PolarWolf314/tokn/internal/profiles"
	"github.com/PolarWolf314/tokn/internal/secrets"
)

// Env bundles what every workflow needs.
type Env struct {
	Settings *configs.Settings
	Config   *configs.UserConfig
	Backend  secrets.Backend
	Repo     *profiles.Repository
	Logger   logger.Logger
}

// NewEnv wires a repository over backend using the paths in settings.
func NewEnv(settings *configs.Settings, config *configs.UserConfig, backend secrets.Backend, log logger.Logger) *Env {
	return &Env{
		Settings: settings,
		Config:   config,
		Backend:  backend,
		Logger:   log,
		Repo: profiles.NewRepository(profiles.RepositoryOptions{
			Path:        settings.ProfilesPath,
			Backend:     backend,
			ServiceName: config.Vault.ServiceName,
			Logger:      log,
		}),
	}
}

// OpenEnv loads config.toml and opens the platform secret backend.
// It returns ErrNoBackend when the host has no supported backend.
func OpenEnv(settings *configs.Settings, log logger.Logger) (*Env, error) {
	config, err := configs.LoadUserConfig(settings)
	if err != nil {
		return nil, err
	}

	backend, err := secrets.Open(secrets.Options{
		Dir:             settings.SecretsPath,
		ServiceName:     config.Vault.ServiceName,
		KeychainCommand: config.Vault.KeychainCommand,
		Logger:          log,
	})
	if err != nil {
		return nil, fmt.Errorf("opening secret backend: %w", err)
	}

	return NewEnv(settings, config, backend, log), nil
}
