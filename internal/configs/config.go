package configs

import (
	"fmt"
	"os"
	"strings"
)

const (
	// DefaultServiceName prefixes every secret key and names the keychain
	// service on macOS.
	DefaultServiceName = "tokn"

	// DefaultKeychainCommand is the macOS keystore CLI.
	DefaultKeychainCommand = "security"
)

type UserConfig struct {
	Vault    VaultConfig    `toml:"vault"`
	Export   ExportConfig   `toml:"export"`
	Profiles ProfilesConfig `toml:"profiles"`
}

type VaultConfig struct {
	ServiceName     string `toml:"service_name"`
	KeychainCommand string `toml:"keychain_command"`
}

type ExportConfig struct {
	IncludeSecrets bool `toml:"include_secrets"`
}

type ProfilesConfig struct {
	Default string `toml:"default"`
}

// Defaults returns the configuration used when config.toml is absent.
func Defaults() *UserConfig {
	return &UserConfig{
		Vault: VaultConfig{
			ServiceName:     DefaultServiceName,
			KeychainCommand: DefaultKeychainCommand,
		},
	}
}

// LoadUserConfig loads config.toml from the settings' config path. Empty
// fields fall back to Defaults().
func LoadUserConfig(settings *Settings) (*UserConfig, error) {
	config := Defaults()

	if _, err := os.Stat(settings.ConfigPath); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(settings.ConfigPath, config); err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	config.applyDefaults()
	return config, nil
}

// SaveUserConfig saves the user configuration to config.toml.
func SaveUserConfig(settings *Settings, config *UserConfig) error {
	if err := SaveTOML(settings.ConfigPath, config); err != nil {
		return fmt.Errorf("failed to save user config: %w", err)
	}
	return nil
}

func (c *UserConfig) applyDefaults() {
	c.Vault.ServiceName = strings.TrimSpace(c.Vault.ServiceName)
	if c.Vault.ServiceName == "" {
		c.Vault.ServiceName = DefaultServiceName
	}
	if strings.TrimSpace(c.Vault.KeychainCommand) == "" {
		c.Vault.KeychainCommand = DefaultKeychainCommand
	}
}
