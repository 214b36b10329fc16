package configs

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// HomeEnv overrides every tokn location when set.
const HomeEnv = "TOKN_HOME"

type Settings struct {
	ConfigPath   string
	DataPath     string
	ProfilesPath string
	SecretsPath  string
	AuditPath    string
}

var ToknSettings *Settings

func init() {
	settings, err := ResolveSettings()
	if err != nil {
		log.Fatalf("error resolving tokn directories: %s", err)
	}
	ToknSettings = settings
}

// ResolveSettings computes the tokn directories from the environment.
func ResolveSettings() (*Settings, error) {
	if root := os.Getenv(HomeEnv); root != "" {
		return NewSettings(filepath.Join(root, "config"), filepath.Join(root, "data")), nil
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("getting config directory: %w", err)
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	return NewSettings(filepath.Join(configDir, "tokn"), filepath.Join(dataDir, "tokn")), nil
}

// NewSettings lays out the tokn files under the given directories.
func NewSettings(configDir, dataDir string) *Settings {
	return &Settings{
		ConfigPath:   filepath.Join(configDir, "config.toml"),
		DataPath:     dataDir,
		ProfilesPath: filepath.Join(dataDir, "profiles.json"),
		SecretsPath:  filepath.Join(dataDir, "secrets"),
		AuditPath:    filepath.Join(dataDir, "audit.jsonl"),
	}
}

// EnsureDirectories creates the data and config directories with user-only
// permissions.
func (s *Settings) EnsureDirectories() error {
	for _, dir := range []string{filepath.Dir(s.ConfigPath), s.DataPath} {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}
