package configs

import (
	"os"
	"path/filepath"
	"testing"
)

func testSettings(t *testing.T) *Settings {
	t.Helper()
	root := t.TempDir()
	return NewSettings(filepath.Join(root, "config"), filepath.Join(root, "data"))
}

func TestLoadUserConfigNonExistent(t *testing.T) {
	settings := testSettings(t)

	config, err := LoadUserConfig(settings)
	if err != nil {
		t.Fatalf("LoadUserConfig failed: %v", err)
	}

	if config.Vault.ServiceName != DefaultServiceName {
		t.Errorf("Expected service name %q, got %q", DefaultServiceName, config.Vault.ServiceName)
	}
	if config.Vault.KeychainCommand != DefaultKeychainCommand {
		t.Errorf("Expected keychain command %q, got %q", DefaultKeychainCommand, config.Vault.KeychainCommand)
	}
	if config.Export.IncludeSecrets {
		t.Error("Expected include_secrets to default to false")
	}
}

func TestSaveAndLoadUserConfig(t *testing.T) {
	settings := testSettings(t)

	config := Defaults()
	config.Vault.ServiceName = "corp-tokn"
	config.Export.IncludeSecrets = true
	config.Profiles.Default = "svc"

	if err := SaveUserConfig(settings, config); err != nil {
		t.Fatalf("SaveUserConfig failed: %v", err)
	}

	loaded, err := LoadUserConfig(settings)
	if err != nil {
		t.Fatalf("LoadUserConfig failed: %v", err)
	}

	if loaded.Vault.ServiceName != "corp-tokn" {
		t.Errorf("Expected service name %q, got %q", "corp-tokn", loaded.Vault.ServiceName)
	}
	if !loaded.Export.IncludeSecrets {
		t.Error("Expected include_secrets to be true")
	}
	if loaded.Profiles.Default != "svc" {
		t.Errorf("Expected default profile %q, got %q", "svc", loaded.Profiles.Default)
	}
}

func TestLoadUserConfigFillsBlankFields(t *testing.T) {
	settings := testSettings(t)
	if err := os.MkdirAll(filepath.Dir(settings.ConfigPath), 0700); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}

	content := "[vault]\nservice_name = \"  \"\n\n[profiles]\ndefault = \"svc\"\n"
	if err := os.WriteFile(settings.ConfigPath, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	config, err := LoadUserConfig(settings)
	if err != nil {
		t.Fatalf("LoadUserConfig failed: %v", err)
	}

	if config.Vault.ServiceName != DefaultServiceName {
		t.Errorf("Expected blank service name to fall back to %q, got %q", DefaultServiceName, config.Vault.ServiceName)
	}
	if config.Profiles.Default != "svc" {
		t.Errorf("Expected default profile %q, got %q", "svc", config.Profiles.Default)
	}
}

func TestLoadUserConfigInvalidTOML(t *testing.T) {
	settings := testSettings(t)
	if err := os.MkdirAll(filepath.Dir(settings.ConfigPath), 0700); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	if err := os.WriteFile(settings.ConfigPath, []byte("[vault\nservice_name ="), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := LoadUserConfig(settings); err == nil {
		t.Fatal("Expected error for invalid TOML, got nil")
	}
}

func TestResolveSettingsHonoursHomeEnv(t *testing.T) {
	root := t.TempDir()
	t.Setenv(HomeEnv, root)

	settings, err := ResolveSettings()
	if err != nil {
		t.Fatalf("ResolveSettings failed: %v", err)
	}

	if settings.ProfilesPath != filepath.Join(root, "data", "profiles.json") {
		t.Errorf("Unexpected profiles path: %s", settings.ProfilesPath)
	}
	if settings.ConfigPath != filepath.Join(root, "config", "config.toml") {
		t.Errorf("Unexpected config path: %s", settings.ConfigPath)
	}
	if settings.SecretsPath != filepath.Join(root, "data", "secrets") {
		t.Errorf("Unexpected secrets path: %s", settings.SecretsPath)
	}
}

func TestEnsureDirectories(t *testing.T) {
	settings := testSettings(t)

	if err := settings.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}

	for _, dir := range []string{filepath.Dir(settings.ConfigPath), settings.DataPath} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("Expected %s to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Errorf("Expected %s to be a directory", dir)
		}
	}
}
