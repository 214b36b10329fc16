package cmd

import (
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/PolarWolf314/tokn/internal/configs"
	kerrors "github.com/PolarWolf314/tokn/internal/errors"
)

func TestConfigInitWritesDefaults(t *testing.T) {
	settings := setupTestEnvironment(t)

	out, err := runCommand(t, "config", "init", "--service-name", "tokn-test", "--include-secrets")
	if err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if !strings.Contains(out, settings.ConfigPath) {
		t.Errorf("expected config path in output, got %q", out)
	}

	config, err := configs.LoadUserConfig(settings)
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	if config.Vault.ServiceName != "tokn-test" {
		t.Errorf("service name = %q, want tokn-test", config.Vault.ServiceName)
	}
	if !config.Export.IncludeSecrets {
		t.Error("expected include_secrets to be set")
	}

	if _, err := os.Stat(settings.DataPath); err != nil {
		t.Errorf("data directory not created: %v", err)
	}
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	setupTestEnvironment(t)

	if _, err := runCommand(t, "config", "init"); err != nil {
		t.Fatalf("first init failed: %v", err)
	}
	if _, err := runCommand(t, "config", "init"); err == nil {
		t.Error("expected second init to fail without --force")
	}
	if _, err := runCommand(t, "config", "init", "--force"); err != nil {
		t.Errorf("init --force failed: %v", err)
	}
}

func TestConfigInitFlagsDoNotLeak(t *testing.T) {
	settings := setupTestEnvironment(t)

	if _, err := runCommand(t, "config", "init", "--service-name", "custom"); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if _, err := runCommand(t, "config", "init", "--force"); err != nil {
		t.Fatalf("init --force failed: %v", err)
	}

	config, err := configs.LoadUserConfig(settings)
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	if config.Vault.ServiceName != configs.DefaultServiceName {
		t.Errorf("service name = %q, want the default", config.Vault.ServiceName)
	}
}

func TestConfigShowJSON(t *testing.T) {
	settings := setupTestEnvironment(t)

	out, err := runCommand(t, "config", "show", "--json")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}

	var view struct {
		ConfigPath   string `json:"config_path"`
		ProfilesPath string `json:"profiles_path"`
	}
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if view.ConfigPath != settings.ConfigPath || view.ProfilesPath != settings.ProfilesPath {
		t.Errorf("unexpected paths: %+v", view)
	}
}

func TestConfigShowText(t *testing.T) {
	setupTestEnvironment(t)

	out, err := runCommand(t, "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	for _, want := range []string{"Locations", "Settings", configs.DefaultServiceName} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output %q", want, out)
		}
	}
}

func TestConfigSetDefaultUsesStoredSpelling(t *testing.T) {
	settings := setupTestEnvironment(t)
	createProfile(t, "Svc")

	out, err := runCommand(t, "config", "set-default", "SVC")
	if err != nil {
		t.Fatalf("set-default failed: %v", err)
	}
	if !strings.Contains(out, "Default profile set to Svc") {
		t.Errorf("unexpected output %q", out)
	}

	config, err := configs.LoadUserConfig(settings)
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	if config.Profiles.Default != "Svc" {
		t.Errorf("default = %q, want Svc", config.Profiles.Default)
	}

	// Commands now fall back to the default profile.
	out, err = runCommand(t, "profile", "show")
	if err != nil {
		t.Fatalf("show without name failed: %v", err)
	}
	if !strings.Contains(out, "Profile Svc") {
		t.Errorf("expected default profile, got %q", out)
	}
}

func TestConfigSetDefaultRequiresExistingProfile(t *testing.T) {
	setupTestEnvironment(t)

	_, err := runCommand(t, "config", "set-default", "ghost")
	if !errors.Is(err, kerrors.ErrProfileNotFound) {
		t.Errorf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestConfigSetDefaultClears(t *testing.T) {
	settings := setupTestEnvironment(t)
	createProfile(t, "svc")
	if _, err := runCommand(t, "config", "set-default", "svc"); err != nil {
		t.Fatalf("set-default failed: %v", err)
	}

	out, err := runCommand(t, "config", "set-default", "")
	if err != nil {
		t.Fatalf("clearing default failed: %v", err)
	}
	if !strings.Contains(out, "Default profile cleared") {
		t.Errorf("unexpected output %q", out)
	}

	config, err := configs.LoadUserConfig(settings)
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	if config.Profiles.Default != "" {
		t.Errorf("default = %q, want empty", config.Profiles.Default)
	}
}
