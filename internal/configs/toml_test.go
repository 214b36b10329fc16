package configs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveTOMLCreatesParentAndLeavesNoTempFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "config.toml")

	if err := SaveTOML(target, Defaults()); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	if _, err := os.Stat(target); err != nil {
		t.Fatalf("Expected %s to exist: %v", target, err)
	}
	if _, err := os.Stat(target + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("Expected temp file to be renamed away, stat err: %v", err)
	}

	var loaded UserConfig
	if err := LoadTOML(target, &loaded); err != nil {
		t.Fatalf("LoadTOML failed: %v", err)
	}
	if loaded.Vault.ServiceName != DefaultServiceName {
		t.Errorf("Expected service name %q, got %q", DefaultServiceName, loaded.Vault.ServiceName)
	}
}

func TestLoadTOMLNonExistent(t *testing.T) {
	var data UserConfig
	if err := LoadTOML(filepath.Join(t.TempDir(), "missing.toml"), &data); err == nil {
		t.Fatal("Expected error for non-existent file, got nil")
	}
}
