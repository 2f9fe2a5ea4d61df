package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadExplicitFile(t *testing.T) {
	path := writeConfig(t, `{
		// vault lives next to the config
		"vault_dir": "/srv/vault",
		"data_dir": "/srv/data",
	}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.VaultDir != "/srv/vault" || cfg.DataDir != "/srv/data" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `{"vault_dir": "/srv/vault"}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.VaultDir != "/srv/vault" {
		t.Errorf("VaultDir = %q", cfg.VaultDir)
	}
	if cfg.DataDir != Default().DataDir {
		t.Errorf("DataDir = %q, want default", cfg.DataDir)
	}
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("explicitly named missing config must fail")
	}
}

func TestLoadMalformedFileFails(t *testing.T) {
	path := writeConfig(t, `{not json at all`)
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}
