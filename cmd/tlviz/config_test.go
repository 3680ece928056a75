package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/oukeidos/tlviz/internal/config"
)

func TestConfigShowDefaults(t *testing.T) {
	out, err := executeCommand(t, "config", "--config", filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("config failed: %v", err)
	}
	if !strings.Contains(out, "interpreter: python3") || !strings.Contains(out, "output_dir: maps") {
		t.Fatalf("unexpected config output:\n%s", out)
	}
}

func TestConfigInitWritesLoadableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tlviz.yml")
	if _, err := executeCommand(t, "config", "init", "--config", path); err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load written config: %v", err)
	}
	if cfg.Script != "app.py" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestConfigInitRefusesOverwriteWhenNonInteractive(t *testing.T) {
	f := newRunFixture(t) // installs a non-interactive confirmer
	path := filepath.Join(f.dir, "tlviz.yml")
	if err := os.WriteFile(path, []byte("script: custom.py\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := executeCommand(t, "config", "init", "--config", path); err == nil {
		t.Fatalf("expected refusal")
	}
	if _, err := executeCommand(t, "config", "init", "--config", path, "-y"); err != nil {
		t.Fatalf("config init -y failed: %v", err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "script: app.py") {
		t.Fatalf("config not overwritten: %s", data)
	}
}

func TestConfigRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tlviz.yml")
	if err := os.WriteFile(path, []byte("interpreter: ''\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := executeCommand(t, "config", "--config", path); err == nil {
		t.Fatalf("expected validation error")
	}
}
