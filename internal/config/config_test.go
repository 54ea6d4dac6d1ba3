package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg == nil {
		t.Fatal("DefaultConfig returned nil")
	}

	// Check database defaults
	if cfg.Database.JournalMode != "WAL" {
		t.Errorf("expected journal_mode WAL, got %q", cfg.Database.JournalMode)
	}
	if cfg.Database.CacheSize != 10000 {
		t.Errorf("expected cache_size 10000, got %d", cfg.Database.CacheSize)
	}

	// Check search defaults
	if !cfg.Search.Enabled {
		t.Error("expected search to be enabled by default")
	}
	if cfg.Search.DefaultLimit != 100 {
		t.Errorf("expected default_limit 100, got %d", cfg.Search.DefaultLimit)
	}

	// Check compute defaults
	if cfg.Compute.DefaultProfile != "default" {
		t.Errorf("expected default profile 'default', got %q", cfg.Compute.DefaultProfile)
	}
	p, err := cfg.Profile("")
	if err != nil {
		t.Fatalf("default profile lookup failed: %v", err)
	}
	if p.Cores != "4" || p.Mem != "16000" {
		t.Errorf("unexpected default profile %+v", p)
	}
}

func TestLoadNonExistentFile(t *testing.T) {
	cfg, err := Load("/nonexistent/config.yaml")
	if err != nil {
		t.Fatalf("Load should return defaults for non-existent file, got error: %v", err)
	}
	if cfg == nil {
		t.Fatal("expected non-nil config for non-existent file")
	}
}

func TestLoadValidFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	yamlContent := `
pipeline_path: /opt/peppro/pipelines/peppro.py
genome_config: /genomes/genome_config.yaml
output_parent: /results
database:
  path: /data/runs.db
compute:
  default_profile: slurm
  profiles:
    slurm:
      cores: "8"
      mem: "32000"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.PipelinePath != "/opt/peppro/pipelines/peppro.py" {
		t.Errorf("pipeline_path = %q", cfg.PipelinePath)
	}
	if cfg.OutputParent != "/results" {
		t.Errorf("output_parent = %q", cfg.OutputParent)
	}
	if cfg.Database.Path != "/data/runs.db" {
		t.Errorf("database path = %q", cfg.Database.Path)
	}
	// File values replace the profile map wholesale
	p, err := cfg.Profile("")
	if err != nil {
		t.Fatalf("Profile lookup failed: %v", err)
	}
	if p.Cores != "8" || p.Mem != "32000" {
		t.Errorf("unexpected profile %+v", p)
	}
}

func TestProfileUnknown(t *testing.T) {
	cfg := DefaultConfig()
	if _, err := cfg.Profile("cluster-that-does-not-exist"); err == nil {
		t.Error("expected error for unknown profile")
	}
}

func TestProfileIncomplete(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Compute.Profiles["broken"] = ComputeProfile{Cores: "4"}
	if _, err := cfg.Profile("broken"); err == nil {
		t.Error("expected error for incomplete profile")
	}
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "config.yaml")

	cfg := DefaultConfig()
	cfg.OutputParent = "/scratch/peppro"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.OutputParent != "/scratch/peppro" {
		t.Errorf("round-trip lost output_parent, got %q", loaded.OutputParent)
	}
}

func TestGetConfigPathEnv(t *testing.T) {
	t.Setenv("PEPPRO_CONFIG", "/custom/peppro.yaml")
	if got := GetConfigPath(); got != "/custom/peppro.yaml" {
		t.Errorf("expected env override, got %q", got)
	}
}
