package paths

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestGetPaths(t *testing.T) {
	p := GetPaths()

	if p.ConfigDir == "" {
		t.Error("ConfigDir should not be empty")
	}
	if p.DataDir == "" {
		t.Error("DataDir should not be empty")
	}
	if p.CacheDir == "" {
		t.Error("CacheDir should not be empty")
	}
	if p.StateDir == "" {
		t.Error("StateDir should not be empty")
	}

	// All paths should contain "peppro"
	if !strings.Contains(p.ConfigDir, "peppro") {
		t.Errorf("ConfigDir should contain 'peppro', got %q", p.ConfigDir)
	}
	if !strings.Contains(p.DataDir, "peppro") {
		t.Errorf("DataDir should contain 'peppro', got %q", p.DataDir)
	}
}

func TestGetPathsWithPEPPROEnv(t *testing.T) {
	t.Setenv("PEPPRO_CONFIG_HOME", "/custom/config")
	t.Setenv("PEPPRO_DATA_HOME", "/custom/data")
	t.Setenv("PEPPRO_CACHE_HOME", "/custom/cache")
	t.Setenv("PEPPRO_STATE_HOME", "/custom/state")

	p := GetPaths()

	if p.ConfigDir != "/custom/config" {
		t.Errorf("expected ConfigDir '/custom/config', got %q", p.ConfigDir)
	}
	if p.DataDir != "/custom/data" {
		t.Errorf("expected DataDir '/custom/data', got %q", p.DataDir)
	}
	if p.CacheDir != "/custom/cache" {
		t.Errorf("expected CacheDir '/custom/cache', got %q", p.CacheDir)
	}
	if p.StateDir != "/custom/state" {
		t.Errorf("expected StateDir '/custom/state', got %q", p.StateDir)
	}
}

func TestGetPathsWithXDGEnv(t *testing.T) {
	// Clear PEPPRO-specific vars to test XDG fallback
	t.Setenv("PEPPRO_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")

	p := GetPaths()
	if p.ConfigDir != filepath.Join("/xdg/config", "peppro") {
		t.Errorf("expected XDG-based ConfigDir, got %q", p.ConfigDir)
	}
}

func TestGetDatabasePath(t *testing.T) {
	t.Setenv("PEPPRO_DB_PATH", "/data/project/runs.db")
	if got := GetDatabasePath(); got != "/data/project/runs.db" {
		t.Errorf("expected env override, got %q", got)
	}
}

func TestGetIndexPathAdjacentToDatabase(t *testing.T) {
	t.Setenv("PEPPRO_INDEX_PATH", "")
	t.Setenv("PEPPRO_DB_PATH", "/data/project/runs.db")

	if got := GetIndexPath(); got != "/data/project/runs.bleve" {
		t.Errorf("expected index next to database, got %q", got)
	}
}

func TestGetGenomeConfigPathEnv(t *testing.T) {
	t.Setenv("REFGENIE", "/genomes/genome_config.yaml")
	if got := GetGenomeConfigPath(); got != "/genomes/genome_config.yaml" {
		t.Errorf("expected REFGENIE override, got %q", got)
	}
}
