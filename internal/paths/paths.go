// Package paths resolves the runner's configuration, data, and cache
// locations, honoring PEPPRO-specific and XDG environment variables.
package paths

import (
	"os"
	"path/filepath"
)

type Paths struct {
	ConfigDir string
	DataDir   string
	CacheDir  string
	StateDir  string
}

// GetPaths returns all base paths respecting environment variables
func GetPaths() Paths {
	return Paths{
		ConfigDir: getDir("PEPPRO_CONFIG_HOME", "XDG_CONFIG_HOME", ".config", "peppro"),
		DataDir:   getDir("PEPPRO_DATA_HOME", "XDG_DATA_HOME", ".local/share", "peppro"),
		CacheDir:  getDir("PEPPRO_CACHE_HOME", "XDG_CACHE_HOME", ".cache", "peppro"),
		StateDir:  getDir("PEPPRO_STATE_HOME", "XDG_STATE_HOME", ".local/state", "peppro"),
	}
}

func getDir(appEnv, xdgEnv, defaultBase, appName string) string {
	// 1. Check PEPPRO-specific env
	if dir := os.Getenv(appEnv); dir != "" {
		return dir
	}

	// 2. Check XDG env
	if xdgBase := os.Getenv(xdgEnv); xdgBase != "" {
		return filepath.Join(xdgBase, appName)
	}

	// 3. Use default
	home, _ := os.UserHomeDir()
	return filepath.Join(home, defaultBase, appName)
}

// GetDatabasePath returns the path to the run log database
func GetDatabasePath() string {
	if path := os.Getenv("PEPPRO_DB_PATH"); path != "" {
		return path
	}
	return filepath.Join(GetPaths().DataDir, "runs.db")
}

// GetIndexPath returns the path to the sample search index.
// Default: adjacent to the database for easy backup/migration.
func GetIndexPath() string {
	if path := os.Getenv("PEPPRO_INDEX_PATH"); path != "" {
		return path
	}

	dbPath := GetDatabasePath()
	dir := filepath.Dir(dbPath)
	dbName := filepath.Base(dbPath)
	dbNameNoExt := dbName[:len(dbName)-len(filepath.Ext(dbName))]

	// Path like: ~/.local/share/peppro/runs.bleve (next to runs.db)
	return filepath.Join(dir, dbNameNoExt+".bleve")
}

// GetGenomeConfigPath returns the default refgenie genome config location.
func GetGenomeConfigPath() string {
	if path := os.Getenv("REFGENIE"); path != "" {
		return path
	}
	return filepath.Join(GetPaths().DataDir, "genome_config.yaml")
}

// EnsureDirectories creates the base directories if missing.
func EnsureDirectories() error {
	p := GetPaths()
	for _, dir := range []string{p.ConfigDir, p.DataDir, p.CacheDir, p.StateDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
