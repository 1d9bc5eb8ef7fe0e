// Package config loads quest's application configuration from layered
// sources: built-in defaults, system/user/project YAML files, and
// environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Config holds quest's application-level settings. This is distinct from a
// spell-book: it controls where quest looks for spell-books and how it talks
// to the Variable Store, not what any single book contains.
type Config struct {
	// Version is the config schema version, for forward compatibility.
	Version int `yaml:"version"`

	// BookDir is the directory quest scans for spell-book files.
	BookDir string `yaml:"book_dir"`

	// DefaultEnv is the environment label used when --env is not given.
	DefaultEnv string `yaml:"default_env"`

	// EnvFile, if set, replaces the default ~/.config/quest/mem.json path: a
	// JSON object of string values merged with the process environment
	// before every run. Dotenv-format (KEY=value) files are not parsed.
	EnvFile string `yaml:"env_file"`

	Database DatabaseConfig `yaml:"database"`
}

// DatabaseConfig selects and configures the Variable Store backend.
type DatabaseConfig struct {
	// Driver is "sqlite" or "postgres".
	Driver string `yaml:"driver"`

	// Path is the SQLite file path, used when Driver == "sqlite".
	Path string `yaml:"path"`

	// DSN is the PostgreSQL connection string, used when Driver == "postgres".
	DSN string `yaml:"dsn"`
}

// Default returns quest's built-in configuration defaults.
func Default() *Config {
	return &Config{
		Version:    1,
		BookDir:    "~/.config/quest/books",
		DefaultEnv: "default",
		Database: DatabaseConfig{
			Driver: "sqlite",
			Path:   "~/.config/quest/quest.sqlite",
		},
	}
}

// ExpandHome replaces a leading "~" with the user's home directory.
// Paths without a leading "~" are returned unchanged.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}
