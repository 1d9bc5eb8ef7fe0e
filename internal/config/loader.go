package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of quest's project-level config file.
const ConfigFileName = "config.yaml"

// QuestDir is the project-level directory quest looks for a config file in.
const QuestDir = ".quest"

// LoadWithSources loads configuration with source tracking.
// Load order (later sources override earlier):
//  1. Built-in defaults
//  2. System config (/etc/quest/config.yaml) - optional
//  3. User config (~/.quest/config.yaml) - optional
//  4. Project config (.quest/config.yaml) - optional
//  5. Environment variables (QUEST_*)
func LoadWithSources() (*TrackedConfig, error) {
	tc := NewTrackedConfig()

	markDefaults(tc)

	systemPath := "/etc/quest/config.yaml"
	if _, err := os.Stat(systemPath); err == nil {
		if err := mergeFromFile(tc, systemPath, SourceSystem); err != nil {
			slog.Warn("failed to load system config", "path", systemPath, "error", err)
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		userPath := filepath.Join(home, ".quest", "config.yaml")
		if _, err := os.Stat(userPath); err == nil {
			if err := mergeFromFile(tc, userPath, SourceUser); err != nil {
				slog.Warn("failed to load user config", "path", userPath, "error", err)
			}
		}
	}

	projectPath := filepath.Join(QuestDir, ConfigFileName)
	if _, err := os.Stat(projectPath); err == nil {
		if err := mergeFromFile(tc, projectPath, SourceProject); err != nil {
			return nil, err // Project config errors are fatal
		}
	}

	ApplyEnvVars(tc)

	return tc, nil
}

// mergeFromFile merges configuration from a file into tc.
func mergeFromFile(tc *TrackedConfig, path string, source ConfigSource) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	mergeConfig(tc, &fileCfg, raw, source)

	return nil
}

// mergeConfig merges fileCfg into tc.Config, tracking sources.
func mergeConfig(tc *TrackedConfig, fileCfg *Config, raw map[string]interface{}, source ConfigSource) {
	cfg := tc.Config

	if _, ok := raw["version"]; ok {
		cfg.Version = fileCfg.Version
		tc.SetSource("version", source)
	}
	if _, ok := raw["book_dir"]; ok {
		cfg.BookDir = fileCfg.BookDir
		tc.SetSource("book_dir", source)
	}
	if _, ok := raw["default_env"]; ok {
		cfg.DefaultEnv = fileCfg.DefaultEnv
		tc.SetSource("default_env", source)
	}
	if _, ok := raw["env_file"]; ok {
		cfg.EnvFile = fileCfg.EnvFile
		tc.SetSource("env_file", source)
	}

	if rawDB, ok := raw["database"].(map[string]interface{}); ok {
		mergeDatabaseConfig(cfg, fileCfg, rawDB, tc, source)
	}
}

func mergeDatabaseConfig(cfg *Config, fileCfg *Config, raw map[string]interface{}, tc *TrackedConfig, source ConfigSource) {
	if _, ok := raw["driver"]; ok {
		cfg.Database.Driver = fileCfg.Database.Driver
		tc.SetSource("database.driver", source)
	}
	if _, ok := raw["path"]; ok {
		cfg.Database.Path = fileCfg.Database.Path
		tc.SetSource("database.path", source)
	}
	if _, ok := raw["dsn"]; ok {
		cfg.Database.DSN = fileCfg.Database.DSN
		tc.SetSource("database.dsn", source)
	}
}

// markDefaults marks all config paths as having SourceDefault.
func markDefaults(tc *TrackedConfig) {
	paths := []string{
		"version", "book_dir", "default_env", "env_file",
		"database.driver", "database.path", "database.dsn",
	}

	for _, path := range paths {
		tc.SetSource(path, SourceDefault)
	}
}
