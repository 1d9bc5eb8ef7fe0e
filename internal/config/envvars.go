package config

import (
	"os"
)

// EnvVarMapping defines the mapping between environment variables and config paths.
var EnvVarMapping = map[string]string{
	"QUEST_BOOK_DIR":     "book_dir",
	"QUEST_DEFAULT_ENV":  "default_env",
	"QUEST_ENV_FILE":     "env_file",
	"QUEST_DB_DRIVER":    "database.driver",
	"QUEST_DB_PATH":      "database.path",
	"QUEST_DB_DSN":       "database.dsn",
}

// ApplyEnvVars applies environment variable overrides to a TrackedConfig.
// Returns a list of paths that were overridden.
func ApplyEnvVars(tc *TrackedConfig) []string {
	var overridden []string

	for envVar, configPath := range EnvVarMapping {
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if applyEnvVar(tc.Config, configPath, value) {
			tc.SetSource(configPath, SourceEnv)
			overridden = append(overridden, configPath)
		}
	}

	return overridden
}

// applyEnvVar applies a single environment variable to the config.
// Returns true if the value was applied.
func applyEnvVar(cfg *Config, path string, value string) bool {
	switch path {
	case "book_dir":
		cfg.BookDir = value
	case "default_env":
		cfg.DefaultEnv = value
	case "env_file":
		cfg.EnvFile = value
	case "database.driver":
		cfg.Database.Driver = value
	case "database.path":
		cfg.Database.Path = value
	case "database.dsn":
		cfg.Database.DSN = value
	default:
		return false
	}
	return true
}
