// Package envfile implements the Environment Loader: it merges process
// environment variables with an optional JSON file of string pairs to
// produce the seed variable map used at request load time.
package envfile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	questerrors "github.com/randalmurphal/quest/internal/errors"
)

// DefaultPath returns the default environment file path, ~/.config/<app>/mem.json.
func DefaultPath(app string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", app, "mem.json"), nil
}

// Load merges the process environment (highest precedence) with the JSON
// object at path (if it exists) into a single string map. A missing file is
// treated as an empty object. A present file that fails to parse as a JSON
// object is a fatal EnvError. Non-string values in the file are silently
// skipped.
func Load(path string) (map[string]string, error) {
	merged := make(map[string]string)

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			var raw map[string]any
			if jsonErr := json.Unmarshal(data, &raw); jsonErr != nil {
				return nil, questerrors.ErrEnvError(path, jsonErr)
			}
			for k, v := range raw {
				if s, ok := v.(string); ok {
					merged[k] = s
				}
			}
		} else if !os.IsNotExist(err) {
			return nil, questerrors.ErrEnvError(path, err)
		}
	}

	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		merged[name] = value
	}

	return merged, nil
}
