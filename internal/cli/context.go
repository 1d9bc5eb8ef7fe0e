package cli

import (
	"context"

	"github.com/randalmurphal/quest/internal/config"
	"github.com/randalmurphal/quest/internal/db/driver"
	"github.com/randalmurphal/quest/internal/envfile"
	"github.com/randalmurphal/quest/internal/orchestrator"
	"github.com/randalmurphal/quest/internal/store"
)

// bookDir returns the configured, home-expanded spell-book directory.
func bookDir() string {
	return config.ExpandHome(tracked.Config.BookDir)
}

// envName returns the effective environment name for this invocation.
func envName() string {
	if tracked.Config.DefaultEnv == "" {
		return "default"
	}
	return tracked.Config.DefaultEnv
}

// openStore opens the Variable Store using the active configuration.
func openStore(ctx context.Context) (*store.Store, error) {
	dialect, err := driver.ParseDialect(tracked.Config.Database.Driver)
	if err != nil {
		return nil, err
	}

	dsn := tracked.Config.Database.DSN
	if dialect == driver.DialectSQLite {
		dsn = config.ExpandHome(tracked.Config.Database.Path)
	}

	return store.Open(ctx, dialect, dsn)
}

// loadEnvFile reads the configured environment JSON file merged with the
// process environment.
func loadEnvFile() (map[string]string, error) {
	path := tracked.Config.EnvFile
	if path == "" {
		var err error
		path, err = envfile.DefaultPath("quest")
		if err != nil {
			return nil, err
		}
	}
	return envfile.Load(config.ExpandHome(path))
}

// newOrchestrator builds an orchestrator.Orchestrator wired to the active
// configuration's spell-book directory, variable store, and env loader.
// The caller owns closing the returned store.
func newOrchestrator(ctx context.Context) (*orchestrator.Orchestrator, *store.Store, error) {
	st, err := openStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	return orchestrator.New(bookDir(), st, loadEnvFile, nil), st, nil
}
