// Package store implements the Variable Store: a durable map keyed by
// (project, environment, name) backed by the db/driver dialect
// abstraction.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/randalmurphal/quest/internal/db"
	"github.com/randalmurphal/quest/internal/db/driver"
	questerrors "github.com/randalmurphal/quest/internal/errors"
)

// Store is the Variable Store.
type Store struct {
	drv driver.Driver
}

// Open opens (or creates) the variable store at dsn using the given dialect
// and applies the idempotent variables schema.
func Open(ctx context.Context, dialect driver.Dialect, dsn string) (*Store, error) {
	drv, err := driver.New(dialect)
	if err != nil {
		return nil, questerrors.ErrStoreError("open", err)
	}
	if err := drv.Open(dsn); err != nil {
		return nil, questerrors.ErrStoreError("open", err)
	}
	if err := drv.Migrate(ctx, db.Schema(dialect)); err != nil {
		_ = drv.Close()
		return nil, questerrors.ErrStoreError("migrate", err)
	}
	return &Store{drv: drv}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.drv.Close()
}

// Load returns a full snapshot of (project, env)'s variables. A project/env
// with no rows yields an empty map, not an error.
func (s *Store) Load(ctx context.Context, project, env string) (map[string]string, error) {
	rows, err := s.drv.Query(ctx,
		fmt.Sprintf("SELECT name, value FROM variables WHERE project_name = %s AND env = %s",
			s.drv.Placeholder(1), s.drv.Placeholder(2)),
		project, env,
	)
	if err != nil {
		return nil, questerrors.ErrStoreError("load", err)
	}
	defer func() { _ = rows.Close() }()

	result := make(map[string]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, questerrors.ErrStoreError("load", err)
		}
		result[name] = value
	}
	if err := rows.Err(); err != nil {
		return nil, questerrors.ErrStoreError("load", err)
	}
	return result, nil
}

// UpsertOne inserts or replaces a single row.
func (s *Store) UpsertOne(ctx context.Context, project, env, name, value string) error {
	if _, err := upsert(ctx, s.drv, s.drv, project, env, name, value); err != nil {
		return questerrors.ErrStoreError("upsert_one", err)
	}
	return nil
}

// UpsertMany inserts or replaces every row in vars atomically: either all
// rows become visible to subsequent readers, or (on any error) none do and
// prior state is left intact.
func (s *Store) UpsertMany(ctx context.Context, project, env string, vars map[string]string) error {
	if len(vars) == 0 {
		return nil
	}

	tx, err := s.drv.BeginTx(ctx, nil)
	if err != nil {
		return questerrors.ErrStoreError("upsert_many", err)
	}

	for name, value := range vars {
		if _, err := upsert(ctx, s.drv, tx, project, env, name, value); err != nil {
			_ = tx.Rollback()
			return questerrors.ErrStoreError("upsert_many", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return questerrors.ErrStoreError("upsert_many", err)
	}
	return nil
}

// Delete removes a single row. Deleting a nonexistent key is a success.
func (s *Store) Delete(ctx context.Context, project, env, name string) error {
	_, err := s.drv.Exec(ctx,
		fmt.Sprintf("DELETE FROM variables WHERE project_name = %s AND env = %s AND name = %s",
			s.drv.Placeholder(1), s.drv.Placeholder(2), s.drv.Placeholder(3)),
		project, env, name,
	)
	if err != nil {
		return questerrors.ErrStoreError("delete", err)
	}
	return nil
}

// execer is satisfied by both driver.Driver and driver.Tx.
type execer interface {
	Exec(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsert(ctx context.Context, d driver.Driver, x execer, project, env, name, value string) (sql.Result, error) {
	query := fmt.Sprintf(
		`INSERT INTO variables (project_name, env, name, value) VALUES (%s, %s, %s, %s)
		 %s (project_name, env, name) DO UPDATE SET value = excluded.value`,
		d.Placeholder(1), d.Placeholder(2), d.Placeholder(3), d.Placeholder(4), d.UpsertConflict(),
	)
	return x.Exec(ctx, query, project, env, name, value)
}
