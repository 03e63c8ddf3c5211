package store

import (
	"context"
	"embed"
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate brings the schema up to date. SQLite and Postgres run the
// embedded goose migrations; goose has no DuckDB dialect, so DuckDB
// executes the migration statements directly (the schema DDL is shared).
func (s *Store) Migrate(ctx context.Context) error {
	if s.driver == "duckdb" {
		return s.applyRaw(ctx)
	}

	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())

	dialect := "sqlite"
	if s.driver == "postgres" {
		dialect = "postgres"
	}
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}

	if err := goose.UpContext(ctx, s.db, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// applyRaw executes the Up sections of every migration file in order,
// skipping goose annotations. Re-running against an existing schema fails,
// which matches goose's no-version-table behavior closely enough for an
// analytic target that is rebuilt, not evolved.
func (s *Store) applyRaw(ctx context.Context) error {
	entries, err := migrations.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	for _, entry := range entries {
		raw, err := migrations.ReadFile("migrations/" + entry.Name())
		if err != nil {
			return fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}
		up, _, found := strings.Cut(string(raw), "-- +goose Down")
		if !found {
			up = string(raw)
		}
		up = strings.ReplaceAll(up, "-- +goose Up", "")
		if _, err := s.db.ExecContext(ctx, up); err != nil {
			return fmt.Errorf("apply migration %s: %w", entry.Name(), err)
		}
	}
	return nil
}
