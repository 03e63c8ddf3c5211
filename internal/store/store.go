// Package store loads merged season records into a relational database.
// SQLite is the default target; DuckDB and Postgres connect through the
// same interface so the load step does not care which engine backs it.
// Inserts are plain INSERTs: a primary-key conflict is a correctness
// signal from the merge step and surfaces as ErrConflict, never an upsert.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/marcboeker/go-duckdb"
	_ "modernc.org/sqlite"

	"qbrankings/internal/season"
)

// ErrConflict reports an insert that collided with an existing
// (player, team, year) row.
var ErrConflict = errors.New("season row already exists")

// Config selects and locates the database.
type Config struct {
	// Driver is one of "sqlite", "duckdb", "postgres".
	Driver string
	// Path is the database file for file-based drivers. ":memory:" works
	// for both sqlite and duckdb.
	Path string
	// DSN is the connection string for postgres.
	DSN string
}

// Store is an open database handle plus the dialect knowledge the loader
// needs (placeholder style, conflict detection).
type Store struct {
	db     *sql.DB
	driver string
	logger *slog.Logger
}

// Open connects to the configured database and verifies the connection.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var db *sql.DB
	var err error
	switch cfg.Driver {
	case "", "sqlite":
		path := cfg.Path
		if path == "" {
			path = ":memory:"
		}
		db, err = sql.Open("sqlite", path)
	case "duckdb":
		db, err = sql.Open("duckdb", cfg.Path)
	case "postgres":
		db, err = sql.Open("pgx", cfg.DSN)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Driver, err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s store: %w", cfg.Driver, err)
	}

	driver := cfg.Driver
	if driver == "" {
		driver = "sqlite"
	}
	return &Store{db: db, driver: driver, logger: logger}, nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the underlying handle for tests.
func (s *Store) DB() *sql.DB {
	return s.db
}

var insertSeasonSQL = fmt.Sprintf(
	"INSERT INTO qb_season (%s) VALUES (%s)",
	strings.Join(season.Header, ", "),
	strings.TrimSuffix(strings.Repeat("?, ", len(season.Header)), ", "),
)

// InsertSeasons loads records in one transaction. Either every row lands
// or none do; a primary-key collision rolls back and returns ErrConflict
// naming the offending row.
func (s *Store) InsertSeasons(ctx context.Context, recs []season.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin load: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, s.rebind(insertSeasonSQL))
	if err != nil {
		return fmt.Errorf("prepare load: %w", err)
	}
	defer stmt.Close()

	for i := range recs {
		if _, err := stmt.ExecContext(ctx, recs[i].Values()...); err != nil {
			if s.isConflict(err) {
				return fmt.Errorf("load %s %d: %w", recs[i].Key(), recs[i].Year, ErrConflict)
			}
			return fmt.Errorf("load %s %d: %w", recs[i].Key(), recs[i].Year, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit load: %w", err)
	}
	s.logger.Info("loaded seasons", "rows", len(recs), "driver", s.driver)
	return nil
}

// CountSeasons reports the number of rows in the season table.
func (s *Store) CountSeasons(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM qb_season").Scan(&n); err != nil {
		return 0, fmt.Errorf("count seasons: %w", err)
	}
	return n, nil
}

// rebind converts ?-style placeholders to the dialect's native form.
func (s *Store) rebind(query string) string {
	if s.driver != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// isConflict recognizes a primary-key violation in each dialect's error
// vocabulary.
func (s *Store) isConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // modernc sqlite
		strings.Contains(msg, "Duplicate key") // duckdb
}
