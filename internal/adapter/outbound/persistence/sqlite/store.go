// Package sqlite persists the moderation journal.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/jonny/guildbot/internal/adapter/outbound/persistence/sqlite/migration"
)

// Config holds SQLite connection configuration.
type Config struct {
	Path              string
	MaxOpenConns      int
	PragmaJournalMode string
	PragmaBusyTimeout int
}

// journalModes the driver accepts for _journal_mode.
var journalModes = map[string]bool{
	"wal": true, "delete": true, "truncate": true,
	"persist": true, "memory": true, "off": true,
}

func (c Config) dsn() (string, error) {
	mode := strings.ToLower(c.PragmaJournalMode)
	if mode == "" {
		mode = "wal"
	}
	if !journalModes[mode] {
		return "", fmt.Errorf("invalid pragma journal mode: %q", c.PragmaJournalMode)
	}
	params := url.Values{}
	params.Set("_journal_mode", mode)
	params.Set("_busy_timeout", fmt.Sprintf("%d", c.PragmaBusyTimeout))
	return c.Path + "?" + params.Encode(), nil
}

// Store wraps a *sql.DB and exposes it for repository use.
type Store struct {
	DB *sql.DB
}

// NewStore opens the database, applies pragmas and brings the schema up to
// date.
func NewStore(cfg Config) (*Store, error) {
	dsn, err := cfg.dsn()
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if err := migration.Run(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrating journal schema: %w", err)
	}
	return &Store{DB: db}, nil
}

// Ping verifies the connection; used as a readiness probe.
func (s *Store) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

// Close closes the underlying database connection.
func (s *Store) Close() error { return s.DB.Close() }
