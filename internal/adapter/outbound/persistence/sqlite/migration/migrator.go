// Package migration applies the embedded journal schema.
package migration

import (
	"database/sql"
	"embed"
	"fmt"
	"path"
	"strings"
)

//go:embed migrations/*.sql
var schemaFS embed.FS

// Run applies every embedded .sql file in lexicographic order. Statements are
// idempotent (CREATE ... IF NOT EXISTS), so reapplying on startup is safe.
func Run(db *sql.DB) error {
	entries, err := schemaFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("listing schema files: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		stmt, err := schemaFS.ReadFile(path.Join("migrations", entry.Name()))
		if err != nil {
			return fmt.Errorf("reading schema file %s: %w", entry.Name(), err)
		}
		if _, err := db.Exec(string(stmt)); err != nil {
			return fmt.Errorf("applying %s: %w", entry.Name(), err)
		}
	}
	return nil
}
