// internal/sink/sqlite.go
package sink

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"regexp"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/page-harvest/harvest/pkg/models"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLite writes article records into a local SQLite database, one row
// per record.
type SQLite struct {
	db    *sql.DB
	table string
}

// NewSQLite opens (or creates) the database at path and ensures the
// target table exists. Use ":memory:" for an ephemeral database.
func NewSQLite(path, table string) (*SQLite, error) {
	if table == "" {
		table = "articles"
	}
	if !identifierPattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	schema := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id TEXT PRIMARY KEY,
		title TEXT,
		content TEXT,
		banner_url TEXT,
		images TEXT,
		category TEXT NOT NULL,
		owner_source TEXT NOT NULL,
		source_url TEXT NOT NULL,
		fetched_at TIMESTAMP NOT NULL
	)`, table)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &SQLite{db: db, table: table}, nil
}

// WriteMany inserts every record in one transaction, preserving order.
func (s *SQLite) WriteMany(ctx context.Context, records []models.ArticleRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		`INSERT INTO %s (id, title, content, banner_url, images, category, owner_source, source_url, fetched_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, s.table))
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, record := range records {
		images, err := json.Marshal(record.Images)
		if err != nil {
			return fmt.Errorf("failed to encode images for %s: %w", record.SourceURL, err)
		}
		if _, err := stmt.ExecContext(ctx,
			record.ID.String(),
			record.Title,
			record.Content,
			record.BannerURL,
			string(images),
			record.Category,
			record.OwnerSource,
			record.SourceURL,
			record.FetchedAt,
		); err != nil {
			return fmt.Errorf("failed to insert record for %s: %w", record.SourceURL, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	log.Info().Int("records", len(records)).Str("table", s.table).Msg("Records persisted")
	return nil
}

// Close releases the database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}
