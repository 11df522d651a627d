// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog persists an extracted rules Document in SQLite and
// provides full-text and structured retrieval over it.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/rulebook/internal/extract"
	"github.com/pdiddy/rulebook/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "rulebook.db"
)

// Store manages the rules catalog SQLite database.
type Store struct {
	db         *sql.DB
	catalogDir string
	maxResults int
}

// NewStore opens or creates the catalog database at catalogDir/index/rulebook.db
// and creates the schema if it does not exist.
func NewStore(cfg types.CatalogConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.CatalogDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{
		db:         db,
		catalogDir: cfg.CatalogDir,
		maxResults: maxResults,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS sections (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			priority TEXT NOT NULL,
			is_info INTEGER NOT NULL DEFAULT 0,
			content TEXT,
			position INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS rules (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			number INTEGER NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			source TEXT,
			source_doc TEXT,
			source_page INTEGER,
			section_id INTEGER NOT NULL REFERENCES sections(id),
			position INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_rules_section_id ON rules(section_id)`,
		`CREATE INDEX IF NOT EXISTS idx_rules_number ON rules(number)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='rules_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE rules_fts USING fts5(title, description, content=rules, content_rowid=rowid)`,
			`CREATE TRIGGER rules_ai AFTER INSERT ON rules BEGIN
				INSERT INTO rules_fts(rowid, title, description) VALUES (new.rowid, new.title, new.description);
			END`,
			`CREATE TRIGGER rules_ad AFTER DELETE ON rules BEGIN
				INSERT INTO rules_fts(rules_fts, rowid, title, description) VALUES('delete', old.rowid, old.title, old.description);
			END`,
			`CREATE TRIGGER rules_au AFTER UPDATE ON rules BEGIN
				INSERT INTO rules_fts(rules_fts, rowid, title, description) VALUES('delete', old.rowid, old.title, old.description);
				INSERT INTO rules_fts(rowid, title, description) VALUES (new.rowid, new.title, new.description);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// IngestSummary holds counts from a catalog ingest run.
type IngestSummary struct {
	Sections     int
	InfoSections int
	Rules        int
}

// Ingest replaces the catalog contents with the given document inside a
// single transaction. Prior sections and rules are removed first: the
// catalog always mirrors exactly one compiled document.
func (s *Store) Ingest(ctx context.Context, doc types.Document, w io.Writer) (IngestSummary, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM rules`); err != nil {
		return IngestSummary{}, fmt.Errorf("clearing rules: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sections`); err != nil {
		return IngestSummary{}, fmt.Errorf("clearing sections: %w", err)
	}

	ruleStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO rules (number, title, description, source, source_doc, source_page, section_id, position)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("preparing rule insert: %w", err)
	}
	defer ruleStmt.Close()

	var summary IngestSummary

	for pos, sec := range doc.Sections {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO sections (title, priority, is_info, content, position) VALUES (?, ?, ?, ?, ?)`,
			sec.Title, string(sec.Priority), sec.IsInfoSection, sec.Content, pos,
		)
		if err != nil {
			return summary, fmt.Errorf("inserting section %q: %w", sec.Title, err)
		}
		sectionID, err := res.LastInsertId()
		if err != nil {
			return summary, fmt.Errorf("reading section id: %w", err)
		}

		for rpos, r := range sec.Rules {
			ref := extract.ParseSourceRef(r.Source)
			if _, err := ruleStmt.ExecContext(ctx,
				r.Number, r.Title, r.Description, r.Source,
				ref.Document, ref.Page, sectionID, rpos,
			); err != nil {
				return summary, fmt.Errorf("inserting rule %d: %w", r.Number, err)
			}
		}

		if sec.IsInfoSection {
			fmt.Fprintf(w, "stored %s (info)\n", sec.Title)
			summary.InfoSections++
		} else {
			fmt.Fprintf(w, "stored %s (%d rules)\n", sec.Title, len(sec.Rules))
			summary.Sections++
			summary.Rules += len(sec.Rules)
		}
	}

	if err := tx.Commit(); err != nil {
		return summary, fmt.Errorf("committing ingest: %w", err)
	}

	fmt.Fprintf(w, "\nsections: %d, info sections: %d, rules: %d\n",
		summary.Sections, summary.InfoSections, summary.Rules)

	return summary, nil
}
