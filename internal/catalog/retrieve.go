// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pdiddy/rulebook/pkg/types"
)

// QueryOptions holds parameters for catalog queries.
type QueryOptions struct {
	// Query is the FTS5 full-text search string over rule titles and
	// descriptions.
	Query string

	// Priority filters by section priority.
	Priority types.Priority

	// Section filters by a case-insensitive section title substring.
	Section string

	// MinNumber and MaxNumber bound the rule number range. Zero means
	// unbounded.
	MinNumber int
	MaxNumber int

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Priority == "" && q.Section == "" &&
		q.MinNumber == 0 && q.MaxNumber == 0
}

// QueryResult is a Rule with its section context and parsed citation fields.
type QueryResult struct {
	types.Rule
	SectionTitle string         `json:"section_title" yaml:"section_title"`
	Priority     types.Priority `json:"priority" yaml:"priority"`
	SourceDoc    string         `json:"source_doc,omitempty" yaml:"source_doc,omitempty"`
	SourcePage   int            `json:"source_page,omitempty" yaml:"source_page,omitempty"`
}

// Retrieve queries the catalog with optional full-text search and
// structured filters. Full-text queries are ranked by relevance;
// structured-only queries are ordered by rule number.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT r.number, r.title, r.description, r.source, r.source_doc, r.source_page,
				sec.title, sec.priority
			FROM rules_fts
			JOIN rules r ON r.rowid = rules_fts.rowid
			JOIN sections sec ON r.section_id = sec.id
			WHERE rules_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT r.number, r.title, r.description, r.source, r.source_doc, r.source_page,
				sec.title, sec.priority
			FROM rules r
			JOIN sections sec ON r.section_id = sec.id
			WHERE 1=1`)
	}

	if opts.Priority != "" {
		qb.WriteString(` AND sec.priority = ?`)
		args = append(args, string(opts.Priority))
	}

	if opts.Section != "" {
		qb.WriteString(` AND sec.title LIKE ?`)
		args = append(args, "%"+opts.Section+"%")
	}

	if opts.MinNumber > 0 {
		qb.WriteString(` AND r.number >= ?`)
		args = append(args, opts.MinNumber)
	}

	if opts.MaxNumber > 0 {
		qb.WriteString(` AND r.number <= ?`)
		args = append(args, opts.MaxNumber)
	}

	if useFTS {
		qb.WriteString(` ORDER BY rules_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY r.number`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var results []QueryResult
	for rows.Next() {
		var (
			qr        QueryResult
			priority  string
			desc      sql.NullString
			source    sql.NullString
			sourceDoc sql.NullString
			sourcePg  sql.NullInt64
		)

		if err := rows.Scan(
			&qr.Number, &qr.Title, &desc, &source, &sourceDoc, &sourcePg,
			&qr.SectionTitle, &priority,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		qr.Priority = types.Priority(priority)
		if desc.Valid {
			qr.Description = desc.String
		}
		if source.Valid {
			qr.Source = source.String
		}
		if sourceDoc.Valid {
			qr.SourceDoc = sourceDoc.String
		}
		if sourcePg.Valid {
			qr.SourcePage = int(sourcePg.Int64)
		}

		results = append(results, qr)
	}

	return results, rows.Err()
}
