// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// ExportEntry holds a rule with its section context for export.
type ExportEntry struct {
	Number       int    `json:"number" yaml:"number"`
	Title        string `json:"title" yaml:"title"`
	Description  string `json:"description" yaml:"description"`
	Source       string `json:"source" yaml:"source"`
	SectionTitle string `json:"section_title" yaml:"section_title"`
	Priority     string `json:"priority" yaml:"priority"`
	SourceDoc    string `json:"source_doc,omitempty" yaml:"source_doc,omitempty"`
	SourcePage   int    `json:"source_page,omitempty" yaml:"source_page,omitempty"`
}

const exportLimit = 100000

// ExportYAML writes the catalog to catalogDir/index/export.yaml.
// It supports the same filters as Retrieve.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions) error {
	entries, err := s.exportEntries(ctx, opts)
	if err != nil {
		return err
	}

	path := filepath.Join(s.catalogDir, indexDir, "export.yaml")
	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the catalog to catalogDir/index/export.json.
// It supports the same filters as Retrieve.
func (s *Store) ExportJSON(ctx context.Context, opts QueryOptions) error {
	entries, err := s.exportEntries(ctx, opts)
	if err != nil {
		return err
	}

	path := filepath.Join(s.catalogDir, indexDir, "export.json")
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *Store) exportEntries(ctx context.Context, opts QueryOptions) ([]ExportEntry, error) {
	if opts.MaxResults <= 0 {
		opts.MaxResults = exportLimit
	}
	results, err := s.Retrieve(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}

	entries := make([]ExportEntry, len(results))
	for i, r := range results {
		entries[i] = ExportEntry{
			Number:       r.Number,
			Title:        r.Title,
			Description:  r.Description,
			Source:       r.Source,
			SectionTitle: r.SectionTitle,
			Priority:     string(r.Priority),
			SourceDoc:    r.SourceDoc,
			SourcePage:   r.SourcePage,
		}
	}

	return entries, nil
}
