// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/rulebook/internal/catalog"
	"github.com/pdiddy/rulebook/internal/emit"
	"github.com/pdiddy/rulebook/internal/extract"
	"github.com/pdiddy/rulebook/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the queryable rules catalog (store, retrieve, export)",
	Long: `Catalog maintains a local SQLite index of the compiled rules. Use
subcommands to ingest a markdown catalog, query rules, or export.`,
}

// --- store subcommand ---

var catalogStoreCmd = &cobra.Command{
	Use:   "store",
	Short: "Extract the markdown catalog and ingest it into SQLite",
	Long: `Store extracts the source markdown, appends the fixed info sections,
and replaces the catalog database contents with the result. The catalog
always mirrors exactly one compiled document.`,
	RunE: runCatalogStore,
}

func runCatalogStore(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")

	content, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("reading input %s: %w", input, err)
	}

	result := extract.Extract(string(content))
	reportFindings(result)

	doc := result.Document
	doc.Sections = append(doc.Sections, emit.InfoSections()...)

	store, err := catalog.NewStore(catalogConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.Ingest(context.Background(), doc, os.Stdout)
	return err
}

// --- retrieve subcommand ---

var catalogRetrieveCmd = &cobra.Command{
	Use:   "retrieve [query]",
	Short: "Query the catalog with full-text search and filters",
	Long: `Retrieve searches the catalog using FTS5 full-text search over rule
titles and descriptions, structured filters (priority, section, number
range), or a combination of both.`,
	RunE: runCatalogRetrieve,
}

func runCatalogRetrieve(cmd *cobra.Command, args []string) error {
	store, err := catalog.NewStore(catalogConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	opts, err := queryOptsFromFlags(cmd, args)
	if err != nil {
		return err
	}
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide a search query, --priority, --section, --min, or --max")
	}

	results, err := store.Retrieve(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatRetrieveOutput(results, jsonOutput)
}

func formatRetrieveOutput(results []catalog.QueryResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-5s  %-10s  %-40s  %-30s  %s\n",
		"Rule", "Priority", "Title", "Section", "Source")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))

	for _, r := range results {
		title := r.Title
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		section := r.SectionTitle
		if len(section) > 30 {
			section = section[:27] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-5d  %-10s  %-40s  %-30s  %s\n",
			r.Number, r.Priority, title, section, r.Source)
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

// --- export subcommand ---

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog to YAML or JSON",
	Long: `Export writes the full catalog (or a filtered subset) to
index/export.yaml or export.json under the catalog directory. Supports
the same filter flags as retrieve for partial exports.`,
	RunE: runCatalogExport,
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	cfg := catalogConfig(cmd)

	store, err := catalog.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	opts, err := queryOptsFromFlags(cmd, args)
	if err != nil {
		return err
	}

	switch format {
	case "yaml", "":
		if err := store.ExportYAML(context.Background(), opts); err != nil {
			return err
		}
	case "json":
		if err := store.ExportJSON(context.Background(), opts); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	fmt.Printf("Exported to %s\n", exportPath(cfg.CatalogDir, format))
	return nil
}

// exportPath reports where the export subcommand wrote its output for the
// given catalog directory and format flag value.
func exportPath(catalogDir, format string) string {
	if format == "" {
		format = "yaml"
	}
	return filepath.Join(catalogDir, "index", "export."+format)
}

// --- shared helpers ---

func catalogConfig(cmd *cobra.Command) types.CatalogConfig {
	catalogDir, _ := cmd.Flags().GetString("catalog-dir")
	if catalogDir == "" {
		catalogDir = "catalog"
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")

	return types.CatalogConfig{
		CatalogDir: catalogDir,
		MaxResults: maxResults,
	}
}

func queryOptsFromFlags(cmd *cobra.Command, args []string) (catalog.QueryOptions, error) {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}

	priority, _ := cmd.Flags().GetString("priority")
	if priority != "" && !types.ValidPriorities[types.Priority(priority)] {
		return catalog.QueryOptions{}, fmt.Errorf("invalid priority %q: use critical, high, important, or info", priority)
	}

	section, _ := cmd.Flags().GetString("section")
	minNumber, _ := cmd.Flags().GetInt("min")
	maxNumber, _ := cmd.Flags().GetInt("max")
	limit, _ := cmd.Flags().GetInt("limit")

	return catalog.QueryOptions{
		Query:      queryText,
		Priority:   types.Priority(priority),
		Section:    section,
		MinNumber:  minNumber,
		MaxNumber:  maxNumber,
		MaxResults: limit,
	}, nil
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	catalogCmd.PersistentFlags().String("catalog-dir", "catalog", "base directory for the catalog (contains index/)")
	catalogCmd.PersistentFlags().Int("max-results", 20, "maximum number of query results")

	// Store flags.
	catalogStoreCmd.Flags().String("input", "procurement_rules.md", "source markdown catalog")

	// Retrieve flags.
	catalogRetrieveCmd.Flags().String("query", "", "full-text search query")
	catalogRetrieveCmd.Flags().String("priority", "", "filter by priority: critical, high, important, info")
	catalogRetrieveCmd.Flags().String("section", "", "filter by section title substring")
	catalogRetrieveCmd.Flags().Int("min", 0, "minimum rule number")
	catalogRetrieveCmd.Flags().Int("max", 0, "maximum rule number")
	catalogRetrieveCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	catalogRetrieveCmd.Flags().Bool("json", false, "output results as JSON")

	// Export flags.
	catalogExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	catalogExportCmd.Flags().String("query", "", "full-text search filter for partial export")
	catalogExportCmd.Flags().String("priority", "", "filter by priority for partial export")
	catalogExportCmd.Flags().String("section", "", "filter by section title substring")
	catalogExportCmd.Flags().Int("min", 0, "minimum rule number")
	catalogExportCmd.Flags().Int("max", 0, "maximum rule number")
	catalogExportCmd.Flags().Int("limit", 0, "maximum rules to export (0 = all)")

	// Wire subcommands.
	catalogCmd.AddCommand(catalogStoreCmd)
	catalogCmd.AddCommand(catalogRetrieveCmd)
	catalogCmd.AddCommand(catalogExportCmd)

	rootCmd.AddCommand(catalogCmd)
}
