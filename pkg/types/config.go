package types

// OutputFormat selects the compile output format.
type OutputFormat string

const (
	OutputGo         OutputFormat = "go"
	OutputTypeScript OutputFormat = "typescript"
)

// CompileConfig holds settings for the compile stage.
type CompileConfig struct {
	// InputPath is the source markdown catalog.
	InputPath string `json:"input_path" yaml:"input_path"`

	// OutputPath is the generated module file. Overwritten on each run.
	OutputPath string `json:"output_path" yaml:"output_path"`

	// Format selects the output format: go or typescript.
	Format OutputFormat `json:"format" yaml:"format"`

	// Package is the package name for generated Go output (default "rules").
	Package string `json:"package" yaml:"package"`

	// Force regenerates the output even when it is newer than the input.
	Force bool `json:"force" yaml:"force"`
}

// CatalogConfig holds settings for the catalog store.
type CatalogConfig struct {
	// CatalogDir is the base directory for the catalog (contains index/).
	CatalogDir string `json:"catalog_dir" yaml:"catalog_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
