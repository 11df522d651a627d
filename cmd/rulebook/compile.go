// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/rulebook/internal/emit"
	"github.com/pdiddy/rulebook/internal/extract"
	"github.com/pdiddy/rulebook/pkg/types"
)

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Compile the rules markdown into a typed data module",
	Long: `Compile reads the source markdown catalog, extracts sections and
numbered rules, and writes a generated source module defining the typed
rules constant. The output file is overwritten on every run.

Unless --force is given, compilation is skipped when the output file is
already newer than the input.`,
	RunE: runCompile,
}

func runCompile(cmd *cobra.Command, args []string) error {
	cfg := compileConfig(cmd)

	if !cfg.Force {
		upToDate, err := outputUpToDate(cfg.InputPath, cfg.OutputPath)
		if err != nil {
			return err
		}
		if upToDate {
			fmt.Printf("%s is up to date\n", cfg.OutputPath)
			return nil
		}
	}

	content, err := os.ReadFile(cfg.InputPath)
	if err != nil {
		return fmt.Errorf("reading input %s: %w", cfg.InputPath, err)
	}

	result := extract.Extract(string(content))
	reportFindings(result)

	data, err := emit.Generate(result.Document, emit.Options{
		Format:  cfg.Format,
		Package: cfg.Package,
	})
	if err != nil {
		return err
	}

	if err := os.WriteFile(cfg.OutputPath, data, 0o644); err != nil {
		return fmt.Errorf("writing output %s: %w", cfg.OutputPath, err)
	}

	fmt.Printf("Compiled %d sections (%d rules) to %s\n",
		len(result.Document.Sections), result.Document.RuleCount(), cfg.OutputPath)
	return nil
}

// reportFindings prints everything the extractor skipped or flagged.
// Pattern mismatches are never fatal, but they are never silent either.
func reportFindings(result *extract.Result) {
	for _, title := range result.DroppedSections {
		fmt.Fprintf(os.Stderr, "warning: dropped section with no rules: %s\n", title)
	}
	for _, line := range result.MalformedRules {
		fmt.Fprintf(os.Stderr, "warning: malformed rule header: %s\n", line)
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
}

// outputUpToDate reports whether the output file exists and is newer than
// the input.
func outputUpToDate(inputPath, outputPath string) (bool, error) {
	inInfo, err := os.Stat(inputPath)
	if err != nil {
		return false, fmt.Errorf("stat input %s: %w", inputPath, err)
	}

	outInfo, err := os.Stat(outputPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat output %s: %w", outputPath, err)
	}

	return outInfo.ModTime().After(inInfo.ModTime()), nil
}

// compileConfig assembles the compile configuration from flags, falling
// back to config file values for unset flags.
func compileConfig(cmd *cobra.Command) types.CompileConfig {
	input, _ := cmd.Flags().GetString("input")
	if input == "" {
		input = viper.GetString("compile.input_path")
	}
	if input == "" {
		input = "procurement_rules.md"
	}

	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = viper.GetString("compile.output_path")
	}
	if out == "" {
		out = "rules_gen.go"
	}

	format, _ := cmd.Flags().GetString("format")
	pkg, _ := cmd.Flags().GetString("package")
	force, _ := cmd.Flags().GetBool("force")

	return types.CompileConfig{
		InputPath:  input,
		OutputPath: out,
		Format:     types.OutputFormat(format),
		Package:    pkg,
		Force:      force,
	}
}

func init() {
	compileCmd.Flags().String("input", "", "source markdown catalog (default: procurement_rules.md)")
	compileCmd.Flags().String("out", "", "output module path (default: rules_gen.go)")
	compileCmd.Flags().String("format", "go", "output format: go or typescript")
	compileCmd.Flags().String("package", "rules", "package name for Go output")
	compileCmd.Flags().Bool("force", false, "regenerate even when output is newer than input")

	rootCmd.AddCommand(compileCmd)
}
