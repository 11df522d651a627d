// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/rulebook/internal/extract"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Extract the rules catalog and report findings without emitting",
	Long: `Check runs the extractor over the source markdown and reports what it
found: section and rule counts per priority tier, sections dropped for
having no rules, rule headers that failed to parse, and duplicate or
gapped rule numbers.

Check exits non-zero when the document yields no rules at all.`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")

	content, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("reading input %s: %w", input, err)
	}

	result := extract.Extract(string(content))

	asYAML, _ := cmd.Flags().GetBool("yaml")
	if asYAML {
		data, err := yaml.Marshal(result.Document)
		if err != nil {
			return fmt.Errorf("marshaling document: %w", err)
		}
		os.Stdout.Write(data)
	}

	byTier := make(map[string]int)
	for _, sec := range result.Document.Sections {
		byTier[string(sec.Priority)] += len(sec.Rules)
	}

	fmt.Printf("Extracted %d sections, %d rules\n",
		len(result.Document.Sections), result.Document.RuleCount())
	for _, tier := range []string{"critical", "high", "important", "info"} {
		if n, ok := byTier[tier]; ok {
			fmt.Printf("   - %s: %d rules\n", tier, n)
		}
	}

	reportFindings(result)

	if result.Document.RuleCount() == 0 {
		return fmt.Errorf("no rules extracted from %s", input)
	}
	return nil
}

func init() {
	checkCmd.Flags().String("input", "procurement_rules.md", "source markdown catalog")
	checkCmd.Flags().Bool("yaml", false, "print the extracted document as YAML")

	rootCmd.AddCommand(checkCmd)
}
