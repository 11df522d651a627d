// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the rulebook CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the rulebook CLI.
var rootCmd = &cobra.Command{
	Use:   "rulebook",
	Short: "Compile a procurement rules catalog into typed data modules",
	Long: `rulebook turns a structured markdown catalog of numbered procurement
rules into statically-typed data modules for the knowledge-base feature.

The compile command extracts priority tiers, sections, and numbered rules
from markdown and emits a Go or TypeScript module. The check command runs
the extractor alone and reports anything it had to skip. The catalog
commands maintain a queryable SQLite index of the compiled rules.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./rulebook.yaml or ~/.config/rulebook/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("rulebook")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "rulebook"))
		}
	}

	viper.SetEnvPrefix("RULEBOOK")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
