package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/humtersiso/insurstar-ocr/config"
)

var version = "0.1.0"

var (
	configPath string
	verbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "insurstar",
	Short: "Insurstar - policy OCR record to filled analysis report",
	Long: `Insurstar renders structured OCR extraction records of insurance
policies into filled property analysis reports.

It normalizes the extracted fields (Republic-calendar dates, ID numbers,
amounts), derives the checkbox selections, and resolves the {{marker}}
placeholders of the report template, including markers split across
multiple text runs.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")
	rootCmd.AddCommand(fillCmd)
	rootCmd.AddCommand(inspectCmd)
}

func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}

func buildLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
