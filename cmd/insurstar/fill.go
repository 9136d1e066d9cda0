package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/humtersiso/insurstar-ocr/fill"
)

var (
	recordPath   string
	templatePath string
	outputDir    string
	reportPath   string
)

var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Render an extraction record into a filled analysis report",
	Long: `Render an extraction record into a filled analysis report.

Examples:
  # Render with the default asset layout
  insurstar fill --record extraction.json

  # Custom template and output directory
  insurstar fill --record extraction.json --template report.docx --output out/

  # Also write the processed-data JSON next to the document
  insurstar fill --record extraction.json --report processed.json
`,
	RunE: runFill,
}

func init() {
	fillCmd.Flags().StringVarP(&recordPath, "record", "r", "", "Path to the extraction record JSON (required)")
	fillCmd.MarkFlagRequired("record")
	fillCmd.Flags().StringVarP(&templatePath, "template", "t", "", "Template document path (overrides config)")
	fillCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (overrides config)")
	fillCmd.Flags().StringVar(&reportPath, "report", "", "Write the processed-data JSON to this path")
}

func runFill(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if templatePath != "" {
		cfg.TemplatePath = templatePath
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}

	logger, err := buildLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	res, err := fill.New(cfg, logger).FillFile(recordPath)
	if err != nil {
		return err
	}

	fmt.Printf("rendered: %s\n", res.OutputPath)
	fmt.Printf("substitutions: %d  completion: %.1f%%\n", res.Replaced, res.Summary.CompletionRate)
	for _, e := range res.Validation.Errors {
		fmt.Printf("validation error: %s\n", e)
	}
	if len(res.Unresolved) > 0 {
		fmt.Printf("unresolved markers: %s\n", strings.Join(res.Unresolved, ", "))
	}
	if reportPath != "" {
		if err := fill.WriteDump(res, reportPath); err != nil {
			return err
		}
		fmt.Printf("report: %s\n", reportPath)
	}
	return nil
}
