package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/humtersiso/insurstar-ocr/docx"
)

var inspectTemplate string

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show template structure and the markers it references",
	Long: `Show the paragraph and table counts of a template document and
every {{marker}} it references, including markers split across runs.

Examples:
  insurstar inspect
  insurstar inspect --template assets/templates/report.docx
`,
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectTemplate, "template", "t", "", "Template document path (overrides config)")
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if inspectTemplate != "" {
		cfg.TemplatePath = inspectTemplate
	}

	tpl, err := docx.Open(cfg.TemplatePath)
	if err != nil {
		return err
	}

	info := tpl.Info()
	fmt.Printf("template:   %s\n", cfg.TemplatePath)
	fmt.Printf("paragraphs: %d\n", info.Paragraphs)
	fmt.Printf("tables:     %d\n", info.Tables)

	markers := tpl.Markers()
	fmt.Printf("markers (%d):\n", len(markers))
	for _, m := range markers {
		fmt.Printf("  {{%s}}\n", m)
	}
	return nil
}
