// Package config carries the asset locations and fixed tokens for a render.
// The tables were globals in earlier iterations of this system; an explicit
// object constructed once keeps renders independent of process state.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config describes the template asset, the watermark assets embedded into
// the output, and the fixed literal tokens.
type Config struct {
	TemplatePath         string  `yaml:"template_path"`
	OutputDir            string  `yaml:"output_dir"`
	WatermarkNamePath    string  `yaml:"watermark_name_path"`
	WatermarkCompanyPath string  `yaml:"watermark_company_path"`
	WatermarkWidthMM     float64 `yaml:"watermark_width_mm"`

	// SerialCode fills the fixed {{PCN}} document serial marker.
	SerialCode string `yaml:"serial_code"`

	// RepairMarker is the name written into degenerate "{{}}" markers
	// before rendering. Empty disables the repair pass.
	RepairMarker string `yaml:"repair_marker"`

	// Checkbox glyph typography applied by the post-resolution pass.
	GlyphFont   string  `yaml:"glyph_font"`
	GlyphSizePt float64 `yaml:"glyph_size_pt"`
}

// Default returns the configuration matching the production asset layout.
func Default() *Config {
	return &Config{
		TemplatePath:         "assets/templates/財產分析書_fixed.docx",
		OutputDir:            "property_reports",
		WatermarkNamePath:    "assets/watermark/watermark_name_blue.png",
		WatermarkCompanyPath: "assets/watermark/watermark_company_blue.png",
		WatermarkWidthMM:     30,
		SerialCode:           "BB2H699299",
		RepairMarker:         "PCN",
		GlyphFont:            "新細明體",
		GlyphSizePt:          8,
	}
}

// Load reads a YAML configuration file over the defaults, so a partial file
// only overrides what it names.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}
