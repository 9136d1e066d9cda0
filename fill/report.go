package fill

import (
	"fmt"
	"os"
	"time"

	"github.com/bytedance/sonic"

	"github.com/humtersiso/insurstar-ocr/derive"
	"github.com/humtersiso/insurstar-ocr/record"
)

// Summary counts how much of the assembled context carries real data.
type Summary struct {
	TotalFields    int     `json:"total_fields"`
	FilledFields   int     `json:"filled_fields"`
	EmptyFields    int     `json:"empty_fields"`
	CompletionRate float64 `json:"completion_rate"`
}

// Summarize computes fill statistics over the processed text values.
// A value counts as empty when it is blank, the unfilled sentinel, or an
// unselected checkbox glyph.
func Summarize(processed map[string]string) Summary {
	s := Summary{TotalFields: len(processed)}
	for _, v := range processed {
		if record.IsBlank(v) || v == derive.Unselected {
			s.EmptyFields++
		}
	}
	s.FilledFields = s.TotalFields - s.EmptyFields
	if s.TotalFields > 0 {
		s.CompletionRate = float64(s.FilledFields) / float64(s.TotalFields) * 100
	}
	return s
}

// Dump is the processed-data JSON written alongside a rendered document,
// recording what went into the render for later auditing.
type Dump struct {
	Timestamp    string            `json:"timestamp"`
	TemplatePath string            `json:"template_path"`
	OutputPath   string            `json:"output_path"`
	Original     record.Record     `json:"original_data"`
	Processed    map[string]string `json:"processed_data"`
	Validation   record.Report     `json:"validation_result"`
	Summary      Summary           `json:"summary"`
	Unresolved   []string          `json:"unresolved_markers"`
}

// WriteDump serializes a render's processed data to path.
func WriteDump(res *Result, path string) error {
	d := Dump{
		Timestamp:    time.Now().Format(time.RFC3339),
		TemplatePath: res.template,
		OutputPath:   res.OutputPath,
		Original:     res.rec,
		Processed:    res.Processed,
		Validation:   res.Validation,
		Summary:      res.Summary,
		Unresolved:   res.Unresolved,
	}
	data, err := sonic.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding processed data: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing processed data: %w", err)
	}
	return nil
}
