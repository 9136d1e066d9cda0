// Package fill assembles the substitution context for a render and drives
// the whole pipeline from extraction record to filled analysis report.
package fill

import (
	"strings"

	"go.uber.org/zap"

	"github.com/humtersiso/insurstar-ocr/config"
	"github.com/humtersiso/insurstar-ocr/coverage"
	"github.com/humtersiso/insurstar-ocr/derive"
	"github.com/humtersiso/insurstar-ocr/docx"
	"github.com/humtersiso/insurstar-ocr/normalize"
	"github.com/humtersiso/insurstar-ocr/record"
)

// Context maps marker names to their substitution values.
type Context map[string]docx.Value

// literalEchoFields are categorical fields echoed into the document as
// literal text next to their checkbox tokens. When blank they render as
// the blank placeholder glyph so the surrounding table cell keeps its
// layout instead of collapsing.
var literalEchoFields = []string{
	"gender",
	"policyholder_gender",
	"relationship",
	"vehicle_type",
}

// Assembler builds the render context for one record. Assembly is
// deterministic; the only I/O is resolving the watermark image assets.
type Assembler struct {
	cfg *config.Config
	log *zap.Logger
}

func NewAssembler(cfg *config.Config, log *zap.Logger) *Assembler {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Assembler{cfg: cfg, log: log}
}

// Assemble merges the normalized fields, derived checkbox tokens, fixed
// literals and watermark images into one context. It also returns the
// text-only value map, which summaries and the processed-data dump use.
func (a *Assembler) Assemble(rec record.Record) (Context, map[string]string) {
	fields := normalize.Process(rec)
	for _, name := range literalEchoFields {
		if record.IsBlank(fields[name]) {
			fields[name] = derive.BlankCell
		}
	}

	hasCompulsory := !record.IsBlank(rec.CompulsoryInsurancePeriod)
	hasOptional := !record.IsBlank(rec.OptionalInsurancePeriod)
	fields["optional_insurance_amount"] = coverage.OptionalAmount(rec.CoverageItems, hasCompulsory, hasOptional)
	// The compulsory amount is statutory and pre-printed on the template;
	// resolving its marker to empty text just clears the cell.
	fields["compulsory_insurance_amount"] = ""
	fields["coverage_items"] = coverageSummary(rec.CoverageItems)
	fields["PCN"] = a.cfg.SerialCode

	tokens := derive.Derive(rec)

	ctx := make(Context, len(fields)+len(tokens)+2)
	processed := make(map[string]string, len(fields)+len(tokens))
	for name, v := range fields {
		ctx[name] = docx.Text(v)
		processed[name] = v
	}
	for name, v := range tokens {
		ctx[name] = docx.Text(v)
		processed[name] = v
	}

	a.addWatermark(ctx, "watermark_name_blue", a.cfg.WatermarkNamePath)
	a.addWatermark(ctx, "watermark_company_blue", a.cfg.WatermarkCompanyPath)

	return ctx, processed
}

// addWatermark loads a watermark asset into the context. A missing or
// undecodable asset is logged and skipped; its marker stays unresolved
// rather than blocking the render.
func (a *Assembler) addWatermark(ctx Context, name, path string) {
	if path == "" {
		return
	}
	img, err := docx.LoadImage(path, a.cfg.WatermarkWidthMM)
	if err != nil {
		a.log.Warn("skipping watermark asset",
			zap.String("marker", name), zap.Error(err))
		return
	}
	ctx[name] = img
}

func coverageSummary(items []coverage.Item) string {
	var names []string
	for _, item := range items {
		if item.TypeName != "" {
			names = append(names, item.TypeName)
		}
	}
	return strings.Join(names, "、")
}
