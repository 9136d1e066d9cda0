package fill

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/humtersiso/insurstar-ocr/config"
	"github.com/humtersiso/insurstar-ocr/derive"
	"github.com/humtersiso/insurstar-ocr/docx"
	"github.com/humtersiso/insurstar-ocr/record"
)

// Result is everything a render produced besides the document itself.
type Result struct {
	OutputPath string
	Replaced   int
	Unresolved []string
	Validation record.Report
	Summary    Summary
	Processed  map[string]string

	rec      record.Record
	template string
}

// Filler drives the render pipeline: validate, normalize, derive,
// assemble, resolve, restyle, save.
type Filler struct {
	cfg *config.Config
	log *zap.Logger
}

func New(cfg *config.Config, log *zap.Logger) *Filler {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Filler{cfg: cfg, log: log}
}

// Fill renders one extraction record into a filled analysis report under
// the configured output directory. Validation findings and unresolved
// markers come back in the Result; only template load and the final
// write can fail.
func (f *Filler) Fill(rec record.Record) (*Result, error) {
	validation := record.Validate(rec)
	for _, e := range validation.Errors {
		f.log.Warn("record validation", zap.String("finding", e))
	}
	for _, w := range validation.Warnings {
		f.log.Debug("record validation", zap.String("finding", w))
	}

	ctx, processed := NewAssembler(f.cfg, f.log).Assemble(rec)
	f.log.Debug("context assembled", zap.Int("values", len(ctx)))

	tpl, err := docx.Open(f.cfg.TemplatePath)
	if err != nil {
		return nil, err
	}

	if f.cfg.RepairMarker != "" {
		if n := tpl.RepairEmptyMarkers(f.cfg.RepairMarker); n > 0 {
			f.log.Info("repaired empty markers",
				zap.Int("fragments", n), zap.String("marker", f.cfg.RepairMarker))
		}
	}

	replaced := tpl.Resolve(ctx)

	tpl.FormatGlyphs(docx.GlyphFormat{
		Font:       f.cfg.GlyphFont,
		SizePt:     f.cfg.GlyphSizePt,
		Selected:   derive.Selected,
		Unselected: derive.Unselected,
		Literals:   echoLiterals(processed),
	})

	unresolved := tpl.Unresolved()
	if len(unresolved) > 0 {
		f.log.Warn("markers left unresolved", zap.Strings("markers", unresolved))
	}

	out := f.outputPath()
	if err := tpl.Save(out); err != nil {
		return nil, err
	}
	f.log.Info("report rendered",
		zap.String("path", out), zap.Int("replaced", replaced))

	return &Result{
		OutputPath: out,
		Replaced:   replaced,
		Unresolved: unresolved,
		Validation: validation,
		Summary:    Summarize(processed),
		Processed:  processed,
		rec:        rec,
		template:   f.cfg.TemplatePath,
	}, nil
}

// FillFile loads a record JSON file and renders it.
func (f *Filler) FillFile(path string) (*Result, error) {
	rec, err := record.Load(path)
	if err != nil {
		return nil, err
	}
	return f.Fill(rec)
}

func echoLiterals(processed map[string]string) []string {
	lits := make([]string, 0, len(literalEchoFields))
	for _, name := range literalEchoFields {
		lits = append(lits, processed[name])
	}
	return lits
}

// outputPath names the rendered document 財產分析書_<timestamp>_<uuid>.docx.
// The UUID suffix keeps concurrent renders from colliding on the same
// second.
func (f *Filler) outputPath() string {
	stamp := time.Now().Format("20060102_150405")
	suffix := uuid.NewString()[:8]
	return filepath.Join(f.cfg.OutputDir, fmt.Sprintf("財產分析書_%s_%s.docx", stamp, suffix))
}
