// Package insurstar provides a fluent API for rendering OCR extraction
// records into filled property analysis reports.
//
// Basic usage:
//
//	res, err := insurstar.Record("extraction.json").Fill()
//	if err != nil {
//	    // handle error
//	}
//	if len(res.Unresolved) > 0 {
//	    log.Println("unresolved markers:", res.Unresolved)
//	}
//
// With options:
//
//	res, err := insurstar.Record("extraction.json").
//	    Template("assets/templates/財產分析書_fixed.docx").
//	    Output("property_reports").
//	    Logger(logger).
//	    Fill()
//
// For advanced use cases, the lower-level fill and docx packages are
// also available.
package insurstar

import (
	"go.uber.org/zap"

	"github.com/humtersiso/insurstar-ocr/config"
	"github.com/humtersiso/insurstar-ocr/fill"
	"github.com/humtersiso/insurstar-ocr/record"
)

// Renderer accumulates configuration for one render. Terminal operations
// construct the pipeline and run it.
type Renderer struct {
	path string
	rec  *record.Record
	cfg  *config.Config
	log  *zap.Logger
}

// Record starts a render from a record JSON file.
func Record(path string) *Renderer {
	return &Renderer{path: path}
}

// From starts a render from an already-decoded record.
func From(rec record.Record) *Renderer {
	return &Renderer{rec: &rec}
}

// Config replaces the whole render configuration. Unset, defaults
// matching the production asset layout apply.
func (r *Renderer) Config(cfg *config.Config) *Renderer {
	r.cfg = cfg
	return r
}

// Template overrides the template asset path.
func (r *Renderer) Template(path string) *Renderer {
	r.config().TemplatePath = path
	return r
}

// Output overrides the output directory.
func (r *Renderer) Output(dir string) *Renderer {
	r.config().OutputDir = dir
	return r
}

// Logger sets the structured logger. Unset, logging is a no-op.
func (r *Renderer) Logger(log *zap.Logger) *Renderer {
	r.log = log
	return r
}

// Fill is the terminal operation: it renders the filled document and
// returns the render result.
func (r *Renderer) Fill() (*fill.Result, error) {
	f := fill.New(r.config(), r.log)
	if r.rec != nil {
		return f.Fill(*r.rec)
	}
	return f.FillFile(r.path)
}

func (r *Renderer) config() *config.Config {
	if r.cfg == nil {
		r.cfg = config.Default()
	}
	return r.cfg
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	res := insurstar.Must(insurstar.Record("extraction.json").Fill())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
