package docx

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// GlyphFormat is the fixed typography applied to checkbox glyphs after
// marker resolution. Substituted glyphs inherit arbitrary run formatting
// from whichever run held the marker; this pass makes all of them render
// at the same face and size.
type GlyphFormat struct {
	Font       string
	SizePt     float64
	Selected   string   // glyph set in bold
	Unselected string   // glyph set in regular weight
	Literals   []string // literal echo values also set in regular weight
}

type glyphOverride struct {
	font   string
	sizePt float64
	bold   bool
}

// FormatGlyphs walks every fragment and records a run-property override
// based purely on the fragment's current text. Resolution state is not
// consulted, so glyphs already present in the template are restyled too.
func (t *Template) FormatGlyphs(gf GlyphFormat) {
	selected := strings.TrimSpace(gf.Selected)
	for _, p := range t.paragraphs {
		for _, f := range p.Fragments {
			switch {
			case selected != "" && strings.Contains(f.text, selected):
				f.override = &glyphOverride{font: gf.Font, sizePt: gf.SizePt, bold: true}
			case gf.Unselected != "" && strings.Contains(f.text, gf.Unselected):
				f.override = &glyphOverride{font: gf.Font, sizePt: gf.SizePt, bold: false}
			default:
				for _, lit := range gf.Literals {
					if lit != "" && strings.Contains(f.text, lit) {
						f.override = &glyphOverride{font: gf.Font, sizePt: gf.SizePt, bold: false}
						break
					}
				}
			}
		}
	}
}

// xml renders the override as a complete <w:rPr> element. It replaces
// the run's original properties wholesale: the glyph cells carry no
// formatting worth keeping beyond what the override sets.
func (o *glyphOverride) xml() []byte {
	var b bytes.Buffer
	b.WriteString("<w:rPr>")
	font := escapeAttr(o.font)
	fmt.Fprintf(&b, `<w:rFonts w:ascii="%[1]s" w:eastAsia="%[1]s" w:hAnsi="%[1]s"/>`, font)
	if o.bold {
		b.WriteString("<w:b/>")
	} else {
		b.WriteString(`<w:b w:val="0"/>`)
	}
	// w:sz is in half-points.
	half := strconv.Itoa(int(o.sizePt * 2))
	fmt.Fprintf(&b, `<w:sz w:val="%s"/><w:szCs w:val="%s"/>`, half, half)
	b.WriteString("</w:rPr>")
	return b.Bytes()
}
