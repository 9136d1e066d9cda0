package docx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

const nsW = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// Fragment is the smallest replaceable unit of document text: one <w:r>
// run, carrying its own formatting. Word splits marker text across runs
// freely (spell-check state, revision history, IME input all fragment
// runs), so a marker may span several consecutive fragments.
type Fragment struct {
	text     string
	orig     string
	dirty    bool
	image    *Image
	override *glyphOverride

	// Byte offsets into the original word/document.xml. The run content
	// range covers everything between the run properties (when present)
	// and the closing </w:r> tag.
	rprStart     int64 // <w:rPr> element range, -1 when the run has none
	rprEnd       int64
	contentStart int64
	contentEnd   int64
}

// Text returns the fragment's current text, reflecting any substitutions
// already applied.
func (f *Fragment) Text() string { return f.text }

func (f *Fragment) setText(s string) {
	f.text = s
	f.dirty = f.dirty || s != f.orig
}

func (f *Fragment) setValue(v Value) {
	switch val := v.(type) {
	case Text:
		f.setText(string(val))
	case *Image:
		f.image = val
		f.text = ""
		f.dirty = true
	}
}

// Paragraph is an ordered sequence of fragments. Paragraphs inside table
// cells, at any nesting depth, appear exactly like body paragraphs.
type Paragraph struct {
	Fragments []*Fragment
}

func (p *Paragraph) text() string {
	var b strings.Builder
	for _, f := range p.Fragments {
		b.WriteString(f.text)
	}
	return b.String()
}

type openRun struct {
	frag       *Fragment
	owner      *Paragraph
	hasContent bool
}

// scanDocument builds the paragraph/fragment model of a document body,
// recording the byte range of every run so substitutions can be applied
// as splices against the original bytes. Runs with no children are
// skipped: there is nothing in them to replace.
func scanDocument(doc []byte) ([]*Paragraph, int, error) {
	dec := xml.NewDecoder(bytes.NewReader(doc))

	var (
		paragraphs []*Paragraph
		paraStack  []*Paragraph
		runStack   []*openRun
		inText     bool
		tables     int
	)

	for {
		start := dec.InputOffset()
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("parsing document body: %w", err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			if el.Name.Space != nsW {
				continue
			}
			switch el.Name.Local {
			case "p":
				p := &Paragraph{}
				paragraphs = append(paragraphs, p)
				paraStack = append(paraStack, p)
			case "tbl":
				tables++
			case "r":
				if len(paraStack) == 0 {
					continue
				}
				f := &Fragment{rprStart: -1, rprEnd: -1}
				f.contentStart = dec.InputOffset()
				runStack = append(runStack, &openRun{
					frag:  f,
					owner: paraStack[len(paraStack)-1],
				})
			case "rPr":
				// Only the run's own properties matter; <w:rPr> inside
				// <w:pPr> styles the paragraph mark, not a fragment.
				if r := topRun(runStack); r != nil && !r.hasContent && r.frag.rprStart < 0 {
					r.frag.rprStart = start
					if err := dec.Skip(); err != nil {
						return nil, 0, fmt.Errorf("parsing run properties: %w", err)
					}
					r.frag.rprEnd = dec.InputOffset()
					r.frag.contentStart = r.frag.rprEnd
					r.hasContent = true
				}
			case "t":
				if r := topRun(runStack); r != nil {
					inText = true
					r.hasContent = true
				}
			default:
				if r := topRun(runStack); r != nil {
					r.hasContent = true
				}
			}

		case xml.EndElement:
			if el.Name.Space != nsW {
				continue
			}
			switch el.Name.Local {
			case "t":
				inText = false
			case "r":
				if len(runStack) == 0 {
					continue
				}
				r := runStack[len(runStack)-1]
				runStack = runStack[:len(runStack)-1]
				if !r.hasContent {
					continue
				}
				r.frag.contentEnd = start
				r.frag.orig = r.frag.text
				r.owner.Fragments = append(r.owner.Fragments, r.frag)
			case "p":
				if len(paraStack) > 0 {
					paraStack = paraStack[:len(paraStack)-1]
				}
			}

		case xml.CharData:
			if inText {
				if r := topRun(runStack); r != nil {
					r.frag.text += string(el)
				}
			}
		}
	}

	return paragraphs, tables, nil
}

func topRun(stack []*openRun) *openRun {
	if len(stack) == 0 {
		return nil
	}
	return stack[len(stack)-1]
}
