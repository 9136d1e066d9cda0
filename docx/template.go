// Package docx loads a marker-bearing OOXML template, rewrites its text
// runs in place, and serializes the filled document. Substitutions are
// applied as byte-range splices against the original word/document.xml,
// and every other archive part is copied through verbatim, so all of the
// template's styling, tables, headers and numbering survive untouched.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const (
	documentPart     = "word/document.xml"
	contentTypesPart = "[Content_Types].xml"
	documentRelsPart = "word/_rels/document.xml.rels"

	imageRelType = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
)

// Template is one in-memory copy of a template document. Instances carry
// mutable substitution state and must not be shared across concurrent
// renders; each render opens its own copy. The asset on disk is never
// modified.
type Template struct {
	parts map[string][]byte
	order []string
	doc   []byte

	paragraphs []*Paragraph
	tables     int

	rendered []byte

	relSeq   int
	mediaSeq int
	docPrSeq int
	newMedia []mediaPart
	newRels  []relEntry
}

type mediaPart struct {
	name string
	data []byte
	ext  string
}

type relEntry struct {
	id     string
	target string
}

var relIDPattern = regexp.MustCompile(`Id="rId(\d+)"`)

// Open loads a template document from path. A missing archive, a missing
// document body, or an unparsable body is fatal: no render can proceed
// without them.
func Open(path string) (*Template, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening template %s: %w", filepath.Base(path), err)
	}
	defer zr.Close()

	t := &Template{parts: make(map[string][]byte, len(zr.File))}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("reading template part %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading template part %s: %w", f.Name, err)
		}
		if _, dup := t.parts[f.Name]; !dup {
			t.order = append(t.order, f.Name)
		}
		t.parts[f.Name] = data
	}

	for _, required := range []string{contentTypesPart, documentPart} {
		if _, ok := t.parts[required]; !ok {
			return nil, fmt.Errorf("template missing required part: %s", required)
		}
	}

	t.doc = t.parts[documentPart]
	t.paragraphs, t.tables, err = scanDocument(t.doc)
	if err != nil {
		return nil, err
	}

	t.relSeq = maxRelID(t.parts[documentRelsPart])
	// Drawing ids only need to be unique within the document; starting
	// high clears the ids already present in the template.
	t.docPrSeq = 9000
	return t, nil
}

// Info describes the template structure for diagnostics.
type Info struct {
	Paragraphs int `json:"paragraphs"`
	Tables     int `json:"tables"`
}

func (t *Template) Info() Info {
	return Info{Paragraphs: len(t.paragraphs), Tables: t.tables}
}

// Paragraphs exposes the scanned paragraph model, in document order.
func (t *Template) Paragraphs() []*Paragraph { return t.paragraphs }

func maxRelID(rels []byte) int {
	max := 0
	for _, m := range relIDPattern.FindAllSubmatch(rels, -1) {
		if n, err := strconv.Atoi(string(m[1])); err == nil && n > max {
			max = n
		}
	}
	return max
}

type edit struct {
	start, end int64
	data       []byte
}

// render materializes the pending fragment mutations into the output
// word/document.xml. The result is cached: media and relationship
// registration for inserted images must happen exactly once.
func (t *Template) render() []byte {
	if t.rendered == nil {
		t.rendered = t.renderDocument()
	}
	return t.rendered
}

func (t *Template) renderDocument() []byte {
	var edits []edit
	for _, p := range t.paragraphs {
		for _, f := range p.Fragments {
			if f.override != nil {
				if f.rprStart >= 0 {
					edits = append(edits, edit{f.rprStart, f.rprEnd, f.override.xml()})
				} else {
					edits = append(edits, edit{f.contentStart, f.contentStart, f.override.xml()})
				}
			}
			if !f.dirty {
				continue
			}
			var repl []byte
			switch {
			case f.image != nil:
				repl = t.inlineImageXML(f.image)
			case f.text == "":
				repl = nil
			default:
				repl = wrapText(f.text)
			}
			edits = append(edits, edit{f.contentStart, f.contentEnd, repl})
		}
	}
	if len(edits) == 0 {
		return t.doc
	}

	sort.Slice(edits, func(i, j int) bool {
		if edits[i].start != edits[j].start {
			return edits[i].start < edits[j].start
		}
		return edits[i].end < edits[j].end
	})

	var out bytes.Buffer
	out.Grow(len(t.doc) + 1024)
	pos := int64(0)
	for _, e := range edits {
		out.Write(t.doc[pos:e.start])
		out.Write(e.data)
		pos = e.end
	}
	out.Write(t.doc[pos:])
	return out.Bytes()
}

// wrapText renders run text as a single <w:t>. xml:space is always set:
// substituted values may carry significant leading or trailing spaces.
func wrapText(s string) []byte {
	var b bytes.Buffer
	b.WriteString(`<w:t xml:space="preserve">`)
	xml.EscapeText(&b, []byte(s))
	b.WriteString(`</w:t>`)
	return b.Bytes()
}

func escapeAttr(s string) string {
	var b bytes.Buffer
	xml.EscapeText(&b, []byte(s))
	return b.String()
}

// Save serializes the filled document to path, creating parent
// directories as needed. Parts are written in the order they appeared in
// the template and without timestamps, so rendering the same template
// with the same context twice produces byte-identical output.
func (t *Template) Save(path string) error {
	doc := t.render()

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output document: %w", err)
	}

	zw := zip.NewWriter(f)
	writePart := func(name string, data []byte) error {
		w, err := zw.Create(name)
		if err == nil {
			_, err = w.Write(data)
		}
		if err != nil {
			return fmt.Errorf("writing output part %s: %w", name, err)
		}
		return nil
	}

	fail := func(err error) error {
		zw.Close()
		f.Close()
		os.Remove(path)
		return err
	}

	wroteRels := false
	for _, name := range t.order {
		data := t.parts[name]
		switch name {
		case documentPart:
			data = doc
		case documentRelsPart:
			data = t.patchRelationships(data)
			wroteRels = true
		case contentTypesPart:
			data = t.patchContentTypes(data)
		}
		if err := writePart(name, data); err != nil {
			return fail(err)
		}
	}
	if !wroteRels && len(t.newRels) > 0 {
		if err := writePart(documentRelsPart, t.patchRelationships(nil)); err != nil {
			return fail(err)
		}
	}
	for _, m := range t.newMedia {
		if err := writePart(m.name, m.data); err != nil {
			return fail(err)
		}
	}

	if err := zw.Close(); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("finalizing output document: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("closing output document: %w", err)
	}
	return nil
}

const emptyRels = xml.Header +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`

func (t *Template) patchRelationships(data []byte) []byte {
	if len(t.newRels) == 0 {
		return data
	}
	if data == nil {
		data = []byte(emptyRels)
	}
	idx := bytes.LastIndex(data, []byte("</Relationships>"))
	if idx < 0 {
		return data
	}
	var b bytes.Buffer
	b.Write(data[:idx])
	for _, r := range t.newRels {
		fmt.Fprintf(&b, `<Relationship Id="%s" Type="%s" Target="%s"/>`,
			r.id, imageRelType, escapeAttr(r.target))
	}
	b.Write(data[idx:])
	return b.Bytes()
}

func (t *Template) patchContentTypes(data []byte) []byte {
	if len(t.newMedia) == 0 {
		return data
	}
	idx := bytes.LastIndex(data, []byte("</Types>"))
	if idx < 0 {
		return data
	}
	var b bytes.Buffer
	b.Write(data[:idx])
	seen := map[string]bool{}
	for _, m := range t.newMedia {
		if seen[m.ext] || bytes.Contains(data, []byte(`Extension="`+m.ext+`"`)) {
			continue
		}
		seen[m.ext] = true
		fmt.Fprintf(&b, `<Default Extension="%s" ContentType="%s"/>`,
			m.ext, imageContentTypes[m.ext])
	}
	b.Write(data[idx:])
	return b.Bytes()
}

const inlineDrawing = `<w:drawing><wp:inline distT="0" distB="0" distL="0" distR="0" xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"><wp:extent cx="%[1]d" cy="%[2]d"/><wp:docPr id="%[3]d" name="%[4]s"/><a:graphic xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/picture"><pic:pic xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture"><pic:nvPicPr><pic:cNvPr id="%[3]d" name="%[4]s"/><pic:cNvPicPr/></pic:nvPicPr><pic:blipFill><a:blip xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" r:embed="%[5]s"/><a:stretch><a:fillRect/></a:stretch></pic:blipFill><pic:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="%[1]d" cy="%[2]d"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></pic:spPr></pic:pic></a:graphicData></a:graphic></wp:inline></w:drawing>`

// inlineImageXML registers the image as a new media part plus document
// relationship and returns the drawing markup that replaces the run
// content. Namespaces are declared inline so the markup is valid no
// matter which prefixes the template's root element binds.
func (t *Template) inlineImageXML(img *Image) []byte {
	t.mediaSeq++
	name := fmt.Sprintf("word/media/filled%d.%s", t.mediaSeq, img.ext)
	t.newMedia = append(t.newMedia, mediaPart{name: name, data: img.data, ext: img.ext})

	t.relSeq++
	rid := fmt.Sprintf("rId%d", t.relSeq)
	t.newRels = append(t.newRels, relEntry{id: rid, target: strings.TrimPrefix(name, "word/")})

	t.docPrSeq++
	return []byte(fmt.Sprintf(inlineDrawing,
		img.widthEMU, img.heightEMU, t.docPrSeq,
		fmt.Sprintf("filled%d", t.mediaSeq), rid))
}
