package docx

import (
	"regexp"
	"sort"
	"strings"
)

var markerPattern = regexp.MustCompile(`\{\{[^{}]*\}\}`)

// Resolve substitutes every occurrence of every context marker in the
// document, including occurrences split across consecutive fragments of a
// paragraph. Markers are processed in sorted name order so repeated
// renders of the same context behave identically. Returns the total
// number of substitutions made.
func (t *Template) Resolve(ctx map[string]Value) int {
	names := make([]string, 0, len(ctx))
	for name := range ctx {
		names = append(names, name)
	}
	sort.Strings(names)

	replaced := 0
	for _, p := range t.paragraphs {
		for _, name := range names {
			replaced += resolveInParagraph(p.Fragments, "{{"+name+"}}", ctx[name])
		}
	}
	return replaced
}

// resolveInParagraph merges consecutive fragments whose concatenated text
// equals marker. On a match the first fragment takes the value, keeping
// its own formatting, the remaining consumed fragments are blanked, and
// the scan resumes past the consumed span. As soon as an accumulation
// stops being a prefix of the marker it is abandoned and the scan moves
// to the next start fragment, so the pass stays linear in practice.
func resolveInParagraph(frags []*Fragment, marker string, value Value) int {
	matched := 0
	for i := 0; i < len(frags); i++ {
		acc := ""
		for j := i; j < len(frags); j++ {
			acc += frags[j].text
			if acc == marker {
				frags[i].setValue(value)
				for k := i + 1; k <= j; k++ {
					frags[k].setText("")
				}
				matched++
				i = j
				break
			}
			if !strings.HasPrefix(marker, acc) {
				break
			}
		}
	}
	return matched
}

// Markers returns every distinct marker name referenced by the document,
// in order of first appearance. Split-run markers are found because the
// scan runs over whole-paragraph text.
func (t *Template) Markers() []string {
	return t.listMarkers()
}

// Unresolved returns the marker names still present in the document.
// After Resolve this is the set the context failed to cover.
func (t *Template) Unresolved() []string {
	return t.listMarkers()
}

func (t *Template) listMarkers() []string {
	var names []string
	seen := map[string]bool{}
	for _, p := range t.paragraphs {
		for _, m := range markerPattern.FindAllString(p.text(), -1) {
			name := m[2 : len(m)-2]
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}

// RepairEmptyMarkers rewrites degenerate "{{}}" markers to the given
// name. Template editing occasionally drops a marker's name while leaving
// its braces behind; the braces always survive inside a single run, so
// only single-fragment occurrences need repair. Returns the number of
// fragments rewritten.
func (t *Template) RepairEmptyMarkers(name string) int {
	repl := "{{" + name + "}}"
	repaired := 0
	for _, p := range t.paragraphs {
		for _, f := range p.Fragments {
			if strings.Contains(f.text, "{{}}") {
				f.setText(strings.ReplaceAll(f.text, "{{}}", repl))
				repaired++
			}
		}
	}
	return repaired
}
