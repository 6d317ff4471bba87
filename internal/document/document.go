// Package document loads text files for the pager: language detection,
// syntax highlighting and section lines.
package document

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

const tabWidth = 4

// Section is a line that section navigation can stop at.
type Section struct {
	Line  int // zero-based line index
	Kind  Kind
	Level int // heading level, 0 for other kinds
	Title string
}

// Options control how a document is prepared.
type Options struct {
	Style     string // chroma style name
	Highlight bool
}

// Document is a loaded file split into lines.
type Document struct {
	Path     string
	Name     string
	Language string

	lines       []string
	highlighted []string
	structure   []Section
}

// Load reads path and parses it.
func Load(path string, opts Options) (*Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	doc := Parse(filepath.Base(path), src, opts)
	if abs, err := filepath.Abs(path); err == nil {
		doc.Path = abs
	} else {
		doc.Path = path
	}
	return doc, nil
}

// Parse builds a document from in-memory content. name is used for language
// detection only.
func Parse(name string, src []byte, opts Options) *Document {
	language := enry.GetLanguage(name, src)
	if language == "" {
		language = "Text"
	}

	text := strings.ReplaceAll(string(src), "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.ReplaceAll(line, "\t", strings.Repeat(" ", tabWidth))
	}

	doc := &Document{
		Path:     name,
		Name:     name,
		Language: language,
		lines:    lines,
	}
	if isMarkup(language) {
		doc.structure = scanMarkdown(lines)
	}
	if opts.Highlight {
		doc.highlighted = highlight(lines, language, name, opts.Style)
	}
	return doc
}

func isMarkup(language string) bool {
	switch language {
	case "Markdown", "Text", "MDX", "RMarkdown":
		return true
	}
	return false
}

// LineCount returns the number of lines.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// Lines returns the plain text lines.
func (d *Document) Lines() []string {
	return d.lines
}

// Rendered returns the highlighted lines, or the plain lines when
// highlighting is off or failed.
func (d *Document) Rendered() []string {
	if d.highlighted != nil {
		return d.highlighted
	}
	return d.lines
}

// Sections returns the lines matching any of the selectors, top to bottom.
// Invalid selectors are skipped; config validation reports them.
func (d *Document) Sections(selectors []string) []Section {
	var parsed []Selector
	for _, raw := range selectors {
		sel, err := ParseSelector(raw)
		if err != nil {
			continue
		}
		parsed = append(parsed, sel)
	}
	if len(parsed) == 0 {
		return nil
	}

	var out []Section
	for _, sec := range d.structure {
		for _, sel := range parsed {
			if sel.matches(sec) {
				out = append(out, sec)
				break
			}
		}
	}
	for _, sel := range parsed {
		if sel.kind != KindPattern {
			continue
		}
		for i, line := range d.lines {
			if sel.pattern.MatchString(line) {
				out = append(out, Section{Line: i, Kind: KindPattern, Title: strings.TrimSpace(line)})
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Line < out[j].Line })
	return dedupe(out)
}

// SectionAt returns the last section starting at or above line.
func (d *Document) SectionAt(line int, selectors []string) (Section, bool) {
	sections := d.Sections(selectors)
	i := sort.Search(len(sections), func(i int) bool { return sections[i].Line > line })
	if i == 0 {
		return Section{}, false
	}
	return sections[i-1], true
}

// dedupe drops repeated lines from a sorted slice, keeping the first.
func dedupe(sections []Section) []Section {
	if len(sections) < 2 {
		return sections
	}
	out := sections[:1]
	for _, sec := range sections[1:] {
		if sec.Line != out[len(out)-1].Line {
			out = append(out, sec)
		}
	}
	return out
}
