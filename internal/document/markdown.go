package document

import (
	"regexp"
	"strings"
)

var (
	atxHeading    = regexp.MustCompile(`^ {0,3}(#{1,6})(?:[ \t]+(.*?))?(?:[ \t]+#+)?[ \t]*$`)
	thematicBreak = regexp.MustCompile(`^ {0,3}(?:(?:\*[ \t]*){3,}|(?:-[ \t]*){3,}|(?:_[ \t]*){3,})$`)
	setextLine    = regexp.MustCompile(`^ {0,3}(=+|-+)[ \t]*$`)
	fenceOpen     = regexp.MustCompile("^ {0,3}(`{3,}|~{3,})")
)

// scanMarkdown finds headings and thematic breaks, skipping fenced code.
func scanMarkdown(lines []string) []Section {
	var (
		sections  []Section
		fence     string
		paragraph = -1 // index of the open paragraph's last line
	)

	for i, line := range lines {
		if fence != "" {
			if closesFence(line, fence) {
				fence = ""
			}
			continue
		}
		if m := fenceOpen.FindStringSubmatch(line); m != nil {
			fence = m[1]
			paragraph = -1
			continue
		}
		if strings.TrimSpace(line) == "" {
			paragraph = -1
			continue
		}

		if m := setextLine.FindStringSubmatch(line); m != nil && paragraph >= 0 {
			level := 1
			if m[1][0] == '-' {
				level = 2
			}
			sections = append(sections, Section{
				Line:  paragraph,
				Kind:  KindHeading,
				Level: level,
				Title: strings.TrimSpace(lines[paragraph]),
			})
			paragraph = -1
			continue
		}
		if thematicBreak.MatchString(line) {
			sections = append(sections, Section{Line: i, Kind: KindRule})
			paragraph = -1
			continue
		}
		if m := atxHeading.FindStringSubmatch(line); m != nil {
			sections = append(sections, Section{
				Line:  i,
				Kind:  KindHeading,
				Level: len(m[1]),
				Title: strings.TrimSpace(m[2]),
			})
			paragraph = -1
			continue
		}
		paragraph = i
	}
	return sections
}

func closesFence(line, fence string) bool {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 {
		return false
	}
	trimmed = strings.TrimRight(trimmed, " \t")
	if len(trimmed) < len(fence) {
		return false
	}
	return strings.Trim(trimmed, fence[:1]) == ""
}
