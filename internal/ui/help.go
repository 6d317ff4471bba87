package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/noborus/ov/oviewer"

	"glide/internal/scroll"
)

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// renderHelpContent renders the command reference shown in the pager.
func renderHelpContent(styles *Styles, km keyMap) string {
	var scrolling, pager []binding
	for _, b := range km.bindings {
		if _, ok := scroll.LookupCommand(b.id); ok {
			scrolling = append(scrolling, b)
		} else {
			pager = append(pager, b)
		}
	}

	var help strings.Builder
	help.WriteString(styles.Title.Render("Glide Help"))
	help.WriteString("\n")
	writeGroup(&help, styles, "Scrolling", scrolling)
	help.WriteString("\n")
	writeGroup(&help, styles, "Pager", pager)
	return help.String()
}

func writeGroup(w *strings.Builder, styles *Styles, title string, bindings []binding) {
	w.WriteString(styles.HelpSection.Render(title))
	w.WriteString("\n")

	width := 0
	for _, b := range bindings {
		width = max(width, runewidth.StringWidth(b.Help().Key))
	}
	for _, b := range bindings {
		desc := b.Help().Desc
		if cmd, ok := scroll.LookupCommand(b.id); ok {
			desc = fmt.Sprintf("%s: %s", cmd.Name, cmd.Description)
		}
		keys := runewidth.FillRight(b.Help().Key, width)
		fmt.Fprintf(w, "  %s  %s\n", styles.Key.Render(keys), styles.Desc.Render(desc))
	}
}

// ovPager shows text in the ov pager. It implements tea.ExecCommand so the
// program releases the terminal while ov runs.
type ovPager struct {
	content string
}

func newHelpPager(content string) *ovPager {
	return &ovPager{content: content}
}

func (p *ovPager) Run() error {
	root, err := oviewer.NewRoot(strings.NewReader(p.content))
	if err != nil {
		return err
	}
	return root.Run()
}

// ov opens the terminal itself.
func (p *ovPager) SetStdin(io.Reader)  {}
func (p *ovPager) SetStdout(io.Writer) {}
func (p *ovPager) SetStderr(io.Writer) {}
