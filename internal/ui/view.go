package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"glide/internal/document"
)

// titleSelectors name the lines that can title the status line.
var titleSelectors = []string{"h1", "h2", "h3", "h4", "h5", "h6"}

// View renders the UI
func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	parts := []string{m.headerView(), m.vp.View(), m.statusView()}
	if m.config.UI.ShowHelp {
		parts = append(parts, m.styles.Help.Render(m.help.View(m.keys)))
	}
	return strings.Join(parts, "\n")
}

func (m *Model) headerView() string {
	info := fmt.Sprintf(" %s · %d lines", m.doc.Language, m.doc.LineCount())
	name := runewidth.Truncate(m.doc.Name, max(m.width-runewidth.StringWidth(info), 1), "…")
	return m.styles.Header.Render(name) + m.styles.Language.Render(info)
}

func (m *Model) statusView() string {
	right := m.styles.Progress.Render(fmt.Sprintf("%3.0f%%", m.vp.ScrollPercent()*100))
	if m.engine.Animating() {
		right = m.styles.Animating.Render("▶ scrolling") + "  " + right
	}

	left, style := m.currentTitle(), m.styles.Section
	if m.notice != "" {
		left, style = m.notice, m.styles.Notice
	}
	room := m.width - lipgloss.Width(right) - 1
	left = runewidth.Truncate(left, max(room, 0), "…")
	gap := max(m.width-runewidth.StringWidth(left)-lipgloss.Width(right), 1)

	return style.Render(left) + strings.Repeat(" ", gap) + right
}

// currentTitle names the section the top line belongs to.
func (m *Model) currentTitle() string {
	selectors := titleSelectors
	for _, sel := range m.config.Scroll.SectionSelectors {
		if strings.HasPrefix(sel, document.PatternPrefix) {
			selectors = append(selectors[:len(selectors):len(selectors)], sel)
		}
	}
	sec, ok := m.doc.SectionAt(m.surface.Line(), selectors)
	if !ok {
		return ""
	}
	return sec.Title
}
