package ui

import (
	"math"

	"github.com/charmbracelet/bubbles/viewport"

	"glide/internal/document"
	"glide/internal/scroll"
)

// pagerSurface exposes a viewport to the scroll engine in virtual pixels:
// every row is cellHeight pixels tall. The offset is kept fractional so that
// sub-row frames still count as movement; the viewport shows the row the
// offset falls in.
type pagerSurface struct {
	vp         *viewport.Model
	doc        *document.Document
	cellHeight float64
	top        float64
}

func newPagerSurface(vp *viewport.Model, doc *document.Document, cellHeight float64) *pagerSurface {
	return &pagerSurface{vp: vp, doc: doc, cellHeight: cellHeight}
}

func (s *pagerSurface) ScrollTop() float64 {
	return s.top
}

func (s *pagerSurface) SetScrollTop(offset float64) {
	s.top = math.Min(math.Max(offset, 0), s.maxTop())
	s.vp.SetYOffset(s.row(s.top))
}

func (s *pagerSurface) ClientHeight() float64 {
	return float64(s.vp.Height) * s.cellHeight
}

func (s *pagerSurface) ScrollHeight() float64 {
	return float64(s.vp.TotalLineCount()) * s.cellHeight
}

func (s *pagerSurface) Elements(selectors []string) []scroll.Element {
	if s.doc == nil {
		return nil
	}
	sections := s.doc.Sections(selectors)
	out := make([]scroll.Element, 0, len(sections))
	for _, sec := range sections {
		out = append(out, sectionElement{section: sec, offset: float64(sec.Line) * s.cellHeight})
	}
	return out
}

// Line returns the first visible line.
func (s *pagerSurface) Line() int {
	return s.vp.YOffset
}

// sync adopts the viewport's row after it scrolled on its own (mouse wheel).
func (s *pagerSurface) sync() {
	if s.row(s.top) != s.vp.YOffset {
		s.top = float64(s.vp.YOffset) * s.cellHeight
	}
}

// setCellHeight rescales the offset to a new row height.
func (s *pagerSurface) setCellHeight(h float64) {
	s.cellHeight = h
	s.top = float64(s.vp.YOffset) * h
}

func (s *pagerSurface) maxTop() float64 {
	return math.Max(s.ScrollHeight()-s.ClientHeight(), 0)
}

func (s *pagerSurface) row(offset float64) int {
	return int(math.Floor(offset/s.cellHeight + 1e-9))
}

type sectionElement struct {
	section document.Section
	offset  float64
}

func (e sectionElement) Offset() float64 { return e.offset }
