package scroll

// SectionLocator finds section elements inside a surface.
type SectionLocator interface {
	// Sections returns the elements matching selectors in document order.
	// Coordinates never reorder them.
	Sections(s Surface, selectors []string) []Element
	// Offset reports an element's position relative to the surface's scroll origin.
	Offset(s Surface, el Element) float64
	// Visible reports whether el lies inside the viewport shrunk by margin on
	// both edges.
	Visible(s Surface, el Element, margin float64) bool
}

// DocumentLocator is the SectionLocator used by the controller unless one is
// supplied.
type DocumentLocator struct{}

func (DocumentLocator) Sections(s Surface, selectors []string) []Element {
	if len(selectors) == 0 {
		return nil
	}
	return append([]Element(nil), s.Elements(selectors)...)
}

func (DocumentLocator) Offset(_ Surface, el Element) float64 {
	return el.Offset()
}

func (l DocumentLocator) Visible(s Surface, el Element, margin float64) bool {
	top := s.ScrollTop() + margin
	bottom := s.ScrollTop() + s.ClientHeight() - margin
	offset := l.Offset(s, el)
	return offset >= top && offset <= bottom
}
