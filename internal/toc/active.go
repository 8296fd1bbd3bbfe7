package toc

// Offset is a heading's absolute vertical position on the page, already
// adjusted for its scroll margin.
type Offset struct {
	ID  string  `json:"id"`
	Top float64 `json:"top"`
}

// Element is the geometry of a rendered heading at measurement time: the
// top of its bounding box relative to the viewport and its computed
// scroll-margin-top.
type Element struct {
	Top             float64 `json:"top"`
	ScrollMarginTop float64 `json:"scroll_margin_top"`
}

// Document gives access to rendered heading geometry by element id.
type Document interface {
	Element(id string) (Element, bool)
}

// Geometry is a Document backed by a map of measured elements.
type Geometry map[string]Element

// Element implements Document.
func (g Geometry) Element(id string) (Element, bool) {
	el, ok := g[id]
	return el, ok
}

// Measure turns headings into page-relative offsets. scrollY is the scroll
// position at the time the elements were measured. Headings absent from doc
// are skipped, not reported at zero.
func Measure(headings []Heading, doc Document, scrollY float64) []Offset {
	ids := IDs(headings)
	offsets := make([]Offset, 0, len(ids))
	for _, id := range ids {
		el, ok := doc.Element(id)
		if !ok {
			continue
		}
		offsets = append(offsets, Offset{ID: id, Top: scrollY + el.Top - el.ScrollMarginTop})
	}
	return offsets
}

// ActiveSection returns the last heading, in document order, whose offset has
// been scrolled past. The scan is seeded with the first heading, so once any
// offsets exist the result is never empty, even above the first heading.
func ActiveSection(offsets []Offset, scrollY float64) string {
	if len(offsets) == 0 {
		return ""
	}
	current := offsets[0].ID
	for _, o := range offsets {
		if scrollY < o.Top {
			break
		}
		current = o.ID
	}
	return current
}

// IsScrolled is the header shadow predicate.
func IsScrolled(scrollY float64) bool { return scrollY > 0 }
