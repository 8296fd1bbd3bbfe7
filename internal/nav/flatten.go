package nav

// Flatten returns the direct children of every section in declaration order.
// Sublinks and nested links are not part of the sequence, so deeper pages have
// no previous/next neighbours even though the sidebar lists them.
func (t *Tree) Flatten() []*Entry {
	out := make([]*Entry, len(t.flat))
	copy(out, t.flat)
	return out
}

// Locate returns the previous and next entries around path in the flattened
// sequence, plus the section that lists path among its direct children.
// Matching is exact string equality: no case folding, no trailing-slash
// cleanup. An unmatched path yields an empty Pagination.
func (t *Tree) Locate(path string) Pagination {
	idx := t.indexOf(path)
	if idx < 0 {
		return Pagination{}
	}

	var p Pagination
	if idx > 0 {
		p.Previous = t.flat[idx-1]
	}
	if idx+1 < len(t.flat) {
		p.Next = t.flat[idx+1]
	}
	p.Section = t.SectionFor(path)
	return p
}

// SectionFor returns the first top-level section with a direct child whose
// href equals path, or nil.
func (t *Tree) SectionFor(path string) *Entry {
	if path == "" {
		return nil
	}
	for _, s := range t.Sections {
		for _, link := range s.Children {
			if link.Href == path {
				return s
			}
		}
	}
	return nil
}

func (t *Tree) indexOf(path string) int {
	if path == "" {
		return -1
	}
	for i, e := range t.flat {
		if e.Href == path {
			return i
		}
	}
	return -1
}

// Walk visits every entry depth-first in declaration order. Sections have
// depth 0.
func (t *Tree) Walk(fn func(e *Entry, depth int)) {
	var visit func(e *Entry, depth int)
	visit = func(e *Entry, depth int) {
		fn(e, depth)
		for _, c := range e.Children {
			visit(c, depth+1)
		}
	}
	for _, s := range t.Sections {
		visit(s, 0)
	}
}

// Pages returns every page entry of the tree, sublinks included.
func (t *Tree) Pages() []*Entry {
	var pages []*Entry
	t.Walk(func(e *Entry, _ int) {
		if e.IsPage() {
			pages = append(pages, e)
		}
	})
	return pages
}

// Trail returns the chain of entries from a section down to the entry whose
// href is path, inclusive. It searches the whole tree, sublinks included, and
// returns nil when nothing matches.
func (t *Tree) Trail(path string) []*Entry {
	if path == "" {
		return nil
	}
	var find func(e *Entry, trail []*Entry) []*Entry
	find = func(e *Entry, trail []*Entry) []*Entry {
		trail = append(trail, e)
		if e.Href == path {
			return trail
		}
		for _, c := range e.Children {
			if found := find(c, trail); found != nil {
				return found
			}
		}
		return nil
	}
	for _, s := range t.Sections {
		if found := find(s, make([]*Entry, 0, 4)); found != nil {
			return found
		}
	}
	return nil
}
