package nav

import "strings"

// Kind tells a navigable page apart from a grouping node.
type Kind string

const (
	// KindPage entries carry an href and may own sublinks.
	KindPage Kind = "page"
	// KindGroup entries carry no href and exist only to hold children.
	KindGroup Kind = "group"
)

// Entry is one node of the navigation tree: a section, a link or a sublink.
// Entries are shared between requests and must not be modified after load.
type Entry struct {
	Title    string   `json:"title"`
	Href     string   `json:"href,omitempty"`
	Kind     Kind     `json:"kind"`
	Children []*Entry `json:"children,omitempty"`
}

// IsPage reports whether the entry addresses a page.
func (e *Entry) IsPage() bool { return e != nil && e.Kind == KindPage }

// Tree is the loaded navigation. Sections are the top-level groups.
type Tree struct {
	Sections []*Entry `json:"sections"`

	// flat is the one-level concatenation of every section's children,
	// computed once at load.
	flat []*Entry
}

// Pagination is the sequential neighbourhood of a page.
type Pagination struct {
	Previous *Entry `json:"previous,omitempty"`
	Next     *Entry `json:"next,omitempty"`
	Section  *Entry `json:"section,omitempty"`
}

// NodeError describes a single malformed navigation node.
type NodeError struct {
	Path   []string
	Reason string
}

func (e *NodeError) Error() string {
	if len(e.Path) == 0 {
		return e.Reason
	}
	return strings.Join(e.Path, " > ") + ": " + e.Reason
}
