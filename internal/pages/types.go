package pages

import (
	"time"

	"github.com/rubicon-docs/docsite/internal/toc"
)

// Page is one rendered documentation page as stored in the index.
type Page struct {
	Path        string        `json:"path"`
	Title       string        `json:"title"`
	Section     string        `json:"section,omitempty"`
	Description string        `json:"description,omitempty"`
	TOC         []toc.Heading `json:"toc"`
	HTML        string        `json:"-"`
	BodyText    string        `json:"-"`
	SourceFile  string        `json:"source_file,omitempty"`
	ContentHash string        `json:"content_hash,omitempty"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// Summary is the listing form of a page.
type Summary struct {
	Path        string `json:"path"`
	Title       string `json:"title"`
	Section     string `json:"section,omitempty"`
	Description string `json:"description,omitempty"`
}

// Summary returns the listing form of p.
func (p Page) Summary() Summary {
	return Summary{Path: p.Path, Title: p.Title, Section: p.Section, Description: p.Description}
}
