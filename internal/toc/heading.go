// Package toc models a page's table of contents and tracks which heading is
// currently being read while the page scrolls.
package toc

import (
	"bytes"

	"github.com/gosimple/slug"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Heading is one entry of a page's table of contents. Level-2 headings are
// roots; level-3 headings hang under the preceding root.
type Heading struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Level    int       `json:"level"`
	Children []Heading `json:"children,omitempty"`
}

// IDs returns the heading ids in document order: each root followed by its
// direct children. Deeper levels are not tracked.
func IDs(headings []Heading) []string {
	var ids []string
	for _, h := range headings {
		ids = append(ids, h.ID)
		for _, c := range h.Children {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// IsActive reports whether h is the current section or contains it.
func IsActive(h Heading, current string) bool {
	if current == "" {
		return false
	}
	if h.ID == current {
		return true
	}
	for _, c := range h.Children {
		if IsActive(c, current) {
			return true
		}
	}
	return false
}

// Collect builds the table of contents from a parsed markdown document.
// Headings without an id attribute get one derived from their text.
// A level-3 heading that appears before any level-2 heading is dropped.
func Collect(doc ast.Node, source []byte) []Heading {
	var headings []Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if h.Level != 2 && h.Level != 3 {
			return ast.WalkSkipChildren, nil
		}

		title := HeadingText(h, source)
		id := headingID(h, title)
		if id == "" {
			return ast.WalkSkipChildren, nil
		}

		entry := Heading{ID: id, Title: title, Level: h.Level}
		if h.Level == 2 {
			headings = append(headings, entry)
		} else if len(headings) > 0 {
			last := &headings[len(headings)-1]
			last.Children = append(last.Children, entry)
		}
		return ast.WalkSkipChildren, nil
	})
	return headings
}

func headingID(h *ast.Heading, title string) string {
	if v, ok := h.AttributeString("id"); ok {
		switch id := v.(type) {
		case []byte:
			return string(id)
		case string:
			return id
		}
	}
	return slug.Make(title)
}

// HeadingText concatenates the text segments under a heading, including those
// nested in emphasis, links and code spans.
func HeadingText(h *ast.Heading, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(h, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		case *ast.CodeSpan:
			for c := t.FirstChild(); c != nil; c = c.NextSibling() {
				if seg, ok := c.(*ast.Text); ok {
					buf.Write(seg.Segment.Value(source))
				}
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return string(bytes.TrimSpace(buf.Bytes()))
}

// Parse runs p over source and returns its table of contents. p should be
// built with parser.WithAutoHeadingID so ids match the rendered HTML.
func Parse(p parser.Parser, source []byte) []Heading {
	return Collect(p.Parse(text.NewReader(source)), source)
}
