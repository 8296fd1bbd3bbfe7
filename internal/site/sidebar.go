package site

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/rubicon-docs/docsite/internal/nav"
)

// Sidebar renders the navigation tree as nested lists. The entry at
// activePath is marked active and every ancestor on its trail is expanded.
func Sidebar(tree *nav.Tree, activePath string) template.HTML {
	expanded := make(map[*nav.Entry]bool)
	for _, e := range tree.Trail(activePath) {
		expanded[e] = true
	}

	var b strings.Builder
	b.WriteString(`<nav class="nav" aria-label="Documentation">` + "\n")
	b.WriteString(`<ul class="nav-sections">` + "\n")
	for _, section := range tree.Sections {
		fmt.Fprintf(&b, `<li class="nav-section"><h2>%s</h2>`+"\n", template.HTMLEscapeString(section.Title))
		renderEntries(&b, section.Children, activePath, expanded)
		b.WriteString("</li>\n")
	}
	b.WriteString("</ul>\n</nav>\n")
	return template.HTML(b.String())
}

func renderEntries(b *strings.Builder, entries []*nav.Entry, activePath string, expanded map[*nav.Entry]bool) {
	if len(entries) == 0 {
		return
	}
	b.WriteString("<ul>\n")
	for _, e := range entries {
		classes := []string{"nav-" + string(e.Kind)}
		if len(e.Children) > 0 {
			classes = append(classes, "has-children")
			if expanded[e] {
				classes = append(classes, "expanded")
			}
		}
		fmt.Fprintf(b, `<li class="%s">`, strings.Join(classes, " "))

		title := template.HTMLEscapeString(e.Title)
		if e.IsPage() {
			active := ""
			if e.Href == activePath {
				active = ` class="active" aria-current="page"`
			}
			fmt.Fprintf(b, `<a href="%s"%s>%s</a>`, template.HTMLEscapeString(e.Href), active, title)
		} else {
			fmt.Fprintf(b, `<span class="nav-toggle">%s</span>`, title)
		}
		b.WriteString("\n")

		renderEntries(b, e.Children, activePath, expanded)
		b.WriteString("</li>\n")
	}
	b.WriteString("</ul>\n")
}
