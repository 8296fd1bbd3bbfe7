package site

import (
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/rubicon-docs/docsite/internal/nav"
	"github.com/rubicon-docs/docsite/internal/toc"
)

// Layout wraps rendered pages in the site chrome: header, sidebar,
// previous/next links and the "On this page" list.
type Layout struct {
	siteName   string
	repository string
	contentDir string
	tree       *nav.Tree
	tmpl       *template.Template
}

// LayoutOptions configures a Layout.
type LayoutOptions struct {
	SiteName string
	// RepositoryURL, when set, adds an edit link pointing at
	// <RepositoryURL>/blob/main/<ContentDir>/<source file>.
	RepositoryURL string
	ContentDir    string
}

// pageData holds the data passed to the page template.
type pageData struct {
	SiteName    string
	Route       string
	Title       string
	Description string
	Section     string
	Content     template.HTML
	Sidebar     template.HTML
	TOC         []toc.Heading
	Current     string
	Previous    *nav.Entry
	Next        *nav.Entry
	EditURL     string
}

// NewLayout parses the page template.
func NewLayout(tree *nav.Tree, opts LayoutOptions) (*Layout, error) {
	tmpl, err := template.New("page").Funcs(template.FuncMap{
		"isActive": toc.IsActive,
	}).Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	return &Layout{
		siteName:   opts.SiteName,
		repository: strings.TrimSuffix(opts.RepositoryURL, "/"),
		contentDir: strings.Trim(opts.ContentDir, "/"),
		tree:       tree,
		tmpl:       tmpl,
	}, nil
}

// Write renders page p served at route. sourceFile is the content-relative
// path of the markdown source and may be empty.
func (l *Layout) Write(w io.Writer, route, sourceFile string, p *Page) error {
	pagination := l.tree.Locate(route)

	data := pageData{
		SiteName:    l.siteName,
		Route:       route,
		Title:       p.Title,
		Description: p.Description,
		Content:     template.HTML(p.HTML),
		Sidebar:     Sidebar(l.tree, route),
		TOC:         p.TOC,
		Previous:    pagination.Previous,
		Next:        pagination.Next,
	}
	if pagination.Section != nil {
		data.Section = pagination.Section.Title
	}
	// Until the browser reports a scroll position the first heading is current.
	if len(p.TOC) > 0 {
		data.Current = p.TOC[0].ID
	}
	if l.repository != "" && sourceFile != "" {
		data.EditURL = l.repository + "/blob/main/" + strings.TrimPrefix(l.contentDir+"/"+sourceFile, "/")
	}
	return l.tmpl.Execute(w, data)
}

// WriteRedirect writes a static page forwarding to target.
func WriteRedirect(w io.Writer, target string) error {
	return redirectTemplate.Execute(w, target)
}

var redirectTemplate = template.Must(template.New("redirect").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta http-equiv="refresh" content="0; url={{.}}">
<link rel="canonical" href="{{.}}">
</head>
<body><a href="{{.}}">Continue</a></body>
</html>
`))
