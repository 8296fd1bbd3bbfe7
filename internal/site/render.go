package site

import (
	"bytes"
	"fmt"
	"path"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"github.com/rubicon-docs/docsite/internal/toc"
	"github.com/rubicon-docs/docsite/internal/walker"
)

// Page is a markdown document rendered to HTML.
type Page struct {
	Title       string
	Description string
	HTML        string
	Text        string
	TOC         []toc.Heading
}

type frontMatter struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Renderer converts markdown sources to HTML fragments and tables of contents.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a Renderer highlighting code with the given chroma
// style ("github" when empty).
func NewRenderer(style string) *Renderer {
	if style == "" {
		style = "github"
	}
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithAttribute(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
	return &Renderer{md: md}
}

// Render converts source, the content of the file at relPath (slash
// separated, relative to the content root). Relative links to other
// markdown files are rewritten to their routes.
func (r *Renderer) Render(source []byte, relPath string) (*Page, error) {
	fm, body, err := splitFrontMatter(source)
	if err != nil {
		return nil, fmt.Errorf("parsing front matter of %s: %w", relPath, err)
	}

	doc := r.md.Parser().Parse(text.NewReader(body))

	page := &Page{Title: fm.Title, Description: fm.Description}
	if page.Title == "" {
		if h1 := firstH1(doc); h1 != nil {
			page.Title = toc.HeadingText(h1, body)
			// The layout prints the title itself.
			h1.Parent().RemoveChild(h1.Parent(), h1)
		}
	}
	if page.Title == "" {
		page.Title = fallbackTitle(relPath)
	}

	rewriteLinks(doc, relPath)
	page.TOC = toc.Collect(doc, body)
	page.Text = plainText(doc, body)

	var buf bytes.Buffer
	if err := r.md.Renderer().Render(&buf, body, doc); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", relPath, err)
	}
	page.HTML = buf.String()
	return page, nil
}

// splitFrontMatter separates a leading YAML block fenced by "---" lines.
func splitFrontMatter(src []byte) (frontMatter, []byte, error) {
	var fm frontMatter
	rest, ok := bytes.CutPrefix(src, []byte("---\n"))
	if !ok {
		rest, ok = bytes.CutPrefix(src, []byte("---\r\n"))
	}
	if !ok {
		return fm, src, nil
	}

	var header, body []byte
	if bytes.HasPrefix(rest, []byte("---")) {
		body = rest[3:]
	} else {
		end := bytes.Index(rest, []byte("\n---"))
		if end < 0 {
			return fm, src, nil
		}
		header, body = rest[:end], rest[end+4:]
	}
	// Drop whatever trails the closing fence on its line.
	if i := bytes.IndexByte(body, '\n'); i >= 0 {
		body = body[i+1:]
	} else {
		body = nil
	}

	if err := yaml.Unmarshal(header, &fm); err != nil {
		return fm, nil, err
	}
	return fm, body, nil
}

func firstH1(doc ast.Node) *ast.Heading {
	var found *ast.Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok {
			if h.Level == 1 {
				found = h
				return ast.WalkStop, nil
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return found
}

func fallbackTitle(relPath string) string {
	base := path.Base(relPath)
	name := strings.TrimSuffix(base, path.Ext(base))
	if strings.EqualFold(name, "index") {
		if dir := path.Dir(relPath); dir != "." {
			name = path.Base(dir)
		}
	}
	return formatName(name)
}

// formatName converts a file or directory slug to a display name.
func formatName(name string) string {
	words := strings.FieldsFunc(name, func(c rune) bool {
		return c == '-' || c == '_'
	})
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

func rewriteLinks(doc ast.Node, relPath string) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if link, ok := n.(*ast.Link); ok {
			if route, ok := resolveLink(relPath, string(link.Destination)); ok {
				link.Destination = []byte(route)
			}
		}
		return ast.WalkContinue, nil
	})
}

// resolveLink maps a link to a markdown file onto the route of that file.
// External links, fragments and links escaping the content root are left
// alone.
func resolveLink(relPath, dest string) (string, bool) {
	if dest == "" || strings.HasPrefix(dest, "#") || strings.Contains(dest, "://") || strings.HasPrefix(dest, "mailto:") {
		return "", false
	}
	target, frag, hasFrag := strings.Cut(dest, "#")
	ext := strings.ToLower(path.Ext(target))
	if ext != ".md" && ext != ".markdown" {
		return "", false
	}

	if strings.HasPrefix(target, "/") {
		target = path.Clean(strings.TrimPrefix(target, "/"))
	} else {
		target = path.Join(path.Dir(relPath), target)
	}
	if target == ".." || strings.HasPrefix(target, "../") {
		return "", false
	}

	route := walker.RouteFor(target)
	if hasFrag {
		route += "#" + frag
	}
	return route, true
}

// plainText flattens the prose of a document for search. Code blocks are
// left out.
func plainText(doc ast.Node, source []byte) string {
	var parts []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			parts = append(parts, string(t.Segment.Value(source)))
		case *ast.String:
			parts = append(parts, string(t.Value))
		}
		return ast.WalkContinue, nil
	})
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}
