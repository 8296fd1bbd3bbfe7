package site

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rubicon-docs/docsite/internal/config"
	"github.com/rubicon-docs/docsite/internal/nav"
	"github.com/rubicon-docs/docsite/internal/pages"
	"github.com/rubicon-docs/docsite/internal/progress"
	"github.com/rubicon-docs/docsite/internal/walker"
)

// Builder renders a content directory into a static site and keeps the page
// index in sync with it.
type Builder struct {
	ContentDir string
	OutputDir  string
	HomePath   string
	Include    []string
	Exclude    []string

	Tree     *nav.Tree
	Renderer *Renderer
	Layout   *Layout
	Store    *pages.Store
	Log      *zap.Logger
	Progress progress.Reporter
}

// Result summarises one build.
type Result struct {
	Pages    int // pages written
	Rendered int // pages whose markdown was converted
	Skipped  int // pages reused from the index because their hash was unchanged
	Removed  int // index entries dropped because their source is gone
	// Missing lists navigation hrefs that no content file produced.
	Missing []string
}

// NewBuilder creates a Builder from the site configuration.
func NewBuilder(cfg *config.Config, tree *nav.Tree, store *pages.Store, log *zap.Logger) (*Builder, error) {
	layout, err := NewLayout(tree, LayoutOptions{
		SiteName:      cfg.SiteName,
		RepositoryURL: cfg.Repository,
		ContentDir:    cfg.ContentDir,
	})
	if err != nil {
		return nil, err
	}
	return &Builder{
		ContentDir: cfg.ContentDir,
		OutputDir:  cfg.OutputDir,
		HomePath:   cfg.HomePath,
		Include:    cfg.Include,
		Exclude:    cfg.Exclude,
		Tree:       tree,
		Renderer:   NewRenderer(cfg.Highlight),
		Layout:     layout,
		Store:      store,
		Log:        log,
		Progress:   progress.Nop{},
	}, nil
}

// Build walks the content directory, renders every page and writes the site.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	files, err := walker.Walk(walker.WalkerConfig{
		RootDir: b.ContentDir,
		Include: b.Include,
		Exclude: b.Exclude,
	})
	if err != nil {
		return nil, fmt.Errorf("walking content: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no markdown files found in %s", b.ContentDir)
	}

	if err := os.MkdirAll(b.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(b.OutputDir, "style.css"), []byte(cssContent), 0o644); err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(b.OutputDir, "script.js"), []byte(jsContent), 0o644); err != nil {
		return nil, err
	}

	res := &Result{}
	seen := make(map[string]bool, len(files))

	b.Progress.Start(len(files))
	defer b.Progress.Finish()
	for i, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		b.Progress.Update(i+1, f.Route)

		if seen[f.Route] {
			b.Log.Warn("duplicate route, skipping file", zap.String("route", f.Route), zap.String("file", f.RelPath))
			continue
		}
		seen[f.Route] = true

		page, reused, err := b.page(ctx, f)
		if err != nil {
			return nil, err
		}
		if reused {
			res.Skipped++
		} else {
			res.Rendered++
		}

		if err := b.writePage(f.Route, f.RelPath, page); err != nil {
			return nil, fmt.Errorf("writing %s: %w", f.Route, err)
		}
		res.Pages++
	}

	indexed, err := b.Store.Paths(ctx)
	if err != nil {
		return nil, err
	}
	for p := range indexed {
		if seen[p] {
			continue
		}
		if err := b.Store.Delete(ctx, p); err != nil {
			return nil, err
		}
		res.Removed++
	}

	if !seen["/"] && b.HomePath != "" {
		if err := b.writeHomeRedirect(); err != nil {
			return nil, err
		}
	}

	entries, err := BuildSearchIndex(ctx, b.Store)
	if err != nil {
		return nil, fmt.Errorf("building search index: %w", err)
	}
	if err := WriteSearchIndex(entries, filepath.Join(b.OutputDir, "search-index.json")); err != nil {
		return nil, fmt.Errorf("writing search index: %w", err)
	}

	for _, e := range b.Tree.Pages() {
		if !seen[e.Href] {
			res.Missing = append(res.Missing, e.Href)
			b.Log.Warn("navigation entry has no page", zap.String("title", e.Title), zap.String("href", e.Href))
		}
	}

	b.Log.Info("site built",
		zap.Int("pages", res.Pages),
		zap.Int("rendered", res.Rendered),
		zap.Int("unchanged", res.Skipped),
		zap.Int("removed", res.Removed),
		zap.Int("missing", len(res.Missing)),
		zap.String("output", b.OutputDir),
	)
	return res, nil
}

// page returns the rendered page for f, reusing the indexed copy when the
// source hash is unchanged.
func (b *Builder) page(ctx context.Context, f walker.FileInfo) (*Page, bool, error) {
	hash, err := b.Store.Hash(ctx, f.Route)
	if err != nil {
		return nil, false, err
	}
	if hash == f.ContentHash {
		stored, err := b.Store.Get(ctx, f.Route)
		if err != nil {
			return nil, false, err
		}
		// Navigation edits can move an unchanged page to another section.
		if section := sectionTitle(b.Tree, f.Route); section != stored.Section {
			stored.Section = section
			stored.UpdatedAt = time.Time{}
			if err := b.Store.Upsert(ctx, *stored); err != nil {
				return nil, false, err
			}
			b.Log.Debug("page section changed", zap.String("route", f.Route), zap.String("section", section))
		}
		b.Log.Debug("page unchanged", zap.String("route", f.Route))
		return fromIndex(stored), true, nil
	}

	source, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", f.RelPath, err)
	}
	page, err := b.Renderer.Render(source, f.RelPath)
	if err != nil {
		return nil, false, err
	}

	err = b.Store.Upsert(ctx, pages.Page{
		Path:        f.Route,
		Title:       page.Title,
		Section:     sectionTitle(b.Tree, f.Route),
		Description: page.Description,
		TOC:         page.TOC,
		HTML:        page.HTML,
		BodyText:    page.Text,
		SourceFile:  f.RelPath,
		ContentHash: f.ContentHash,
	})
	if err != nil {
		return nil, false, err
	}
	b.Log.Debug("page rendered", zap.String("route", f.Route), zap.Int("headings", len(page.TOC)))
	return page, false, nil
}

func (b *Builder) writePage(route, sourceFile string, page *Page) error {
	var buf bytes.Buffer
	if err := b.Layout.Write(&buf, route, sourceFile, page); err != nil {
		return err
	}
	return writeFile(b.outputPath(route), buf.Bytes())
}

func (b *Builder) writeHomeRedirect() error {
	var buf bytes.Buffer
	if err := WriteRedirect(&buf, b.HomePath); err != nil {
		return err
	}
	return writeFile(filepath.Join(b.OutputDir, "index.html"), buf.Bytes())
}

// outputPath maps a route to <output>/<route>/index.html.
func (b *Builder) outputPath(route string) string {
	rel := strings.Trim(route, "/")
	return filepath.Join(b.OutputDir, filepath.FromSlash(rel), "index.html")
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// fromIndex rebuilds a rendered page from its index entry.
func fromIndex(p *pages.Page) *Page {
	return &Page{
		Title:       p.Title,
		Description: p.Description,
		HTML:        p.HTML,
		Text:        p.BodyText,
		TOC:         p.TOC,
	}
}

// sectionTitle names the top-level section whose subtree contains route.
func sectionTitle(tree *nav.Tree, route string) string {
	if trail := tree.Trail(route); len(trail) > 0 {
		return trail[0].Title
	}
	return ""
}
