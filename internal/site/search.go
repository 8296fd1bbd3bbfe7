package site

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/rubicon-docs/docsite/internal/pages"
)

// maxSearchContent caps the text stored per page in search-index.json.
const maxSearchContent = 2000

// SearchEntry represents a single searchable page in the documentation.
type SearchEntry struct {
	Path        string `json:"path"`
	Title       string `json:"title"`
	Section     string `json:"section,omitempty"`
	Description string `json:"description,omitempty"`
	Content     string `json:"content"`
}

// BuildSearchIndex reads every indexed page from store.
func BuildSearchIndex(ctx context.Context, store *pages.Store) ([]SearchEntry, error) {
	list, err := store.List(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]SearchEntry, 0, len(list))
	for _, sm := range list {
		p, err := store.Get(ctx, sm.Path)
		if err != nil {
			return nil, fmt.Errorf("reading %s for search index: %w", sm.Path, err)
		}
		content := p.BodyText
		if len(content) > maxSearchContent {
			content = truncateUTF8(content, maxSearchContent)
		}
		entries = append(entries, SearchEntry{
			Path:        p.Path,
			Title:       p.Title,
			Section:     p.Section,
			Description: p.Description,
			Content:     content,
		})
	}
	return entries, nil
}

// EncodeSearchIndex writes entries as JSON to w.
func EncodeSearchIndex(w io.Writer, entries []SearchEntry) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

// WriteSearchIndex writes the search index as JSON to the given path.
func WriteSearchIndex(entries []SearchEntry, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	if err := EncodeSearchIndex(f, entries); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	for n > 0 && n < len(s) && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
