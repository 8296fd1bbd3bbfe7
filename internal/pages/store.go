package pages

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rubicon-docs/docsite/internal/db"
	"github.com/rubicon-docs/docsite/internal/toc"
)

// ErrNotFound is returned when no page exists at the requested path.
var ErrNotFound = errors.New("page not found")

// Store provides CRUD and search over the page index.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Upsert inserts or replaces the page at p.Path.
func (s *Store) Upsert(ctx context.Context, p Page) error {
	if p.Path == "" {
		return fmt.Errorf("page path is required")
	}
	headings := p.TOC
	if headings == nil {
		headings = []toc.Heading{}
	}
	tocJSON, err := json.Marshal(headings)
	if err != nil {
		return fmt.Errorf("marshalling toc: %w", err)
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now().UTC()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO pages (path, title, section, description, toc, html, body_text, source_file, content_hash, updated_at, search_title, search_text)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			title = excluded.title,
			section = excluded.section,
			description = excluded.description,
			toc = excluded.toc,
			html = excluded.html,
			body_text = excluded.body_text,
			source_file = excluded.source_file,
			content_hash = excluded.content_hash,
			updated_at = excluded.updated_at,
			search_title = excluded.search_title,
			search_text = excluded.search_text`,
		p.Path, p.Title, p.Section, p.Description, string(tocJSON), p.HTML, p.BodyText,
		p.SourceFile, p.ContentHash, p.UpdatedAt,
		strings.ToLower(p.Title), searchText(p),
	)
	if err != nil {
		return fmt.Errorf("upserting page %s: %w", p.Path, err)
	}
	return nil
}

// Get returns the page at path, or ErrNotFound.
func (s *Store) Get(ctx context.Context, path string) (*Page, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT path, title, section, description, toc, html, body_text, source_file, content_hash, updated_at
		FROM pages WHERE path = ?`, path)

	var p Page
	var tocJSON string
	err := row.Scan(&p.Path, &p.Title, &p.Section, &p.Description, &tocJSON, &p.HTML,
		&p.BodyText, &p.SourceFile, &p.ContentHash, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading page %s: %w", path, err)
	}
	if err := json.Unmarshal([]byte(tocJSON), &p.TOC); err != nil {
		return nil, fmt.Errorf("decoding toc for %s: %w", path, err)
	}
	return &p, nil
}

// Hash returns the stored content hash for path, or "" when the page is not indexed.
func (s *Store) Hash(ctx context.Context, path string) (string, error) {
	var hash string
	err := s.db.QueryRowContext(ctx, `SELECT content_hash FROM pages WHERE path = ?`, path).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading hash for %s: %w", path, err)
	}
	return hash, nil
}

// List returns every indexed page ordered by path.
func (s *Store) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT path, title, section, description FROM pages ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("listing pages: %w", err)
	}
	defer rows.Close()
	return scanSummaries(rows)
}

// Paths returns the set of indexed page paths.
func (s *Store) Paths(ctx context.Context) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT path FROM pages`)
	if err != nil {
		return nil, fmt.Errorf("listing page paths: %w", err)
	}
	defer rows.Close()

	paths := make(map[string]bool)
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths[p] = true
	}
	return paths, rows.Err()
}

// Search returns pages whose title, description or text contain every
// whitespace-separated term of query, title matches first.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]Summary, error) {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return []Summary{}, nil
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	// Rows indexed before search_text existed fall back to SQLite's ASCII lower().
	var where []string
	var args []any
	for _, term := range terms {
		like := "%" + escapeLike(term) + "%"
		where = append(where, `(search_text LIKE ? ESCAPE '\' OR (search_text = '' AND (`+
			`lower(title) LIKE ? ESCAPE '\' OR lower(description) LIKE ? ESCAPE '\' OR lower(body_text) LIKE ? ESCAPE '\')))`)
		args = append(args, like, like, like, like)
	}
	titleLike := "%" + escapeLike(terms[0]) + "%"
	args = append(args, titleLike, titleLike, limit)

	rows, err := s.db.QueryContext(ctx, `
		SELECT path, title, section, description FROM pages
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY (search_title LIKE ? ESCAPE '\' OR (search_title = '' AND lower(title) LIKE ? ESCAPE '\')) DESC, path
		LIMIT ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("searching pages: %w", err)
	}
	defer rows.Close()
	return scanSummaries(rows)
}

// Delete removes the page at path. Deleting a missing page is not an error.
func (s *Store) Delete(ctx context.Context, path string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM pages WHERE path = ?`, path); err != nil {
		return fmt.Errorf("deleting page %s: %w", path, err)
	}
	return nil
}

// Count returns the number of indexed pages.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pages`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting pages: %w", err)
	}
	return n, nil
}

func scanSummaries(rows *sql.Rows) ([]Summary, error) {
	out := []Summary{}
	for rows.Next() {
		var sm Summary
		if err := rows.Scan(&sm.Path, &sm.Title, &sm.Section, &sm.Description); err != nil {
			return nil, fmt.Errorf("scanning page: %w", err)
		}
		out = append(out, sm)
	}
	return out, rows.Err()
}

// searchText is the lowercased text Search matches terms against.
func searchText(p Page) string {
	return strings.ToLower(strings.Join([]string{p.Title, p.Description, p.BodyText}, "\n"))
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
