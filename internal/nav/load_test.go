package nav

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func TestParseClassifiesEntries(t *testing.T) {
	t.Parallel()

	tree := Default()
	var protocol *Entry
	for _, s := range tree.Sections {
		require.Equal(t, KindGroup, s.Kind)
		if s.Title == "Protocol" {
			protocol = s
		}
	}
	require.NotNil(t, protocol)

	v4 := protocol.Children[0]
	require.Equal(t, "Rubicon (v4)", v4.Title)
	require.Equal(t, KindGroup, v4.Kind)
	require.Len(t, v4.Children, 1)

	market := protocol.Children[1].Children[0]
	require.Equal(t, KindPage, market.Kind)
	require.Len(t, market.Children, 4)
}

func TestParseRejectsAmbiguousNodes(t *testing.T) {
	t.Parallel()

	doc := `
navigation:
  - title: S
    links:
      - title: Both
        links:
          - title: x
            href: /x
        sublinks:
          - title: y
            href: /y
      - title: PageGroup
        href: /pg
        links:
          - title: z
            href: /z
      - title: Empty
      - title: Relative
        href: docs/relative
`
	_, err := Parse([]byte(doc))
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	issues := verr.Issues()
	require.Len(t, issues, 4)

	msg := err.Error()
	require.Contains(t, msg, "S > Both: entry declares both links and sublinks")
	require.Contains(t, msg, "S > PageGroup: entry with href must use sublinks")
	require.Contains(t, msg, "S > Empty: entry has neither href nor children")
	require.Contains(t, msg, `S > Relative: href "docs/relative" must be absolute`)

	var nodeErr *NodeError
	require.True(t, errors.As(issues[0], &nodeErr))
	require.Equal(t, []string{"S", "Both"}, nodeErr.Path)
}

func TestParseRejectsBadSections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"empty", "navigation: []", "navigation has no sections"},
		{"href", "navigation:\n  - title: S\n    href: /s\n", "must not have an href"},
		{"sublinks", "navigation:\n  - title: S\n    sublinks:\n      - title: a\n        href: /a\n", "must declare links"},
		{"nolinks", "navigation:\n  - title: S\n", "has no links"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseInvalidYAML(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("navigation: [\n"))
	require.Error(t, err)
	require.True(t, strings.HasPrefix(err.Error(), "decoding navigation"))
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nav.yml")
	require.NoError(t, os.WriteFile(path, []byte(abDoc), 0o644))

	tree, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, tree.Sections, 2)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
}

func TestRoutes(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	RegisterRoutes(r, mustParse(t, abDoc))

	req := httptest.NewRequest(http.MethodGet, "/api/nav/pagination?path=/a2", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{
		"previous": {"title": "a1", "href": "/a1", "kind": "page"},
		"next": {"title": "b1", "href": "/b1", "kind": "page"},
		"section": {"title": "A", "kind": "group", "children": [
			{"title": "a1", "href": "/a1", "kind": "page"},
			{"title": "a2", "href": "/a2", "kind": "page", "children": [
				{"title": "a2-deep", "href": "/a2/deep", "kind": "page"}
			]}
		]}
	}`, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/api/nav/pagination", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/nav/trail?path=/a2/deep", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.JSONEq(t, `{"trail": ["A", "a2", "a2-deep"]}`, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/api/nav/", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"sections"`)
}
