package site

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rubicon-docs/docsite/internal/pages"
)

// RegisterRoutes serves indexed pages wrapped in layout, the static assets
// and the search index. "/" redirects to homePath unless a page is indexed
// at "/".
func RegisterRoutes(r chi.Router, store *pages.Store, layout *Layout, homePath string) {
	r.Get("/style.css", serveAsset("text/css; charset=utf-8", cssContent))
	r.Get("/script.js", serveAsset("text/javascript; charset=utf-8", jsContent))
	r.Get("/search-index.json", handleSearchIndex(store))
	r.Get("/", handleHome(store, layout, homePath))
	r.Get("/docs", handlePage(store, layout))
	r.Get("/docs/*", handlePage(store, layout))
}

func serveAsset(contentType, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "no-cache")
		w.Write([]byte(body))
	}
}

func handleSearchIndex(store *pages.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := BuildSearchIndex(r.Context(), store)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		EncodeSearchIndex(w, entries)
	}
}

func handleHome(store *pages.Store, layout *Layout, homePath string) http.HandlerFunc {
	page := handlePage(store, layout)
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := store.Get(r.Context(), "/"); err == nil || homePath == "" || homePath == "/" {
			page(w, r)
			return
		}
		http.Redirect(w, r, homePath, http.StatusFound)
	}
}

func handlePage(store *pages.Store, layout *Layout) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		route := r.URL.Path
		if len(route) > 1 && strings.HasSuffix(route, "/") {
			http.Redirect(w, r, strings.TrimRight(route, "/"), http.StatusMovedPermanently)
			return
		}

		stored, err := store.Get(r.Context(), route)
		status := http.StatusOK
		var p *Page
		var source string
		switch {
		case errors.Is(err, pages.ErrNotFound):
			status = http.StatusNotFound
			p = &Page{Title: "Page not found", HTML: "<p>There is no page at this address.</p>"}
		case err != nil:
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		default:
			p = fromIndex(stored)
			source = stored.SourceFile
		}

		var buf bytes.Buffer
		if err := layout.Write(&buf, route, source, p); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		w.Write(buf.Bytes())
	}
}
