package nav

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts navigation endpoints under /api/nav on the given router.
func RegisterRoutes(r chi.Router, tree *Tree) {
	r.Route("/api/nav", func(r chi.Router) {
		r.Get("/", handleTree(tree))
		r.Get("/pagination", handlePagination(tree))
		r.Get("/trail", handleTrail(tree))
	})
}

func handleTree(tree *Tree) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, tree)
	}
}

func handlePagination(tree *Tree) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Query().Get("path")
		if path == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "path is required"})
			return
		}
		writeJSON(w, http.StatusOK, tree.Locate(path))
	}
}

func handleTrail(tree *Tree) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		trail := tree.Trail(r.URL.Query().Get("path"))
		if trail == nil {
			trail = []*Entry{}
		}
		titles := make([]string, len(trail))
		for i, e := range trail {
			titles[i] = e.Title
		}
		writeJSON(w, http.StatusOK, map[string]any{"trail": titles})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
