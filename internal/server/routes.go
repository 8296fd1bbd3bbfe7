package server

import (
	"github.com/rubicon-docs/docsite/internal/live"
	"github.com/rubicon-docs/docsite/internal/nav"
	"github.com/rubicon-docs/docsite/internal/pages"
	"github.com/rubicon-docs/docsite/internal/site"
)

// Docs bundles the documentation features mounted on the server.
type Docs struct {
	Tree     *nav.Tree
	Pages    *pages.Store
	Layout   *site.Layout
	Live     *live.Handler
	HomePath string
}

// RegisterDocs wires every documentation feature route.
func (s *Server) RegisterDocs(d Docs) {
	r := s.Router()

	nav.RegisterRoutes(r, d.Tree)
	pages.RegisterRoutes(r, d.Pages)
	live.RegisterRoutes(r, d.Live)
	site.RegisterRoutes(r, d.Pages, d.Layout, d.HomePath)
}
