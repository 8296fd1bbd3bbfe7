package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"

	"github.com/rubicon-docs/docsite/internal/nav"
	"github.com/rubicon-docs/docsite/internal/pages"
)

// Version is set via ldflags at build time.
var Version = "dev"

// PageIndex is the subset of the page store the tools read from.
type PageIndex interface {
	Get(ctx context.Context, path string) (*pages.Page, error)
	Search(ctx context.Context, query string, limit int) ([]pages.Summary, error)
}

// Server wraps an MCP server that exposes the documentation to agents.
type Server struct {
	tree  *nav.Tree
	index PageIndex
	mcp   *server.MCPServer
}

// NewServer creates a new MCP server over the navigation tree and page index.
func NewServer(tree *nav.Tree, index PageIndex) *Server {
	s := &Server{
		tree:  tree,
		index: index,
	}

	s.mcp = server.NewMCPServer(
		"docsite",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(getNavigationTool, s.handleGetNavigation)
	s.mcp.AddTool(getPageNeighborsTool, s.handleGetPageNeighbors)
	s.mcp.AddTool(getPageTool, s.handleGetPage)
	s.mcp.AddTool(searchDocsTool, s.handleSearchDocs)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
