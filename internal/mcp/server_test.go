package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"

	"github.com/rubicon-docs/docsite/internal/db"
	"github.com/rubicon-docs/docsite/internal/nav"
	"github.com/rubicon-docs/docsite/internal/pages"
	"github.com/rubicon-docs/docsite/internal/toc"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	database, err := db.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	store := pages.NewStore(database)
	ctx := context.Background()
	require.NoError(t, store.Upsert(ctx, pages.Page{
		Path:        "/docs/introduction/overview",
		Title:       "Overview",
		Section:     "Introduction",
		Description: "What Rubicon is",
		TOC: []toc.Heading{{ID: "getting-started", Title: "Getting started", Level: 2,
			Children: []toc.Heading{{ID: "networks", Title: "Networks", Level: 3}}}},
		BodyText: "Rubicon is an order book protocol.",
	}))
	require.NoError(t, store.Upsert(ctx, pages.Page{
		Path:     "/docs/guides/swap",
		Title:    "Swap",
		Section:  "Guides",
		BodyText: "Swap tokens against the order book.",
	}))
	return NewServer(nav.Default(), store)
}

func call(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	var sb strings.Builder
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			sb.WriteString(tc.Text)
		}
	}
	return sb.String()
}

func TestToolDefinitions(t *testing.T) {
	tests := []struct {
		tool     mcp.Tool
		wantName string
	}{
		{getNavigationTool, "get_navigation"},
		{getPageNeighborsTool, "get_page_neighbors"},
		{getPageTool, "get_page"},
		{searchDocsTool, "search_docs"},
	}
	for _, tt := range tests {
		t.Run(tt.wantName, func(t *testing.T) {
			require.Equal(t, tt.wantName, tt.tool.Name)
			require.NotEmpty(t, tt.tool.Description)
		})
	}
}

func TestNewServer(t *testing.T) {
	srv := newTestServer(t)
	require.NotNil(t, srv.mcp)
	require.NotNil(t, srv.tree)
}

func TestHandleGetNavigation(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	result, err := srv.handleGetNavigation(ctx, call(nil))
	require.NoError(t, err)
	require.False(t, result.IsError)
	text := resultText(t, result)
	require.True(t, strings.HasPrefix(text, "Introduction\n  - Overview (/docs/introduction/overview)\n"))
	require.Contains(t, text, "  - Rubicon Classic\n")
	require.Contains(t, text, "    - Rubicon Market (/docs/protocol/rubicon-market/rubicon-market)\n")

	result, err = srv.handleGetNavigation(ctx, call(map[string]any{"format": "json"}))
	require.NoError(t, err)
	var tree nav.Tree
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &tree))
	require.Len(t, tree.Sections, len(nav.Default().Sections))
}

func TestHandleGetPageNeighbors(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	result, err := srv.handleGetPageNeighbors(ctx, call(map[string]any{"path": "/docs/introduction/faq"}))
	require.NoError(t, err)
	require.Equal(t, "Section: Introduction\n"+
		"Previous: Overview (/docs/introduction/overview)\n"+
		"Next: Trade (/docs/guides/trade/trade)\n", resultText(t, result))

	result, err = srv.handleGetPageNeighbors(ctx, call(map[string]any{"path": "/docs/protocol/deployments"}))
	require.NoError(t, err)
	require.Contains(t, resultText(t, result), "Previous: Rubicon Classic (group)")

	result, err = srv.handleGetPageNeighbors(ctx, call(map[string]any{"path": "/docs/protocol/rubicon-market/fees"}))
	require.NoError(t, err)
	require.False(t, result.IsError)
	require.Contains(t, resultText(t, result), "no previous or next page")

	result, err = srv.handleGetPageNeighbors(ctx, call(map[string]any{}))
	require.NoError(t, err)
	require.True(t, result.IsError)
}

func TestHandleGetPage(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	result, err := srv.handleGetPage(ctx, call(map[string]any{"path": "/docs/introduction/overview"}))
	require.NoError(t, err)
	require.False(t, result.IsError)
	text := resultText(t, result)
	require.Contains(t, text, "# Overview\n")
	require.Contains(t, text, "Section: Introduction\n")
	require.Contains(t, text, "- Getting started (#getting-started)\n  - Networks (#networks)\n")
	require.Contains(t, text, "Rubicon is an order book protocol.")

	result, err = srv.handleGetPage(ctx, call(map[string]any{"path": "/docs/missing"}))
	require.NoError(t, err)
	require.True(t, result.IsError)

	result, err = srv.handleGetPage(ctx, call(map[string]any{}))
	require.NoError(t, err)
	require.True(t, result.IsError)
}

func TestHandleSearchDocs(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	result, err := srv.handleSearchDocs(ctx, call(map[string]any{"query": "order book"}))
	require.NoError(t, err)
	require.False(t, result.IsError)
	text := resultText(t, result)
	require.Contains(t, text, "Found 2 result(s)")
	require.Contains(t, text, "Swap (/docs/guides/swap)")

	result, err = srv.handleSearchDocs(ctx, call(map[string]any{"query": "order", "limit": 1}))
	require.NoError(t, err)
	require.Contains(t, resultText(t, result), "Found 1 result(s)")

	result, err = srv.handleSearchDocs(ctx, call(map[string]any{"query": "bridging"}))
	require.NoError(t, err)
	require.False(t, result.IsError)
	require.Contains(t, resultText(t, result), "No results found")

	result, err = srv.handleSearchDocs(ctx, call(map[string]any{}))
	require.NoError(t, err)
	require.True(t, result.IsError)
}
