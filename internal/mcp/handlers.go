package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/rubicon-docs/docsite/internal/nav"
	"github.com/rubicon-docs/docsite/internal/pages"
	"github.com/rubicon-docs/docsite/internal/toc"
)

// handleGetNavigation returns the navigation tree as an outline or JSON.
func (s *Server) handleGetNavigation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if request.GetString("format", "outline") == "json" {
		data, err := json.MarshalIndent(s.tree, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encoding navigation: %v", err)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	}
	return mcp.NewToolResultText(formatOutline(s.tree)), nil
}

// handleGetPageNeighbors returns the reading-order neighbours of a page.
func (s *Server) handleGetPageNeighbors(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: path"), nil
	}

	p := s.tree.Locate(path)
	if p.Section == nil {
		return mcp.NewToolResultText(fmt.Sprintf(
			"%s is not a top-level link in the navigation, so it has no previous or next page.", path,
		)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Section: %s\n", p.Section.Title)
	fmt.Fprintf(&sb, "Previous: %s\n", describeEntry(p.Previous))
	fmt.Fprintf(&sb, "Next: %s\n", describeEntry(p.Next))
	return mcp.NewToolResultText(sb.String()), nil
}

// handleGetPage returns one indexed page.
func (s *Server) handleGetPage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: path"), nil
	}

	page, err := s.index.Get(ctx, path)
	if errors.Is(err, pages.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf(
			"No page found at %q. Run `docsite build` to index the content.", path,
		)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read page: %v", err)), nil
	}

	return mcp.NewToolResultText(formatPage(page)), nil
}

// handleSearchDocs runs a keyword search over the page index.
func (s *Server) handleSearchDocs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	limit := request.GetInt("limit", 10)
	if limit <= 0 {
		limit = 10
	}

	results, err := s.index.Search(ctx, query, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	if len(results) == 0 {
		return mcp.NewToolResultText("No results found. The site may not be built yet. Run `docsite build` to index it."), nil
	}

	return mcp.NewToolResultText(formatSearchResults(results)), nil
}

// formatOutline renders the tree as an indented list, one entry per line.
func formatOutline(tree *nav.Tree) string {
	var sb strings.Builder
	tree.Walk(func(e *nav.Entry, depth int) {
		indent := strings.Repeat("  ", depth)
		if depth == 0 {
			fmt.Fprintf(&sb, "%s%s\n", indent, e.Title)
			return
		}
		if e.IsPage() {
			fmt.Fprintf(&sb, "%s- %s (%s)\n", indent, e.Title, e.Href)
		} else {
			fmt.Fprintf(&sb, "%s- %s\n", indent, e.Title)
		}
	})
	return sb.String()
}

func describeEntry(e *nav.Entry) string {
	switch {
	case e == nil:
		return "none"
	case e.IsPage():
		return fmt.Sprintf("%s (%s)", e.Title, e.Href)
	default:
		return e.Title + " (group)"
	}
}

// formatPage converts a page into a text format suited to agent consumption.
func formatPage(p *pages.Page) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n", p.Title)
	fmt.Fprintf(&sb, "Path: %s\n", p.Path)
	if p.Section != "" {
		fmt.Fprintf(&sb, "Section: %s\n", p.Section)
	}
	if p.Description != "" {
		fmt.Fprintf(&sb, "Description: %s\n", p.Description)
	}

	if len(p.TOC) > 0 {
		sb.WriteString("\nOn this page:\n")
		writeTOC(&sb, p.TOC, 0)
	}

	if p.BodyText != "" {
		sb.WriteString("\n")
		sb.WriteString(p.BodyText)
		sb.WriteString("\n")
	}
	return sb.String()
}

func writeTOC(sb *strings.Builder, headings []toc.Heading, depth int) {
	for _, h := range headings {
		fmt.Fprintf(sb, "%s- %s (#%s)\n", strings.Repeat("  ", depth), h.Title, h.ID)
		writeTOC(sb, h.Children, depth+1)
	}
}

// formatSearchResults lists matching pages.
func formatSearchResults(results []pages.Summary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d result(s):\n", len(results))

	for i, r := range results {
		fmt.Fprintf(&sb, "\n%d. %s (%s)\n", i+1, r.Title, r.Path)
		if r.Section != "" {
			fmt.Fprintf(&sb, "   Section: %s\n", r.Section)
		}
		if r.Description != "" {
			fmt.Fprintf(&sb, "   %s\n", r.Description)
		}
	}

	return sb.String()
}
