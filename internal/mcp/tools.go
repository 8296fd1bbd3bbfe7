package mcp

import "github.com/mark3labs/mcp-go/mcp"

// getNavigationTool defines the get_navigation MCP tool.
var getNavigationTool = mcp.NewTool("get_navigation",
	mcp.WithDescription("Get the documentation navigation tree: sections, pages and their nesting."),
	mcp.WithString("format",
		mcp.Description("Output format (default outline)"),
		mcp.Enum("outline", "json"),
	),
)

// getPageNeighborsTool defines the get_page_neighbors MCP tool.
var getPageNeighborsTool = mcp.NewTool("get_page_neighbors",
	mcp.WithDescription("Get the previous and next pages and the section of a documentation page, in reading order."),
	mcp.WithString("path",
		mcp.Required(),
		mcp.Description("Route of the page, e.g. /docs/introduction/overview"),
	),
)

// getPageTool defines the get_page MCP tool.
var getPageTool = mcp.NewTool("get_page",
	mcp.WithDescription("Get a documentation page: title, description, table of contents and text."),
	mcp.WithString("path",
		mcp.Required(),
		mcp.Description("Route of the page, e.g. /docs/guides/swap"),
	),
)

// searchDocsTool defines the search_docs MCP tool.
var searchDocsTool = mcp.NewTool("search_docs",
	mcp.WithDescription("Search documentation pages by keyword. Every word must appear in the title, description or text."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Keywords to search for"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 10)"),
	),
)
