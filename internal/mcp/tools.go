package mcp

import "github.com/mark3labs/mcp-go/mcp"

// listAreasTool defines the list_areas MCP tool.
var listAreasTool = mcp.NewTool("list_areas",
	mcp.WithDescription("List the functional areas of the catalog with their asset counts, and the active view."),
)

// showViewTool defines the show_view MCP tool.
var showViewTool = mcp.NewTool("show_view",
	mcp.WithDescription("Switch to a view and return its nodes numbered in draw order, plus its edges. Use the numbers with the pick tool."),
	mcp.WithString("view",
		mcp.Description(`"Overview" or an area name. Omit to show the active view without switching.`),
	),
)

// pickTool defines the pick MCP tool.
var pickTool = mcp.NewTool("pick",
	mcp.WithDescription("Select the node at a draw-order index in the active view and return its details."),
	mcp.WithNumber("index",
		mcp.Required(),
		mcp.Description("Zero-based index into the draw order"),
	),
	mcp.WithArray("draw_order",
		mcp.Description("Node ids in the order they were shown. Defaults to the active view's draw order."),
		mcp.WithStringItems(),
	),
)

// describeAssetTool defines the describe_asset MCP tool.
var describeAssetTool = mcp.NewTool("describe_asset",
	mcp.WithDescription("Get the full description of one asset: area, features, related systems, data flow and business impact."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Asset id, e.g. DART"),
	),
)

// describeAreaTool defines the describe_area MCP tool.
var describeAreaTool = mcp.NewTool("describe_area",
	mcp.WithDescription("Get the assets of a functional area and the areas it is connected to."),
	mcp.WithString("name",
		mcp.Required(),
		mcp.Description("Area name"),
	),
)

// searchAssetsTool defines the search_assets MCP tool.
var searchAssetsTool = mcp.NewTool("search_assets",
	mcp.WithDescription("Find assets whose id matches a case-insensitive glob pattern."),
	mcp.WithString("pattern",
		mcp.Required(),
		mcp.Description(`Glob pattern, e.g. "fm audit*"`),
	),
)

// getDiagramTool defines the get_diagram MCP tool.
var getDiagramTool = mcp.NewTool("get_diagram",
	mcp.WithDescription("Get a Mermaid flowchart of a view."),
	mcp.WithString("view",
		mcp.Description(`"Overview" or an area name. Defaults to the active view.`),
	),
)
