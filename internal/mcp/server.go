package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/asset-atlas/internal/atlas"
	"github.com/ziadkadry99/asset-atlas/internal/audit"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the atlas as tools.
type Server struct {
	atlas   *atlas.Atlas
	journal *audit.Journal
	mcp     *server.MCPServer
}

// NewServer creates a new MCP server over a. Picks are recorded in j,
// which may be nil.
func NewServer(a *atlas.Atlas, j *audit.Journal) *Server {
	s := &Server{atlas: a, journal: j}

	s.mcp = server.NewMCPServer(
		"atlas",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listAreasTool, s.handleListAreas)
	s.mcp.AddTool(showViewTool, s.handleShowView)
	s.mcp.AddTool(pickTool, s.handlePick)
	s.mcp.AddTool(describeAssetTool, s.handleDescribeAsset)
	s.mcp.AddTool(describeAreaTool, s.handleDescribeArea)
	s.mcp.AddTool(searchAssetsTool, s.handleSearchAssets)
	s.mcp.AddTool(getDiagramTool, s.handleGetDiagram)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
