package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/asset-atlas/internal/details"
	"github.com/ziadkadry99/asset-atlas/internal/diagrams"
	"github.com/ziadkadry99/asset-atlas/internal/selection"
	"github.com/ziadkadry99/asset-atlas/internal/view"
)

// handleListAreas lists every area with its asset count.
func (s *Server) handleListAreas(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idx := s.atlas.Catalog().AreasOf()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Functional Areas (%d)\n\n", idx.Len()))
	for _, area := range idx.Sorted() {
		sb.WriteString(fmt.Sprintf("- %s (%d assets)\n", area, len(idx.Members(area))))
	}
	sb.WriteString(fmt.Sprintf("\nActive view: %s\n", s.atlas.Current().Label()))

	return mcp.NewToolResultText(sb.String()), nil
}

// handleShowView switches view when asked and returns the active frame.
func (s *Server) handleShowView(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if label := request.GetString("view", ""); label != "" {
		if err := s.atlas.Select(label); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("switching view: %v", err)), nil
		}
	}
	return mcp.NewToolResultText(s.atlas.CurrentFrame().Outline()), nil
}

// handlePick resolves a draw-order index in the active view.
func (s *Server) handlePick(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	if _, ok := args["index"]; !ok {
		return mcp.NewToolResultError("missing required parameter: index"), nil
	}
	index := request.GetInt("index", -1)

	drawOrder, err := stringSlice(args["draw_order"])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	e, err := s.pick(ctx, s.atlas.Current(), index, drawOrder)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("pick failed: %v", err)), nil
	}
	return mcp.NewToolResultText(details.Format(e)), nil
}

// pick resolves index against state, read once by the caller, and journals
// the outcome under the same view. A nil drawOrder means the nodes of that
// view's frame.
func (s *Server) pick(ctx context.Context, state view.State, index int, drawOrder []string) (selection.Entity, error) {
	if drawOrder == nil {
		drawOrder = s.atlas.Frame(state).Nodes
	}
	e, err := s.atlas.Resolver().Resolve(state, index, drawOrder)
	s.journal.RecordPick(ctx, state.Label(), index, e, err)
	return e, err
}

// handleDescribeAsset returns the details of one asset.
func (s *Server) handleDescribeAsset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: id"), nil
	}
	a, err := s.atlas.Resolver().Asset(id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("No asset found for %q. Use search_assets to find ids.", id)), nil
	}
	return mcp.NewToolResultText(details.Format(a)), nil
}

// handleDescribeArea returns the members and connections of one area.
func (s *Server) handleDescribeArea(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: name"), nil
	}
	a, err := s.atlas.Resolver().Area(name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("No area named %q. Use list_areas to see them.", name)), nil
	}
	return mcp.NewToolResultText(details.Format(a)), nil
}

// handleSearchAssets lists assets whose id matches a glob.
func (s *Server) handleSearchAssets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pattern, err := request.RequireString("pattern")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: pattern"), nil
	}
	assets, err := s.atlas.Catalog().Match(pattern)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	if len(assets) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No assets match %q.", pattern)), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d asset(s):\n\n", len(assets)))
	for _, a := range assets {
		sb.WriteString(fmt.Sprintf("- **%s** (%s): %s\n", a.ID, a.Area, a.Description))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleGetDiagram returns a mermaid flowchart of a view.
func (s *Server) handleGetDiagram(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	label := request.GetString("view", s.atlas.Current().Label())
	f, err := s.atlas.FrameFor(label)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("No view named %q.", label)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("```mermaid\n%s```\n", diagrams.ViewDiagram(f))), nil
}

// stringSlice converts a JSON array argument into strings. A missing
// argument yields nil.
func stringSlice(v any) ([]string, error) {
	if v == nil {
		return nil, nil
	}
	switch items := v.(type) {
	case []string:
		return items, nil
	case []any:
		out := make([]string, len(items))
		for i, item := range items {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("draw_order[%d] is not a string", i)
			}
			out[i] = s
		}
		return out, nil
	default:
		return nil, fmt.Errorf("draw_order must be an array of strings")
	}
}
