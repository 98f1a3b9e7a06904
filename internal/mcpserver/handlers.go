package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/insightr/internal/analysis"
	"github.com/mark3labs/insightr/internal/logger"
	"github.com/mark3labs/insightr/internal/metrics"
	"github.com/mark3labs/insightr/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// jsonResult marshals v into a text result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

// handleListAnalyses returns analyses as a JSON array.
func (s *Server) handleListAnalyses(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	includeArchived := false
	if args := request.GetArguments(); args != nil {
		if v, ok := args["include_archived"].(bool); ok {
			includeArchived = v
		}
	}

	list, err := s.store.List(ctx, store.ListParams{IncludeArchived: includeArchived})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list analyses: %v", err)), nil
	}
	return jsonResult(list)
}

// handleGetAnalysis returns one analysis as JSON.
func (s *Server) handleGetAnalysis(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	if args == nil {
		return mcp.NewToolResultError("no arguments provided"), nil
	}

	id, ok := args["id"].(string)
	if !ok || id == "" {
		return mcp.NewToolResultError("missing or empty 'id' parameter"), nil
	}

	a, err := s.store.Get(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(a)
}

// CriteriaFromArgs merges string arguments named after criteria fields into
// the default criteria. Non-string values are reported as errors.
func CriteriaFromArgs(args map[string]any) (analysis.FilterCriteria, error) {
	c := analysis.DefaultCriteria()
	for _, f := range analysis.Fields {
		raw, present := args[string(f)]
		if !present || raw == nil {
			continue
		}
		v, ok := raw.(string)
		if !ok {
			return c, fmt.Errorf("'%s' must be a string", f)
		}
		c, _ = c.With(f, v)
	}
	return c, nil
}

// handleSubmitAnalysis validates and records new criteria.
func (s *Server) handleSubmitAnalysis(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	criteria, err := CriteriaFromArgs(request.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if s.validate {
		if errs := analysis.Validate(criteria); errs != nil {
			return mcp.NewToolResultError("invalid criteria: " + errs.Error()), nil
		}
	}

	a, err := s.store.Submit(ctx, criteria, store.SubmitParams{Source: store.SourceMCP})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to submit analysis: %v", err)), nil
	}

	logger.Info("Analysis %s submitted over MCP", a.ID)
	s.submitted(a)
	return jsonResult(a)
}

// handleDashboardMetrics returns every dashboard series as JSON.
func (s *Server) handleDashboardMetrics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(metrics.Snap(s.source))
}
