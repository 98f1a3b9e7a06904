package mcpserver

import (
	"github.com/mark3labs/insightr/internal/analysis"
	"github.com/mark3labs/mcp-go/mcp"
)

// registerTools adds every insightr tool to the MCP server.
func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("list-analyses",
			mcp.WithDescription("List submitted analyses, newest first"),
			mcp.WithBoolean("include_archived",
				mcp.Description("Include archived analyses (default: false)"),
			),
		),
		s.handleListAnalyses,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("get-analysis",
			mcp.WithDescription("Get a submitted analysis by ID or ID prefix (8+ chars)"),
			mcp.WithString("id", mcp.Required(),
				mcp.Description("Analysis ID or prefix"),
			),
		),
		s.handleGetAnalysis,
	)

	ages := make([]string, len(analysis.AgeBands))
	for i, a := range analysis.AgeBands {
		ages[i] = string(a)
	}
	freqs := make([]string, 0, len(analysis.Frequencies))
	for _, f := range analysis.Frequencies {
		if f != analysis.FrequencyUnset {
			freqs = append(freqs, string(f))
		}
	}

	s.mcpServer.AddTool(
		mcp.NewTool("submit-analysis",
			mcp.WithDescription("Submit a new analysis. Omitted fields keep their defaults."),
			mcp.WithString(string(analysis.FieldAgeRange),
				mcp.Description("Buyer age band (default: 18-24)"),
				mcp.Enum(ages...),
			),
			mcp.WithString(string(analysis.FieldLocation),
				mcp.Description("City or country"),
			),
			mcp.WithString(string(analysis.FieldMinPurchaseValue),
				mcp.Description("Minimum purchase value"),
			),
			mcp.WithString(string(analysis.FieldMaxPurchaseValue),
				mcp.Description("Maximum purchase value"),
			),
			mcp.WithString(string(analysis.FieldPurchaseFrequency),
				mcp.Description("Purchase frequency"),
				mcp.Enum(freqs...),
			),
			mcp.WithString(string(analysis.FieldStartDate),
				mcp.Description("Start date (YYYY-MM-DD)"),
			),
			mcp.WithString(string(analysis.FieldEndDate),
				mcp.Description("End date (YYYY-MM-DD)"),
			),
		),
		s.handleSubmitAnalysis,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("dashboard-metrics",
			mcp.WithDescription("Get the dashboard metric cards, chart series and sales history"),
		),
		s.handleDashboardMetrics,
	)
}
