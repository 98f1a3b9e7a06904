package mcpserver

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/mark3labs/insightr/internal/analysis"
	"github.com/mark3labs/insightr/internal/metrics"
	"github.com/mark3labs/insightr/internal/nats"
	"github.com/mark3labs/insightr/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestServer creates a server with a test store
func setupTestServer(t *testing.T, validate bool) *Server {
	t.Helper()
	ctx := context.Background()

	ns, _, err := nats.StartEmbeddedNATS(t.TempDir())
	require.NoError(t, err)

	nc, err := nats.ConnectInProcess(ns)
	require.NoError(t, err)

	js, err := nats.CreateJetStream(nc)
	require.NoError(t, err)

	stream, err := nats.SetupStream(ctx, js)
	require.NoError(t, err)

	t.Cleanup(func() {
		nc.Close()
		ns.Shutdown()
	})

	src := metrics.NewSampleSource(42, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	return New(store.NewStore(js, stream), src, validate)
}

// extractText extracts text from CallToolResult.Content[0]
func extractText(result *mcp.CallToolResult) string {
	if len(result.Content) == 0 {
		return ""
	}
	if textContent, ok := result.Content[0].(mcp.TextContent); ok {
		return textContent.Text
	}
	return ""
}

func call(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func TestHandleSubmitAnalysis_Success(t *testing.T) {
	srv := setupTestServer(t, true)

	var notified *store.Analysis
	srv.OnSubmit(func(a *store.Analysis) { notified = a })

	result, err := srv.handleSubmitAnalysis(context.Background(), call("submit-analysis", map[string]any{
		"ageRange":          "45-54",
		"location":          "Madrid",
		"purchaseFrequency": "weekly",
		"startDate":         "2024-01-01",
		"endDate":           "2024-02-01",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError, extractText(result))

	var a store.Analysis
	require.NoError(t, json.Unmarshal([]byte(extractText(result)), &a))
	assert.Equal(t, store.SourceMCP, a.Source)
	assert.Equal(t, analysis.Age45To54, a.Criteria.AgeRange)
	assert.Equal(t, "Madrid", a.Criteria.Location)
	assert.Equal(t, "", a.Criteria.MinPurchaseValue)

	require.NotNil(t, notified)
	assert.Equal(t, a.ID, notified.ID)
}

func TestHandleSubmitAnalysis_DefaultsWhenEmpty(t *testing.T) {
	srv := setupTestServer(t, true)

	result, err := srv.handleSubmitAnalysis(context.Background(), call("submit-analysis", nil))
	require.NoError(t, err)
	require.False(t, result.IsError, extractText(result))

	var a store.Analysis
	require.NoError(t, json.Unmarshal([]byte(extractText(result)), &a))
	assert.Equal(t, analysis.DefaultCriteria(), a.Criteria)
}

func TestHandleSubmitAnalysis_RejectsInvalid(t *testing.T) {
	srv := setupTestServer(t, true)

	result, err := srv.handleSubmitAnalysis(context.Background(), call("submit-analysis", map[string]any{
		"minPurchaseValue": "500",
		"maxPurchaseValue": "100",
		"startDate":        "yesterday",
	}))
	require.NoError(t, err)
	require.True(t, result.IsError)
	text := extractText(result)
	assert.Contains(t, text, "maxPurchaseValue: must be greater than or equal to min value")
	assert.Contains(t, text, "startDate: must be a date (YYYY-MM-DD)")

	list, err := srv.store.List(context.Background(), store.ListParams{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestHandleSubmitAnalysis_ValidationDisabled(t *testing.T) {
	srv := setupTestServer(t, false)

	result, err := srv.handleSubmitAnalysis(context.Background(), call("submit-analysis", map[string]any{
		"minPurchaseValue": "lots",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError, extractText(result))
}

func TestHandleSubmitAnalysis_NonStringArgument(t *testing.T) {
	srv := setupTestServer(t, true)

	result, err := srv.handleSubmitAnalysis(context.Background(), call("submit-analysis", map[string]any{
		"minPurchaseValue": float64(10),
	}))
	require.NoError(t, err)
	require.True(t, result.IsError)
	assert.Contains(t, extractText(result), "'minPurchaseValue' must be a string")
}

func TestHandleListAndGetAnalysis(t *testing.T) {
	srv := setupTestServer(t, true)
	ctx := context.Background()

	a, err := srv.store.Submit(ctx, analysis.DefaultCriteria(), store.SubmitParams{})
	require.NoError(t, err)
	b, err := srv.store.Submit(ctx, analysis.DefaultCriteria(), store.SubmitParams{})
	require.NoError(t, err)
	require.NoError(t, srv.store.Archive(ctx, b.ID))

	result, err := srv.handleListAnalyses(ctx, call("list-analyses", nil))
	require.NoError(t, err)
	var list []store.Analysis
	require.NoError(t, json.Unmarshal([]byte(extractText(result)), &list))
	require.Len(t, list, 1)
	assert.Equal(t, a.ID, list[0].ID)

	result, err = srv.handleListAnalyses(ctx, call("list-analyses", map[string]any{"include_archived": true}))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(extractText(result)), &list))
	assert.Len(t, list, 2)

	result, err = srv.handleGetAnalysis(ctx, call("get-analysis", map[string]any{"id": b.ID}))
	require.NoError(t, err)
	require.False(t, result.IsError)
	var got store.Analysis
	require.NoError(t, json.Unmarshal([]byte(extractText(result)), &got))
	assert.True(t, got.Archived)
}

func TestHandleGetAnalysis_Errors(t *testing.T) {
	srv := setupTestServer(t, true)
	ctx := context.Background()

	result, err := srv.handleGetAnalysis(ctx, call("get-analysis", nil))
	require.NoError(t, err)
	assert.True(t, result.IsError)

	result, err = srv.handleGetAnalysis(ctx, call("get-analysis", map[string]any{"id": "doesnotexist"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, extractText(result), "analysis not found")
}

func TestHandleDashboardMetrics(t *testing.T) {
	srv := setupTestServer(t, true)

	result, err := srv.handleDashboardMetrics(context.Background(), call("dashboard-metrics", nil))
	require.NoError(t, err)

	var snap metrics.Snapshot
	require.NoError(t, json.Unmarshal([]byte(extractText(result)), &snap))
	assert.Len(t, snap.Cards, 6)
	assert.Len(t, snap.Revenue, 6)
	assert.Len(t, snap.Categories, 4)
	assert.Len(t, snap.Customers, 6)
	assert.Len(t, snap.Conversion, 7)
	assert.Len(t, snap.Sales, 5)
}

func TestServerStartStop(t *testing.T) {
	srv := setupTestServer(t, true)

	port, err := srv.Start(context.Background())
	require.NoError(t, err)
	assert.Positive(t, port)
	assert.Contains(t, srv.URL(), "/mcp")

	_, err = srv.Start(context.Background())
	assert.Error(t, err, "second Start should fail")

	require.NoError(t, srv.Stop())
	require.NoError(t, srv.Stop())
}

func TestCriteriaFromArgs(t *testing.T) {
	c, err := CriteriaFromArgs(map[string]any{"location": "Oslo", "unknown": "x", "endDate": nil})
	require.NoError(t, err)
	want := analysis.DefaultCriteria()
	want.Location = "Oslo"
	assert.Equal(t, want, c)
}
