package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/mark3labs/insightr/internal/analysis"
	"github.com/mark3labs/insightr/internal/metrics"
	"github.com/mark3labs/insightr/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var fixedNow = time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

func fixture() *store.Analysis {
	c := analysis.DefaultCriteria()
	c.AgeRange = analysis.Age35To44
	c.Location = "Lisbon"
	c.MinPurchaseValue = "50"
	c.PurchaseFrequency = analysis.FrequencyQuarterly
	return &store.Analysis{
		ID:          "cn1v2q8r0000000000a0",
		Name:        store.NameFor(c),
		Criteria:    c,
		Source:      store.SourceTUI,
		SubmittedAt: fixedNow,
	}
}

func TestSalesCSV(t *testing.T) {
	t.Parallel()

	rows := []metrics.SaleRow{
		{Client: "Client 1", LTV: 1234.5, AvgTicket: 99.99, DaysActive: 12, LastPurchase: fixedNow},
		{Client: "Client, Inc", LTV: 0, AvgTicket: 0, DaysActive: 0, LastPurchase: fixedNow},
	}

	var buf bytes.Buffer
	require.NoError(t, SalesCSV(&buf, rows))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, SalesHeader, records[0])
	assert.Equal(t, []string{"Client 1", "1234.50", "99.99", "12", "2024-03-15"}, records[1])
	assert.Equal(t, "Client, Inc", records[2][0])
}

func TestExportSalesCSV(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "exports")
	src := metrics.NewSampleSource(42, fixedNow)

	path, err := ExportSalesCSV(dir, src.Sales(), fixedNow)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "sales-2024-03-15.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 6, strings.Count(string(data), "\n"))
}

func TestMarkdown(t *testing.T) {
	t.Parallel()

	a := fixture()
	md, err := Markdown(a, metrics.NewSampleSource(42, fixedNow))
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(md, "---\n"))
	end := strings.Index(md[4:], "\n---\n")
	require.Positive(t, end)

	var fm frontMatter
	require.NoError(t, yaml.Unmarshal([]byte(md[4:4+end]), &fm))
	assert.Equal(t, a.ID, fm.ID)
	assert.Equal(t, a.Criteria, fm.Criteria)
	assert.Equal(t, "2024-03-15T09:00:00Z", fm.SubmittedAt)

	assert.Contains(t, md, "# Analysis: "+a.Name)
	assert.Contains(t, md, "| Buyer Demographics | Age Range | 35-44 years |")
	assert.Contains(t, md, "| Purchase Behavior | Max value | any |")
	assert.Contains(t, md, "| Purchase Behavior | Purchase Frequency | Quarterly |")
	assert.Contains(t, md, "| Time Period | Start date | any |")
	assert.Contains(t, md, "| Total Revenue | $2,456,789 | +12.3% from last month |")
	assert.Contains(t, md, "| Client 5 |")
}

func TestExportReport(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := fixture()
	path, err := ExportReport(dir, a, metrics.NewSampleSource(42, fixedNow))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "buyers-35-44-lisbon-quarterly-cn1v2q8r0000000000a0.md"), path)

	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestExportReport_SameCriteriaKeepsBoth(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := metrics.NewSampleSource(42, fixedNow)
	a := fixture()
	b := fixture()
	b.ID = "cn1v2q8r0000000000b0"
	require.Equal(t, a.Name, b.Name)

	pathA, err := ExportReport(dir, a, src)
	require.NoError(t, err)
	pathB, err := ExportReport(dir, b, src)
	require.NoError(t, err)
	assert.NotEqual(t, pathA, pathB)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestReportFileName_EmptyName(t *testing.T) {
	t.Parallel()

	a := fixture()
	a.Name = ""
	assert.Equal(t, a.ID+".md", ReportFileName(a))
}

func TestExportDashboardReport(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path, err := ExportDashboardReport(dir, metrics.NewSampleSource(42, fixedNow), fixedNow)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "sales-report-2024-03-15.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Sales report 2024-03-15")
	assert.Contains(t, string(data), "| Inactive Buyers | 3,456 |")
}

func TestStripFrontMatter(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "# Title\n", StripFrontMatter("---\nid: x\n---\n\n# Title\n"))
	assert.Equal(t, "# No front matter", StripFrontMatter("# No front matter"))
	assert.Equal(t, "---\nunterminated", StripFrontMatter("---\nunterminated"))
}

func TestRender(t *testing.T) {
	t.Parallel()

	md, err := Markdown(fixture(), metrics.NewSampleSource(42, fixedNow))
	require.NoError(t, err)

	out, err := Render(md, 100)
	require.NoError(t, err)
	plain := ansi.Strip(out)
	assert.Contains(t, plain, "Analysis:")
	assert.Contains(t, plain, "Lisbon")
	assert.NotContains(t, plain, "submitted_at:")
}

func TestHighlightJSON(t *testing.T) {
	t.Parallel()

	out, err := HighlightJSON(map[string]string{"location": "Lisbon"})
	require.NoError(t, err)
	assert.Contains(t, out, "\x1b[")
	assert.Equal(t, "{\n  \"location\": \"Lisbon\"\n}", ansi.Strip(out))
}

func TestDiff(t *testing.T) {
	t.Parallel()

	a := fixture()
	b := fixture()
	b.ID = "cn1v2q8r0000000000b0"
	b.Criteria.Location = "Porto"

	d, err := Diff(a, b)
	require.NoError(t, err)
	assert.Contains(t, d, "-location: Lisbon")
	assert.Contains(t, d, "+location: Porto")

	same, err := Diff(a, a)
	require.NoError(t, err)
	assert.Empty(t, same)
}
