// Package report exports dashboard data and submitted analyses to files and
// renders them for the terminal.
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/mark3labs/insightr/internal/analysis"
	"github.com/mark3labs/insightr/internal/metrics"
	"github.com/mark3labs/insightr/internal/store"
	"gopkg.in/yaml.v3"
)

// SalesHeader is the header row of the sales CSV.
var SalesHeader = []string{"Client", "LTV", "Avg. Ticket", "Days Active", "Last Purchase"}

// SalesCSV writes rows as CSV with a header.
func SalesCSV(w io.Writer, rows []metrics.SaleRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SalesHeader); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.Client,
			strconv.FormatFloat(r.LTV, 'f', 2, 64),
			strconv.FormatFloat(r.AvgTicket, 'f', 2, 64),
			strconv.Itoa(r.DaysActive),
			r.LastPurchase.Format(analysis.DateLayout),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportSalesCSV writes dir/sales-<date>.csv and returns its path.
func ExportSalesCSV(dir string, rows []metrics.SaleRow, now time.Time) (string, error) {
	var buf bytes.Buffer
	if err := SalesCSV(&buf, rows); err != nil {
		return "", fmt.Errorf("encoding sales CSV: %w", err)
	}
	return writeExport(dir, "sales-"+now.Format(analysis.DateLayout)+".csv", buf.Bytes())
}

// frontMatter is the YAML header of an analysis report.
type frontMatter struct {
	ID          string                  `yaml:"id"`
	Name        string                  `yaml:"name"`
	Source      string                  `yaml:"source"`
	SubmittedAt string                  `yaml:"submitted_at"`
	Archived    bool                    `yaml:"archived,omitempty"`
	Criteria    analysis.FilterCriteria `yaml:"criteria"`
}

// Markdown renders an analysis as a markdown report with YAML front matter,
// a criteria table and the headline metrics from src.
func Markdown(a *store.Analysis, src metrics.Source) (string, error) {
	fm, err := yaml.Marshal(frontMatter{
		ID:          a.ID,
		Name:        a.Name,
		Source:      a.Source,
		SubmittedAt: a.SubmittedAt.UTC().Format(time.RFC3339),
		Archived:    a.Archived,
		Criteria:    a.Criteria,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling front matter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(fm)
	b.WriteString("---\n\n")

	fmt.Fprintf(&b, "# Analysis: %s\n\n", a.Name)
	fmt.Fprintf(&b, "Submitted %s from %s.\n\n", a.SubmittedAt.Format("Jan 2, 2006 15:04"), a.Source)

	b.WriteString("## Filter criteria\n\n")
	b.WriteString("| Step | Filter | Value |\n|---|---|---|\n")
	for i, step := range analysis.Steps() {
		for _, f := range analysis.FieldsAt(i) {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", step.Title, f.Label(), displayValue(a.Criteria, f))
		}
	}

	b.WriteString("\n## Headline metrics\n\n")
	writeCards(&b, src)
	b.WriteString("\n## Sales history\n\n")
	writeSales(&b, src)

	return b.String(), nil
}

// displayValue returns the human-readable value of a criteria field.
func displayValue(c analysis.FilterCriteria, f analysis.Field) string {
	switch f {
	case analysis.FieldAgeRange:
		return c.AgeRange.Label()
	case analysis.FieldPurchaseFrequency:
		if c.PurchaseFrequency == analysis.FrequencyUnset {
			return "any"
		}
		return c.PurchaseFrequency.Label()
	}
	if v := c.Get(f); v != "" {
		return v
	}
	return "any"
}

// ExportReport writes dir/<name>-<id>.md for an analysis and returns its path.
func ExportReport(dir string, a *store.Analysis, src metrics.Source) (string, error) {
	md, err := Markdown(a, src)
	if err != nil {
		return "", err
	}
	return writeExport(dir, ReportFileName(a), []byte(md))
}

// ReportFileName names an analysis report. Analyses sharing criteria share a
// name, so the ID keeps their files apart.
func ReportFileName(a *store.Analysis) string {
	name := slug.Make(a.Name)
	if name == "" {
		return a.ID + ".md"
	}
	return name + "-" + a.ID + ".md"
}

// DashboardReport is the Export Report document when no analysis is selected.
func DashboardReport(src metrics.Source, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Sales report %s\n\n", now.Format(analysis.DateLayout))
	writeCards(&b, src)
	b.WriteString("\n")
	writeSales(&b, src)
	return b.String()
}

// ExportDashboardReport writes dir/sales-report-<date>.md and returns its path.
func ExportDashboardReport(dir string, src metrics.Source, now time.Time) (string, error) {
	return writeExport(dir, "sales-report-"+now.Format(analysis.DateLayout)+".md", []byte(DashboardReport(src, now)))
}

func writeCards(b *strings.Builder, src metrics.Source) {
	b.WriteString("| Metric | Value | Change |\n|---|---|---|\n")
	for _, c := range src.Cards() {
		fmt.Fprintf(b, "| %s | %s | %s |\n", c.Title, c.Display(), c.SubValue)
	}
}

func writeSales(b *strings.Builder, src metrics.Source) {
	b.WriteString("| " + strings.Join(SalesHeader, " | ") + " |\n|---|---|---|---|---|\n")
	for _, r := range src.Sales() {
		fmt.Fprintf(b, "| %s | %s | %s | %d | %s |\n",
			r.Client,
			metrics.FormatCurrency(r.LTV),
			metrics.FormatCurrency(r.AvgTicket),
			r.DaysActive,
			r.LastPurchase.Format(analysis.DateLayout),
		)
	}
}

func writeExport(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	return path, nil
}
