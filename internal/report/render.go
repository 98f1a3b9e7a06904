package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"charm.land/glamour/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/aymanbagabas/go-udiff"
	"github.com/mark3labs/insightr/internal/store"
	"gopkg.in/yaml.v3"
)

// maxRenderWidth caps glamour word wrap for readability.
const maxRenderWidth = 120

// Render renders markdown for the terminal using glamour's dark style.
// YAML front matter is stripped first.
func Render(markdown string, width int) (string, error) {
	if width > maxRenderWidth {
		width = maxRenderWidth
	}
	if width < 20 {
		width = 20
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}

	out, err := r.Render(StripFrontMatter(markdown))
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return strings.TrimSuffix(out, "\n"), nil
}

// StripFrontMatter removes a leading "---" delimited YAML block.
func StripFrontMatter(markdown string) string {
	if !strings.HasPrefix(markdown, "---\n") {
		return markdown
	}
	rest := markdown[len("---\n"):]
	end := strings.Index(rest, "\n---\n")
	if end < 0 {
		return markdown
	}
	return strings.TrimLeft(rest[end+len("\n---\n"):], "\n")
}

// HighlightJSON marshals v as indented JSON and colors it for a true-color
// terminal. Falls back to plain JSON when highlighting is unavailable.
func HighlightJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	source := string(data)

	lexer := lexers.Get("json")
	if lexer == nil {
		lexer = lexers.Fallback
	}

	formatter := formatters.Get("terminal16m")
	if formatter == nil {
		formatter = formatters.Get("terminal256")
	}
	if formatter == nil {
		return source, nil
	}

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return source, nil
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return source, nil
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// Diff returns a unified diff of two analyses' criteria as YAML. The result
// is empty when the criteria match.
func Diff(a, b *store.Analysis) (string, error) {
	left, err := yaml.Marshal(a.Criteria)
	if err != nil {
		return "", fmt.Errorf("marshaling %s: %w", a.ID, err)
	}
	right, err := yaml.Marshal(b.Criteria)
	if err != nil {
		return "", fmt.Errorf("marshaling %s: %w", b.ID, err)
	}
	return udiff.Unified(a.Name+" ("+a.ID+")", b.Name+" ("+b.ID+")", string(left), string(right)), nil
}
