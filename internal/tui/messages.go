package tui

import "github.com/mark3labs/insightr/internal/store"

// AnalysisSubmittedMsg reports a recorded analysis, from the wizard or from
// another surface such as MCP.
type AnalysisSubmittedMsg struct {
	Analysis *store.Analysis
}

// AnalysisFailedMsg reports a submission the store rejected.
type AnalysisFailedMsg struct {
	Err error
}

// AnalysesLoadedMsg carries the analyses list for the analyses modal.
type AnalysesLoadedMsg struct {
	Analyses []*store.Analysis
	Err      error
}

// ExportDoneMsg reports the outcome of a CSV or report export.
type ExportDoneMsg struct {
	Kind string
	Path string
	Err  error
}
