package models

import "encoding/json"

// AskRequest is the body of a question-answering POST.
type AskRequest struct {
	Question string `json:"question"`
	DBType   string `json:"db_type,omitempty"`
}

// Answer is the decoded success outcome of a question-answering call.
// Failure outcomes are represented as typed errors (query help,
// application error) so that response shapes are classified exactly once
// at the service boundary.
type Answer struct {
	Text         string
	Summary      string
	Suggestions  []string
	Capabilities *Capabilities
	Results      *ResultSet
	ChartRequest *ChartRequest
}

// HasResults reports whether the answer carries a non-empty result set.
func (a *Answer) HasResults() bool {
	return a != nil && !a.Results.Empty()
}

// ChartRequestBody is the body of an analytics chart POST.
type ChartRequestBody struct {
	Question  string           `json:"question"`
	ChartType ChartType        `json:"chart_type"`
	Rows      []map[string]any `json:"rows"`
}

// ChartSpec is the renderable chart configuration returned by the
// analytics endpoint (a chart.js style config). Raw keeps the full
// config for callers that need fields beyond the decoded ones.
type ChartSpec struct {
	Type     ChartType
	Labels   []string
	Datasets []Dataset
	// Err carries an error embedded inside an otherwise successful
	// response (chart_data.error). It is panel-local and never becomes
	// a conversation message.
	Err string
	Raw json.RawMessage
}

// Dataset is one series of a chart spec.
type Dataset struct {
	Label string
	Data  []float64
}

// ExportRequest is the body of an analytics export POST.
type ExportRequest struct {
	Rows     []map[string]any `json:"rows"`
	Format   ExportFormat     `json:"format"`
	Filename string           `json:"filename"`
}

// ExportResult is the success outcome of an export call.
type ExportResult struct {
	DownloadURL string `json:"download_url"`
	Filename    string `json:"filename"`
}

// Schema maps table (or collection) names to their column names.
type Schema map[string][]string
