// Package analytics implements the chart generation and export pipeline
// for completed result sets.
package analytics

import (
	"context"
	"regexp"
	"strings"

	"github.com/dmartins/dbchat/internal/api"
	apierrors "github.com/dmartins/dbchat/internal/errors"
	"github.com/dmartins/dbchat/internal/models"
)

// Panel holds the analytics state for the current result set: which
// rows are charted, the requested chart type, the rendered chart and
// the export controls. The panel is owned by the UI event loop; it is
// written from a single logical thread of control and needs no lock.
// Blocking work never touches the panel directly: callers snapshot the
// inputs with ChartRequest or ExportRequest on the owning thread and
// run the snapshot from whatever goroutine does the waiting. Panel
// failures stay inside the panel and never become conversation
// messages.
type Panel struct {
	client api.ClientInterface

	rows      *models.ResultSet
	question  string
	chartType models.ChartType
	visible   bool

	chart       *RenderedChart
	suggestions []string
	errText     string

	exportFormat   models.ExportFormat
	exportFilename string
	downloadDir    string
}

// NewPanel creates a hidden panel exporting into downloadDir.
func NewPanel(client api.ClientInterface, downloadDir string) *Panel {
	return &Panel{
		client:       client,
		chartType:    models.ChartAuto,
		exportFormat: models.ExportCSV,
		downloadDir:  downloadDir,
	}
}

// SetSource points the panel at a new result set. The previously
// rendered chart is released; the export filename defaults to a cleaned
// version of the question.
func (p *Panel) SetSource(rows *models.ResultSet, question string, chartType models.ChartType) {
	p.releaseChart()
	p.rows = rows
	p.question = question
	p.chartType = chartType
	p.suggestions = nil
	p.errText = ""
	p.exportFilename = DefaultFilename(question)
}

// Show makes the panel visible. It has no effect without a source.
func (p *Panel) Show() {
	if !p.rows.Empty() {
		p.visible = true
	}
}

// Hide hides the panel and releases the rendered chart.
func (p *Panel) Hide() {
	p.visible = false
	p.releaseChart()
}

// Visible reports whether the panel is showing.
func (p *Panel) Visible() bool {
	return p.visible
}

// HasSource reports whether the panel has rows to work with.
func (p *Panel) HasSource() bool {
	return !p.rows.Empty()
}

// Rows returns the panel's data source.
func (p *Panel) Rows() *models.ResultSet {
	return p.rows
}

// Question returns the question that produced the panel's rows.
func (p *Panel) Question() string {
	return p.question
}

// ChartType returns the currently selected chart type.
func (p *Panel) ChartType() models.ChartType {
	return p.chartType
}

// CycleChartType advances to the next chart type. The caller is
// expected to re-generate afterwards.
func (p *Panel) CycleChartType() models.ChartType {
	types := models.ChartTypes()
	for i, t := range types {
		if t == p.chartType {
			p.chartType = types[(i+1)%len(types)]
			return p.chartType
		}
	}
	p.chartType = models.ChartAuto
	return p.chartType
}

// ChartRequest is a point-in-time copy of the inputs to a chart
// generation. Take it on the panel's owning thread; Do may then run on
// any goroutine, because the request never reads the panel again and a
// concurrent SetSource or CycleChartType cannot race with the call.
type ChartRequest struct {
	client    api.ClientInterface
	rows      *models.ResultSet
	question  string
	chartType models.ChartType
}

// ChartRequest snapshots the panel's current chart inputs.
func (p *Panel) ChartRequest() ChartRequest {
	return ChartRequest{
		client:    p.client,
		rows:      p.rows,
		question:  p.question,
		chartType: p.chartType,
	}
}

// Do requests a fresh chart spec for the snapshotted rows. It is an
// idempotent retry-on-demand operation: no caching across calls. The
// spec still has to be installed with Install once the caller is back
// on the UI thread.
func (r ChartRequest) Do(ctx context.Context) (*models.ChartSpec, []string, error) {
	return r.client.GenerateChart(ctx, r.rows, r.question, r.chartType)
}

// Install renders a generated spec into the panel, releasing whatever
// chart was rendered before. A spec carrying an embedded error becomes
// the panel's error state instead of a chart.
func (p *Panel) Install(spec *models.ChartSpec, suggestions []string, width int) {
	p.releaseChart()
	p.suggestions = suggestions

	if spec == nil {
		p.errText = "chart generation returned no data"
		return
	}
	if spec.Err != "" {
		p.errText = spec.Err
		return
	}

	p.errText = ""
	p.chart = Render(spec, width)
}

// Fail records a panel-local error (transport failure on the chart
// call). It never escalates to the conversation log.
func (p *Panel) Fail(err error) {
	p.releaseChart()
	if apierrors.IsCancellation(err) {
		return
	}
	p.errText = "Could not generate chart. Try a different chart type."
}

// Chart returns the rendered chart, or nil.
func (p *Panel) Chart() *RenderedChart {
	return p.chart
}

// Suggestions returns alternative-chart suggestions from the last
// generation.
func (p *Panel) Suggestions() []string {
	return p.suggestions
}

// Err returns the panel-local error text, if any.
func (p *Panel) Err() string {
	return p.errText
}

// ExportFormat returns the selected export format.
func (p *Panel) ExportFormat() models.ExportFormat {
	return p.exportFormat
}

// CycleExportFormat advances to the next export format.
func (p *Panel) CycleExportFormat() models.ExportFormat {
	formats := models.ExportFormats()
	for i, f := range formats {
		if f == p.exportFormat {
			p.exportFormat = formats[(i+1)%len(formats)]
			return p.exportFormat
		}
	}
	p.exportFormat = models.ExportCSV
	return p.exportFormat
}

// ExportFilename returns the current export filename.
func (p *Panel) ExportFilename() string {
	return p.exportFilename
}

// SetExportFilename replaces the export filename.
func (p *Panel) SetExportFilename(name string) {
	p.exportFilename = name
}

// CanExport reports whether export is enabled. A blank filename
// disables it.
func (p *Panel) CanExport() bool {
	return p.HasSource() && strings.TrimSpace(p.exportFilename) != ""
}

// ExportRequest is a point-in-time copy of the inputs to an export.
// Same contract as ChartRequest: snapshot on the owning thread, run Do
// anywhere.
type ExportRequest struct {
	client      api.ClientInterface
	rows        *models.ResultSet
	format      models.ExportFormat
	filename    string
	downloadDir string
}

// ExportRequest snapshots the panel's current export inputs.
func (p *Panel) ExportRequest() ExportRequest {
	return ExportRequest{
		client:      p.client,
		rows:        p.rows,
		format:      p.exportFormat,
		filename:    p.exportFilename,
		downloadDir: p.downloadDir,
	}
}

// Do asks the backend to write the snapshotted rows into a file and
// downloads it. With a blank filename no network call is issued.
func (r ExportRequest) Do(ctx context.Context) (string, error) {
	if strings.TrimSpace(r.filename) == "" {
		return "", apierrors.ErrBlankFilename
	}

	result, err := r.client.Export(ctx, r.rows, r.format, r.filename)
	if err != nil {
		return "", err
	}

	return r.client.DownloadFile(ctx, result.DownloadURL, r.downloadDir, result.Filename)
}

// releaseChart frees the rendered chart before replacement or teardown.
func (p *Panel) releaseChart() {
	if p.chart != nil {
		p.chart.Release()
		p.chart = nil
	}
}

var filenameClean = regexp.MustCompile(`[^a-zA-Z0-9\s]`)

// DefaultFilename derives an export filename from the question: strip
// everything but letters, digits and spaces, cap at 30 characters.
func DefaultFilename(question string) string {
	clean := filenameClean.ReplaceAllString(question, "")
	clean = strings.TrimSpace(clean)
	if len(clean) > 30 {
		clean = strings.TrimSpace(clean[:30])
	}
	if clean == "" {
		return "data_export"
	}
	return clean
}
