package analytics

import (
	"context"
	"errors"
	"testing"

	"github.com/dmartins/dbchat/internal/api"
	apierrors "github.com/dmartins/dbchat/internal/errors"
	"github.com/dmartins/dbchat/internal/models"
)

func sampleRows() *models.ResultSet {
	return &models.ResultSet{
		Columns: []string{"month", "total"},
		Rows: []models.Row{
			{"month": "Jan", "total": float64(10)},
			{"month": "Feb", "total": float64(20)},
		},
	}
}

func sampleSpec() *models.ChartSpec {
	return &models.ChartSpec{
		Type:   models.ChartBar,
		Labels: []string{"Jan", "Feb"},
		Datasets: []models.Dataset{
			{Label: "total", Data: []float64{10, 20}},
		},
	}
}

func TestSetSourceDefaultsFilename(t *testing.T) {
	p := NewPanel(&api.MockClient{}, t.TempDir())
	p.SetSource(sampleRows(), "Show me monthly totals!", models.ChartAuto)

	if got := p.ExportFilename(); got != "Show me monthly totals" {
		t.Errorf("ExportFilename() = %q, want %q", got, "Show me monthly totals")
	}
}

func TestDefaultFilename(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     string
	}{
		{"strips punctuation", "What's the total, per region?", "Whats the total per region"},
		{"caps at thirty chars", "aaaaaaaaaabbbbbbbbbbccccccccccdddddddddd", "aaaaaaaaaabbbbbbbbbbcccccccccc"},
		{"all symbols fall back", "???!!!", "data_export"},
		{"empty falls back", "", "data_export"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DefaultFilename(tt.question); got != tt.want {
				t.Errorf("DefaultFilename(%q) = %q, want %q", tt.question, got, tt.want)
			}
		})
	}
}

func TestShowRequiresSource(t *testing.T) {
	p := NewPanel(&api.MockClient{}, t.TempDir())

	p.Show()
	if p.Visible() {
		t.Error("panel visible without a source")
	}

	p.SetSource(sampleRows(), "q", models.ChartAuto)
	p.Show()
	if !p.Visible() {
		t.Error("panel not visible after Show with a source")
	}
}

func TestCycleChartTypeWrapsAround(t *testing.T) {
	p := NewPanel(&api.MockClient{}, t.TempDir())
	p.SetSource(sampleRows(), "q", models.ChartAuto)

	seen := map[models.ChartType]bool{p.ChartType(): true}
	for i := 0; i < len(models.ChartTypes())-1; i++ {
		seen[p.CycleChartType()] = true
	}
	if len(seen) != len(models.ChartTypes()) {
		t.Errorf("cycled through %d types, want %d", len(seen), len(models.ChartTypes()))
	}
	if got := p.CycleChartType(); got != models.ChartAuto {
		t.Errorf("full cycle ended on %v, want ChartAuto", got)
	}
}

func TestInstallRendersChart(t *testing.T) {
	p := NewPanel(&api.MockClient{}, t.TempDir())
	p.SetSource(sampleRows(), "q", models.ChartBar)

	p.Install(sampleSpec(), []string{"try a line chart"}, 60)

	if p.Err() != "" {
		t.Fatalf("unexpected panel error: %q", p.Err())
	}
	if p.Chart() == nil {
		t.Fatal("no chart installed")
	}
	if p.Chart().View() == "" {
		t.Error("installed chart renders empty")
	}
	if len(p.Suggestions()) != 1 {
		t.Errorf("Suggestions() len = %d, want 1", len(p.Suggestions()))
	}
}

func TestInstallEmbeddedErrorStaysLocal(t *testing.T) {
	p := NewPanel(&api.MockClient{}, t.TempDir())
	p.SetSource(sampleRows(), "q", models.ChartPie)

	spec := sampleSpec()
	spec.Err = "Pie charts need a single numeric column"
	p.Install(spec, []string{"bar"}, 60)

	if p.Chart() != nil {
		t.Error("chart installed despite embedded error")
	}
	if p.Err() != "Pie charts need a single numeric column" {
		t.Errorf("Err() = %q, want the embedded error", p.Err())
	}
}

func TestInstallReleasesPreviousChart(t *testing.T) {
	p := NewPanel(&api.MockClient{}, t.TempDir())
	p.SetSource(sampleRows(), "q", models.ChartBar)

	p.Install(sampleSpec(), nil, 60)
	first := p.Chart()
	if first == nil {
		t.Fatal("no chart installed")
	}

	p.Install(sampleSpec(), nil, 60)
	if !first.Released() {
		t.Error("previous chart not released on reinstall")
	}
	if p.Chart() == first {
		t.Error("panel still holds the released chart")
	}
}

func TestHideReleasesChart(t *testing.T) {
	p := NewPanel(&api.MockClient{}, t.TempDir())
	p.SetSource(sampleRows(), "q", models.ChartBar)
	p.Show()
	p.Install(sampleSpec(), nil, 60)

	chart := p.Chart()
	p.Hide()

	if p.Visible() {
		t.Error("panel still visible after Hide")
	}
	if !chart.Released() {
		t.Error("chart not released on Hide")
	}
}

func TestFailIgnoresCancellation(t *testing.T) {
	p := NewPanel(&api.MockClient{}, t.TempDir())
	p.SetSource(sampleRows(), "q", models.ChartBar)

	p.Fail(context.Canceled)
	if p.Err() != "" {
		t.Errorf("cancellation became a panel error: %q", p.Err())
	}

	p.Fail(errors.New("boom"))
	if p.Err() == "" {
		t.Error("real failure did not set the panel error")
	}
}

func TestExportBlankFilenameMakesNoNetworkCall(t *testing.T) {
	mock := &api.MockClient{}
	p := NewPanel(mock, t.TempDir())
	p.SetSource(sampleRows(), "q", models.ChartAuto)
	p.SetExportFilename("   ")

	if p.CanExport() {
		t.Error("CanExport() true with a blank filename")
	}

	_, err := p.ExportRequest().Do(context.Background())
	if !errors.Is(err, apierrors.ErrBlankFilename) {
		t.Errorf("export err = %v, want ErrBlankFilename", err)
	}
	if mock.ExportCalls != 0 {
		t.Errorf("ExportCalls = %d, want 0", mock.ExportCalls)
	}
	if mock.DownloadCalls != 0 {
		t.Errorf("DownloadCalls = %d, want 0", mock.DownloadCalls)
	}
}

func TestExportDownloadsResult(t *testing.T) {
	mock := &api.MockClient{
		ExportVal:   &models.ExportResult{DownloadURL: "/api/download/x.csv", Filename: "x.csv"},
		DownloadVal: "/tmp/downloads/x.csv",
	}
	p := NewPanel(mock, "/tmp/downloads")
	p.SetSource(sampleRows(), "monthly totals", models.ChartAuto)

	path, err := p.ExportRequest().Do(context.Background())
	if err != nil {
		t.Fatalf("export error: %v", err)
	}
	if path != "/tmp/downloads/x.csv" {
		t.Errorf("export path = %q", path)
	}
	if mock.ExportCalls != 1 || mock.DownloadCalls != 1 {
		t.Errorf("calls = %d/%d, want 1/1", mock.ExportCalls, mock.DownloadCalls)
	}
	if mock.LastFilename != "monthly totals" {
		t.Errorf("LastFilename = %q, want the defaulted name", mock.LastFilename)
	}
}

func TestChartRequestIsolatedFromRetargeting(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	var gotQuestion string
	var gotType models.ChartType
	mock := &api.MockClient{
		ChartFn: func(ctx context.Context, rows *models.ResultSet, question string, chartType models.ChartType) (*models.ChartSpec, []string, error) {
			close(started)
			<-release
			gotQuestion = question
			gotType = chartType
			return sampleSpec(), nil, nil
		},
	}

	p := NewPanel(mock, t.TempDir())
	p.SetSource(sampleRows(), "first question", models.ChartBar)
	req := p.ChartRequest()

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, _, err := req.Do(context.Background()); err != nil {
			t.Errorf("chart request error: %v", err)
		}
	}()

	// Retarget the panel while the request is blocked in flight.
	<-started
	p.SetSource(sampleRows(), "second question", models.ChartAuto)
	p.CycleChartType()
	close(release)
	<-done

	if gotQuestion != "first question" {
		t.Errorf("request sent question %q, want the snapshotted one", gotQuestion)
	}
	if gotType != models.ChartBar {
		t.Errorf("request sent chart type %v, want the snapshotted ChartBar", gotType)
	}
}

func TestExportRequestUsesSnapshottedFilename(t *testing.T) {
	mock := &api.MockClient{
		ExportVal:   &models.ExportResult{DownloadURL: "/api/download/x.csv", Filename: "x.csv"},
		DownloadVal: "/tmp/downloads/x.csv",
	}
	p := NewPanel(mock, "/tmp/downloads")
	p.SetSource(sampleRows(), "q", models.ChartAuto)
	p.SetExportFilename("before")

	req := p.ExportRequest()
	p.SetExportFilename("after")

	if _, err := req.Do(context.Background()); err != nil {
		t.Fatalf("export error: %v", err)
	}
	if mock.LastFilename != "before" {
		t.Errorf("LastFilename = %q, want the snapshotted %q", mock.LastFilename, "before")
	}
}

func TestRenderChartTypes(t *testing.T) {
	for _, typ := range []models.ChartType{models.ChartBar, models.ChartLine, models.ChartPie, models.ChartScatter} {
		spec := sampleSpec()
		spec.Type = typ
		chart := Render(spec, 60)
		if chart == nil || chart.View() == "" {
			t.Errorf("Render(%v) produced no output", typ)
		}
	}
}

func TestRenderedChartReleaseIdempotent(t *testing.T) {
	chart := Render(sampleSpec(), 60)
	if chart.Released() {
		t.Fatal("fresh chart already released")
	}
	chart.Release()
	chart.Release()
	if !chart.Released() {
		t.Error("chart not marked released")
	}
	if chart.View() != "" {
		t.Error("released chart still renders content")
	}
}
