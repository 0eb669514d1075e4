package api

import (
	"context"
	"sync"

	"github.com/dmartins/dbchat/internal/models"
)

// MockClient is a mock implementation of ClientInterface for testing.
// Set the *Fn fields for full control (e.g. blocking until a channel
// closes, to exercise cancellation); otherwise the Val/Err pairs are
// returned directly.
type MockClient struct {
	mu sync.Mutex

	// Mock return values
	AskVal       *models.Answer
	AskErr       error
	ChartVal     *models.ChartSpec
	ChartSuggVal []string
	ChartErr     error
	ExportVal    *models.ExportResult
	ExportErr    error
	DownloadVal  string
	DownloadErr  error
	SchemaVal    models.Schema
	SchemaErr    error

	// Optional function overrides
	AskFn      func(ctx context.Context, question string, engine models.Engine) (*models.Answer, error)
	ChartFn    func(ctx context.Context, rows *models.ResultSet, question string, chartType models.ChartType) (*models.ChartSpec, []string, error)
	ExportFn   func(ctx context.Context, rows *models.ResultSet, format models.ExportFormat, filename string) (*models.ExportResult, error)
	DownloadFn func(ctx context.Context, downloadURL, destDir, filename string) (string, error)

	// Call counters/recorders
	AskCalls      int
	ChartCalls    int
	ExportCalls   int
	DownloadCalls int
	SchemaCalls   int
	LastQuestion  string
	LastEngine    models.Engine
	LastChartType models.ChartType
	LastFormat    models.ExportFormat
	LastFilename  string
}

// Ensure MockClient implements ClientInterface
var _ ClientInterface = (*MockClient)(nil)

func (m *MockClient) Ask(ctx context.Context, question string, engine models.Engine) (*models.Answer, error) {
	m.mu.Lock()
	m.AskCalls++
	m.LastQuestion = question
	m.LastEngine = engine
	fn := m.AskFn
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, question, engine)
	}
	return m.AskVal, m.AskErr
}

func (m *MockClient) GenerateChart(ctx context.Context, rows *models.ResultSet, question string, chartType models.ChartType) (*models.ChartSpec, []string, error) {
	m.mu.Lock()
	m.ChartCalls++
	m.LastChartType = chartType
	fn := m.ChartFn
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, rows, question, chartType)
	}
	return m.ChartVal, m.ChartSuggVal, m.ChartErr
}

func (m *MockClient) Export(ctx context.Context, rows *models.ResultSet, format models.ExportFormat, filename string) (*models.ExportResult, error) {
	m.mu.Lock()
	m.ExportCalls++
	m.LastFormat = format
	m.LastFilename = filename
	fn := m.ExportFn
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, rows, format, filename)
	}
	return m.ExportVal, m.ExportErr
}

func (m *MockClient) DownloadFile(ctx context.Context, downloadURL, destDir, filename string) (string, error) {
	m.mu.Lock()
	m.DownloadCalls++
	fn := m.DownloadFn
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, downloadURL, destDir, filename)
	}
	return m.DownloadVal, m.DownloadErr
}

func (m *MockClient) FetchSchema(ctx context.Context) (models.Schema, error) {
	m.mu.Lock()
	m.SchemaCalls++
	m.mu.Unlock()
	return m.SchemaVal, m.SchemaErr
}
