package api

import (
	"context"

	"github.com/dmartins/dbchat/internal/models"
)

// ClientInterface is the backend surface consumed by the session, the
// analytics pipeline and the UI. *Client implements it; MockClient
// implements it for tests.
type ClientInterface interface {
	Ask(ctx context.Context, question string, engine models.Engine) (*models.Answer, error)
	GenerateChart(ctx context.Context, rows *models.ResultSet, question string, chartType models.ChartType) (*models.ChartSpec, []string, error)
	Export(ctx context.Context, rows *models.ResultSet, format models.ExportFormat, filename string) (*models.ExportResult, error)
	DownloadFile(ctx context.Context, downloadURL, destDir, filename string) (string, error)
	FetchSchema(ctx context.Context) (models.Schema, error)
}

var _ ClientInterface = (*Client)(nil)
