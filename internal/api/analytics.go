package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	apierrors "github.com/dmartins/dbchat/internal/errors"
	"github.com/dmartins/dbchat/internal/models"
)

// GenerateChart requests a renderable chart specification for the given
// rows. An error embedded inside an otherwise-successful response
// (chart_data.error) comes back on the ChartSpec, not as a Go error:
// chart failures are local to the analytics panel.
func (c *Client) GenerateChart(ctx context.Context, rows *models.ResultSet, question string, chartType models.ChartType) (*models.ChartSpec, []string, error) {
	if rows.Empty() {
		return nil, nil, fmt.Errorf("no rows to chart")
	}

	payload := models.ChartRequestBody{
		Question:  question,
		ChartType: chartType,
		Rows:      rows.RawRows(),
	}

	status, body, err := c.postJSON(ctx, models.EndpointChart, payload)
	if err != nil {
		if apierrors.IsCancellation(err) {
			return nil, nil, err
		}
		if c.verbose {
			diag.Printf("chart request failed: %v", err)
		}
		return nil, nil, wrapTransport("generate chart", models.EndpointChart, err)
	}

	if !gjson.ValidBytes(body) {
		return nil, nil, apierrors.NewAPIError(status, models.EndpointChart, "response is not valid JSON")
	}

	parsed := gjson.ParseBytes(body)
	if !parsed.Get("success").Bool() {
		errText := parsed.Get("error").String()
		if errText == "" {
			errText = "chart generation failed"
		}
		return nil, nil, apierrors.NewAppError(errText)
	}

	chartData := parsed.Get("chart_data")
	if !chartData.Exists() {
		return nil, nil, apierrors.NewParseError("chart response has no chart_data")
	}

	spec := decodeChartSpec(chartData)
	return spec, stringSlice(parsed.Get("suggestions")), nil
}

// decodeChartSpec extracts the fields the terminal renderer needs from a
// chart.js style config and keeps the full config in Raw.
func decodeChartSpec(chartData gjson.Result) *models.ChartSpec {
	spec := &models.ChartSpec{
		Type: models.ParseChartType(chartData.Get("type").String()),
		Err:  chartData.Get("error").String(),
		Raw:  json.RawMessage(chartData.Raw),
	}

	spec.Labels = stringSlice(chartData.Get("data.labels"))

	chartData.Get("data.datasets").ForEach(func(_, ds gjson.Result) bool {
		dataset := models.Dataset{Label: ds.Get("label").String()}
		ds.Get("data").ForEach(func(_, v gjson.Result) bool {
			dataset.Data = append(dataset.Data, v.Float())
			return true
		})
		spec.Datasets = append(spec.Datasets, dataset)
		return true
	})

	return spec
}

// Export asks the backend to write the rows into a downloadable file.
// Callers must not invoke this with a blank filename; the check here is
// the last line of defense.
func (c *Client) Export(ctx context.Context, rows *models.ResultSet, format models.ExportFormat, filename string) (*models.ExportResult, error) {
	if rows.Empty() {
		return nil, fmt.Errorf("no rows to export")
	}

	payload := models.ExportRequest{
		Rows:     rows.RawRows(),
		Format:   format,
		Filename: filename,
	}

	status, body, err := c.postJSON(ctx, models.EndpointExport, payload)
	if err != nil {
		if apierrors.IsCancellation(err) {
			return nil, err
		}
		if c.verbose {
			diag.Printf("export request failed: %v", err)
		}
		return nil, wrapTransport("export", models.EndpointExport, err)
	}

	var resp struct {
		Success     bool   `json:"success"`
		DownloadURL string `json:"download_url"`
		Filename    string `json:"filename"`
		Error       string `json:"error"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, apierrors.NewAPIError(status, models.EndpointExport, "response is not valid JSON")
	}
	if !resp.Success {
		if resp.Error == "" {
			resp.Error = "export failed"
		}
		return nil, apierrors.NewAppError(resp.Error)
	}

	return &models.ExportResult{DownloadURL: resp.DownloadURL, Filename: resp.Filename}, nil
}
