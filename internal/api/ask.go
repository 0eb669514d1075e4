package api

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/tidwall/gjson"

	apierrors "github.com/dmartins/dbchat/internal/errors"
	"github.com/dmartins/dbchat/internal/models"
)

var diag = log.New(os.Stderr, "dbchat: ", log.LstdFlags)

// Ask submits a natural-language question and returns the decoded
// answer. Failure shapes are classified here, exactly once:
//
//   - success=true          -> *models.Answer, nil
//   - type == "query_help"  -> nil, *errors.QueryHelpError
//   - success=false (other) -> nil, *errors.AppError
//   - transport failure     -> nil, *errors.NetworkError
//   - ctx cancelled         -> nil, context.Canceled
//
// Downstream code never inspects raw response fields.
func (c *Client) Ask(ctx context.Context, question string, engine models.Engine) (*models.Answer, error) {
	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("question cannot be empty")
	}

	endpoint := models.EndpointAskSQL
	payload := models.AskRequest{Question: question, DBType: c.dbType}
	if engine == models.EngineMongo {
		endpoint = models.EndpointAskMongo
		payload = models.AskRequest{Question: question}
	}

	status, body, err := c.postJSON(ctx, endpoint, payload)
	if err != nil {
		if apierrors.IsCancellation(err) {
			return nil, err
		}
		if c.verbose {
			diag.Printf("ask %s failed: %v", endpoint, err)
		}
		return nil, wrapTransport("ask", endpoint, err)
	}

	return decodeAsk(status, endpoint, body)
}

// wrapTransport converts a raw transport failure into a NetworkError so
// the cause is preserved for diagnostics without reaching end users.
func wrapTransport(operation, endpoint string, err error) error {
	if ne, ok := err.(*apierrors.NetworkError); ok {
		return ne
	}
	return apierrors.NewNetworkError(operation, endpoint, err)
}

// decodeAsk turns a raw response body into the tagged outcome.
func decodeAsk(status int, endpoint string, body []byte) (*models.Answer, error) {
	if !gjson.ValidBytes(body) {
		return nil, apierrors.NewAPIError(status, endpoint, "response is not valid JSON")
	}

	parsed := gjson.ParseBytes(body)

	if !parsed.Get("success").Bool() {
		errText := parsed.Get("error").String()
		if parsed.Get("type").String() == "query_help" {
			return nil, apierrors.NewQueryHelpError(
				errText,
				parsed.Get("original_question").String(),
				stringSlice(parsed.Get("suggestions")),
			)
		}
		if errText == "" && status != 200 {
			return nil, apierrors.NewAPIError(status, endpoint, "request failed")
		}
		return nil, apierrors.NewAppError(errText)
	}

	answer := &models.Answer{
		Text:        parsed.Get("answer").String(),
		Summary:     parsed.Get("summary").String(),
		Suggestions: stringSlice(parsed.Get("suggestions")),
		Results:     resultSetFrom(parsed.Get("data")),
	}

	if caps := parsed.Get("capabilities"); caps.Exists() {
		answer.Capabilities = &models.Capabilities{
			Description: caps.Get("description").String(),
			Features:    stringSlice(caps.Get("features")),
		}
	}

	if cr := parsed.Get("chart_request"); cr.Exists() {
		answer.ChartRequest = &models.ChartRequest{
			Requested: cr.Get("requested").Bool(),
			Type:      cr.Get("type").String(),
		}
	}

	return answer, nil
}

// resultSetFrom decodes the data array, capturing column order from the
// first row's keys in document order (maps would lose it).
func resultSetFrom(data gjson.Result) *models.ResultSet {
	if !data.Exists() || !data.IsArray() {
		return nil
	}

	rs := &models.ResultSet{}
	data.ForEach(func(_, rowVal gjson.Result) bool {
		row := models.Row{}
		rowVal.ForEach(func(key, val gjson.Result) bool {
			if len(rs.Rows) == 0 {
				rs.Columns = append(rs.Columns, key.String())
			}
			row[key.String()] = scalar(val)
			return true
		})
		rs.Rows = append(rs.Rows, row)
		return true
	})

	if len(rs.Rows) == 0 {
		return nil
	}
	return rs
}

// scalar converts a gjson value to nil, string, float64 or bool.
func scalar(val gjson.Result) any {
	switch val.Type {
	case gjson.Null:
		return nil
	case gjson.True:
		return true
	case gjson.False:
		return false
	case gjson.Number:
		return val.Float()
	default:
		return val.String()
	}
}

func stringSlice(val gjson.Result) []string {
	if !val.IsArray() {
		return nil
	}
	var out []string
	val.ForEach(func(_, v gjson.Result) bool {
		out = append(out, v.String())
		return true
	})
	return out
}
