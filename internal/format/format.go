// Package format converts heterogeneous result cell values into display
// strings.
package format

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// dateLayout matches the short locale date produced in the web UI
// (toLocaleDateString, en-US).
const dateLayout = "1/2/2006"

var printer = message.NewPrinter(language.AmericanEnglish)

// dateLayouts are the string shapes treated as calendar dates, broadest
// last. The year-only layout intentionally classifies strings like
// "2021" as dates. That misclassification is a known, compatibility
// -preserving heuristic, not a guaranteed-correct classifier; tests pin
// it.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123,  // "Mon, 02 Jan 2006 15:04:05 GMT"
	time.RFC1123Z,
	time.RFC822,
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2006",
}

// Cell converts a single result value into its display string. It is
// total: any input yields a string, never an error.
//
// Rules: nil is "-"; dates (time.Time values or date-parseable strings,
// including "GMT" strings) render as a locale date; integral numbers are
// grouped; fractional numbers get two decimals; booleans are Yes/No;
// everything else uses its natural string form.
func Cell(v any) string {
	if v == nil {
		return "-"
	}

	switch val := v.(type) {
	case time.Time:
		return val.Format(dateLayout)
	case string:
		if t, ok := parseDate(val); ok {
			return t.Format(dateLayout)
		}
		return val
	case bool:
		if val {
			return "Yes"
		}
		return "No"
	case float64:
		return formatFloat(val)
	case float32:
		return formatFloat(float64(val))
	case int:
		return printer.Sprintf("%d", val)
	case int32:
		return printer.Sprintf("%d", val)
	case int64:
		return printer.Sprintf("%d", val)
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return printer.Sprintf("%d", i)
		}
		if f, err := val.Float64(); err == nil {
			return formatFloat(f)
		}
		return val.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func formatFloat(f float64) string {
	if f == math.Trunc(f) && !math.IsInf(f, 0) && math.Abs(f) < 1e15 {
		return printer.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%.2f", f)
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
