package format

import (
	"encoding/json"
	"testing"
	"time"
)

func TestCellNil(t *testing.T) {
	if got := Cell(nil); got != "-" {
		t.Errorf("Cell(nil) = %q, want %q", got, "-")
	}
}

func TestCellBool(t *testing.T) {
	if got := Cell(true); got != "Yes" {
		t.Errorf("Cell(true) = %q, want Yes", got)
	}
	if got := Cell(false); got != "No" {
		t.Errorf("Cell(false) = %q, want No", got)
	}
}

func TestCellNumbers(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"small int", 42, "42"},
		{"grouped int", 1234567, "1,234,567"},
		{"negative int", int64(-9876), "-9,876"},
		{"integral float", float64(1234), "1,234"},
		{"fractional float", 3.14159, "3.14"},
		{"fractional rounding", 2.999, "3.00"},
		{"zero", float64(0), "0"},
		{"json number int", json.Number("5000"), "5,000"},
		{"json number float", json.Number("1.5"), "1.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Cell(tt.in); got != tt.want {
				t.Errorf("Cell(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCellTime(t *testing.T) {
	ts := time.Date(2024, 3, 7, 15, 30, 0, 0, time.UTC)
	if got := Cell(ts); got != "3/7/2024" {
		t.Errorf("Cell(time.Time) = %q, want 3/7/2024", got)
	}
}

func TestCellDateStrings(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"iso date", "2024-01-15", "1/15/2024"},
		{"iso datetime", "2024-01-15 08:30:00", "1/15/2024"},
		{"rfc3339", "2024-01-15T08:30:00Z", "1/15/2024"},
		{"gmt string", "Mon, 15 Jan 2024 08:30:00 GMT", "1/15/2024"},
		{"slash date", "2024/01/15", "1/15/2024"},
		{"long month", "January 15, 2024", "1/15/2024"},
		{"plain text passes through", "hello world", "hello world"},
		{"empty string", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Cell(tt.in); got != tt.want {
				t.Errorf("Cell(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// A bare four-digit string parses as a year and renders as January 1st.
// This matches the long-standing display behavior; changing it would
// change what users see for year columns.
func TestCellYearStringHeuristic(t *testing.T) {
	if got := Cell("2021"); got != "1/1/2021" {
		t.Errorf("Cell(\"2021\") = %q, want 1/1/2021", got)
	}
}

func TestCellTotality(t *testing.T) {
	// Anything unknown stringifies rather than erroring.
	inputs := []any{
		struct{ X int }{1},
		[]int{1, 2},
		map[string]int{"a": 1},
		int8(7),
	}
	for _, in := range inputs {
		if got := Cell(in); got == "" {
			t.Errorf("Cell(%#v) returned empty string", in)
		}
	}
}
