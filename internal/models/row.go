package models

// Row is a single result row: column name to scalar value (or nil).
// Values arrive from JSON, so they are strings, float64 numbers, bools
// or nil.
type Row map[string]any

// ResultSet is an ordered sequence of rows plus the column order derived
// from the first row at decode time. JSON objects do not preserve key
// order once unmarshalled into a map, so the decoder records it here.
//
// The column set comes from the first row only. Rows carrying extra keys
// render without them and rows missing a column render "-" for it. That
// mirrors the backend contract, which promises homogeneous rows.
type ResultSet struct {
	Columns []string
	Rows    []Row
}

// Empty reports whether the result set has no rows.
func (rs *ResultSet) Empty() bool {
	return rs == nil || len(rs.Rows) == 0
}

// Len returns the number of rows.
func (rs *ResultSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.Rows)
}

// RawRows returns the rows as plain maps for re-serialization in
// chart/export requests.
func (rs *ResultSet) RawRows() []map[string]any {
	if rs == nil {
		return nil
	}
	out := make([]map[string]any, len(rs.Rows))
	for i, r := range rs.Rows {
		out[i] = map[string]any(r)
	}
	return out
}
