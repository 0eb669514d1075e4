// Package models contains data types and constants for the database
// assistant backend API.
package models

// API endpoint paths, relative to the configured backend base URL.
const (
	EndpointAskSQL   = "/api/nl-to-sql"
	EndpointAskMongo = "/api/nl-to-mongodb"
	EndpointChart    = "/api/analytics/chart"
	EndpointExport   = "/api/analytics/export"
	EndpointSchema   = "/api/schema"
)

// Engine selects which question-answering endpoint a session talks to.
type Engine string

const (
	EngineSQL   Engine = "sql"
	EngineMongo Engine = "mongodb"
)

// ParseEngine returns the Engine for a config/flag value, defaulting to SQL.
func ParseEngine(s string) Engine {
	switch s {
	case "mongo", "mongodb", "nosql":
		return EngineMongo
	default:
		return EngineSQL
	}
}

// ChartType identifies the chart rendering requested from the analytics
// endpoint. Auto lets the backend pick a suitable type.
type ChartType string

const (
	ChartAuto     ChartType = "auto"
	ChartBar      ChartType = "bar"
	ChartLine     ChartType = "line"
	ChartPie      ChartType = "pie"
	ChartDoughnut ChartType = "doughnut"
	ChartScatter  ChartType = "scatter"
)

// ChartTypes lists the selectable chart types in panel cycling order.
func ChartTypes() []ChartType {
	return []ChartType{ChartAuto, ChartBar, ChartLine, ChartPie, ChartDoughnut, ChartScatter}
}

// ParseChartType normalizes a chart type string from the backend or user.
// Unknown or empty values fall back to Auto.
func ParseChartType(s string) ChartType {
	switch ChartType(s) {
	case ChartBar, ChartLine, ChartPie, ChartDoughnut, ChartScatter:
		return ChartType(s)
	default:
		return ChartAuto
	}
}

// ExportFormat identifies an analytics export file format.
type ExportFormat string

const (
	ExportCSV   ExportFormat = "csv"
	ExportExcel ExportFormat = "excel"
	ExportJSON  ExportFormat = "json"
)

// ExportFormats lists the supported formats in selector order.
func ExportFormats() []ExportFormat {
	return []ExportFormat{ExportCSV, ExportExcel, ExportJSON}
}

// Ext returns the file extension for the format.
func (f ExportFormat) Ext() string {
	if f == ExportExcel {
		return "xlsx"
	}
	return string(f)
}

// ParseExportFormat normalizes an export format string, defaulting to CSV.
func ParseExportFormat(s string) ExportFormat {
	switch ExportFormat(s) {
	case ExportExcel, ExportJSON:
		return ExportFormat(s)
	case "xlsx", "xls":
		return ExportExcel
	default:
		return ExportCSV
	}
}
