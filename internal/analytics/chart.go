package analytics

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dmartins/dbchat/internal/models"
)

// RenderedChart is a chart spec laid out for the terminal. At most one
// rendered chart exists per panel at a time; callers must Release the
// old one before installing a replacement and on teardown.
type RenderedChart struct {
	spec     *models.ChartSpec
	frame    string
	released bool
}

var (
	chartTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	chartLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	chartBarStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	chartValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// Render lays a chart spec out at the given width.
func Render(spec *models.ChartSpec, width int) *RenderedChart {
	if width < 30 {
		width = 30
	}

	c := &RenderedChart{spec: spec}

	switch spec.Type {
	case models.ChartLine, models.ChartScatter:
		c.frame = renderLine(spec, width)
	case models.ChartPie, models.ChartDoughnut:
		c.frame = renderProportions(spec, width)
	default:
		c.frame = renderBars(spec, width)
	}

	return c
}

// View returns the chart's frame. A released chart renders nothing.
func (c *RenderedChart) View() string {
	if c == nil || c.released {
		return ""
	}
	return c.frame
}

// Released reports whether the chart has been released.
func (c *RenderedChart) Released() bool {
	return c.released
}

// Release frees the chart's frame. Subsequent View calls return the
// empty string. Release is idempotent.
func (c *RenderedChart) Release() {
	if c == nil {
		return
	}
	c.released = true
	c.frame = ""
}

func firstDataset(spec *models.ChartSpec) *models.Dataset {
	if len(spec.Datasets) == 0 {
		return nil
	}
	return &spec.Datasets[0]
}

func renderBars(spec *models.ChartSpec, width int) string {
	ds := firstDataset(spec)
	if ds == nil || len(ds.Data) == 0 {
		return chartLabelStyle.Render("(no data points)")
	}

	maxVal := 0.0
	for _, v := range ds.Data {
		if math.Abs(v) > maxVal {
			maxVal = math.Abs(v)
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	labelWidth := 0
	for i := range ds.Data {
		if w := len(labelFor(spec, i)); w > labelWidth {
			labelWidth = w
		}
	}
	if labelWidth > 20 {
		labelWidth = 20
	}

	barSpace := width - labelWidth - 14
	if barSpace < 8 {
		barSpace = 8
	}

	var b strings.Builder
	b.WriteString(titleLine(spec))
	for i, v := range ds.Data {
		label := truncate(labelFor(spec, i), labelWidth)
		barLen := int(math.Round(math.Abs(v) / maxVal * float64(barSpace)))
		if barLen == 0 && v != 0 {
			barLen = 1
		}
		bar := chartBarStyle.Render(strings.Repeat("█", barLen))
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			chartLabelStyle.Render(fmt.Sprintf("%*s", labelWidth, label)),
			bar,
			chartValueStyle.Render(trimFloat(v)),
		))
	}
	return b.String()
}

func renderLine(spec *models.ChartSpec, width int) string {
	ds := firstDataset(spec)
	if ds == nil || len(ds.Data) == 0 {
		return chartLabelStyle.Render("(no data points)")
	}

	minVal, maxVal := ds.Data[0], ds.Data[0]
	for _, v := range ds.Data {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	span := maxVal - minVal
	if span == 0 {
		span = 1
	}

	var spark strings.Builder
	for _, v := range ds.Data {
		idx := int((v - minVal) / span * float64(len(sparkRunes)-1))
		spark.WriteRune(sparkRunes[idx])
	}

	var b strings.Builder
	b.WriteString(titleLine(spec))
	b.WriteString(chartBarStyle.Render(spark.String()))
	b.WriteString("\n")
	b.WriteString(chartLabelStyle.Render(fmt.Sprintf("min %s  max %s  points %d",
		trimFloat(minVal), trimFloat(maxVal), len(ds.Data))))
	b.WriteString("\n")
	return b.String()
}

func renderProportions(spec *models.ChartSpec, width int) string {
	ds := firstDataset(spec)
	if ds == nil || len(ds.Data) == 0 {
		return chartLabelStyle.Render("(no data points)")
	}

	total := 0.0
	for _, v := range ds.Data {
		total += math.Abs(v)
	}
	if total == 0 {
		total = 1
	}

	barSpace := width - 32
	if barSpace < 8 {
		barSpace = 8
	}

	var b strings.Builder
	b.WriteString(titleLine(spec))
	for i, v := range ds.Data {
		share := math.Abs(v) / total
		barLen := int(math.Round(share * float64(barSpace)))
		label := truncate(labelFor(spec, i), 18)
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			chartLabelStyle.Render(fmt.Sprintf("%18s", label)),
			chartBarStyle.Render(strings.Repeat("█", barLen)),
			chartValueStyle.Render(fmt.Sprintf("%.1f%%", share*100)),
		))
	}
	return b.String()
}

func titleLine(spec *models.ChartSpec) string {
	title := string(spec.Type)
	if ds := firstDataset(spec); ds != nil && ds.Label != "" {
		title = ds.Label
	}
	return chartTitleStyle.Render(title) + "\n"
}

func labelFor(spec *models.ChartSpec, i int) string {
	if i < len(spec.Labels) {
		return spec.Labels[i]
	}
	return fmt.Sprintf("#%d", i+1)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

func trimFloat(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}
