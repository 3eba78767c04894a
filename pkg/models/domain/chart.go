package domain

import "fmt"

// ChartKind is the chart type embedded next to a sheet's data.
type ChartKind string

const (
	ChartColumn ChartKind = "column"
	ChartPie    ChartKind = "pie"
	ChartLine   ChartKind = "line"
	ChartBar    ChartKind = "bar" // horizontal bars
)

// DataLabelKind selects which data labels a chart series shows.
type DataLabelKind string

const (
	DataLabelNone    DataLabelKind = "none"
	DataLabelValue   DataLabelKind = "value"
	DataLabelPercent DataLabelKind = "percent"
)

// ChartSpec is a declarative chart description. CategoryRange and ValueRange
// are absolute references into the owning sheet ("Sheet!$A$2:$A$8").
type ChartSpec struct {
	Kind          ChartKind
	SeriesName    string
	Title         string
	XAxisTitle    string
	YAxisTitle    string
	CategoryRange string
	ValueRange    string
	DataLabels    DataLabelKind
	MarkerSymbol  string  // line charts only
	LineWidth     float64 // line charts only, in points
	Style         int
	Width         uint   // pixels
	Height        uint   // pixels
	Anchor        string // top-left cell of the chart frame, e.g. "D2"
}

// Validate rejects charts with empty or degenerate data ranges.
func (c *ChartSpec) Validate() error {
	if c.CategoryRange == "" || c.ValueRange == "" {
		return fmt.Errorf("chart %q: %w", c.Title, ErrInvalidChartRange)
	}
	if c.Anchor == "" {
		return fmt.Errorf("chart %q: missing anchor: %w", c.Title, ErrInvalidChartRange)
	}
	return nil
}
