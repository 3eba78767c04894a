package excel

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
)

const (
	rawSheetName   = "Sales_Data"
	rawHeaderColor = "D7E4BC"

	moneyFmt = "$#,##0.00"
	dateFmt  = "yyyy-mm-dd"
)

var rawHeaders = []string{"Date", "Product", "Region", "Channel", "Units", "Unit_Price", "Total_Sale"}

// WriteRecords renders the raw-data workbook: a single formatted sheet with
// styled headers, typed column formats and an autofilter over the full data
// range. Returns the written file path.
func WriteRecords(ctx context.Context, records domain.RecordSet, path string) (string, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().Str("path", path).Int("records", len(records)).Msg("writing sales data workbook")

	f := excelize.NewFile()
	defer closeWorkbook(ctx, f, path)

	if err := f.SetSheetName("Sheet1", rawSheetName); err != nil {
		return "", fmt.Errorf("failed to name sheet %s: %w", rawSheetName, err)
	}

	headerStyle, err := newHeaderStyle(f, rawHeaderColor, false)
	if err != nil {
		return "", err
	}
	borderStyle, err := f.NewStyle(&excelize.Style{Border: cellBorder()})
	if err != nil {
		return "", fmt.Errorf("failed to create cell style: %w", err)
	}
	moneyStyle, err := newNumFmtStyle(f, moneyFmt)
	if err != nil {
		return "", err
	}
	dateStyle, err := newNumFmtStyle(f, dateFmt)
	if err != nil {
		return "", err
	}

	for i, h := range rawHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(rawSheetName, cell, h); err != nil {
			return "", fmt.Errorf("failed to write header %s: %w", h, err)
		}
	}

	for i, r := range records {
		row := i + 2
		values := []any{r.Date, r.Product, r.Region, r.Channel, r.Units,
			r.UnitPrice.InexactFloat64(), r.Total.InexactFloat64()}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(rawSheetName, cell, v); err != nil {
				return "", fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
		}
	}

	lastRow := len(records) + 1
	if err := f.SetCellStyle(rawSheetName, "A1", "G1", headerStyle); err != nil {
		return "", fmt.Errorf("failed to style header row: %w", err)
	}
	if lastRow > 1 {
		styles := []struct {
			from, to string
			style    int
		}{
			{"A", "A", dateStyle},
			{"B", "E", borderStyle},
			{"F", "G", moneyStyle},
		}
		for _, s := range styles {
			first := fmt.Sprintf("%s2", s.from)
			last := fmt.Sprintf("%s%d", s.to, lastRow)
			if err := f.SetCellStyle(rawSheetName, first, last, s.style); err != nil {
				return "", fmt.Errorf("failed to style columns %s:%s: %w", s.from, s.to, err)
			}
		}
	}

	widths := []struct {
		from, to string
		width    float64
	}{
		{"A", "A", 12}, {"B", "D", 15}, {"E", "E", 8}, {"F", "G", 12},
	}
	for _, w := range widths {
		if err := f.SetColWidth(rawSheetName, w.from, w.to, w.width); err != nil {
			return "", fmt.Errorf("failed to set column width %s:%s: %w", w.from, w.to, err)
		}
	}

	filterRange := fmt.Sprintf("A1:G%d", lastRow)
	if err := f.AutoFilter(rawSheetName, filterRange, nil); err != nil {
		return "", fmt.Errorf("failed to set autofilter on %s: %w", filterRange, err)
	}

	return save(ctx, f, path)
}

// WriteReport renders one worksheet per SheetSpec, in order, embedding the
// chart at its anchor cell when present. Returns the written file path.
func WriteReport(ctx context.Context, sheets []domain.SheetSpec, path string) (string, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().Str("path", path).Int("sheets", len(sheets)).Msg("writing summary report workbook")

	f := excelize.NewFile()
	defer closeWorkbook(ctx, f, path)

	for i, spec := range sheets {
		if err := domain.ValidateSheetName(spec.Name); err != nil {
			return "", err
		}
		if i == 0 {
			if err := f.SetSheetName("Sheet1", spec.Name); err != nil {
				return "", fmt.Errorf("failed to name sheet %s: %w", spec.Name, err)
			}
		} else {
			if _, err := f.NewSheet(spec.Name); err != nil {
				return "", fmt.Errorf("failed to create sheet %s: %w", spec.Name, err)
			}
		}
		if err := renderSheet(f, spec); err != nil {
			return "", err
		}
	}

	return save(ctx, f, path)
}

func renderSheet(f *excelize.File, spec domain.SheetSpec) error {
	headerStyle, err := newHeaderStyle(f, spec.HeaderColor, true)
	if err != nil {
		return err
	}
	borderStyle, err := f.NewStyle(&excelize.Style{Border: cellBorder()})
	if err != nil {
		return fmt.Errorf("failed to create cell style: %w", err)
	}
	moneyStyle, err := newNumFmtStyle(f, moneyFmt)
	if err != nil {
		return err
	}
	dateStyle, err := newNumFmtStyle(f, dateFmt)
	if err != nil {
		return err
	}

	for ci, col := range spec.Columns {
		name, _ := excelize.ColumnNumberToName(ci + 1)

		cell, _ := excelize.CoordinatesToCellName(ci+1, 1)
		if err := f.SetCellValue(spec.Name, cell, col.Header); err != nil {
			return fmt.Errorf("failed to write header %s: %w", col.Header, err)
		}

		for ri, v := range col.Cells {
			cell, _ := excelize.CoordinatesToCellName(ci+1, ri+2)
			if err := f.SetCellValue(spec.Name, cell, v); err != nil {
				return fmt.Errorf("failed to write cell %s!%s: %w", spec.Name, cell, err)
			}
		}

		if err := f.SetColWidth(spec.Name, name, name, col.Width); err != nil {
			return fmt.Errorf("failed to set column width %s: %w", name, err)
		}

		if n := len(col.Cells); n > 0 {
			style := borderStyle
			switch col.Format {
			case domain.FormatCurrency:
				style = moneyStyle
			case domain.FormatDate:
				style = dateStyle
			}
			first := fmt.Sprintf("%s2", name)
			last := fmt.Sprintf("%s%d", name, n+1)
			if err := f.SetCellStyle(spec.Name, first, last, style); err != nil {
				return fmt.Errorf("failed to style column %s: %w", name, err)
			}
		}
	}

	if len(spec.Columns) > 0 {
		lastCol, _ := excelize.ColumnNumberToName(len(spec.Columns))
		if err := f.SetCellStyle(spec.Name, "A1", lastCol+"1", headerStyle); err != nil {
			return fmt.Errorf("failed to style header row of %s: %w", spec.Name, err)
		}
	}

	if spec.Chart != nil {
		if err := addChart(f, spec.Name, spec.Chart); err != nil {
			return err
		}
	}
	return nil
}

var chartTypes = map[domain.ChartKind]excelize.ChartType{
	domain.ChartColumn: excelize.Col,
	domain.ChartPie:    excelize.Pie,
	domain.ChartLine:   excelize.Line,
	domain.ChartBar:    excelize.Bar,
}

func addChart(f *excelize.File, sheet string, spec *domain.ChartSpec) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	kind, ok := chartTypes[spec.Kind]
	if !ok {
		return fmt.Errorf("chart %q: unsupported kind %q: %w", spec.Title, spec.Kind, domain.ErrInvalidChartRange)
	}

	series := excelize.ChartSeries{
		Name:       spec.SeriesName,
		Categories: spec.CategoryRange,
		Values:     spec.ValueRange,
	}
	if spec.MarkerSymbol != "" {
		series.Marker = excelize.ChartMarker{Symbol: spec.MarkerSymbol, Size: 5}
	}
	if spec.LineWidth > 0 {
		series.Line = excelize.ChartLine{Width: spec.LineWidth}
	}

	chart := &excelize.Chart{
		Type:      kind,
		Series:    []excelize.ChartSeries{series},
		Title:     []excelize.RichTextRun{{Text: spec.Title}},
		Dimension: excelize.ChartDimension{Width: spec.Width, Height: spec.Height},
		Legend:    excelize.ChartLegend{Position: "bottom"},
	}
	switch spec.DataLabels {
	case domain.DataLabelValue:
		chart.PlotArea.ShowVal = true
	case domain.DataLabelPercent:
		chart.PlotArea.ShowPercent = true
	}
	if spec.XAxisTitle != "" {
		chart.XAxis = excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: spec.XAxisTitle}}}
	}
	if spec.YAxisTitle != "" {
		chart.YAxis = excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: spec.YAxisTitle}}}
	}

	if err := f.AddChart(sheet, spec.Anchor, chart); err != nil {
		return fmt.Errorf("failed to add %s chart to %s: %w", spec.Kind, sheet, err)
	}
	return nil
}

func newHeaderStyle(f *excelize.File, color string, centered bool) (int, error) {
	style := &excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		Border: cellBorder(),
	}
	if centered {
		style.Alignment = &excelize.Alignment{Horizontal: "center"}
	}
	id, err := f.NewStyle(style)
	if err != nil {
		return 0, fmt.Errorf("failed to create header style: %w", err)
	}
	return id, nil
}

func newNumFmtStyle(f *excelize.File, numFmt string) (int, error) {
	fmtCopy := numFmt
	id, err := f.NewStyle(&excelize.Style{
		CustomNumFmt: &fmtCopy,
		Border:       cellBorder(),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create %q style: %w", numFmt, err)
	}
	return id, nil
}

func cellBorder() []excelize.Border {
	sides := []string{"left", "top", "right", "bottom"}
	border := make([]excelize.Border, 0, len(sides))
	for _, s := range sides {
		border = append(border, excelize.Border{Type: s, Color: "000000", Style: 1})
	}
	return border
}

// save creates the target directory when absent and writes the workbook.
// Failures are logged with the target path and operation, then propagated.
// No retry: local disk, a second attempt would hit the same condition.
func save(ctx context.Context, f *excelize.File, path string) (string, error) {
	logger := zerolog.Ctx(ctx)

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Error().Str("path", dir).Str("op", "mkdir").Err(err).Msg("failed to create output directory")
			return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		logger.Error().Str("path", path).Str("op", "save").Err(err).Msg("failed to write workbook")
		return "", fmt.Errorf("failed to write workbook %s: %w", path, err)
	}

	logger.Info().Str("path", path).Msg("workbook written")
	return path, nil
}

func closeWorkbook(ctx context.Context, f *excelize.File, path string) {
	if err := f.Close(); err != nil {
		zerolog.Ctx(ctx).Warn().Str("path", path).Err(err).Msg("failed to close workbook")
	}
}
