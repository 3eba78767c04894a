package report

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
)

// Header fill colors, one per sheet so each view is recognizable at a glance.
const (
	summaryColor = "B8CCE4"
	productColor = "E6B8B7"
	regionColor  = "B7DEE8"
	weeklyColor  = "CCC0DA"
	channelColor = "D8E4BC"
)

// Build maps an Analysis onto the five report sheets in fixed order:
// Summary, Product_Sales, Regional_Sales, Weekly_Trend, Channel_Sales.
// It is pure: the same Analysis always yields identical specs.
func Build(a *domain.Analysis) ([]domain.SheetSpec, error) {
	sheets := []domain.SheetSpec{
		summarySheet(a),
		productSheet(a),
		regionSheet(a),
		weeklySheet(a),
		channelSheet(a),
	}

	for i := range sheets {
		if err := domain.ValidateSheetName(sheets[i].Name); err != nil {
			return nil, err
		}
		if c := sheets[i].Chart; c != nil {
			if err := c.Validate(); err != nil {
				return nil, err
			}
		}
	}
	return sheets, nil
}

func summarySheet(a *domain.Analysis) domain.SheetSpec {
	return domain.SheetSpec{
		Name:        "Summary",
		HeaderColor: summaryColor,
		Columns: []domain.Column{
			{Header: "Metric", Width: 30, Format: domain.FormatPlain, Cells: []any{
				"Total Sales",
				"Average Sale per Transaction",
				"Maximum Sale",
				"Top Product",
				"Top Region",
				"Top Channel",
			}},
			{Header: "Value", Width: 20, Format: domain.FormatPlain, Cells: []any{
				Currency(a.TotalSales),
				Currency(a.AvgSale),
				Currency(a.MaxSale),
				a.TopProduct(),
				a.TopRegion(),
				a.TopChannel(),
			}},
		},
	}
}

func productSheet(a *domain.Analysis) domain.SheetSpec {
	keys, totals := splitGroups(a.ProductSales)
	return domain.SheetSpec{
		Name:        "Product_Sales",
		HeaderColor: productColor,
		Columns: []domain.Column{
			{Header: "Product", Width: 15, Format: domain.FormatPlain, Cells: keys},
			{Header: "Total Sales", Width: 12, Format: domain.FormatCurrency, Cells: totals},
		},
		Chart: &domain.ChartSpec{
			Kind:          domain.ChartColumn,
			SeriesName:    "Sales by Product",
			Title:         "Sales by Product",
			XAxisTitle:    "Product",
			YAxisTitle:    "Sales ($)",
			CategoryRange: dataRange("Product_Sales", "A", len(keys)),
			ValueRange:    dataRange("Product_Sales", "B", len(keys)),
			DataLabels:    domain.DataLabelValue,
			Style:         11,
			Width:         720,
			Height:        400,
			Anchor:        "D2",
		},
	}
}

func regionSheet(a *domain.Analysis) domain.SheetSpec {
	keys, totals := splitGroups(a.RegionSales)

	// Percentage of the grand total per region, against the sum of the
	// rounded region totals so the shares add up to 100.
	grand := decimal.Zero
	for _, g := range a.RegionSales {
		grand = grand.Add(g.Total)
	}
	shares := make([]any, 0, len(a.RegionSales))
	for _, g := range a.RegionSales {
		pct := decimal.Zero
		if !grand.IsZero() {
			pct = g.Total.Mul(decimal.NewFromInt(100)).Div(grand).Round(2)
		}
		shares = append(shares, pct.StringFixed(2)+"%")
	}

	return domain.SheetSpec{
		Name:        "Regional_Sales",
		HeaderColor: regionColor,
		Columns: []domain.Column{
			{Header: "Region", Width: 15, Format: domain.FormatPlain, Cells: keys},
			{Header: "Total Sales", Width: 12, Format: domain.FormatCurrency, Cells: totals},
			{Header: "Percentage", Width: 12, Format: domain.FormatPercent, Cells: shares},
		},
		Chart: &domain.ChartSpec{
			Kind:          domain.ChartPie,
			SeriesName:    "Sales by Region",
			Title:         "Sales by Region",
			CategoryRange: dataRange("Regional_Sales", "A", len(keys)),
			ValueRange:    dataRange("Regional_Sales", "B", len(keys)),
			DataLabels:    domain.DataLabelPercent,
			Style:         10,
			Width:         600,
			Height:        400,
			Anchor:        "E2",
		},
	}
}

func weeklySheet(a *domain.Analysis) domain.SheetSpec {
	weeks := make([]any, 0, len(a.WeeklySales))
	totals := make([]any, 0, len(a.WeeklySales))
	for _, w := range a.WeeklySales {
		weeks = append(weeks, w.Week)
		totals = append(totals, w.Total.InexactFloat64())
	}

	return domain.SheetSpec{
		Name:        "Weekly_Trend",
		HeaderColor: weeklyColor,
		Columns: []domain.Column{
			{Header: "Week", Width: 10, Format: domain.FormatPlain, Cells: weeks},
			{Header: "Total Sales", Width: 12, Format: domain.FormatCurrency, Cells: totals},
		},
		Chart: &domain.ChartSpec{
			Kind:          domain.ChartLine,
			SeriesName:    "Weekly Sales Trend",
			Title:         "Weekly Sales Trend",
			XAxisTitle:    "Week Number",
			YAxisTitle:    "Total Sales ($)",
			CategoryRange: dataRange("Weekly_Trend", "A", len(weeks)),
			ValueRange:    dataRange("Weekly_Trend", "B", len(weeks)),
			MarkerSymbol:  "circle",
			LineWidth:     2.5,
			Style:         12,
			Width:         720,
			Height:        400,
			Anchor:        "D2",
		},
	}
}

func channelSheet(a *domain.Analysis) domain.SheetSpec {
	keys, totals := splitGroups(a.ChannelSales)
	return domain.SheetSpec{
		Name:        "Channel_Sales",
		HeaderColor: channelColor,
		Columns: []domain.Column{
			{Header: "Channel", Width: 15, Format: domain.FormatPlain, Cells: keys},
			{Header: "Total Sales", Width: 12, Format: domain.FormatCurrency, Cells: totals},
		},
		Chart: &domain.ChartSpec{
			Kind:          domain.ChartBar,
			SeriesName:    "Sales by Channel",
			Title:         "Sales by Channel",
			XAxisTitle:    "Channel",
			YAxisTitle:    "Sales ($)",
			CategoryRange: dataRange("Channel_Sales", "A", len(keys)),
			ValueRange:    dataRange("Channel_Sales", "B", len(keys)),
			DataLabels:    domain.DataLabelValue,
			Style:         11,
			Width:         600,
			Height:        400,
			Anchor:        "D2",
		},
	}
}

func splitGroups(groups []domain.GroupTotal) (keys, totals []any) {
	keys = make([]any, 0, len(groups))
	totals = make([]any, 0, len(groups))
	for _, g := range groups {
		keys = append(keys, g.Key)
		totals = append(totals, g.Total.InexactFloat64())
	}
	return keys, totals
}

// dataRange builds the absolute reference for rows 2..n+1 of a column.
func dataRange(sheet, col string, rows int) string {
	return fmt.Sprintf("%s!$%s$2:$%s$%d", sheet, col, col, rows+1)
}

// Currency renders an amount as "$1,234.56".
func Currency(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	dot := strings.IndexByte(s, '.')
	whole, frac := s[:dot], s[dot:]
	var b strings.Builder
	for i, c := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}

	out := "$" + b.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}
