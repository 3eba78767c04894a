package report

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/services/analysis"
)

func sampleAnalysis(t *testing.T) *domain.Analysis {
	t.Helper()

	day := func(s string) time.Time {
		d, err := time.Parse("2006-01-02", s)
		require.NoError(t, err)
		return d
	}
	records := domain.RecordSet{
		domain.NewSalesRecord(day("2024-01-01"), "Laptop", "North", "Online", 2, decimal.NewFromFloat(1000)),
		domain.NewSalesRecord(day("2024-01-08"), "Mouse", "South", "Retail", 5, decimal.NewFromFloat(19.99)),
		domain.NewSalesRecord(day("2024-01-09"), "Monitor", "East", "Distributor", 1, decimal.NewFromFloat(350.50)),
		domain.NewSalesRecord(day("2024-01-15"), "Laptop", "West", "Online", 1, decimal.NewFromFloat(1234.56)),
	}

	a, err := analysis.Analyze(context.Background(), records)
	require.NoError(t, err)
	return a
}

func TestBuild_SheetOrderAndNames(t *testing.T) {
	sheets, err := Build(sampleAnalysis(t))
	require.NoError(t, err)

	var names []string
	for _, s := range sheets {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"Summary", "Product_Sales", "Regional_Sales", "Weekly_Trend", "Channel_Sales"}, names)
}

func TestBuild_SummarySheet(t *testing.T) {
	a := sampleAnalysis(t)
	sheets, err := Build(a)
	require.NoError(t, err)

	summary := sheets[0]
	assert.Nil(t, summary.Chart)
	assert.Equal(t, "B8CCE4", summary.HeaderColor)
	require.Len(t, summary.Columns, 2)
	assert.Equal(t, "Metric", summary.Columns[0].Header)
	assert.Equal(t, "Value", summary.Columns[1].Header)
	assert.Equal(t, 6, summary.Rows())

	values := summary.Columns[1].Cells
	assert.Equal(t, Currency(a.TotalSales), values[0])
	assert.Equal(t, Currency(a.AvgSale), values[1])
	assert.Equal(t, Currency(a.MaxSale), values[2])
	assert.Equal(t, a.TopProduct(), values[3])
	assert.Equal(t, a.TopRegion(), values[4])
	assert.Equal(t, a.TopChannel(), values[5])
}

func TestBuild_ProductSheetChart(t *testing.T) {
	sheets, err := Build(sampleAnalysis(t))
	require.NoError(t, err)

	product := sheets[1]
	require.NotNil(t, product.Chart)
	c := product.Chart
	assert.Equal(t, domain.ChartColumn, c.Kind)
	assert.Equal(t, "Sales by Product", c.Title)
	assert.Equal(t, "Product", c.XAxisTitle)
	assert.Equal(t, "Sales ($)", c.YAxisTitle)
	assert.Equal(t, domain.DataLabelValue, c.DataLabels)
	assert.Equal(t, "D2", c.Anchor)

	// Three distinct products -> rows 2 through 4.
	assert.Equal(t, "Product_Sales!$A$2:$A$4", c.CategoryRange)
	assert.Equal(t, "Product_Sales!$B$2:$B$4", c.ValueRange)
}

func TestBuild_RegionalPercentagesSumTo100(t *testing.T) {
	sheets, err := Build(sampleAnalysis(t))
	require.NoError(t, err)

	region := sheets[2]
	require.Len(t, region.Columns, 3)
	assert.Equal(t, "Percentage", region.Columns[2].Header)
	assert.Equal(t, domain.FormatPercent, region.Columns[2].Format)

	sum := 0.0
	for _, v := range region.Columns[2].Cells {
		s, ok := v.(string)
		require.True(t, ok)
		require.True(t, strings.HasSuffix(s, "%"), "percentage %q lacks %% suffix", s)
		pct, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		require.NoError(t, err)
		sum += pct
	}
	assert.InDelta(t, 100.0, sum, 0.011)

	require.NotNil(t, region.Chart)
	assert.Equal(t, domain.ChartPie, region.Chart.Kind)
	assert.Equal(t, domain.DataLabelPercent, region.Chart.DataLabels)
	assert.Equal(t, "E2", region.Chart.Anchor)
}

func TestBuild_WeeklyTrendChart(t *testing.T) {
	sheets, err := Build(sampleAnalysis(t))
	require.NoError(t, err)

	weekly := sheets[3]
	require.NotNil(t, weekly.Chart)
	c := weekly.Chart
	assert.Equal(t, domain.ChartLine, c.Kind)
	assert.Equal(t, "circle", c.MarkerSymbol)
	assert.Equal(t, 2.5, c.LineWidth)
	assert.Equal(t, "Week Number", c.XAxisTitle)
	assert.Equal(t, "Total Sales ($)", c.YAxisTitle)
}

func TestBuild_ChannelSheetChart(t *testing.T) {
	sheets, err := Build(sampleAnalysis(t))
	require.NoError(t, err)

	channel := sheets[4]
	require.NotNil(t, channel.Chart)
	assert.Equal(t, domain.ChartBar, channel.Chart.Kind)
	assert.Equal(t, domain.DataLabelValue, channel.Chart.DataLabels)
	assert.Len(t, channel.Columns[0].Cells, 3) // three channels in the sample

	for _, col := range channel.Columns {
		assert.Equal(t, channel.Rows(), len(col.Cells))
	}
}

func TestBuild_Deterministic(t *testing.T) {
	a := sampleAnalysis(t)

	first, err := Build(a)
	require.NoError(t, err)
	second, err := Build(a)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCurrency(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{12.3, "$12.30"},
		{1234.56, "$1,234.56"},
		{1234567.89, "$1,234,567.89"},
		{-9876.5, "-$9,876.50"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Currency(decimal.NewFromFloat(tc.in)))
	}
}
