package export

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
)

func TestReporter_Handle(t *testing.T) {
	a := &domain.Analysis{
		TotalSales: decimal.NewFromFloat(3370.45),
		AvgSale:    decimal.NewFromFloat(1123.48),
		MaxSale:    decimal.NewFromFloat(2000),
		ProductSales: []domain.GroupTotal{
			{Key: "Laptop", Total: decimal.NewFromFloat(2000)},
			{Key: "Monitor", Total: decimal.NewFromFloat(1370.45)},
		},
		RegionSales: []domain.GroupTotal{
			{Key: "North", Total: decimal.NewFromFloat(3370.45)},
		},
		ChannelSales: []domain.GroupTotal{
			{Key: "Online", Total: decimal.NewFromFloat(3370.45)},
		},
	}

	var buf bytes.Buffer
	reporter := NewReporter(&buf)
	require.NoError(t, reporter.Handle(a))

	out := buf.String()
	assert.Contains(t, out, "Total Sales: $3,370.45")
	assert.Contains(t, out, "Best-selling product: Laptop ($2,000.00)")
	assert.Contains(t, out, "Top-performing region: North ($3,370.45)")
	assert.Contains(t, out, "Best sales channel: Online ($3,370.45)")
}

func TestReporter_HandleEmptyBreakdowns(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(&buf)

	require.NoError(t, reporter.Handle(&domain.Analysis{}))
	assert.Contains(t, buf.String(), "Total Sales: $0.00")
	assert.NotContains(t, buf.String(), "Best-selling product")
}
