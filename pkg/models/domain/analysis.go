package domain

import "github.com/shopspring/decimal"

// GroupTotal is one entry of a sorted group breakdown.
type GroupTotal struct {
	Key   string
	Total decimal.Decimal
}

// UnitCount is one entry of a unit-volume breakdown.
type UnitCount struct {
	Key   string
	Units int
}

// WeekTotal is one entry of the weekly trend, keyed by ISO week number.
type WeekTotal struct {
	Week  int
	Total decimal.Decimal
}

// Analysis holds every aggregate computed over a RecordSet. Breakdown slices
// are sorted descending by value, ties in first-seen key order; WeeklySales is
// sorted ascending by week number. All amounts are rounded to 2 decimal
// places once, after aggregation.
type Analysis struct {
	TotalSales decimal.Decimal
	AvgSale    decimal.Decimal
	MaxSale    decimal.Decimal

	ProductSales    []GroupTotal
	RegionSales     []GroupTotal
	ChannelSales    []GroupTotal
	UnitsByProduct  []UnitCount
	AvgSaleByRegion []GroupTotal
	WeeklySales     []WeekTotal
}

// TopProduct returns the best-selling product, or "" when there is none.
func (a *Analysis) TopProduct() string {
	if len(a.ProductSales) == 0 {
		return ""
	}
	return a.ProductSales[0].Key
}

// TopRegion returns the top-performing region, or "" when there is none.
func (a *Analysis) TopRegion() string {
	if len(a.RegionSales) == 0 {
		return ""
	}
	return a.RegionSales[0].Key
}

// TopChannel returns the best sales channel, or "" when there is none.
func (a *Analysis) TopChannel() string {
	if len(a.ChannelSales) == 0 {
		return ""
	}
	return a.ChannelSales[0].Key
}
