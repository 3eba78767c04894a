package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesRecord is a single sales transaction. Total is derived at construction
// time and never recomputed afterwards.
type SalesRecord struct {
	Date      time.Time
	Product   string
	Region    string
	Channel   string
	Units     int
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
}

// NewSalesRecord builds a record with Total = round(units * unitPrice, 2).
func NewSalesRecord(date time.Time, product, region, channel string, units int, unitPrice decimal.Decimal) SalesRecord {
	return SalesRecord{
		Date:      date,
		Product:   product,
		Region:    region,
		Channel:   channel,
		Units:     units,
		UnitPrice: unitPrice,
		Total:     unitPrice.Mul(decimal.NewFromInt(int64(units))).Round(2),
	}
}

// ISOWeek returns the ISO-8601 calendar week number of the record date.
func (r SalesRecord) ISOWeek() int {
	_, week := r.Date.ISOWeek()
	return week
}

// RecordSet is an ordered sequence of sales records. Order is irrelevant for
// aggregation but preserved for raw-data sheets.
type RecordSet []SalesRecord

// Dimension identifies a grouping axis over a RecordSet.
type Dimension string

const (
	DimensionProduct Dimension = "product"
	DimensionRegion  Dimension = "region"
	DimensionChannel Dimension = "channel"
)

// Key returns the record's value for the dimension.
func (d Dimension) Key(r SalesRecord) string {
	switch d {
	case DimensionProduct:
		return r.Product
	case DimensionRegion:
		return r.Region
	case DimensionChannel:
		return r.Channel
	}
	return ""
}
