package excel

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
)

// ReadRecords loads a RecordSet from an existing raw-data workbook. The first
// row of the first sheet must carry the Date, Product, Region, Channel,
// Units, Unit_Price, Total_Sale headers; row order is preserved. Totals are
// recomputed from units and unit price so the record invariant holds even
// when the source column disagrees.
func ReadRecords(ctx context.Context, path string) (domain.RecordSet, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().Str("path", path).Msg("loading sales data workbook")

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer closeWorkbook(ctx, f, path)

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("workbook %s has no header row: %w", path, domain.ErrMissingColumn)
	}

	cols, err := headerIndex(rows[0])
	if err != nil {
		return nil, fmt.Errorf("workbook %s: %w", path, err)
	}

	records := make(domain.RecordSet, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		rec, err := parseRow(row, cols)
		if err != nil {
			return nil, fmt.Errorf("workbook %s row %d: %w", path, i+2, err)
		}
		records = append(records, rec)
	}

	logger.Debug().Int("records", len(records)).Msg("sales data loaded")
	return records, nil
}

func headerIndex(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}
	for _, h := range rawHeaders {
		if _, ok := cols[h]; !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrMissingColumn, h)
		}
	}
	return cols, nil
}

func parseRow(row []string, cols map[string]int) (domain.SalesRecord, error) {
	var zero domain.SalesRecord

	date, err := parseDate(cell(row, cols["Date"]))
	if err != nil {
		return zero, err
	}
	units, err := strconv.Atoi(cell(row, cols["Units"]))
	if err != nil {
		return zero, fmt.Errorf("%w: units %q", domain.ErrMalformedRecord, cell(row, cols["Units"]))
	}
	price, err := parseMoney(cell(row, cols["Unit_Price"]))
	if err != nil {
		return zero, err
	}

	return domain.NewSalesRecord(
		date,
		cell(row, cols["Product"]),
		cell(row, cols["Region"]),
		cell(row, cols["Channel"]),
		units,
		price,
	), nil
}

// GetRows trims trailing empty cells, so a row can be shorter than the header.
func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

var dateLayouts = []string{"2006-01-02", "01-02-06", "2006-01-02 15:04:05"}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: date %q", domain.ErrMalformedRecord, s)
}

// parseMoney accepts both raw numbers and currency-formatted cell values
// ("$1,234.56") as returned for styled columns.
func parseMoney(s string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer("$", "", ",", "").Replace(s)
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: amount %q", domain.ErrMalformedRecord, s)
	}
	return d, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
