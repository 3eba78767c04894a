package domain

import (
	"fmt"
	"strings"
)

// FormatKind selects the cell number format applied to a column.
type FormatKind string

const (
	FormatPlain    FormatKind = "plain"
	FormatCurrency FormatKind = "currency"
	FormatDate     FormatKind = "date"
	FormatPercent  FormatKind = "percent"
)

// Column is one column of a sheet: header, fixed width, cell format and the
// cell values in row order.
type Column struct {
	Header string
	Width  float64
	Format FormatKind
	Cells  []any
}

// SheetSpec describes one worksheet of the report: name, header styling,
// tabular columns and an optional embedded chart.
type SheetSpec struct {
	Name        string
	HeaderColor string // hex RGB fill for the header row, e.g. "B8CCE4"
	Columns     []Column
	Chart       *ChartSpec
}

// Rows returns the number of data rows (excluding the header row).
func (s SheetSpec) Rows() int {
	if len(s.Columns) == 0 {
		return 0
	}
	return len(s.Columns[0].Cells)
}

const maxSheetNameLen = 31

// invalid in xlsx sheet names
const forbiddenSheetChars = `:\/?*[]`

// ValidateSheetName enforces the xlsx naming rules: 1-31 characters, none of
// : \ / ? * [ ].
func ValidateSheetName(name string) error {
	if name == "" || len(name) > maxSheetNameLen {
		return fmt.Errorf("sheet %q: %w", name, ErrInvalidSheetName)
	}
	if strings.ContainsAny(name, forbiddenSheetChars) {
		return fmt.Errorf("sheet %q: %w", name, ErrInvalidSheetName)
	}
	return nil
}
