package domain

import "errors"

// Sentinel errors for the pipeline. Callers match with errors.Is; packages
// wrap them with file, column or row context.
var (
	// ErrNoRecords is returned when an empty RecordSet reaches the analyzer.
	// Mean and max are undefined over zero records.
	ErrNoRecords = errors.New("no records to analyze")

	// ErrMissingColumn is returned when a source file lacks a required header.
	ErrMissingColumn = errors.New("missing required column")

	// ErrMalformedRecord is returned when a source row cannot be parsed.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrInvalidSheetName is returned for sheet names xlsx would reject.
	ErrInvalidSheetName = errors.New("invalid sheet name")

	// ErrInvalidChartRange is returned for empty or degenerate chart ranges.
	ErrInvalidChartRange = errors.New("invalid chart range")
)
