package domain

import (
	"fmt"
	"strings"
)

// SchemaError rejects an uploaded file outright: wrong shape, missing
// required columns, or no recognizable quantity column. Nothing from the
// file is persisted when a SchemaError is returned.
type SchemaError struct {
	Reason           string
	MissingFields    []string
	AvailableHeaders []string
}

func (e *SchemaError) Error() string {
	msg := e.Reason
	if len(e.MissingFields) > 0 {
		msg = fmt.Sprintf("missing required columns: %s", strings.Join(e.MissingFields, ", "))
	}
	if len(e.AvailableHeaders) > 0 {
		msg += fmt.Sprintf(" (available columns: %s)", strings.Join(e.AvailableHeaders, ", "))
	}
	return msg
}

// RowError records one malformed row inside an otherwise valid file. The row
// is skipped; the rest of the batch still commits.
type RowError struct {
	Row     int    `json:"row"` // 1-based index within the file body
	Message string `json:"message"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// ReconcileResult reports the outcome of applying one upload batch.
type ReconcileResult struct {
	Processed int        `json:"processed"`
	Skipped   int        `json:"skipped"`
	RowErrors []RowError `json:"row_errors,omitempty"`
	Committed bool       `json:"committed"`
}

// Warning returns a short summary of row-level failures, listing at most the
// first five, or "" when the batch was clean.
func (r ReconcileResult) Warning() string {
	if len(r.RowErrors) == 0 {
		return ""
	}

	shown := r.RowErrors
	if len(shown) > 5 {
		shown = shown[:5]
	}
	parts := make([]string, 0, len(shown))
	for _, re := range shown {
		parts = append(parts, re.Error())
	}

	return fmt.Sprintf("some rows were not loaded: %s", strings.Join(parts, "; "))
}
