// internal/ingest/coerce.go
package ingest

import (
	"strconv"
	"strings"
)

var missingMarkers = map[string]bool{
	"":     true,
	"-":    true,
	"n/a":  true,
	"na":   true,
	"nan":  true,
	"null": true,
	"brak": true,
}

// CoerceInt converts an arbitrary textual value to an integer. A comma is
// treated as a decimal separator and fractional values are truncated toward
// zero. Missing markers and unparseable input yield def; the function never
// fails.
func CoerceInt(value string, def int) int {
	v := strings.TrimSpace(value)
	if missingMarkers[strings.ToLower(v)] {
		return def
	}

	v = strings.ReplaceAll(v, ",", ".")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}

	return int(f)
}
