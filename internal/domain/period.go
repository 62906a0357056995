package domain

import "strings"

// PeriodType tags a sales batch with the window its rows cover. It is fixed
// when the batch is ingested and never reinterpreted afterwards.
type PeriodType string

const (
	// PeriodRolling30D marks a batch that represents the trailing 30 days.
	PeriodRolling30D PeriodType = "ROLLING_30D"
	// PeriodCalendarMonth marks a batch that represents one calendar month.
	PeriodCalendarMonth PeriodType = "CALENDAR_MONTH"
)

var periodTypeAliases = map[string]PeriodType{
	"rolling_30d":    PeriodRolling30D,
	"30d":            PeriodRolling30D,
	"30dni":          PeriodRolling30D,
	"last_30_days":   PeriodRolling30D,
	"calendar_month": PeriodCalendarMonth,
	"month":          PeriodCalendarMonth,
	"miesiac":        PeriodCalendarMonth,
}

// ParsePeriodType returns the period type for a given label (case-insensitive).
func ParsePeriodType(label string) (PeriodType, bool) {
	pt, ok := periodTypeAliases[strings.ToLower(strings.TrimSpace(label))]

	return pt, ok
}

// Valid reports whether the period type is one of the two known values.
func (p PeriodType) Valid() bool {
	return p == PeriodRolling30D || p == PeriodCalendarMonth
}
