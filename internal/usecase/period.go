package usecase

import (
	"strconv"
	"strings"
	"time"

	"github.com/iho/finbook/internal/domain"
)

// resolveYear returns the year parsed from raw, or the current calendar year
// when raw is missing or not a positive number. Malformed input is
// substituted, never rejected.
func resolveYear(raw string, now time.Time) int {
	if year, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && year > 0 {
		return year
	}

	return now.Year()
}

// resolveMonth returns the month (1-12) parsed from raw, or the current
// calendar month when raw is missing or out of range.
func resolveMonth(raw string, now time.Time) int {
	if month, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && month >= 1 && month <= 12 {
		return month
	}

	return int(now.Month())
}

// parseRequiredYear parses a year that must be present and numeric.
func parseRequiredYear(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, domain.ErrYearRequired
	}

	year, err := strconv.Atoi(raw)
	if err != nil || year <= 0 {
		return 0, domain.ErrInvalidPeriod
	}

	return year, nil
}

// parseOptionalMonth parses a month that may be absent but must be valid
// when present.
func parseOptionalMonth(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	month, err := strconv.Atoi(raw)
	if err != nil || month < 1 || month > 12 {
		return nil, domain.ErrInvalidPeriod
	}

	return &month, nil
}

// monthWindow returns the half-open [start of month, start of next month).
func monthWindow(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)

	return start, start.AddDate(0, 1, 0)
}

// yearWindow returns the half-open [Jan 1 year, Jan 1 year+1).
func yearWindow(year int) (time.Time, time.Time) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)

	return start, start.AddDate(1, 0, 0)
}
