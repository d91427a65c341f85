package dates

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// serialEpoch is the day-zero of spreadsheet serial dates. Serial 1 maps to
// December 31, 1899, so the epoch itself is one day earlier.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// Parse converts an effective-date value from the source fee schedules into a
// time. The ingestion feeds serialize dates either as M/D/YYYY strings or as
// numeric spreadsheet serials, and sometimes not at all. A blank or
// unparseable value returns ok=false without an error: absence of a date must
// not exclude a record from consideration downstream.
func Parse(value string) (time.Time, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, false
	}

	if t, err := parseCalendar(trimmed); err == nil {
		return t, true
	}

	if t, ok := parseSerial(trimmed); ok {
		return t, true
	}

	return time.Time{}, false
}

// Format renders a parsed date back in the MM/DD/YYYY form the dashboard
// displays.
func Format(t time.Time) string {
	return t.Format("01/02/2006")
}

func parseCalendar(value string) (time.Time, error) {
	for _, layout := range []string{"1/2/2006", "01/02/2006", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("not a calendar date: %s", value)
}

func parseSerial(value string) (time.Time, bool) {
	serial, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return time.Time{}, false
	}
	// Serials below 1 predate the epoch and only show up as garbage input.
	if serial < 1 || serial > 200000 {
		return time.Time{}, false
	}
	return serialEpoch.AddDate(0, 0, int(serial)), true
}

// ParseRate converts a currency-prefixed decimal string ("$55.00", "1,250.50")
// into a float. Returns ok=false for blank or malformed values.
func ParseRate(value string) (float64, bool) {
	cleaned := strings.TrimSpace(value)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return 0, false
	}
	rate, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return rate, true
}

// FormatRate renders a rate the way the dashboard tables display it.
func FormatRate(rate float64) string {
	return fmt.Sprintf("$%.2f", rate)
}
