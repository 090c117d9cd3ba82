package models

import (
	"fmt"
	"strings"
	"time"
)

// DayLayout is the calendar-day format of attendance rows.
const DayLayout = "2006-01-02"

// FormatDay renders t as a UTC calendar day.
func FormatDay(t time.Time) string {
	return t.UTC().Format(DayLayout)
}

// ParseDay checks a YYYY-MM-DD string and returns it normalized.
func ParseDay(value string) (string, error) {
	d, err := time.Parse(DayLayout, strings.TrimSpace(value))
	if err != nil {
		return "", fmt.Errorf("date must be YYYY-MM-DD: %q", value)
	}
	return d.Format(DayLayout), nil
}

var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", DayLayout}

// ParseDate accepts RFC 3339 timestamps or plain calendar days.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}
