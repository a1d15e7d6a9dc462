package domain

import (
	"fmt"
	"strings"
	"time"
)

const day = 24 * time.Hour

// DaysBetween returns the number of whole days from pickup to ret, clamped at 0.
func DaysBetween(pickup, ret time.Time) int {
	days := int(ret.Sub(pickup) / day)
	if days < 0 {
		return 0
	}
	return days
}

// dateTimeLayouts are tried in order; zone-less values are read as UTC.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseDateTime accepts RFC 3339 timestamps as well as the zone-less forms
// produced by date and datetime-local form inputs.
func ParseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unrecognised date/time %q", ErrValidation, s)
}

// ParseDateBound parses a filter bound. A date-only upper bound covers the whole day.
func ParseDateBound(s string, upper bool) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := ParseDateTime(s)
	if err != nil {
		return nil, err
	}
	if upper && len(strings.TrimSpace(s)) == len("2006-01-02") {
		t = t.Add(day - time.Nanosecond)
	}
	return &t, nil
}
