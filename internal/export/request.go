// ABOUTME: Parsing helpers for export requests from CLI flags and API parameters.
// ABOUTME: Accepts RFC 3339 timestamps, date-times, and plain dates.
package export

import (
	"fmt"
	"time"

	"github.com/harperreed/healthlens/internal/models"
)

var timeLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTime parses s as RFC 3339, or as a local date-time or date in loc.
func ParseTime(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time format: %s (use YYYY-MM-DD, YYYY-MM-DD HH:MM, or RFC3339)", s)
}

// ParseRange builds a date range from two optional bounds. Both empty means
// no range. A missing start is the zero time and a missing end is now. A
// plain-date end covers the whole day.
func ParseRange(from, to string, loc *time.Location) (*models.DateRange, error) {
	if from == "" && to == "" {
		return nil, nil
	}

	r := &models.DateRange{End: time.Now()}
	if from != "" {
		t, err := ParseTime(from, loc)
		if err != nil {
			return nil, fmt.Errorf("from: %w", err)
		}
		r.Start = t
	}
	if to != "" {
		t, err := ParseTime(to, loc)
		if err != nil {
			return nil, fmt.Errorf("to: %w", err)
		}
		if len(to) == len("2006-01-02") {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		r.End = t
	}
	return r, nil
}
