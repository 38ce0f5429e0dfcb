package models

import "time"

// timeLayouts are tried in order when parsing stored timestamps. Dates
// entered by hand are often bare days or datetime-local values.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTime parses a stored timestamp leniently. Unparseable or empty
// input yields the zero time, which sorts as oldest.
func ParseTime(s string) time.Time {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// FormatTime renders a timestamp the way every stored document does
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
