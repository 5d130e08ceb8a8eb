package model

import (
	"strings"
	"time"
)

// TimestampLayout is the layout used for newly written timestamps.
const TimestampLayout = "2006-01-02 15:04:05.000000"

// timestampLayouts are accepted when reading timestamps back.
var timestampLayouts = []string{
	TimestampLayout,
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000000",
	"2006-01-02",
}

// Timestamp is a point in time kept in its string form.
// Stored prompts carry timestamps as plain JSON strings, so the raw text is
// preserved as read and only parsed on demand.
type Timestamp string

// NewTimestamp formats t as a Timestamp.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp(t.Format(TimestampLayout))
}

// IsZero reports whether the timestamp is unset.
func (ts Timestamp) IsZero() bool {
	return strings.TrimSpace(string(ts)) == ""
}

// Time parses the timestamp. The second result is false if the value is
// empty or in none of the known layouts.
func (ts Timestamp) Time() (time.Time, bool) {
	s := strings.TrimSpace(string(ts))
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// String returns the raw timestamp text.
func (ts Timestamp) String() string {
	return string(ts)
}
