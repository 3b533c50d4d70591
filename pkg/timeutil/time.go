package timeutil

import (
	"fmt"
	"time"
)

// Now returns the current time in UTC
// Always use this instead of time.Now() to ensure timezone consistency
func Now() time.Time {
	return time.Now().UTC()
}

// ParseDate parses a date string and returns a UTC time
func ParseDate(layout, value string) (time.Time, error) {
	t, err := time.Parse(layout, value)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// UnixMillis renders t as integer seconds concatenated with the
// zero-padded millisecond remainder, e.g. 1285021951907.
func UnixMillis(t time.Time) string {
	return fmt.Sprintf("%d%03d", t.Unix(), t.Nanosecond()/1e6)
}
