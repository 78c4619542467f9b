// Package timefmt handles the wire format for timestamps shared by the main
// service and the stats service: "yyyy-MM-dd HH:mm:ss" in a fixed zone.
package timefmt

import (
	"fmt"
	"time"
)

// Layout is the Go form of "yyyy-MM-dd HH:mm:ss".
const Layout = "2006-01-02 15:04:05"

// Formatter renders and parses wire timestamps in one explicit location.
// It is an immutable value; construct it once at startup and pass it down.
type Formatter struct {
	loc *time.Location
}

// New returns a Formatter bound to the given location.
func New(loc *time.Location) Formatter {
	return Formatter{loc: loc}
}

// UTC returns the production Formatter.
func UTC() Formatter {
	return Formatter{loc: time.UTC}
}

// Format renders t in the wire layout.
func (f Formatter) Format(t time.Time) string {
	return t.In(f.loc).Format(Layout)
}

// FormatPtr renders t, or returns the empty string for nil.
func (f Formatter) FormatPtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return f.Format(*t)
}

// Parse reads a wire timestamp, interpreting it in the Formatter's location.
func (f Formatter) Parse(s string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, s, f.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", s, err)
	}
	return t, nil
}

// Now returns the current time truncated to the wire precision.
func (f Formatter) Now() time.Time {
	return time.Now().In(f.loc).Truncate(time.Second)
}
