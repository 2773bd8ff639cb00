package dbtime

import (
	"fmt"
	"strings"
	"time"
)

// Tod is a time of day without date or zone.
type Tod struct{ time.Time }

// ParseTod accepts "HH:MM" or "HH:MM:SS".
func ParseTod(s string) (Tod, error) {
	s = strings.TrimSpace(s)
	if len(s) == 5 {
		s += ":00"
	}
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		return Tod{}, fmt.Errorf("tod: invalid time %q", s)
	}
	return Tod{Time: t}, nil
}

// String renders HH:MM, the stored form of class times.
func (t Tod) String() string { return t.Format("15:04") }

// TodAfter reports whether end is strictly after start. Unparseable input is false.
func TodAfter(start, end string) bool {
	s, err := ParseTod(start)
	if err != nil {
		return false
	}
	e, err := ParseTod(end)
	if err != nil {
		return false
	}
	return e.After(s.Time)
}
