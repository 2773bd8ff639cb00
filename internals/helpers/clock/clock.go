package clock

import "time"

// Clock is the single source of "now" for dashboards and reports.
type Clock interface {
	Now() time.Time
}

type Real struct {
	Location *time.Location
}

func (r Real) Now() time.Time {
	if r.Location != nil {
		return time.Now().In(r.Location)
	}
	return time.Now()
}

// Fixed always reports the same instant. Used by tests and replays.
type Fixed struct {
	At time.Time
}

func (f Fixed) Now() time.Time { return f.At }

func NewFixed(year int, month time.Month, day int) Fixed {
	return Fixed{At: time.Date(year, month, day, 12, 0, 0, 0, time.UTC)}
}
