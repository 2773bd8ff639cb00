package aggregate

import "time"

// DateRange is a report window. End covers the whole end day.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange normalises start to midnight and end to the last instant of its day.
func NewDateRange(start, end time.Time) DateRange {
	y, m, d := start.Date()
	s := time.Date(y, m, d, 0, 0, 0, 0, start.Location())
	y, m, d = end.Date()
	e := time.Date(y, m, d, 0, 0, 0, 0, end.Location()).AddDate(0, 0, 1).Add(-time.Nanosecond)
	return DateRange{Start: s, End: e}
}

// Contains is inclusive on both ends.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// UpperExclusive is the first instant after the range, for SQL "< ?" bounds.
func (r DateRange) UpperExclusive() time.Time {
	return r.End.Add(time.Nanosecond)
}

// MonthKey identifies a calendar month.
type MonthKey struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func (k MonthKey) Less(o MonthKey) bool {
	if k.Year != o.Year {
		return k.Year < o.Year
	}
	return k.Month < o.Month
}

func MonthOf(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: int(t.Month())}
}

// TrailingMonths returns the n months ending at now's month, oldest first.
// Month arithmetic wraps across year boundaries.
func TrailingMonths(now time.Time, n int) []MonthKey {
	if n <= 0 {
		return []MonthKey{}
	}
	out := make([]MonthKey, 0, n)
	cur := MonthOf(now)
	for i := n - 1; i >= 0; i-- {
		m := cur.Month - i
		y := cur.Year
		for m <= 0 {
			m += 12
			y--
		}
		out = append(out, MonthKey{Year: y, Month: m})
	}
	return out
}

type MonthRevenue struct {
	Month       string  `json:"month"`
	MonthNumber int     `json:"month_number"`
	Year        int     `json:"year"`
	Revenue     float64 `json:"revenue"`
}

// MonthlyRevenueSeries always yields n entries; months missing from totals are 0.
func MonthlyRevenueSeries(now time.Time, n int, totals map[MonthKey]float64) []MonthRevenue {
	keys := TrailingMonths(now, n)
	out := make([]MonthRevenue, 0, len(keys))
	for _, k := range keys {
		out = append(out, MonthRevenue{
			Month:       time.Month(k.Month).String(),
			MonthNumber: k.Month,
			Year:        k.Year,
			Revenue:     Round2(totals[k]),
		})
	}
	return out
}

type YearToDateStats struct {
	TotalRevenue     float64 `json:"total_revenue"`
	AverageMonthly   float64 `json:"average_monthly"`
	GrowthPercentage float64 `json:"growth_percentage"`
}

// YearToDate averages over the months elapsed so far in now's year and compares
// against the previous year's total. Growth is 0 when lastYear is 0.
func YearToDate(now time.Time, thisYear, lastYear float64) YearToDateStats {
	month := float64(now.Month())
	growth := 0.0
	if lastYear > 0 {
		growth = Round2((thisYear - lastYear) / lastYear * 100)
	}
	return YearToDateStats{
		TotalRevenue:     Round2(thisYear),
		AverageMonthly:   Round2(Ratio(thisYear, month)),
		GrowthPercentage: growth,
	}
}
