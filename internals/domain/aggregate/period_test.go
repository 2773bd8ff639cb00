package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTrailingMonths(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		n    int
		want []MonthKey
	}{
		{
			name: "within one year",
			now:  date(2024, time.August, 15),
			n:    3,
			want: []MonthKey{{2024, 6}, {2024, 7}, {2024, 8}},
		},
		{
			name: "wraps into previous year",
			now:  date(2024, time.February, 1),
			n:    6,
			want: []MonthKey{{2023, 9}, {2023, 10}, {2023, 11}, {2023, 12}, {2024, 1}, {2024, 2}},
		},
		{
			name: "more than twelve months",
			now:  date(2024, time.January, 31),
			n:    14,
			want: []MonthKey{
				{2022, 12}, {2023, 1}, {2023, 2}, {2023, 3}, {2023, 4}, {2023, 5}, {2023, 6},
				{2023, 7}, {2023, 8}, {2023, 9}, {2023, 10}, {2023, 11}, {2023, 12}, {2024, 1},
			},
		},
		{name: "zero window", now: date(2024, time.May, 1), n: 0, want: []MonthKey{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TrailingMonths(tt.now, tt.n))
		})
	}
}

func TestMonthlyRevenueSeries(t *testing.T) {
	now := date(2024, time.March, 10)
	totals := map[MonthKey]float64{
		{2023, 11}: 150,
		{2024, 3}:  99.999,
		{2022, 3}:  1000, // outside the window
	}

	got := MonthlyRevenueSeries(now, 6, totals)
	require.Len(t, got, 6)

	assert.Equal(t, MonthRevenue{Month: "October", MonthNumber: 10, Year: 2023, Revenue: 0}, got[0])
	assert.Equal(t, MonthRevenue{Month: "November", MonthNumber: 11, Year: 2023, Revenue: 150}, got[1])
	assert.Equal(t, "March", got[5].Month)
	assert.Equal(t, 100.0, got[5].Revenue)

	empty := MonthlyRevenueSeries(now, 6, nil)
	require.Len(t, empty, 6)
	for _, m := range empty {
		assert.Zero(t, m.Revenue)
	}
}

func TestYearToDate(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		thisYear float64
		lastYear float64
		want     YearToDateStats
	}{
		{
			name: "growth over last year", now: date(2024, time.April, 2),
			thisYear: 1200, lastYear: 1000,
			want: YearToDateStats{TotalRevenue: 1200, AverageMonthly: 300, GrowthPercentage: 20},
		},
		{
			name: "decline", now: date(2024, time.December, 31),
			thisYear: 500, lastYear: 2000,
			want: YearToDateStats{TotalRevenue: 500, AverageMonthly: 41.67, GrowthPercentage: -75},
		},
		{
			name: "no previous revenue", now: date(2024, time.January, 5),
			thisYear: 750, lastYear: 0,
			want: YearToDateStats{TotalRevenue: 750, AverageMonthly: 750, GrowthPercentage: 0},
		},
		{
			name: "nothing at all", now: date(2024, time.June, 5),
			want: YearToDateStats{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, YearToDate(tt.now, tt.thisYear, tt.lastYear))
		})
	}
}

func TestDateRangeIncludesWholeEndDay(t *testing.T) {
	r := NewDateRange(date(2024, time.January, 1), date(2024, time.March, 31))

	assert.True(t, r.Contains(date(2024, time.January, 1)))
	assert.True(t, r.Contains(time.Date(2024, time.March, 31, 23, 59, 59, 0, time.UTC)))
	assert.False(t, r.Contains(date(2024, time.April, 1)))
	assert.False(t, r.Contains(time.Date(2023, time.December, 31, 23, 59, 59, 0, time.UTC)))
	assert.Equal(t, date(2024, time.April, 1), r.UpperExclusive())
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 0.13, Round2(0.125))
	assert.Equal(t, -0.13, Round2(-0.125))
	assert.Equal(t, 66.67, Round2(200.0/3))
	assert.Zero(t, Percent(5, 0))
}
