package stats

import "time"

// Period selects the reporting window of the statistics endpoints.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodAll   Period = "all"
)

// ParsePeriod maps a query value to a Period. Anything unrecognized,
// including the empty string, falls back to the weekly window.
func ParsePeriod(raw string) Period {
	switch Period(raw) {
	case PeriodWeek, PeriodMonth, PeriodAll:
		return Period(raw)
	}
	return PeriodWeek
}

// DateRange returns the inclusive log_date bounds of the period, ending today.
func (p Period) DateRange(now time.Time) (from string, to string) {
	to = now.Format("2006-01-02")
	switch p {
	case PeriodMonth:
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format("2006-01-02")
	case PeriodAll:
		from = "0001-01-01"
	default:
		from = now.AddDate(0, 0, -7).Format("2006-01-02")
	}
	return from, to
}
