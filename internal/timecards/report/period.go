package report

import (
	"strings"
	"time"

	"github.com/wcac/timecards-backend/pkg/errors"
)

// Period is a summary granularity. Summaries fold daily timecard rows into
// one bucket per calendar week, month, or year.
type Period int

const (
	PeriodWeekly Period = iota
	PeriodMonthly
	PeriodYearly
)

// ParsePeriod parses a period name from a request. Anything other than
// weekly, monthly, or yearly is rejected before a query runs.
func ParsePeriod(s string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "weekly":
		return PeriodWeekly, nil
	case "monthly":
		return PeriodMonthly, nil
	case "yearly":
		return PeriodYearly, nil
	default:
		return 0, errors.InvalidPeriod()
	}
}

// String returns the request-facing period name.
func (p Period) String() string {
	switch p {
	case PeriodWeekly:
		return "weekly"
	case PeriodMonthly:
		return "monthly"
	case PeriodYearly:
		return "yearly"
	default:
		return "unknown"
	}
}

// Truncation returns the DATE_TRUNC field for this period. The database's
// truncation is the source of truth for bucket alignment; Start mirrors it
// for in-process aggregation.
func (p Period) Truncation() string {
	switch p {
	case PeriodWeekly:
		return "week"
	case PeriodMonthly:
		return "month"
	case PeriodYearly:
		return "year"
	default:
		return "day"
	}
}

// Quota is the nominal expected attendance per bucket: a 5-day work week
// and its monthly and yearly multiples. The quota is a per-granularity
// constant, not derived from the queried calendar range, so absentee
// counts can go negative or overshoot for partial periods.
func (p Period) Quota() int {
	switch p {
	case PeriodWeekly:
		return 5
	case PeriodMonthly:
		return 20
	case PeriodYearly:
		return 240
	default:
		return 0
	}
}

// Start truncates t to the start of its bucket, matching Postgres
// DATE_TRUNC semantics: weeks start on ISO Monday, months and years on
// their first day.
func (p Period) Start(t time.Time) time.Time {
	year, month, day := t.Date()

	switch p {
	case PeriodWeekly:
		// Monday of the ISO week containing t.
		back := (int(t.Weekday()) + 6) % 7
		return time.Date(year, month, day-back, 0, 0, 0, 0, t.Location())
	case PeriodMonthly:
		return time.Date(year, month, 1, 0, 0, 0, 0, t.Location())
	case PeriodYearly:
		return time.Date(year, time.January, 1, 0, 0, 0, 0, t.Location())
	default:
		return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	}
}
