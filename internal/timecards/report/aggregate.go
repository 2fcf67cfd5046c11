package report

import (
	"sort"
	"time"
)

// DayEntry is one timecard row's raw durations, keyed by work date.
type DayEntry struct {
	WorkDate time.Time
	Facility Components
	Driving  Components
}

// PeriodTotals is the aggregate for one period bucket: summed facility and
// driving time, days actually worked, and the absentee shortfall against
// the period quota. AbsenteeDays is quota minus days worked and is not
// clamped at zero.
type PeriodTotals struct {
	Start         time.Time
	DaysWorked    int
	AbsenteeDays  int
	FacilityTotal Duration
	DrivingTotal  Duration
}

type bucketAcc struct {
	facility Components
	driving  Components
	worked   map[time.Time]bool
}

// Aggregate folds per-day entries into one PeriodTotals per bucket,
// ordered by ascending bucket start.
//
// Summation happens on raw components across the whole bucket with a
// single normalize at the end; normalizing per row and summing the results
// would double-apply the minute carry. A day counts as worked only when
// its combined facility and driving time is nonzero.
func Aggregate(entries []DayEntry, p Period) []PeriodTotals {
	buckets := make(map[time.Time]*bucketAcc)

	for _, e := range entries {
		start := p.Start(e.WorkDate)
		acc, ok := buckets[start]
		if !ok {
			acc = &bucketAcc{worked: make(map[time.Time]bool)}
			buckets[start] = acc
		}

		acc.facility = acc.facility.Add(e.Facility)
		acc.driving = acc.driving.Add(e.Driving)

		if e.Facility.TotalMinutes()+e.Driving.TotalMinutes() > 0 {
			day := time.Date(e.WorkDate.Year(), e.WorkDate.Month(), e.WorkDate.Day(), 0, 0, 0, 0, e.WorkDate.Location())
			acc.worked[day] = true
		}
	}

	totals := make([]PeriodTotals, 0, len(buckets))
	for start, acc := range buckets {
		totals = append(totals, PeriodTotals{
			Start:         start,
			DaysWorked:    len(acc.worked),
			AbsenteeDays:  p.Quota() - len(acc.worked),
			FacilityTotal: acc.facility.Normalize(),
			DrivingTotal:  acc.driving.Normalize(),
		})
	}

	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Start.Before(totals[j].Start)
	})

	return totals
}

// SumEntries computes flat range totals across entries with no period
// bucketing: the day-granularity ungrouped aggregate. Raw components are
// summed first and normalized once per column.
func SumEntries(entries []DayEntry) (facility, driving Duration) {
	var fac, drv Components
	for _, e := range entries {
		fac = fac.Add(e.Facility)
		drv = drv.Add(e.Driving)
	}
	return fac.Normalize(), drv.Normalize()
}
