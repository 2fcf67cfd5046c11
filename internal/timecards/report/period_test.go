package report_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/wcac/timecards-backend/pkg/errors"
	"github.com/wcac/timecards-backend/internal/timecards/report"
)

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		input string
		want  report.Period
	}{
		{"weekly", report.PeriodWeekly},
		{"monthly", report.PeriodMonthly},
		{"yearly", report.PeriodYearly},
		{"WEEKLY", report.PeriodWeekly},
		{" monthly ", report.PeriodMonthly},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := report.ParsePeriod(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParsePeriod_Invalid(t *testing.T) {
	for _, input := range []string{"biannual", "daily", "", "week"} {
		t.Run("rejects "+input, func(t *testing.T) {
			_, err := report.ParsePeriod(input)
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.ErrInvalidPeriod))

			var appErr *apperrors.AppError
			require.True(t, apperrors.As(err, &appErr))
			assert.Equal(t, "Invalid period specified", appErr.Message)
		})
	}
}

func TestPeriod_Quota(t *testing.T) {
	assert.Equal(t, 5, report.PeriodWeekly.Quota())
	assert.Equal(t, 20, report.PeriodMonthly.Quota())
	assert.Equal(t, 240, report.PeriodYearly.Quota())
}

func TestPeriod_Truncation(t *testing.T) {
	assert.Equal(t, "week", report.PeriodWeekly.Truncation())
	assert.Equal(t, "month", report.PeriodMonthly.Truncation())
	assert.Equal(t, "year", report.PeriodYearly.Truncation())
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPeriod_Start_Weekly(t *testing.T) {
	// 2024-01-01 is a Monday; the ISO week runs through Sunday 2024-01-07.
	monday := date(2024, time.January, 1)

	assert.Equal(t, monday, report.PeriodWeekly.Start(date(2024, time.January, 1)))
	assert.Equal(t, monday, report.PeriodWeekly.Start(date(2024, time.January, 4)))
	assert.Equal(t, monday, report.PeriodWeekly.Start(date(2024, time.January, 7)))

	// The 8th opens the next bucket.
	assert.Equal(t, date(2024, time.January, 8), report.PeriodWeekly.Start(date(2024, time.January, 8)))
}

func TestPeriod_Start_WeeklyAcrossMonthBoundary(t *testing.T) {
	// 2024-01-31 is a Wednesday; its week starts Monday 2024-01-29.
	assert.Equal(t, date(2024, time.January, 29), report.PeriodWeekly.Start(date(2024, time.February, 2)))
}

func TestPeriod_Start_MonthlyAndYearly(t *testing.T) {
	assert.Equal(t, date(2024, time.March, 1), report.PeriodMonthly.Start(date(2024, time.March, 17)))
	assert.Equal(t, date(2024, time.January, 1), report.PeriodYearly.Start(date(2024, time.November, 30)))
}
