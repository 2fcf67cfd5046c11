package service

import (
	"context"
	"strconv"
	"time"

	"github.com/wcac/timecards-backend/internal/timecards/report"
	"github.com/wcac/timecards-backend/internal/timecards/repository"
	"github.com/wcac/timecards-backend/pkg/errors"
	"github.com/wcac/timecards-backend/pkg/logger"
)

// AllEmployees is the sentinel employee reference that delegates a
// single-employee report to its all-employees variant.
const AllEmployees = "ALL"

// EmployeeRangeTotal is one employee's normalized duration totals over a
// date range.
type EmployeeRangeTotal struct {
	EmployeeID    int64           `json:"employee_id"`
	FirstName     string          `json:"first_name"`
	LastName      string          `json:"last_name"`
	FacilityTotal report.Duration `json:"facility_total_hours"`
	DrivingTotal  report.Duration `json:"driving_total_hours"`
}

// DetailedEntry is one work day within a detailed report: shift times plus
// the day's normalized durations.
type DetailedEntry struct {
	TimecardID         int64           `json:"timecard_id"`
	WorkDate           time.Time       `json:"work_date"`
	FacilityStartTime  *string         `json:"facility_start_time"`
	FacilityLunchStart *string         `json:"facility_lunch_start"`
	FacilityLunchEnd   *string         `json:"facility_lunch_end"`
	FacilityEndTime    *string         `json:"facility_end_time"`
	DrivingStartTime   *string         `json:"driving_start_time"`
	DrivingLunchStart  *string         `json:"driving_lunch_start"`
	DrivingLunchEnd    *string         `json:"driving_lunch_end"`
	DrivingEndTime     *string         `json:"driving_end_time"`
	FacilityTotal      report.Duration `json:"facility_total_hours"`
	DrivingTotal       report.Duration `json:"driving_total_hours"`
}

// DetailedReport is the day-granularity report: one entry per work date
// plus ungrouped range totals computed from the raw per-day components.
type DetailedReport struct {
	Entries       []*DetailedEntry `json:"entries"`
	FacilityTotal report.Duration  `json:"facility_total_hours"`
	DrivingTotal  report.Duration  `json:"driving_total_hours"`
}

// EmployeeSummary is one (employee, period bucket) summary row.
type EmployeeSummary struct {
	EmployeeID    int64           `json:"employee_id"`
	FirstName     string          `json:"first_name"`
	LastName      string          `json:"last_name"`
	PeriodStart   time.Time       `json:"summary_period"`
	DaysWorked    int             `json:"days_worked"`
	AbsenteeDays  int             `json:"absentee_days"`
	FacilityTotal report.Duration `json:"facility_total_hours"`
	DrivingTotal  report.Duration `json:"driving_total_hours"`
}

// ReportService assembles reports: it validates request parameters before
// any query, delegates the grouping to the reporting queries, and finishes
// rows through the report core (single normalize per group, absentee days
// from the period quota).
type ReportService struct {
	repo   *repository.ReportRepository
	logger *logger.Logger
}

// NewReportService creates a new report service
func NewReportService(repo *repository.ReportRepository, log *logger.Logger) *ReportService {
	return &ReportService{
		repo:   repo,
		logger: log,
	}
}

// parseEmployeeRef parses an employee reference that is either the ALL
// sentinel or a positive integer ID.
func parseEmployeeRef(ref string) (int64, bool, error) {
	if ref == AllEmployees {
		return 0, true, nil
	}

	id, err := strconv.ParseInt(ref, 10, 64)
	if err != nil || id < 1 {
		return 0, false, errors.BadRequest("employee id must be a positive integer or ALL")
	}

	return id, false, nil
}

// RangeTotals returns normalized duration totals within a date range for
// one employee, or for every employee when the reference is ALL.
func (s *ReportService) RangeTotals(ctx context.Context, employeeRef, startDate, endDate string) ([]*EmployeeRangeTotal, error) {
	start, end, err := ParseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	employeeID, all, err := parseEmployeeRef(employeeRef)
	if err != nil {
		return nil, err
	}

	var rows []*repository.RangeTotalRow
	if all {
		rows, err = s.repo.RangeTotalsAll(ctx, start, end)
	} else {
		rows, err = s.repo.RangeTotals(ctx, employeeID, start, end)
	}
	if err != nil {
		s.logger.Error().Err(err).Str("employee", employeeRef).Msg("failed to query range totals")
		return nil, err
	}

	return rangeTotals(rows), nil
}

// RangeTotalsAll returns normalized duration totals within a date range
// for every employee with timecards in it.
func (s *ReportService) RangeTotalsAll(ctx context.Context, startDate, endDate string) ([]*EmployeeRangeTotal, error) {
	return s.RangeTotals(ctx, AllEmployees, startDate, endDate)
}

func rangeTotals(rows []*repository.RangeTotalRow) []*EmployeeRangeTotal {
	totals := make([]*EmployeeRangeTotal, 0, len(rows))
	for _, row := range rows {
		totals = append(totals, &EmployeeRangeTotal{
			EmployeeID:    row.EmployeeID,
			FirstName:     row.FirstName,
			LastName:      row.LastName,
			FacilityTotal: row.Facility().Normalize(),
			DrivingTotal:  row.Driving().Normalize(),
		})
	}

	return totals
}

// Detailed returns one employee's per-day report within a date range. The
// range totals are folded in memory from the raw day components so the
// minute carry is applied exactly once per column.
func (s *ReportService) Detailed(ctx context.Context, employeeID int64, startDate, endDate string) (*DetailedReport, error) {
	start, end, err := ParseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.DetailedEntries(ctx, employeeID, start, end)
	if err != nil {
		s.logger.Error().Err(err).Int64("employee_id", employeeID).Msg("failed to query detailed entries")
		return nil, err
	}

	result := &DetailedReport{Entries: make([]*DetailedEntry, 0, len(rows))}
	days := make([]report.DayEntry, 0, len(rows))

	for _, row := range rows {
		facility := row.Facility()
		driving := row.Driving()
		days = append(days, report.DayEntry{
			WorkDate: row.WorkDate,
			Facility: facility,
			Driving:  driving,
		})

		result.Entries = append(result.Entries, &DetailedEntry{
			TimecardID:         row.TimecardID,
			WorkDate:           row.WorkDate,
			FacilityStartTime:  row.FacilityStartTime,
			FacilityLunchStart: row.FacilityLunchStart,
			FacilityLunchEnd:   row.FacilityLunchEnd,
			FacilityEndTime:    row.FacilityEndTime,
			DrivingStartTime:   row.DrivingStartTime,
			DrivingLunchStart:  row.DrivingLunchStart,
			DrivingLunchEnd:    row.DrivingLunchEnd,
			DrivingEndTime:     row.DrivingEndTime,
			FacilityTotal:      facility.Normalize(),
			DrivingTotal:       driving.Normalize(),
		})
	}

	result.FacilityTotal, result.DrivingTotal = report.SumEntries(days)

	return result, nil
}

// Summary returns per-period summaries within a date range for one
// employee, or for every employee when the reference is ALL. The period
// and date range are validated before any query runs.
func (s *ReportService) Summary(ctx context.Context, employeeRef, period, startDate, endDate string) ([]*EmployeeSummary, error) {
	start, end, err := ParseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	p, err := report.ParsePeriod(period)
	if err != nil {
		return nil, err
	}

	employeeID, all, err := parseEmployeeRef(employeeRef)
	if err != nil {
		return nil, err
	}

	var rows []*repository.SummaryRow
	if all {
		rows, err = s.repo.PeriodSummariesAll(ctx, p, start, end)
	} else {
		rows, err = s.repo.PeriodSummaries(ctx, employeeID, p, start, end)
	}
	if err != nil {
		s.logger.Error().Err(err).
			Str("employee", employeeRef).
			Str("period", p.String()).
			Msg("failed to query period summaries")
		return nil, err
	}

	return summaries(rows, p), nil
}

// SummaryAll returns per-period summaries for every employee with
// timecards in the range.
func (s *ReportService) SummaryAll(ctx context.Context, period, startDate, endDate string) ([]*EmployeeSummary, error) {
	return s.Summary(ctx, AllEmployees, period, startDate, endDate)
}

// summaries finishes grouped rows: one normalize per bucket and absentee
// days against the period quota, never clamped.
func summaries(rows []*repository.SummaryRow, p report.Period) []*EmployeeSummary {
	result := make([]*EmployeeSummary, 0, len(rows))
	for _, row := range rows {
		result = append(result, &EmployeeSummary{
			EmployeeID:    row.EmployeeID,
			FirstName:     row.FirstName,
			LastName:      row.LastName,
			PeriodStart:   row.PeriodStart,
			DaysWorked:    row.DaysWorked,
			AbsenteeDays:  p.Quota() - row.DaysWorked,
			FacilityTotal: row.Facility().Normalize(),
			DrivingTotal:  row.Driving().Normalize(),
		})
	}

	return result
}
