package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/wcac/timecards-backend/internal/timecards/report"
	"github.com/wcac/timecards-backend/pkg/database"
)

// Duration columns are JSONB {hours, minutes} objects. Every reporting
// query reads them through the same ->> extraction with COALESCE so NULL
// columns and missing sub-fields contribute zero; the summed outputs come
// back as decomposed numeric pairs that the report core normalizes.
const (
	facilityMinutesExpr = `COALESCE((t.facility_total_hours->>'hours')::int, 0) * 60 +
		COALESCE((t.facility_total_hours->>'minutes')::int, 0)`
	drivingMinutesExpr = `COALESCE((t.driving_total_hours->>'hours')::int, 0) * 60 +
		COALESCE((t.driving_total_hours->>'minutes')::int, 0)`
)

// RangeTotalRow is one employee's summed raw duration components over a
// date range. The hour and minute sums are separate columns and are not
// normalized; minutes may exceed 59.
type RangeTotalRow struct {
	EmployeeID      int64           `db:"employee_id"`
	FirstName       string          `db:"first_name"`
	LastName        string          `db:"last_name"`
	FacilityHours   sql.NullFloat64 `db:"facility_hours"`
	FacilityMinutes sql.NullFloat64 `db:"facility_minutes"`
	DrivingHours    sql.NullFloat64 `db:"driving_hours"`
	DrivingMinutes  sql.NullFloat64 `db:"driving_minutes"`
}

// Facility returns the raw facility components of the row.
func (r *RangeTotalRow) Facility() report.Components {
	return report.PairComponents(r.FacilityHours, r.FacilityMinutes)
}

// Driving returns the raw driving components of the row.
func (r *RangeTotalRow) Driving() report.Components {
	return report.PairComponents(r.DrivingHours, r.DrivingMinutes)
}

// DetailedRow is one timecard within a detailed report: the shift times
// plus the per-day raw duration extracts.
type DetailedRow struct {
	TimecardID         int64           `db:"timecard_id"`
	WorkDate           time.Time       `db:"work_date"`
	FacilityStartTime  *string         `db:"facility_start_time"`
	FacilityLunchStart *string         `db:"facility_lunch_start"`
	FacilityLunchEnd   *string         `db:"facility_lunch_end"`
	FacilityEndTime    *string         `db:"facility_end_time"`
	DrivingStartTime   *string         `db:"driving_start_time"`
	DrivingLunchStart  *string         `db:"driving_lunch_start"`
	DrivingLunchEnd    *string         `db:"driving_lunch_end"`
	DrivingEndTime     *string         `db:"driving_end_time"`
	FacilityHours      sql.NullFloat64 `db:"facility_hours"`
	FacilityMinutes    sql.NullFloat64 `db:"facility_minutes"`
	DrivingHours       sql.NullFloat64 `db:"driving_hours"`
	DrivingMinutes     sql.NullFloat64 `db:"driving_minutes"`
}

// Facility returns the raw facility components of the row.
func (r *DetailedRow) Facility() report.Components {
	return report.PairComponents(r.FacilityHours, r.FacilityMinutes)
}

// Driving returns the raw driving components of the row.
func (r *DetailedRow) Driving() report.Components {
	return report.PairComponents(r.DrivingHours, r.DrivingMinutes)
}

// SummaryRow is one (employee, period bucket) group: raw duration sums and
// the count of distinct days with any recorded time. The bucket start
// comes from DATE_TRUNC and is the source of truth for period alignment.
type SummaryRow struct {
	EmployeeID      int64           `db:"employee_id"`
	FirstName       string          `db:"first_name"`
	LastName        string          `db:"last_name"`
	PeriodStart     time.Time       `db:"summary_period"`
	DaysWorked      int             `db:"days_worked"`
	FacilityHours   sql.NullFloat64 `db:"facility_hours"`
	FacilityMinutes sql.NullFloat64 `db:"facility_minutes"`
	DrivingHours    sql.NullFloat64 `db:"driving_hours"`
	DrivingMinutes  sql.NullFloat64 `db:"driving_minutes"`
}

// Facility returns the raw facility components of the row.
func (r *SummaryRow) Facility() report.Components {
	return report.PairComponents(r.FacilityHours, r.FacilityMinutes)
}

// Driving returns the raw driving components of the row.
func (r *SummaryRow) Driving() report.Components {
	return report.PairComponents(r.DrivingHours, r.DrivingMinutes)
}

// ReportRepository runs the reporting queries over employees and timecards
type ReportRepository struct {
	db *database.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *database.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

const rangeTotalColumns = `
	e.id AS employee_id,
	e.first_name,
	e.last_name,
	SUM(COALESCE((t.facility_total_hours->>'hours')::int, 0)) AS facility_hours,
	SUM(COALESCE((t.facility_total_hours->>'minutes')::int, 0)) AS facility_minutes,
	SUM(COALESCE((t.driving_total_hours->>'hours')::int, 0)) AS driving_hours,
	SUM(COALESCE((t.driving_total_hours->>'minutes')::int, 0)) AS driving_minutes`

// RangeTotals returns one employee's raw duration sums within a date range.
// No rows means the employee has no timecards in the range.
func (r *ReportRepository) RangeTotals(ctx context.Context, employeeID int64, start, end time.Time) ([]*RangeTotalRow, error) {
	query := `SELECT` + rangeTotalColumns + `
		FROM employees e
		JOIN timecards t ON e.id = t.employee_id
		WHERE e.id = $1 AND t.work_date BETWEEN $2 AND $3
		GROUP BY e.id, e.first_name, e.last_name
		ORDER BY e.id`

	var rows []*RangeTotalRow
	if err := r.db.SelectContext(ctx, &rows, query, employeeID, start, end); err != nil {
		return nil, err
	}

	return rows, nil
}

// RangeTotalsAll returns raw duration sums within a date range for every
// employee with timecards in it, grouped per employee.
func (r *ReportRepository) RangeTotalsAll(ctx context.Context, start, end time.Time) ([]*RangeTotalRow, error) {
	query := `SELECT` + rangeTotalColumns + `
		FROM employees e
		JOIN timecards t ON e.id = t.employee_id
		WHERE t.work_date BETWEEN $1 AND $2
		GROUP BY e.id, e.first_name, e.last_name
		ORDER BY e.id`

	var rows []*RangeTotalRow
	if err := r.db.SelectContext(ctx, &rows, query, start, end); err != nil {
		return nil, err
	}

	return rows, nil
}

// DetailedEntries returns an employee's timecards within a date range, one
// row per timecard with raw per-day duration extracts, ordered by work date.
func (r *ReportRepository) DetailedEntries(ctx context.Context, employeeID int64, start, end time.Time) ([]*DetailedRow, error) {
	query := `
		SELECT
			t.id AS timecard_id,
			t.work_date,
			t.facility_start_time,
			t.facility_lunch_start,
			t.facility_lunch_end,
			t.facility_end_time,
			t.driving_start_time,
			t.driving_lunch_start,
			t.driving_lunch_end,
			t.driving_end_time,
			COALESCE((t.facility_total_hours->>'hours')::int, 0) AS facility_hours,
			COALESCE((t.facility_total_hours->>'minutes')::int, 0) AS facility_minutes,
			COALESCE((t.driving_total_hours->>'hours')::int, 0) AS driving_hours,
			COALESCE((t.driving_total_hours->>'minutes')::int, 0) AS driving_minutes
		FROM timecards t
		WHERE t.employee_id = $1 AND t.work_date BETWEEN $2 AND $3
		ORDER BY t.work_date
	`

	var rows []*DetailedRow
	if err := r.db.SelectContext(ctx, &rows, query, employeeID, start, end); err != nil {
		return nil, err
	}

	return rows, nil
}

// summaryQuery builds the grouped period summary statement. The truncation
// field comes from Period.Truncation, never from request input.
func summaryQuery(p report.Period, allEmployees bool) string {
	where := `e.id = $1 AND t.work_date BETWEEN $2 AND $3`
	if allEmployees {
		where = `t.work_date BETWEEN $1 AND $2`
	}

	return fmt.Sprintf(`
		SELECT
			e.id AS employee_id,
			e.first_name,
			e.last_name,
			DATE_TRUNC('%s', t.work_date) AS summary_period,
			COUNT(DISTINCT t.work_date) FILTER (WHERE (%s + %s) > 0) AS days_worked,
			SUM(COALESCE((t.facility_total_hours->>'hours')::int, 0)) AS facility_hours,
			SUM(COALESCE((t.facility_total_hours->>'minutes')::int, 0)) AS facility_minutes,
			SUM(COALESCE((t.driving_total_hours->>'hours')::int, 0)) AS driving_hours,
			SUM(COALESCE((t.driving_total_hours->>'minutes')::int, 0)) AS driving_minutes
		FROM employees e
		JOIN timecards t ON e.id = t.employee_id
		WHERE %s
		GROUP BY e.id, e.first_name, e.last_name, summary_period
		ORDER BY summary_period`,
		p.Truncation(), facilityMinutesExpr, drivingMinutesExpr, where)
}

// PeriodSummaries returns one row per period bucket for one employee.
func (r *ReportRepository) PeriodSummaries(ctx context.Context, employeeID int64, p report.Period, start, end time.Time) ([]*SummaryRow, error) {
	var rows []*SummaryRow
	if err := r.db.SelectContext(ctx, &rows, summaryQuery(p, false), employeeID, start, end); err != nil {
		return nil, err
	}

	return rows, nil
}

// PeriodSummariesAll returns one row per (employee, period bucket) for
// every employee with timecards in the range.
func (r *ReportRepository) PeriodSummariesAll(ctx context.Context, p report.Period, start, end time.Time) ([]*SummaryRow, error) {
	var rows []*SummaryRow
	if err := r.db.SelectContext(ctx, &rows, summaryQuery(p, true), start, end); err != nil {
		return nil, err
	}

	return rows, nil
}
