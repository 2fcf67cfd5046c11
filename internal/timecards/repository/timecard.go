package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/wcac/timecards-backend/internal/timecards/report"
	"github.com/wcac/timecards-backend/pkg/database"
	"github.com/wcac/timecards-backend/pkg/errors"
)

// Timecard statuses. Active timecards are editable, submitted ones are
// awaiting approval, locked ones are closed for payroll.
const (
	StatusActive    = "active"
	StatusSubmitted = "submitted"
	StatusLocked    = "locked"
)

// Timecard is one employee work day: facility and driving shift times and
// the stored duration totals. Duration columns are JSONB {hours, minutes}
// objects; NULL or malformed values scan to a zero duration.
type Timecard struct {
	ID                 int64                     `db:"id" json:"id"`
	EmployeeID         int64                     `db:"employee_id" json:"employee_id"`
	WorkDate           time.Time                 `db:"work_date" json:"work_date"`
	MorningActivity    *string                   `db:"morning_activity" json:"morning_activity,omitempty"`
	AfternoonActivity  *string                   `db:"afternoon_activity" json:"afternoon_activity,omitempty"`
	FacilityStartTime  *string                   `db:"facility_start_time" json:"facility_start_time,omitempty"`
	FacilityLunchStart *string                   `db:"facility_lunch_start" json:"facility_lunch_start,omitempty"`
	FacilityLunchEnd   *string                   `db:"facility_lunch_end" json:"facility_lunch_end,omitempty"`
	FacilityEndTime    *string                   `db:"facility_end_time" json:"facility_end_time,omitempty"`
	DrivingStartTime   *string                   `db:"driving_start_time" json:"driving_start_time,omitempty"`
	DrivingLunchStart  *string                   `db:"driving_lunch_start" json:"driving_lunch_start,omitempty"`
	DrivingLunchEnd    *string                   `db:"driving_lunch_end" json:"driving_lunch_end,omitempty"`
	DrivingEndTime     *string                   `db:"driving_end_time" json:"driving_end_time,omitempty"`
	FacilityTotal      report.StructuredDuration `db:"facility_total_hours" json:"facility_total_hours"`
	DrivingTotal       report.StructuredDuration `db:"driving_total_hours" json:"driving_total_hours"`
	Status             string                    `db:"status" json:"status"`
	CreatedAt          time.Time                 `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time                 `db:"updated_at" json:"updated_at"`
}

// TimecardUpdate carries the optional fields of a timecard update. Nil
// fields keep the stored value. An explicit struct instead of a field map
// keeps updates typo-proof and reviewable.
type TimecardUpdate struct {
	WorkDate           *time.Time                 `json:"work_date,omitempty"`
	MorningActivity    *string                    `json:"morning_activity,omitempty" validate:"omitempty,oneof=Facility Driving"`
	AfternoonActivity  *string                    `json:"afternoon_activity,omitempty" validate:"omitempty,oneof=Facility Driving"`
	FacilityStartTime  *string                    `json:"facility_start_time,omitempty"`
	FacilityLunchStart *string                    `json:"facility_lunch_start,omitempty"`
	FacilityLunchEnd   *string                    `json:"facility_lunch_end,omitempty"`
	FacilityEndTime    *string                    `json:"facility_end_time,omitempty"`
	DrivingStartTime   *string                    `json:"driving_start_time,omitempty"`
	DrivingLunchStart  *string                    `json:"driving_lunch_start,omitempty"`
	DrivingLunchEnd    *string                    `json:"driving_lunch_end,omitempty"`
	DrivingEndTime     *string                    `json:"driving_end_time,omitempty"`
	FacilityTotal      *report.StructuredDuration `json:"facility_total_hours,omitempty"`
	DrivingTotal       *report.StructuredDuration `json:"driving_total_hours,omitempty"`
	Status             *string                    `json:"status,omitempty" validate:"omitempty,oneof=active submitted locked"`
}

// IsEmpty reports whether the update carries no fields at all.
func (u *TimecardUpdate) IsEmpty() bool {
	return u.WorkDate == nil &&
		u.MorningActivity == nil && u.AfternoonActivity == nil &&
		u.FacilityStartTime == nil && u.FacilityLunchStart == nil &&
		u.FacilityLunchEnd == nil && u.FacilityEndTime == nil &&
		u.DrivingStartTime == nil && u.DrivingLunchStart == nil &&
		u.DrivingLunchEnd == nil && u.DrivingEndTime == nil &&
		u.FacilityTotal == nil && u.DrivingTotal == nil &&
		u.Status == nil
}

// TimecardRepository handles timecard persistence
type TimecardRepository struct {
	db *database.DB
}

// NewTimecardRepository creates a new timecard repository
func NewTimecardRepository(db *database.DB) *TimecardRepository {
	return &TimecardRepository{db: db}
}

const timecardColumns = `
	id, employee_id, work_date, morning_activity, afternoon_activity,
	facility_start_time, facility_lunch_start, facility_lunch_end, facility_end_time,
	driving_start_time, driving_lunch_start, driving_lunch_end, driving_end_time,
	facility_total_hours, driving_total_hours, status, created_at, updated_at`

// List returns all timecards ordered by ID
func (r *TimecardRepository) List(ctx context.Context) ([]*Timecard, error) {
	query := `SELECT` + timecardColumns + `
		FROM timecards
		ORDER BY id ASC`

	var cards []*Timecard
	if err := r.db.SelectContext(ctx, &cards, query); err != nil {
		return nil, err
	}

	return cards, nil
}

// GetByID gets a timecard by ID
func (r *TimecardRepository) GetByID(ctx context.Context, id int64) (*Timecard, error) {
	query := `SELECT` + timecardColumns + `
		FROM timecards
		WHERE id = $1`

	var card Timecard
	err := r.db.GetContext(ctx, &card, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("timecard")
	}
	if err != nil {
		return nil, err
	}

	return &card, nil
}

// ListByEmployee returns all timecards for an employee ordered by work date
func (r *TimecardRepository) ListByEmployee(ctx context.Context, employeeID int64) ([]*Timecard, error) {
	query := `SELECT` + timecardColumns + `
		FROM timecards
		WHERE employee_id = $1
		ORDER BY work_date ASC`

	var cards []*Timecard
	if err := r.db.SelectContext(ctx, &cards, query, employeeID); err != nil {
		return nil, err
	}

	return cards, nil
}

// ListByEmployeeAndRange returns an employee's timecards within a date range
// (inclusive), ordered by work date
func (r *TimecardRepository) ListByEmployeeAndRange(ctx context.Context, employeeID int64, start, end time.Time) ([]*Timecard, error) {
	query := `SELECT` + timecardColumns + `
		FROM timecards
		WHERE employee_id = $1 AND work_date BETWEEN $2 AND $3
		ORDER BY work_date ASC`

	var cards []*Timecard
	if err := r.db.SelectContext(ctx, &cards, query, employeeID, start, end); err != nil {
		return nil, err
	}

	return cards, nil
}

// Create creates a new timecard. Status defaults to active when unset.
func (r *TimecardRepository) Create(ctx context.Context, card *Timecard) error {
	if card.Status == "" {
		card.Status = StatusActive
	}

	query := `
		INSERT INTO timecards (
			employee_id, work_date, morning_activity, afternoon_activity,
			facility_start_time, facility_lunch_start, facility_lunch_end, facility_end_time,
			driving_start_time, driving_lunch_start, driving_lunch_end, driving_end_time,
			facility_total_hours, driving_total_hours, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at
	`

	return r.db.QueryRowxContext(ctx, query,
		card.EmployeeID, card.WorkDate, card.MorningActivity, card.AfternoonActivity,
		card.FacilityStartTime, card.FacilityLunchStart, card.FacilityLunchEnd, card.FacilityEndTime,
		card.DrivingStartTime, card.DrivingLunchStart, card.DrivingLunchEnd, card.DrivingEndTime,
		card.FacilityTotal, card.DrivingTotal, card.Status,
	).Scan(&card.ID, &card.CreatedAt, &card.UpdatedAt)
}

// Update applies the non-nil fields of upd to a timecard and returns the
// updated row. COALESCE against the stored column keeps the statement
// static while still skipping absent fields.
func (r *TimecardRepository) Update(ctx context.Context, id int64, upd *TimecardUpdate) (*Timecard, error) {
	query := `
		UPDATE timecards SET
			work_date = COALESCE($2, work_date),
			morning_activity = COALESCE($3, morning_activity),
			afternoon_activity = COALESCE($4, afternoon_activity),
			facility_start_time = COALESCE($5, facility_start_time),
			facility_lunch_start = COALESCE($6, facility_lunch_start),
			facility_lunch_end = COALESCE($7, facility_lunch_end),
			facility_end_time = COALESCE($8, facility_end_time),
			driving_start_time = COALESCE($9, driving_start_time),
			driving_lunch_start = COALESCE($10, driving_lunch_start),
			driving_lunch_end = COALESCE($11, driving_lunch_end),
			driving_end_time = COALESCE($12, driving_end_time),
			facility_total_hours = COALESCE($13, facility_total_hours),
			driving_total_hours = COALESCE($14, driving_total_hours),
			status = COALESCE($15, status),
			updated_at = NOW()
		WHERE id = $1
		RETURNING` + timecardColumns

	var card Timecard
	err := r.db.GetContext(ctx, &card, query,
		id, upd.WorkDate, upd.MorningActivity, upd.AfternoonActivity,
		upd.FacilityStartTime, upd.FacilityLunchStart, upd.FacilityLunchEnd, upd.FacilityEndTime,
		upd.DrivingStartTime, upd.DrivingLunchStart, upd.DrivingLunchEnd, upd.DrivingEndTime,
		upd.FacilityTotal, upd.DrivingTotal, upd.Status,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("timecard")
	}
	if err != nil {
		return nil, err
	}

	return &card, nil
}

// Delete deletes a timecard by ID and returns the deleted row
func (r *TimecardRepository) Delete(ctx context.Context, id int64) (*Timecard, error) {
	query := `DELETE FROM timecards WHERE id = $1 RETURNING` + timecardColumns

	var card Timecard
	err := r.db.GetContext(ctx, &card, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("timecard")
	}
	if err != nil {
		return nil, err
	}

	return &card, nil
}
