package service

import (
	"context"
	"time"

	"github.com/wcac/timecards-backend/internal/timecards/events"
	"github.com/wcac/timecards-backend/internal/timecards/repository"
	"github.com/wcac/timecards-backend/pkg/errors"
	"github.com/wcac/timecards-backend/pkg/logger"
)

// TimecardService handles timecard business logic
type TimecardService struct {
	repo      *repository.TimecardRepository
	employees *repository.EmployeeRepository
	publisher *events.TimecardEventPublisher
	logger    *logger.Logger
}

// NewTimecardService creates a new timecard service
func NewTimecardService(
	repo *repository.TimecardRepository,
	employees *repository.EmployeeRepository,
	publisher *events.TimecardEventPublisher,
	log *logger.Logger,
) *TimecardService {
	return &TimecardService{
		repo:      repo,
		employees: employees,
		publisher: publisher,
		logger:    log,
	}
}

// List returns all timecards
func (s *TimecardService) List(ctx context.Context) ([]*repository.Timecard, error) {
	cards, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list timecards")
		return nil, err
	}

	return cards, nil
}

// GetByID returns one timecard
func (s *TimecardService) GetByID(ctx context.Context, id int64) (*repository.Timecard, error) {
	return s.repo.GetByID(ctx, id)
}

// ListByEmployee returns all timecards for an employee
func (s *TimecardService) ListByEmployee(ctx context.Context, employeeID int64) ([]*repository.Timecard, error) {
	if _, err := s.employees.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	return s.repo.ListByEmployee(ctx, employeeID)
}

// ListByEmployeeAndRange returns an employee's timecards within a date
// range. The range is validated before any query runs.
func (s *TimecardService) ListByEmployeeAndRange(ctx context.Context, employeeID int64, startDate, endDate string) ([]*repository.Timecard, error) {
	start, end, err := ParseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	return s.repo.ListByEmployeeAndRange(ctx, employeeID, start, end)
}

// Create creates a new timecard for an employee
func (s *TimecardService) Create(ctx context.Context, card *repository.Timecard) error {
	if _, err := s.employees.GetByID(ctx, card.EmployeeID); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, card); err != nil {
		s.logger.Error().Err(err).Int64("employee_id", card.EmployeeID).Msg("failed to create timecard")
		return err
	}

	s.publisher.PublishTimecardCreated(ctx, card)

	return nil
}

// Update applies a partial update to a timecard. Submitted and locked
// timecards reject every mutation.
func (s *TimecardService) Update(ctx context.Context, id int64, upd *repository.TimecardUpdate) (*repository.Timecard, error) {
	if upd.IsEmpty() {
		return nil, errors.BadRequest("no fields provided for update")
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Status != repository.StatusActive {
		return nil, errors.Forbidden("This timecard has been locked and cannot be modified.")
	}

	card, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		s.logger.Error().Err(err).Int64("timecard_id", id).Msg("failed to update timecard")
		return nil, err
	}

	if upd.Status != nil && *upd.Status == repository.StatusSubmitted {
		s.publisher.PublishTimecardSubmitted(ctx, card)
	} else {
		s.publisher.PublishTimecardUpdated(ctx, card)
	}

	return card, nil
}

// Delete deletes a timecard. Submitted and locked timecards reject
// deletion like any other mutation.
func (s *TimecardService) Delete(ctx context.Context, id int64) (*repository.Timecard, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Status != repository.StatusActive {
		return nil, errors.Forbidden("This timecard has been locked and cannot be modified.")
	}

	card, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publisher.PublishTimecardDeleted(ctx, card)

	return card, nil
}

// ParseDateRange validates a startDate/endDate pair of ISO dates. Both
// must parse and the start must not be after the end; validation happens
// before any query touches the database.
func ParseDateRange(startDate, endDate string) (time.Time, time.Time, error) {
	start, errStart := time.Parse("2006-01-02", startDate)
	end, errEnd := time.Parse("2006-01-02", endDate)
	if startDate == "" || endDate == "" || errStart != nil || errEnd != nil {
		return time.Time{}, time.Time{}, errors.BadRequest("Invalid date range. Both startDate and endDate must be valid dates.")
	}

	if start.After(end) {
		return time.Time{}, time.Time{}, errors.BadRequest("startDate must not be later than endDate.")
	}

	return start, end, nil
}
