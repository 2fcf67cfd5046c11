// Package service implements timecard business logic on top of the
// repositories: CRUD orchestration, timecard status guards, and report
// assembly.
package service

import (
	"context"

	"github.com/wcac/timecards-backend/internal/timecards/events"
	"github.com/wcac/timecards-backend/internal/timecards/repository"
	"github.com/wcac/timecards-backend/pkg/logger"
)

// EmployeeService handles employee business logic
type EmployeeService struct {
	repo      *repository.EmployeeRepository
	publisher *events.EmployeeEventPublisher
	logger    *logger.Logger
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(
	repo *repository.EmployeeRepository,
	publisher *events.EmployeeEventPublisher,
	log *logger.Logger,
) *EmployeeService {
	return &EmployeeService{
		repo:      repo,
		publisher: publisher,
		logger:    log,
	}
}

// List returns all employees
func (s *EmployeeService) List(ctx context.Context) ([]*repository.Employee, error) {
	employees, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list employees")
		return nil, err
	}

	return employees, nil
}

// GetByID returns one employee
func (s *EmployeeService) GetByID(ctx context.Context, id int64) (*repository.Employee, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByAuthUID returns the employee linked to an auth provider UID, or nil
// when none is linked yet.
func (s *EmployeeService) GetByAuthUID(ctx context.Context, authUID string) (*repository.Employee, error) {
	emp, err := s.repo.GetByAuthUID(ctx, authUID)
	if err != nil {
		s.logger.Error().Err(err).Str("auth_uid", authUID).Msg("failed to look up employee by auth uid")
		return nil, err
	}

	return emp, nil
}

// Create creates a new employee
func (s *EmployeeService) Create(ctx context.Context, emp *repository.Employee) error {
	if err := s.repo.Create(ctx, emp); err != nil {
		s.logger.Error().Err(err).Msg("failed to create employee")
		return err
	}

	s.publisher.PublishEmployeeCreated(ctx, emp)

	return nil
}

// Update updates an employee
func (s *EmployeeService) Update(ctx context.Context, emp *repository.Employee) error {
	if err := s.repo.Update(ctx, emp); err != nil {
		return err
	}

	s.publisher.PublishEmployeeUpdated(ctx, emp)

	return nil
}

// Delete deletes an employee
func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.publisher.PublishEmployeeDeleted(ctx, id)

	return nil
}
