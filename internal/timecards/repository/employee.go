// Package repository implements Postgres persistence for employees,
// timecards, and the reporting queries built over them.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/wcac/timecards-backend/pkg/database"
	"github.com/wcac/timecards-backend/pkg/errors"
)

// Employee represents a staff member who files timecards
type Employee struct {
	ID        int64     `db:"id" json:"id"`
	AuthUID   *string   `db:"auth_uid" json:"auth_uid,omitempty"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	Email     string    `db:"email" json:"email"`
	Phone     *string   `db:"phone" json:"phone,omitempty"`
	Position  *string   `db:"position" json:"position,omitempty"`
	PayrollID *string   `db:"payroll_id" json:"payroll_id,omitempty"`
	IsAdmin   bool      `db:"is_admin" json:"is_admin"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// EmployeeRepository handles employee persistence
type EmployeeRepository struct {
	db *database.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *database.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// List returns all employees ordered by ID
func (r *EmployeeRepository) List(ctx context.Context) ([]*Employee, error) {
	query := `
		SELECT id, auth_uid, first_name, last_name, email, phone, position,
		       payroll_id, is_admin, created_at, updated_at
		FROM employees
		ORDER BY id ASC
	`

	var employees []*Employee
	if err := r.db.SelectContext(ctx, &employees, query); err != nil {
		return nil, err
	}

	return employees, nil
}

// GetByID gets an employee by ID
func (r *EmployeeRepository) GetByID(ctx context.Context, id int64) (*Employee, error) {
	query := `
		SELECT id, auth_uid, first_name, last_name, email, phone, position,
		       payroll_id, is_admin, created_at, updated_at
		FROM employees
		WHERE id = $1
	`

	var emp Employee
	err := r.db.GetContext(ctx, &emp, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("employee")
	}
	if err != nil {
		return nil, err
	}

	return &emp, nil
}

// GetByAuthUID gets an employee by the external auth provider UID. Returns
// nil without an error when no employee is linked to the UID yet, so a
// first sign-in can fall through to registration.
func (r *EmployeeRepository) GetByAuthUID(ctx context.Context, authUID string) (*Employee, error) {
	query := `
		SELECT id, auth_uid, first_name, last_name, email, phone, position,
		       payroll_id, is_admin, created_at, updated_at
		FROM employees
		WHERE auth_uid = $1
	`

	var emp Employee
	err := r.db.GetContext(ctx, &emp, query, authUID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &emp, nil
}

// Create creates a new employee
func (r *EmployeeRepository) Create(ctx context.Context, emp *Employee) error {
	query := `
		INSERT INTO employees (auth_uid, first_name, last_name, email, phone, position)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, is_admin, created_at, updated_at
	`

	return r.db.QueryRowxContext(ctx, query,
		emp.AuthUID, emp.FirstName, emp.LastName, emp.Email, emp.Phone, emp.Position,
	).Scan(&emp.ID, &emp.IsAdmin, &emp.CreatedAt, &emp.UpdatedAt)
}

// Update updates an employee by ID
func (r *EmployeeRepository) Update(ctx context.Context, emp *Employee) error {
	query := `
		UPDATE employees
		SET first_name = $2, last_name = $3, email = $4, phone = $5,
		    position = $6, payroll_id = $7, is_admin = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		emp.ID, emp.FirstName, emp.LastName, emp.Email, emp.Phone,
		emp.Position, emp.PayrollID, emp.IsAdmin,
	).Scan(&emp.UpdatedAt)
	if err == sql.ErrNoRows {
		return errors.NotFound("employee")
	}

	return err
}

// Delete deletes an employee by ID
func (r *EmployeeRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return errors.NotFound("employee")
	}

	return nil
}
