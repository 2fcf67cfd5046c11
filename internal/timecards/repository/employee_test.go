package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wcac/timecards-backend/internal/timecards/repository"
	"github.com/wcac/timecards-backend/pkg/database"
	"github.com/wcac/timecards-backend/pkg/errors"
	"github.com/wcac/timecards-backend/pkg/logger"
	"github.com/wcac/timecards-backend/pkg/testutil"
)

var testLog = logger.New("repository-test", "test")

func employeeColumns() []string {
	return []string{
		"id", "auth_uid", "first_name", "last_name", "email", "phone",
		"position", "payroll_id", "is_admin", "created_at", "updated_at",
	}
}

func TestEmployeeRepository_GetByID(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	now := time.Now()
	mockDB.ExpectQuery("FROM employees").
		WithArgs(int64(7)).
		WillReturnRows(testutil.MockRows(employeeColumns()...).
			AddRow(int64(7), "uid-7", "Rosa", "Alvarez", "rosa@example.com",
				nil, "Driver", nil, false, now, now))

	repo := repository.NewEmployeeRepository(database.NewWithDB(mockDB.DB, testLog))
	emp, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, int64(7), emp.ID)
	assert.Equal(t, "Rosa", emp.FirstName)
	assert.Equal(t, "Alvarez", emp.LastName)
	require.NotNil(t, emp.AuthUID)
	assert.Equal(t, "uid-7", *emp.AuthUID)
	assert.False(t, emp.IsAdmin)

	mockDB.ExpectationsWereMet(t)
}

func TestEmployeeRepository_GetByID_NotFound(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	mockDB.ExpectQuery("FROM employees").
		WithArgs(int64(99)).
		WillReturnRows(testutil.MockRows(employeeColumns()...))

	repo := repository.NewEmployeeRepository(database.NewWithDB(mockDB.DB, testLog))
	emp, err := repo.GetByID(context.Background(), 99)

	assert.Nil(t, emp)
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	mockDB.ExpectationsWereMet(t)
}

func TestEmployeeRepository_GetByAuthUID_Unlinked(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	mockDB.ExpectQuery("WHERE auth_uid").
		WithArgs("unknown-uid").
		WillReturnRows(testutil.MockRows(employeeColumns()...))

	repo := repository.NewEmployeeRepository(database.NewWithDB(mockDB.DB, testLog))
	emp, err := repo.GetByAuthUID(context.Background(), "unknown-uid")

	// No linked employee is a registration case, not an error.
	require.NoError(t, err)
	assert.Nil(t, emp)

	mockDB.ExpectationsWereMet(t)
}

func TestEmployeeRepository_List(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	now := time.Now()
	mockDB.ExpectQuery("ORDER BY id ASC").
		WillReturnRows(testutil.MockRows(employeeColumns()...).
			AddRow(int64(1), nil, "Ana", "Silva", "ana@example.com", nil, nil, nil, true, now, now).
			AddRow(int64(2), nil, "Ben", "Okafor", "ben@example.com", nil, nil, nil, false, now, now))

	repo := repository.NewEmployeeRepository(database.NewWithDB(mockDB.DB, testLog))
	employees, err := repo.List(context.Background())
	require.NoError(t, err)

	require.Len(t, employees, 2)
	assert.Equal(t, int64(1), employees[0].ID)
	assert.True(t, employees[0].IsAdmin)
	assert.Equal(t, "Ben", employees[1].FirstName)

	mockDB.ExpectationsWereMet(t)
}

func TestEmployeeRepository_Create(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	now := time.Now()
	uid := "new-uid"
	mockDB.ExpectQuery("INSERT INTO employees").
		WithArgs(uid, "Mira", "Chen", "mira@example.com", nil, nil).
		WillReturnRows(testutil.MockRows("id", "is_admin", "created_at", "updated_at").
			AddRow(int64(12), false, now, now))

	repo := repository.NewEmployeeRepository(database.NewWithDB(mockDB.DB, testLog))
	emp := &repository.Employee{
		AuthUID:   &uid,
		FirstName: "Mira",
		LastName:  "Chen",
		Email:     "mira@example.com",
	}
	err := repo.Create(context.Background(), emp)
	require.NoError(t, err)

	assert.Equal(t, int64(12), emp.ID)
	assert.False(t, emp.IsAdmin)
	assert.WithinDuration(t, now, emp.CreatedAt, time.Second)

	mockDB.ExpectationsWereMet(t)
}

func TestEmployeeRepository_Delete_NotFound(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	mockDB.ExpectExec("DELETE FROM employees").
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := repository.NewEmployeeRepository(database.NewWithDB(mockDB.DB, testLog))
	err := repo.Delete(context.Background(), 42)

	assert.True(t, errors.Is(err, errors.ErrNotFound))

	mockDB.ExpectationsWereMet(t)
}

func TestEmployeeRepository_Delete(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	mockDB.ExpectExec("DELETE FROM employees").
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := repository.NewEmployeeRepository(database.NewWithDB(mockDB.DB, testLog))
	err := repo.Delete(context.Background(), 3)

	require.NoError(t, err)

	mockDB.ExpectationsWereMet(t)
}
