package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wcac/timecards-backend/internal/timecards/handler"
	"github.com/wcac/timecards-backend/internal/timecards/repository"
	"github.com/wcac/timecards-backend/internal/timecards/service"
	"github.com/wcac/timecards-backend/pkg/database"
	"github.com/wcac/timecards-backend/pkg/testutil"
)

func newEmployeeRouter(mockDB *testutil.MockDB) chi.Router {
	db := database.NewWithDB(mockDB.DB, testLog)
	svc := service.NewEmployeeService(repository.NewEmployeeRepository(db), nil, testLog)
	h := handler.NewEmployeeHandler(svc, testLog)

	r := chi.NewRouter()
	r.Get("/employees", h.List)
	r.Post("/employees", h.Create)
	r.Get("/employees/auth/{uid}", h.GetByAuthUID)
	r.Get("/employees/{id}", h.Get)
	r.Put("/employees/{id}", h.Update)
	r.Delete("/employees/{id}", h.Delete)
	return r
}

func employeeColumns() []string {
	return []string{
		"id", "auth_uid", "first_name", "last_name", "email",
		"phone", "position", "payroll_id", "is_admin", "created_at", "updated_at",
	}
}

func TestEmployeeHandler_Get(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	now := time.Now()
	mockDB.ExpectQuery("FROM employees").
		WithArgs(int64(7)).
		WillReturnRows(testutil.MockRows(employeeColumns()...).
			AddRow(int64(7), "uid-7", "Rosa", "Alvarez", "rosa@example.com",
				nil, nil, nil, false, now, now))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/employees/7", nil)
	newEmployeeRouter(mockDB).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)

	mockDB.ExpectationsWereMet(t)
}

func TestEmployeeHandler_Get_NotFound(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	mockDB.ExpectQuery("FROM employees").
		WithArgs(int64(99)).
		WillReturnRows(testutil.MockRows(employeeColumns()...))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/employees/99", nil)
	newEmployeeRouter(mockDB).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	mockDB.ExpectationsWereMet(t)
}

func TestEmployeeHandler_GetByAuthUID_UnlinkedIs404(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	mockDB.ExpectQuery("WHERE auth_uid").
		WithArgs("unknown-uid").
		WillReturnRows(testutil.MockRows(employeeColumns()...))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/employees/auth/unknown-uid", nil)
	newEmployeeRouter(mockDB).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	mockDB.ExpectationsWereMet(t)
}

func TestEmployeeHandler_Create_RejectsInvalidEmail(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/employees",
		strings.NewReader(`{"first_name":"Rosa","last_name":"Alvarez","email":"not-an-email"}`))
	newEmployeeRouter(mockDB).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Contains(t, resp.Error.Details, "Email")
}

func TestEmployeeHandler_Delete(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	mockDB.ExpectExec("DELETE FROM employees").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/employees/7", nil)
	newEmployeeRouter(mockDB).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)

	mockDB.ExpectationsWereMet(t)
}
