package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wcac/timecards-backend/internal/timecards/handler"
	"github.com/wcac/timecards-backend/internal/timecards/repository"
	"github.com/wcac/timecards-backend/internal/timecards/service"
	"github.com/wcac/timecards-backend/pkg/database"
	"github.com/wcac/timecards-backend/pkg/testutil"
)

func newTimecardRouter(mockDB *testutil.MockDB) chi.Router {
	db := database.NewWithDB(mockDB.DB, testLog)
	svc := service.NewTimecardService(
		repository.NewTimecardRepository(db),
		repository.NewEmployeeRepository(db),
		nil, // events disabled
		testLog,
	)
	h := handler.NewTimecardHandler(svc, testLog)

	r := chi.NewRouter()
	r.Get("/timecards", h.List)
	r.Get("/timecards/{id}", h.Get)
	r.Put("/timecards/{id}", h.Update)
	r.Delete("/timecards/{id}", h.Delete)
	r.Get("/timecards/employee/{id}", h.ListByEmployee)
	r.Get("/timecards/employee/{id}/range/{start}/{end}", h.ListByEmployeeAndRange)
	return r
}

func timecardColumns() []string {
	return []string{
		"id", "employee_id", "work_date", "morning_activity", "afternoon_activity",
		"facility_start_time", "facility_lunch_start", "facility_lunch_end", "facility_end_time",
		"driving_start_time", "driving_lunch_start", "driving_lunch_end", "driving_end_time",
		"facility_total_hours", "driving_total_hours", "status", "created_at", "updated_at",
	}
}

func TestTimecardHandler_Get(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	now := time.Now()
	workDate := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)
	mockDB.ExpectQuery("FROM timecards").
		WithArgs(int64(5)).
		WillReturnRows(testutil.MockRows(timecardColumns()...).
			AddRow(int64(5), int64(7), workDate, nil, nil,
				nil, nil, nil, nil,
				nil, nil, nil, nil,
				[]byte(`{"hours":8,"minutes":0}`), nil,
				repository.StatusActive, now, now))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/timecards/5", nil)
	newTimecardRouter(mockDB).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)

	mockDB.ExpectationsWereMet(t)
}

func TestTimecardHandler_Get_RejectsNonNumericID(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/timecards/abc", nil)
	newTimecardRouter(mockDB).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "id param must be a positive integer; received abc", resp.Error.Message)
}

func TestTimecardHandler_Update_LockedIs403(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	now := time.Now()
	workDate := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)
	mockDB.ExpectQuery("FROM timecards").
		WithArgs(int64(5)).
		WillReturnRows(testutil.MockRows(timecardColumns()...).
			AddRow(int64(5), int64(7), workDate, nil, nil,
				nil, nil, nil, nil,
				nil, nil, nil, nil,
				nil, nil,
				repository.StatusLocked, now, now))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/timecards/5",
		strings.NewReader(`{"facility_start_time":"08:00"}`))
	newTimecardRouter(mockDB).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "This timecard has been locked and cannot be modified.", resp.Error.Message)

	mockDB.ExpectationsWereMet(t)
}

func TestTimecardHandler_Update_RejectsBadStatusValue(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/timecards/5",
		strings.NewReader(`{"status":"archived"}`))
	newTimecardRouter(mockDB).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
}

func TestTimecardHandler_ListByEmployeeAndRange_InvalidRange(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/timecards/employee/7/range/2024-02-01/2024-01-01", nil)
	newTimecardRouter(mockDB).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "startDate must not be later than endDate.", resp.Error.Message)
}
