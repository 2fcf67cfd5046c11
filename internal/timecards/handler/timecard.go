package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wcac/timecards-backend/internal/timecards/report"
	"github.com/wcac/timecards-backend/internal/timecards/repository"
	"github.com/wcac/timecards-backend/internal/timecards/service"
	"github.com/wcac/timecards-backend/pkg/errors"
	"github.com/wcac/timecards-backend/pkg/httputil"
	"github.com/wcac/timecards-backend/pkg/logger"
)

// TimecardHandler handles timecard endpoints
type TimecardHandler struct {
	service *service.TimecardService
	logger  *logger.Logger
}

// NewTimecardHandler creates a new timecard handler
func NewTimecardHandler(svc *service.TimecardService, log *logger.Logger) *TimecardHandler {
	return &TimecardHandler{
		service: svc,
		logger:  log,
	}
}

// List lists all timecards
func (h *TimecardHandler) List(w http.ResponseWriter, r *http.Request) {
	timecards, err := h.service.List(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, timecards)
}

// Get gets a timecard by ID
func (h *TimecardHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		httputil.Error(w, err)
		return
	}

	timecard, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, timecard)
}

// ListByEmployee lists all timecards filed by one employee
func (h *TimecardHandler) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID, err := idParam(r, "id")
	if err != nil {
		httputil.Error(w, err)
		return
	}

	timecards, err := h.service.ListByEmployee(r.Context(), employeeID)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, timecards)
}

// ListByEmployeeAndRange lists one employee's timecards between two dates
// given as path parameters.
func (h *TimecardHandler) ListByEmployeeAndRange(w http.ResponseWriter, r *http.Request) {
	employeeID, err := idParam(r, "id")
	if err != nil {
		httputil.Error(w, err)
		return
	}

	start := chi.URLParam(r, "start")
	end := chi.URLParam(r, "end")

	timecards, err := h.service.ListByEmployeeAndRange(r.Context(), employeeID, start, end)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, timecards)
}

// CreateTimecardRequest is the request structure for creating a timecard.
// Duration totals default to zero when omitted.
type CreateTimecardRequest struct {
	EmployeeID         int64                     `json:"employee_id" validate:"required,gt=0"`
	WorkDate           string                    `json:"work_date" validate:"required,datetime=2006-01-02"`
	MorningActivity    *string                   `json:"morning_activity,omitempty" validate:"omitempty,oneof=Facility Driving"`
	AfternoonActivity  *string                   `json:"afternoon_activity,omitempty" validate:"omitempty,oneof=Facility Driving"`
	FacilityStartTime  *string                   `json:"facility_start_time,omitempty"`
	FacilityLunchStart *string                   `json:"facility_lunch_start,omitempty"`
	FacilityLunchEnd   *string                   `json:"facility_lunch_end,omitempty"`
	FacilityEndTime    *string                   `json:"facility_end_time,omitempty"`
	DrivingStartTime   *string                   `json:"driving_start_time,omitempty"`
	DrivingLunchStart  *string                   `json:"driving_lunch_start,omitempty"`
	DrivingLunchEnd    *string                   `json:"driving_lunch_end,omitempty"`
	DrivingEndTime     *string                   `json:"driving_end_time,omitempty"`
	FacilityTotal      report.StructuredDuration `json:"facility_total_hours"`
	DrivingTotal       report.StructuredDuration `json:"driving_total_hours"`
	Status             string                    `json:"status,omitempty" validate:"omitempty,oneof=active submitted locked"`
}

// Create creates a new timecard
func (h *TimecardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTimecardRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	if err := httputil.Validate(&req); err != nil {
		httputil.Error(w, err)
		return
	}

	workDate, err := time.Parse("2006-01-02", req.WorkDate)
	if err != nil {
		httputil.Error(w, errors.BadRequest("work_date must be a valid date in YYYY-MM-DD format"))
		return
	}

	timecard := &repository.Timecard{
		EmployeeID:         req.EmployeeID,
		WorkDate:           workDate,
		MorningActivity:    req.MorningActivity,
		AfternoonActivity:  req.AfternoonActivity,
		FacilityStartTime:  req.FacilityStartTime,
		FacilityLunchStart: req.FacilityLunchStart,
		FacilityLunchEnd:   req.FacilityLunchEnd,
		FacilityEndTime:    req.FacilityEndTime,
		DrivingStartTime:   req.DrivingStartTime,
		DrivingLunchStart:  req.DrivingLunchStart,
		DrivingLunchEnd:    req.DrivingLunchEnd,
		DrivingEndTime:     req.DrivingEndTime,
		FacilityTotal:      req.FacilityTotal,
		DrivingTotal:       req.DrivingTotal,
		Status:             req.Status,
	}

	if err := h.service.Create(r.Context(), timecard); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.Created(w, timecard)
}

// Update applies a partial update to a timecard. Only active timecards can
// be modified.
func (h *TimecardHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		httputil.Error(w, err)
		return
	}

	var upd repository.TimecardUpdate
	if err := httputil.DecodeJSON(r, &upd); err != nil {
		httputil.Error(w, err)
		return
	}

	if err := httputil.Validate(&upd); err != nil {
		httputil.Error(w, err)
		return
	}

	timecard, err := h.service.Update(r.Context(), id, &upd)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, timecard)
}

// Delete deletes a timecard and returns the deleted record
func (h *TimecardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		httputil.Error(w, err)
		return
	}

	timecard, err := h.service.Delete(r.Context(), id)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSONWithMessage(w, http.StatusOK, timecard, "timecard deleted")
}
