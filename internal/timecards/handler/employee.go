package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wcac/timecards-backend/internal/timecards/repository"
	"github.com/wcac/timecards-backend/internal/timecards/service"
	"github.com/wcac/timecards-backend/pkg/errors"
	"github.com/wcac/timecards-backend/pkg/httputil"
	"github.com/wcac/timecards-backend/pkg/logger"
)

// EmployeeHandler handles employee endpoints
type EmployeeHandler struct {
	service *service.EmployeeService
	logger  *logger.Logger
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(svc *service.EmployeeService, log *logger.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		service: svc,
		logger:  log,
	}
}

// List lists all employees
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.service.List(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, employees)
}

// Get gets an employee by ID
func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		httputil.Error(w, err)
		return
	}

	employee, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, employee)
}

// GetByAuthUID looks up the employee linked to an auth provider UID. Login
// flows call this right after token verification to map the UID to a
// staff record.
func (h *EmployeeHandler) GetByAuthUID(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")
	if uid == "" {
		httputil.Error(w, errors.BadRequest("uid param is required"))
		return
	}

	employee, err := h.service.GetByAuthUID(r.Context(), uid)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	if employee == nil {
		httputil.Error(w, errors.NotFound("employee"))
		return
	}

	httputil.JSON(w, http.StatusOK, employee)
}

// CreateEmployeeRequest is the request structure for creating an employee
type CreateEmployeeRequest struct {
	AuthUID   *string `json:"auth_uid,omitempty"`
	FirstName string  `json:"first_name" validate:"required"`
	LastName  string  `json:"last_name" validate:"required"`
	Email     string  `json:"email" validate:"required,email"`
	Phone     *string `json:"phone,omitempty"`
	Position  *string `json:"position,omitempty"`
	PayrollID *string `json:"payroll_id,omitempty"`
	IsAdmin   bool    `json:"is_admin"`
}

// Create creates a new employee
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	if err := httputil.Validate(&req); err != nil {
		httputil.Error(w, err)
		return
	}

	employee := &repository.Employee{
		AuthUID:   req.AuthUID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Position:  req.Position,
		PayrollID: req.PayrollID,
		IsAdmin:   req.IsAdmin,
	}

	if err := h.service.Create(r.Context(), employee); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.Created(w, employee)
}

// Update updates an employee
func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		httputil.Error(w, err)
		return
	}

	var req CreateEmployeeRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	if err := httputil.Validate(&req); err != nil {
		httputil.Error(w, err)
		return
	}

	employee := &repository.Employee{
		ID:        id,
		AuthUID:   req.AuthUID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Position:  req.Position,
		PayrollID: req.PayrollID,
		IsAdmin:   req.IsAdmin,
	}

	if err := h.service.Update(r.Context(), employee); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, employee)
}

// Delete deletes an employee
func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		httputil.Error(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.NoContent(w)
}
