package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/wcac/timecards-backend/internal/timecards/service"
	"github.com/wcac/timecards-backend/pkg/errors"
	"github.com/wcac/timecards-backend/pkg/httputil"
	"github.com/wcac/timecards-backend/pkg/logger"
)

// ReportHandler handles reporting endpoints
type ReportHandler struct {
	reports  *service.ReportService
	exporter *service.ReportExporter
	logger   *logger.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(reports *service.ReportService, exporter *service.ReportExporter, log *logger.Logger) *ReportHandler {
	return &ReportHandler{
		reports:  reports,
		exporter: exporter,
		logger:   log,
	}
}

// RangeTotals returns per-employee facility and driving totals for a date
// range. The employeeId path parameter accepts a numeric ID or "ALL".
func (h *ReportHandler) RangeTotals(w http.ResponseWriter, r *http.Request) {
	employeeRef := chi.URLParam(r, "employeeId")
	start, end := dateRangeQuery(r)

	totals, err := h.reports.RangeTotals(r.Context(), employeeRef, start, end)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, totals)
}

// RangeTotalsAll returns range totals for every employee. The date range
// comes in as path parameters. Zero matching rows is a 404 on this route.
func (h *ReportHandler) RangeTotalsAll(w http.ResponseWriter, r *http.Request) {
	start := chi.URLParam(r, "start")
	end := chi.URLParam(r, "end")

	totals, err := h.reports.RangeTotalsAll(r.Context(), start, end)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	if len(totals) == 0 {
		httputil.Error(w, errors.New("NOT_FOUND", "No timecards found", http.StatusNotFound))
		return
	}

	httputil.JSON(w, http.StatusOK, totals)
}

// Detailed returns one employee's per-day report entries plus range totals
func (h *ReportHandler) Detailed(w http.ResponseWriter, r *http.Request) {
	employeeID, err := idParam(r, "employeeId")
	if err != nil {
		httputil.Error(w, err)
		return
	}

	start, end := dateRangeQuery(r)

	detailed, err := h.reports.Detailed(r.Context(), employeeID, start, end)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, detailed)
}

// Summary returns one employee's period summary rows. Unlike the range
// totals route this one only takes numeric IDs; the all-employees variant
// has its own route.
func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	employeeRef := chi.URLParam(r, "employeeId")
	if _, err := strconv.ParseInt(employeeRef, 10, 64); err != nil {
		httputil.Error(w, errors.BadRequest("Invalid or missing employeeId"))
		return
	}

	q := r.URL.Query()
	start, end := dateRangeQuery(r)

	summaries, err := h.reports.Summary(r.Context(), employeeRef, q.Get("period"), start, end)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	if len(summaries) == 0 {
		httputil.Error(w, errors.New("NOT_FOUND", "No data found for the specified employee and date range", http.StatusNotFound))
		return
	}

	httputil.JSON(w, http.StatusOK, summaries)
}

// SummaryAll returns period summary rows for every employee. An empty
// result is still a 200 with an empty list.
func (h *ReportHandler) SummaryAll(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, end := dateRangeQuery(r)

	summaries, err := h.reports.SummaryAll(r.Context(), q.Get("period"), start, end)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	if summaries == nil {
		summaries = []*service.EmployeeSummary{}
	}

	if len(summaries) == 0 {
		httputil.JSONWithMessage(w, http.StatusOK, summaries, "No data found for the specified date range")
		return
	}

	httputil.JSONWithMessage(w, http.StatusOK, summaries, "Employee summary retrieved successfully")
}

// ExportSummary renders the period summary as a downloadable PDF. The
// employeeId query parameter accepts a numeric ID or "ALL" and defaults
// to all employees.
func (h *ReportHandler) ExportSummary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	employeeRef := q.Get("employeeId")
	if employeeRef == "" {
		employeeRef = service.AllEmployees
	}

	pdf, err := h.exporter.ExportSummary(r.Context(), employeeRef, q.Get("period"), q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	filename := fmt.Sprintf("employee-summary-%s.pdf", q.Get("period"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}
