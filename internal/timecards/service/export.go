package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/wcac/timecards-backend/pkg/logger"
)

// ReportExporter renders period summary reports to PDF
type ReportExporter struct {
	reports *ReportService
	logger  *logger.Logger
}

// NewReportExporter creates a new report exporter
func NewReportExporter(reports *ReportService, log *logger.Logger) *ReportExporter {
	return &ReportExporter{
		reports: reports,
		logger:  log,
	}
}

// ExportSummary renders the period summary report for an employee (or ALL)
// as a PDF document. Parameter validation is inherited from the summary
// assembly, so an invalid range or period fails before rendering starts.
func (e *ReportExporter) ExportSummary(ctx context.Context, employeeRef, period, startDate, endDate string) ([]byte, error) {
	rows, err := e.reports.Summary(ctx, employeeRef, period, startDate, endDate)
	if err != nil {
		return nil, err
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Timecard Summary Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Timecard Summary Report", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Period: %s    Range: %s to %s", period, startDate, endDate), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	headers := []string{"Employee", "Period Start", "Days Worked", "Absentee Days", "Facility", "Driving"}
	widths := []float64{70, 40, 30, 32, 32, 32}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		pdf.CellFormat(widths[0], 7, fmt.Sprintf("%s %s", row.FirstName, row.LastName), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, row.PeriodStart.Format("2006-01-02"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 7, fmt.Sprintf("%d", row.DaysWorked), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 7, fmt.Sprintf("%d", row.AbsenteeDays), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 7, row.FacilityTotal.String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[5], 7, row.DrivingTotal.String(), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	if len(rows) == 0 {
		pdf.CellFormat(0, 7, "No data found for the specified date range", "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		e.logger.Error().Err(err).Msg("failed to render summary pdf")
		return nil, err
	}

	return buf.Bytes(), nil
}
