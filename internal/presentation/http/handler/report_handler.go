package handler

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/cafe-api/internal/application/service"
	"github.com/sangkips/cafe-api/internal/presentation/http/dto/response"
	"github.com/sangkips/cafe-api/pkg/spreadsheet"
	"github.com/sangkips/cafe-api/pkg/utils"
)

// ReportHandler handles profit report HTTP requests
type ReportHandler struct {
	profitService *service.ProfitService
}

// NewReportHandler creates a new report handler
func NewReportHandler(profitService *service.ProfitService) *ReportHandler {
	return &ReportHandler{profitService: profitService}
}

// Range handles a gross profit report between ?start= and ?end= (dates, inclusive)
func (h *ReportHandler) Range(c *gin.Context) {
	start, err := utils.ParseDate(c.Query("start"))
	if err != nil {
		response.BadRequest(c, "start: "+err.Error())
		return
	}
	end, err := utils.ParseDate(c.Query("end"))
	if err != nil {
		response.BadRequest(c, "end: "+err.Error())
		return
	}
	_, end = utils.DayRange(end)

	report, err := h.profitService.Report(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Profit report generated successfully", report)
}

// Daily handles the report for ?date=, defaulting to today
func (h *ReportHandler) Daily(c *gin.Context) {
	date := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		parsed, err := utils.ParseDate(raw)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		date = parsed
	}

	report, err := h.profitService.DailyReport(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Daily report generated successfully", report)
}

// Monthly handles the net profit report for ?month=, defaulting to this month
func (h *ReportHandler) Monthly(c *gin.Context) {
	month, ok := monthQuery(c)
	if !ok {
		return
	}

	report, err := h.profitService.MonthlyReport(c.Request.Context(), month)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Monthly report generated successfully", report)
}

// ExportMonthly streams the monthly report as an XLSX workbook
func (h *ReportHandler) ExportMonthly(c *gin.Context) {
	month, ok := monthQuery(c)
	if !ok {
		return
	}

	// Buffer so a failed export still gets a JSON error
	var buf bytes.Buffer
	if err := h.profitService.ExportMonthlyReport(c.Request.Context(), month, &buf); err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("profit-%s.xlsx", month.Format(utils.MonthLayout))
	response.Attachment(c, filename, spreadsheet.ContentType, buf.Bytes())
}

func monthQuery(c *gin.Context) (time.Time, bool) {
	raw := c.Query("month")
	if raw == "" {
		return utils.MonthStart(time.Now().UTC()), true
	}
	month, err := utils.ParseMonth(raw)
	if err != nil {
		response.BadRequest(c, err.Error())
		return time.Time{}, false
	}
	return month, true
}
