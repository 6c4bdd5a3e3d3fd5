package handler

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"devonxona/internal/domain"
	"devonxona/internal/export"
	"devonxona/internal/port"
	"devonxona/internal/service"
)

// ReportHandler handles register export endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func parseRegisterFilter(c *gin.Context) port.CorrespondenceFilter {
	return port.CorrespondenceFilter{
		Type:      domain.CorrespondenceType(c.Query("type")),
		Kartoteka: domain.Kartoteka(c.Query("kartoteka")),
		Stage:     domain.Stage(c.Query("stage")),
		Search:    c.Query("search"),
	}
}

// RegisterCSV handles GET /api/v1/reports/register.csv
// @Summary Download the correspondence register as CSV
// @Description Streams the filtered register with a UTF-8 BOM for Excel
// @Tags reports
// @Produce text/csv
// @Param type query string false "Filter by type (Kiruvchi or Chiquvchi)"
// @Param kartoteka query string false "Filter by kartoteka"
// @Param stage query string false "Filter by workflow stage"
// @Param search query string false "Match against title, content, or source"
// @Success 200 {string} string "CSV file"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /reports/register.csv [get]
func (h *ReportHandler) RegisterCSV(c *gin.Context) {
	filename := export.BuildFilename("csv")
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	if err := h.reportService.RegisterCSV(c.Request.Context(), c.Writer, parseRegisterFilter(c)); err != nil {
		// Headers are already sent; the truncated body is the best signal left.
		log.Printf("reportHandler.RegisterCSV: export failed: %v", err)
	}
}

// RegisterXLSX handles GET /api/v1/reports/register.xlsx
// @Summary Download the correspondence register as an Excel workbook
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param type query string false "Filter by type (Kiruvchi or Chiquvchi)"
// @Param kartoteka query string false "Filter by kartoteka"
// @Param stage query string false "Filter by workflow stage"
// @Param search query string false "Match against title, content, or source"
// @Success 200 {string} string "XLSX file"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /reports/register.xlsx [get]
func (h *ReportHandler) RegisterXLSX(c *gin.Context) {
	filename := export.BuildFilename("xlsx")
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	if err := h.reportService.RegisterXLSX(c.Request.Context(), c.Writer, parseRegisterFilter(c)); err != nil {
		log.Printf("reportHandler.RegisterXLSX: export failed: %v", err)
	}
}
