package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skilltrack/tms-api/internal/service"
	"github.com/skilltrack/tms-api/pkg/response"
)

// ReportHandler exposes report generation and export endpoints.
type ReportHandler struct {
	reports *service.ReportService
}

// NewReportHandler constructs ReportHandler.
func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Generate returns report rows for the requested type and date bounds.
func (h *ReportHandler) Generate(c *gin.Context) {
	query, err := h.reports.ParseQuery(c.Param("type"), c.Query("from"), c.Query("to"))
	if err != nil {
		response.Error(c, err)
		return
	}
	rows, err := h.reports.Generate(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	meta := map[string]interface{}{"report_type": string(query.Type), "count": len(rows)}
	response.JSON(c, http.StatusOK, rows, meta)
}

// Export streams the report as CSV or PDF depending on the format query.
func (h *ReportHandler) Export(c *gin.Context) {
	query, err := h.reports.ParseQuery(c.Param("type"), c.Query("from"), c.Query("to"))
	if err != nil {
		response.Error(c, err)
		return
	}
	format := c.DefaultQuery("format", "csv")
	result, err := h.reports.Export(c.Request.Context(), query, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
