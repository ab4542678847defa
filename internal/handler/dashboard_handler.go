package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skilltrack/tms-api/internal/service"
	"github.com/skilltrack/tms-api/pkg/response"
)

// DashboardHandler exposes the dashboard summary endpoint.
type DashboardHandler struct {
	dashboard *service.DashboardService
}

// NewDashboardHandler constructs DashboardHandler.
func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Summary returns aggregate statistics for the landing dashboard.
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, cached, err := h.dashboard.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	meta := map[string]interface{}{"cached": cached}
	response.JSON(c, http.StatusOK, summary, meta)
}
