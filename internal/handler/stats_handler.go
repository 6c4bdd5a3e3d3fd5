package handler

import (
	"github.com/gin-gonic/gin"

	"devonxona/internal/service"
)

// StatsHandler handles dashboard statistics endpoints.
type StatsHandler struct {
	statsService service.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// Dashboard handles GET /api/v1/stats/dashboard
// @Summary Dashboard statistics
// @Description Correspondence counts grouped by stage, kartoteka, and type
// @Tags stats
// @Produce json
// @Success 200 {object} Response{data=service.DashboardStats} "Aggregate counts"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /stats/dashboard [get]
func (h *StatsHandler) Dashboard(c *gin.Context) {
	stats, err := h.statsService.Dashboard(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, stats)
}
