package api

import (
	"net/http"

	"fittrack/fitness-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// StatsHandler holds the stats service dependency.
type StatsHandler struct {
	statsService service.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetDashboard handles GET /stats/dashboard.
func (h *StatsHandler) GetDashboard(c *gin.Context) {
	stats, err := h.statsService.GetDashboardStats(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetGoalTypes handles GET /stats/goal-types. Aggregation failures
// degrade to an empty list inside the service.
func (h *StatsHandler) GetGoalTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"goal_types": h.statsService.GetGoalTypeStats(c.Request.Context()),
	})
}

// GetProgressDistribution handles GET /stats/progress-distribution.
func (h *StatsHandler) GetProgressDistribution(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"buckets": h.statsService.GetProgressDistribution(c.Request.Context()),
	})
}

// GetMonthly handles GET /stats/monthly.
func (h *StatsHandler) GetMonthly(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"months": h.statsService.GetMonthlyStats(c.Request.Context()),
	})
}

// GetRecentActivity handles GET /stats/recent-activity.
func (h *StatsHandler) GetRecentActivity(c *gin.Context) {
	c.JSON(http.StatusOK, h.statsService.GetRecentActivity(c.Request.Context()))
}
