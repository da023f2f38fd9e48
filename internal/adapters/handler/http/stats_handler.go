package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stridehq/stride-engine/internal/adapters/handler/http/middleware"
	"github.com/stridehq/stride-engine/internal/core/domain"
	"github.com/stridehq/stride-engine/internal/core/services"
)

// StatsHandler serves the read-only insight surfaces: the gamification
// ledger, the badge catalog, per-habit history and the activity charts.
type StatsHandler struct {
	insights *services.InsightsService
}

func NewStatsHandler(insights *services.InsightsService) *StatsHandler {
	return &StatsHandler{insights: insights}
}

func (h *StatsHandler) RegisterRoutes(router *gin.RouterGroup) {
	stats := router.Group("/stats")
	{
		stats.GET("", h.GetOverview)
		stats.GET("/badges", h.GetBadges)
		stats.GET("/heatmap", h.GetHeatmap)
		stats.GET("/daily", h.GetDaily)
	}

	router.GET("/habits/:id/history", h.GetHabitHistory)
}

func queryDays(c *gin.Context) int {
	days, err := strconv.Atoi(c.Query("days"))
	if err != nil {
		return 0
	}
	return days
}

func (h *StatsHandler) GetOverview(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	overview, err := h.insights.Overview(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, overview)
}

func (h *StatsHandler) GetBadges(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	badges, err := h.insights.Badges(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"badges": badges})
}

func (h *StatsHandler) GetHeatmap(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	series, err := h.insights.Heatmap(c.Request.Context(), userID, queryDays(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": series})
}

func (h *StatsHandler) GetDaily(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	series, err := h.insights.Daily(c.Request.Context(), userID, queryDays(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": series})
}

func (h *StatsHandler) GetHabitHistory(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	history, err := h.insights.History(c.Request.Context(), c.Param("id"), userID, queryDays(c))
	if err != nil {
		if errors.Is(err, domain.ErrHabitNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": history})
}
