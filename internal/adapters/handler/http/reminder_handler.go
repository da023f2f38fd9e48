package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stridehq/stride-engine/internal/adapters/handler/http/middleware"
	"github.com/stridehq/stride-engine/internal/core/domain"
	"github.com/stridehq/stride-engine/internal/core/services"
)

// ReminderHandler exposes a habit's reminder schedule: a read-only preview of
// the fire points and an explicit cancel-and-reschedule trigger.
type ReminderHandler struct {
	reminders *services.ReminderService
}

func NewReminderHandler(reminders *services.ReminderService) *ReminderHandler {
	return &ReminderHandler{reminders: reminders}
}

func (h *ReminderHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/habits/:id/reminders", h.Preview)
	router.POST("/habits/:id/reminders/refresh", h.Refresh)
}

func writeReminderError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrHabitNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func (h *ReminderHandler) Preview(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	points, err := h.reminders.Preview(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		writeReminderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"fire_points": points})
}

func (h *ReminderHandler) Refresh(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	points, err := h.reminders.Refresh(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		writeReminderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"fire_points": points})
}
