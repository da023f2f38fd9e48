package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stridehq/stride-engine/internal/adapters/handler/http/middleware"
	"github.com/stridehq/stride-engine/internal/core/domain"
	"github.com/stridehq/stride-engine/internal/core/services"
)

type HabitHandler struct {
	svc *services.HabitService
}

func NewHabitHandler(svc *services.HabitService) *HabitHandler {
	return &HabitHandler{
		svc: svc,
	}
}

type habitRequest struct {
	Name      string `json:"name" binding:"required"`
	Icon      string `json:"icon"`
	Category  string `json:"category"`
	ColorName string `json:"color_name"`
	Goal      int    `json:"goal"`

	ScheduledDays []int `json:"scheduled_days"`
	SortOrder     int   `json:"sort_order"`

	IsTimerHabit         bool `json:"is_timer_habit"`
	TimerDurationMinutes int  `json:"timer_duration_minutes"`

	ReminderEnabled bool   `json:"reminder_enabled"`
	ReminderType    string `json:"reminder_type"`
	IntervalMinutes int    `json:"interval_minutes"`
	IntervalCount   int    `json:"interval_count"`
	StartTime       string `json:"start_time"`
}

type reorderRequest struct {
	HabitIDs []string `json:"habit_ids" binding:"required"`
}

func (h *HabitHandler) RegisterRoutes(router *gin.RouterGroup) {
	habits := router.Group("/habits")
	{
		habits.POST("", h.Create)
		habits.GET("", h.List)
		habits.GET("/:id", h.Get)
		habits.PUT("/:id", h.Update)
		habits.DELETE("/:id", h.Delete)
		habits.POST("/:id/archive", h.Archive)
		habits.POST("/:id/restore", h.Restore)
		habits.PUT("/reorder", h.Reorder)
	}
}

// writeHabitError maps domain validation failures to 400s and everything
// unexpected to a 500.
func writeHabitError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrHabitNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
	case errors.Is(err, domain.ErrColorLocked):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrHabitNameEmpty),
		errors.Is(err, domain.ErrHabitNameTooLong),
		errors.Is(err, domain.ErrInvalidCategory),
		errors.Is(err, domain.ErrInvalidGoal),
		errors.Is(err, domain.ErrNoScheduledDays),
		errors.Is(err, domain.ErrInvalidWeekday),
		errors.Is(err, domain.ErrInvalidColor),
		errors.Is(err, domain.ErrInvalidTimerDuration),
		errors.Is(err, domain.ErrInvalidReminderType),
		errors.Is(err, domain.ErrInvalidStartTime),
		errors.Is(err, domain.ErrInvalidIntervalMins),
		errors.Is(err, domain.ErrInvalidIntervalCount),
		errors.Is(err, domain.ErrHabitArchived):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func (h *HabitHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req habitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	habit, err := h.svc.Create(c.Request.Context(), services.CreateHabitInput{
		UserID:               userID,
		Name:                 req.Name,
		Icon:                 req.Icon,
		Category:             req.Category,
		ColorName:            req.ColorName,
		Goal:                 req.Goal,
		ScheduledDays:        req.ScheduledDays,
		SortOrder:            req.SortOrder,
		IsTimerHabit:         req.IsTimerHabit,
		TimerDurationMinutes: req.TimerDurationMinutes,
		ReminderEnabled:      req.ReminderEnabled,
		ReminderType:         req.ReminderType,
		IntervalMinutes:      req.IntervalMinutes,
		IntervalCount:        req.IntervalCount,
		StartTime:            req.StartTime,
	})
	if err != nil {
		writeHabitError(c, err)
		return
	}

	c.JSON(http.StatusCreated, habit)
}

func (h *HabitHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	list, err := h.svc.ListByUserID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *HabitHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	habit, err := h.svc.GetByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		writeHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, habit)
}

func (h *HabitHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req habitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	habit, err := h.svc.Update(c.Request.Context(), services.UpdateHabitInput{
		ID:                   c.Param("id"),
		UserID:               userID,
		Name:                 req.Name,
		Icon:                 req.Icon,
		Category:             req.Category,
		ColorName:            req.ColorName,
		Goal:                 req.Goal,
		ScheduledDays:        req.ScheduledDays,
		IsTimerHabit:         req.IsTimerHabit,
		TimerDurationMinutes: req.TimerDurationMinutes,
		ReminderEnabled:      req.ReminderEnabled,
		ReminderType:         req.ReminderType,
		IntervalMinutes:      req.IntervalMinutes,
		IntervalCount:        req.IntervalCount,
		StartTime:            req.StartTime,
	})
	if err != nil {
		writeHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, habit)
}

func (h *HabitHandler) Archive(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	habit, err := h.svc.Archive(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		writeHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, habit)
}

func (h *HabitHandler) Restore(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	habit, err := h.svc.Restore(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		writeHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, habit)
}

func (h *HabitHandler) Reorder(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.Reorder(c.Request.Context(), userID, req.HabitIDs); err != nil {
		writeHabitError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

func (h *HabitHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		writeHabitError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
