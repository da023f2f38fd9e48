package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stridehq/stride-engine/internal/adapters/handler/http/middleware"
	"github.com/stridehq/stride-engine/internal/core/domain"
	"github.com/stridehq/stride-engine/internal/core/services"
)

// TrackerHandler exposes the completion-event surface. Every response
// carries the mutated habit, the ledger and the emitted events so the client
// can drive celebration effects without another round trip. The notification
// layer calls the same increment endpoint when a reminder is acted on, so
// both paths share one code path end to end.
type TrackerHandler struct {
	tracker  *services.TrackerService
	rollover *services.RolloverService
}

func NewTrackerHandler(tracker *services.TrackerService, rollover *services.RolloverService) *TrackerHandler {
	return &TrackerHandler{
		tracker:  tracker,
		rollover: rollover,
	}
}

func (h *TrackerHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/session/open", h.OpenSession)

	habits := router.Group("/habits")
	{
		habits.POST("/:id/increment", h.Increment)
		habits.POST("/:id/decrement", h.Decrement)
		habits.POST("/:id/skip", h.Skip)
		habits.POST("/:id/sessions", h.CompleteFocusSession)
	}
}

func writeTrackerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrHabitNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
	case errors.Is(err, domain.ErrMalformedHabit):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func writeTrackerResult(c *gin.Context, res *services.TrackerResult) {
	for _, e := range res.Events {
		middleware.EngineEventsTotal.WithLabelValues(string(e.Type)).Inc()
	}
	c.JSON(http.StatusOK, res)
}

// OpenSession runs the day-rollover reconciler. Clients call it once on
// activation, before any completion event for the day.
func (h *TrackerHandler) OpenSession(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	result, err := h.rollover.Rollover(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *TrackerHandler) Increment(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	res, err := h.tracker.Increment(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		writeTrackerError(c, err)
		return
	}

	writeTrackerResult(c, res)
}

func (h *TrackerHandler) Decrement(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	res, err := h.tracker.Decrement(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		writeTrackerError(c, err)
		return
	}

	writeTrackerResult(c, res)
}

func (h *TrackerHandler) Skip(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	res, err := h.tracker.Skip(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		writeTrackerError(c, err)
		return
	}

	writeTrackerResult(c, res)
}

func (h *TrackerHandler) CompleteFocusSession(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	res, err := h.tracker.CompleteFocusSession(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		writeTrackerError(c, err)
		return
	}

	writeTrackerResult(c, res)
}
