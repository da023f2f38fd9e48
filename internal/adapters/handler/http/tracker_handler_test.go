package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/stridehq/stride-engine/internal/adapters/handler/http"
	"github.com/stridehq/stride-engine/internal/adapters/handler/http/middleware"
	"github.com/stridehq/stride-engine/internal/adapters/repository"
	"github.com/stridehq/stride-engine/internal/core/domain"
	"github.com/stridehq/stride-engine/internal/core/services"
)

type trackerHandlerFixture struct {
	habitHandlerFixture
}

func newTrackerFixture() *trackerHandlerFixture {
	gin.SetMode(gin.TestMode)

	habits := repository.NewInMemoryHabitRepository()
	stats := repository.NewInMemoryStatsRepository()
	clock := testClock{now: handlerNow}

	streak := services.NewStreakService(habits, clock)
	tracker := services.NewTrackerService(habits, stats, streak, nil, clock)
	rollover := services.NewRolloverService(habits, stats, nil, clock)
	handler := adapterHTTP.NewTrackerHandler(tracker, rollover)

	router := gin.New()
	group := router.Group("")
	group.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserIDKey, testUserID)
	})
	handler.RegisterRoutes(group)

	f := &trackerHandlerFixture{}
	f.router = router
	f.habits = habits
	f.stats = stats
	return f
}

func (f *trackerHandlerFixture) seedTrackedHabit(t *testing.T, name string, goal int) *domain.Habit {
	t.Helper()

	habit, err := domain.NewHabit(testUserID, name, "", "", "", goal, nil, handlerNow)
	require.NoError(t, err)
	require.NoError(t, f.habits.Create(context.Background(), habit))
	return habit
}

func eventTypes(events []domain.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, string(e.Type))
	}
	return out
}

func TestTrackerHandler_Increment(t *testing.T) {
	t.Run("Goal hit emits events and pays out", func(t *testing.T) {
		f := newTrackerFixture()
		habit := f.seedTrackedHabit(t, "Read", 1)

		w := f.do(http.MethodPost, "/habits/"+habit.ID+"/increment", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var res services.TrackerResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, 1, res.Habit.CompletionCount)
		assert.Equal(t, 60, res.Stats.TotalXP)
		assert.Equal(t, 1, res.Stats.GlobalStreak)

		types := eventTypes(res.Events)
		assert.Contains(t, types, string(domain.EventGoalReached))
		assert.Contains(t, types, string(domain.EventStreakAdvanced))
		assert.Contains(t, types, string(domain.EventBadgeUnlocked))
	})

	t.Run("Below goal is quiet", func(t *testing.T) {
		f := newTrackerFixture()
		habit := f.seedTrackedHabit(t, "Read", 3)

		w := f.do(http.MethodPost, "/habits/"+habit.ID+"/increment", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var res services.TrackerResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, 1, res.Habit.CompletionCount)
		assert.Empty(t, res.Events)
	})

	t.Run("Unknown habit is 404", func(t *testing.T) {
		f := newTrackerFixture()

		w := f.do(http.MethodPost, "/habits/ghost/increment", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Corrupt habit state is 422", func(t *testing.T) {
		f := newTrackerFixture()
		habit := f.seedTrackedHabit(t, "Broken", 1)

		habit.ScheduledDays = nil
		require.NoError(t, f.habits.Update(context.Background(), habit))

		w := f.do(http.MethodPost, "/habits/"+habit.ID+"/increment", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestTrackerHandler_Decrement(t *testing.T) {
	f := newTrackerFixture()
	habit := f.seedTrackedHabit(t, "Read", 3)

	w := f.do(http.MethodPost, "/habits/"+habit.ID+"/increment", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(http.MethodPost, "/habits/"+habit.ID+"/decrement", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var res services.TrackerResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 0, res.Habit.CompletionCount)
	assert.Empty(t, res.Events)
}

func TestTrackerHandler_Skip(t *testing.T) {
	f := newTrackerFixture()
	habit := f.seedTrackedHabit(t, "Read", 3)

	w := f.do(http.MethodPost, "/habits/"+habit.ID+"/skip", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var res services.TrackerResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Contains(t, res.Habit.SkippedDays, domain.DateKey(handlerNow))
	assert.Equal(t, 1, res.Stats.GlobalStreak)
	assert.Contains(t, eventTypes(res.Events), string(domain.EventStreakAdvanced))
}

func TestTrackerHandler_FocusSession(t *testing.T) {
	f := newTrackerFixture()
	habit := f.seedTrackedHabit(t, "Deep Work", 2)

	w := f.do(http.MethodPost, "/habits/"+habit.ID+"/sessions", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var res services.TrackerResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 1, res.Habit.TimedSessionsCompleted)
	assert.Equal(t, 1, res.Habit.CompletionCount)
	assert.Contains(t, eventTypes(res.Events), string(domain.EventSessionCompleted))
}

func TestTrackerHandler_OpenSession(t *testing.T) {
	f := newTrackerFixture()
	habit := f.seedTrackedHabit(t, "Read", 3)

	// Simulate progress left over from a previous day.
	habit.CompletionCount = 2
	habit.CompletionHistory["2025-06-01"] = 2
	require.NoError(t, f.habits.Update(context.Background(), habit))

	w := f.do(http.MethodPost, "/session/open", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var res services.RolloverResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, domain.DateKey(handlerNow), res.Today)
	assert.True(t, res.RolledOver)

	stored, err := f.habits.GetByID(context.Background(), habit.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.CompletionCount)
	assert.Equal(t, 2, stored.CompletionHistory["2025-06-01"])
}
