package activities

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"planora/models"
	"planora/schedule"
	"planora/store"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGateway keeps one plan in memory and applies mutations the way the
// Mongo gateway would.
type fakeGateway struct {
	plan *models.Plan
}

func (f *fakeGateway) FindByID(_ context.Context, planID string) (*models.Plan, error) {
	if f.plan == nil || f.plan.PlanID != planID {
		return nil, store.ErrNotFound
	}
	clone := *f.plan
	return &clone, nil
}

func (f *fakeGateway) day(dayID string) *models.DayPlan {
	if f.plan == nil {
		return nil
	}
	for i := range f.plan.Days {
		if f.plan.Days[i].ID == dayID {
			return &f.plan.Days[i]
		}
	}
	return nil
}

func (f *fakeGateway) AppendActivity(_ context.Context, planID, dayID string, activity models.Activity) error {
	if f.plan == nil || f.plan.PlanID != planID {
		return store.ErrNotFound
	}
	day := f.day(dayID)
	if day == nil {
		return store.ErrNotFound
	}
	day.Activities = append(day.Activities, activity)
	return nil
}

func (f *fakeGateway) PatchActivity(_ context.Context, planID, dayID, activityID string, patch models.ActivityPatch) error {
	if f.plan == nil || f.plan.PlanID != planID {
		return store.ErrNotFound
	}
	day := f.day(dayID)
	if day == nil {
		return store.ErrNotFound
	}
	for i := range day.Activities {
		if day.Activities[i].ID == activityID {
			if patch.Title != nil {
				day.Activities[i].Title = *patch.Title
			}
			if patch.StartTime != nil {
				day.Activities[i].StartTime = *patch.StartTime
			}
			if patch.Duration != nil {
				day.Activities[i].Duration = *patch.Duration
			}
			if patch.Status != nil {
				day.Activities[i].Status = *patch.Status
			}
			return nil
		}
	}
	return nil // mongo arrayFilters: no matching element is not an error
}

func (f *fakeGateway) ReplaceDayActivities(_ context.Context, planID, dayID string, activities []models.Activity) error {
	if f.plan == nil || f.plan.PlanID != planID {
		return store.ErrNotFound
	}
	day := f.day(dayID)
	if day == nil {
		return store.ErrNotFound
	}
	day.Activities = activities
	return nil
}

func (f *fakeGateway) RemoveActivity(_ context.Context, planID, dayID, activityID string) error {
	if f.plan == nil || f.plan.PlanID != planID {
		return store.ErrNotFound
	}
	day := f.day(dayID)
	if day == nil {
		return store.ErrNotFound
	}
	kept := day.Activities[:0]
	for _, a := range day.Activities {
		if a.ID != activityID {
			kept = append(kept, a)
		}
	}
	day.Activities = kept
	return nil
}

func testActivity(id, start string, duration, order int) models.Activity {
	return models.Activity{
		ID:        id,
		Title:     id,
		Type:      models.TypeActivity,
		StartTime: start,
		Duration:  duration,
		Status:    models.StatusPlanned,
		Order:     order,
	}
}

func newFixture(activities ...models.Activity) (*fakeGateway, *httprouter.Router) {
	gw := &fakeGateway{
		plan: &models.Plan{
			PlanID:      "p1",
			Title:       "Test Trip",
			StartDate:   "2024-06-01",
			EndDate:     "2024-06-01",
			Preferences: schedule.DefaultPreferences(),
			Days: []models.DayPlan{
				{ID: "d1", Date: "2024-06-01", DayNumber: 1, Activities: activities},
			},
		},
	}

	router := httprouter.New()
	h := NewHandlers(gw)
	router.GET("/api/plans/:id/days/:dayId/activities", h.GetActivities)
	router.POST("/api/plans/:id/days/:dayId/activities", h.AddActivity)
	router.PATCH("/api/plans/:id/days/:dayId/activities", h.ReplaceActivities)
	router.PUT("/api/plans/:id/days/:dayId/activities/:activityId", h.UpdateActivity)
	router.DELETE("/api/plans/:id/days/:dayId/activities/:activityId", h.DeleteActivity)
	router.POST("/api/plans/:id/days/:dayId/activities/reorder", h.ReorderActivities)
	router.POST("/api/plans/:id/days/:dayId/activities/compact", h.CompactActivities)
	router.POST("/api/plans/:id/days/:dayId/activities/breaks", h.InsertBreaks)
	router.GET("/api/plans/:id/days/:dayId/freeslots", h.GetFreeSlots)
	router.GET("/api/plans/:id/days/:dayId/conflict", h.CheckConflict)

	return gw, router
}

func doJSON(t *testing.T, router *httprouter.Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGetActivitiesSortedByTime(t *testing.T) {
	_, router := newFixture(
		testActivity("late", "15:00", 60, 0),
		testActivity("early", "09:00", 60, 1),
	)

	rec := doJSON(t, router, http.MethodGet, "/api/plans/p1/days/d1/activities", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Activities []models.Activity `json:"activities"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Activities, 2)
	assert.Equal(t, "early", resp.Activities[0].ID)
	assert.Equal(t, "late", resp.Activities[1].ID)
}

func TestGetActivitiesDayNotFound(t *testing.T) {
	_, router := newFixture()
	rec := doJSON(t, router, http.MethodGet, "/api/plans/p1/days/nope/activities", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddActivityDefaults(t *testing.T) {
	gw, router := newFixture()

	rec := doJSON(t, router, http.MethodPost, "/api/plans/p1/days/d1/activities", map[string]any{
		"title":     "Lunch",
		"type":      "meal",
		"startTime": "13:00",
		"duration":  60,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Activity models.Activity `json:"activity"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Activity.ID, "id is generated when absent")
	assert.Equal(t, models.StatusPlanned, resp.Activity.Status, "status defaults to planned")
	assert.Equal(t, 0, resp.Activity.Order)

	require.Len(t, gw.plan.Days[0].Activities, 1)
}

func TestAddActivityReportsConflictButStillWrites(t *testing.T) {
	gw, router := newFixture(testActivity("existing", "10:00", 60, 0))

	rec := doJSON(t, router, http.MethodPost, "/api/plans/p1/days/d1/activities", map[string]any{
		"title":     "Overlapping",
		"startTime": "10:30",
		"duration":  30,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		ConflictWith *models.Activity `json:"conflictWith"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.ConflictWith, "conflict is surfaced")
	assert.Equal(t, "existing", resp.ConflictWith.ID)

	assert.Len(t, gw.plan.Days[0].Activities, 2, "conflict never blocks the write")
}

func TestAddActivityValidation(t *testing.T) {
	_, router := newFixture()

	rec := doJSON(t, router, http.MethodPost, "/api/plans/p1/days/d1/activities", map[string]any{
		"startTime": "10:00",
		"duration":  30,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "missing title")

	rec = doJSON(t, router, http.MethodPost, "/api/plans/p1/days/d1/activities", map[string]any{
		"title":     "No duration",
		"startTime": "10:00",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "missing duration")

	rec = doJSON(t, router, http.MethodPost, "/api/plans/p1/days/d1/activities", map[string]any{
		"title":     "Bad status",
		"startTime": "10:00",
		"duration":  30,
		"status":    "bogus",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "unknown status")
}

func TestUpdateActivityPatchesFields(t *testing.T) {
	gw, router := newFixture(testActivity("a1", "09:00", 60, 0))

	rec := doJSON(t, router, http.MethodPut, "/api/plans/p1/days/d1/activities/a1", map[string]any{
		"status":   "completed",
		"duration": 90,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	got := gw.plan.Days[0].Activities[0]
	assert.Equal(t, models.StatusCompleted, got.Status)
	assert.Equal(t, 90, got.Duration)
	assert.Equal(t, "a1", got.Title, "omitted fields untouched")
}

func TestUpdateActivityRejectsBadValues(t *testing.T) {
	_, router := newFixture(testActivity("a1", "09:00", 60, 0))

	rec := doJSON(t, router, http.MethodPut, "/api/plans/p1/days/d1/activities/a1", map[string]any{
		"duration": -5,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPut, "/api/plans/p1/days/d1/activities/a1", map[string]any{
		"type": "teleportation",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteActivity(t *testing.T) {
	gw, router := newFixture(
		testActivity("a1", "09:00", 60, 0),
		testActivity("a2", "10:00", 60, 1),
	)

	rec := doJSON(t, router, http.MethodDelete, "/api/plans/p1/days/d1/activities/a1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, gw.plan.Days[0].Activities, 1)
	assert.Equal(t, "a2", gw.plan.Days[0].Activities[0].ID)
}

func TestReplaceActivitiesRenumbersAndSorts(t *testing.T) {
	gw, router := newFixture()

	rec := doJSON(t, router, http.MethodPatch, "/api/plans/p1/days/d1/activities", map[string]any{
		"activities": []models.Activity{
			// caller-supplied order values are garbage on purpose
			{ID: "b", Title: "b", StartTime: "12:00", Duration: 30, Status: models.StatusPlanned, Order: 99},
			{ID: "a", Title: "a", StartTime: "09:00", Duration: 30, Status: models.StatusPlanned, Order: 42},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	stored := gw.plan.Days[0].Activities
	require.Len(t, stored, 2)
	assert.Equal(t, "a", stored[0].ID, "stored time-sorted")
	assert.Equal(t, 1, stored[0].Order, "order rewritten from submitted position, not trusted")
	assert.Equal(t, "b", stored[1].ID)
	assert.Equal(t, 0, stored[1].Order)
}

func TestReplaceActivitiesRequiresList(t *testing.T) {
	_, router := newFixture()
	rec := doJSON(t, router, http.MethodPatch, "/api/plans/p1/days/d1/activities", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReorderActivities(t *testing.T) {
	gw, router := newFixture(
		testActivity("a", "09:00", 60, 0),
		testActivity("b", "10:00", 60, 1),
		testActivity("c", "11:00", 60, 2),
	)

	rec := doJSON(t, router, http.MethodPost, "/api/plans/p1/days/d1/activities/reorder", map[string]any{
		"fromIndex": 0,
		"toIndex":   2,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	stored := gw.plan.Days[0].Activities
	require.Len(t, stored, 3)
	assert.Equal(t, "b", stored[0].ID)
	assert.Equal(t, "c", stored[1].ID)
	assert.Equal(t, "a", stored[2].ID)
	for i, a := range stored {
		assert.Equal(t, i, a.Order)
	}
}

func TestReorderActivitiesOutOfRange(t *testing.T) {
	gw, router := newFixture(testActivity("a", "09:00", 60, 0))

	rec := doJSON(t, router, http.MethodPost, "/api/plans/p1/days/d1/activities/reorder", map[string]any{
		"fromIndex": 0,
		"toIndex":   5,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, gw.plan.Days[0].Activities, 1, "failed reorder leaves data unchanged")
}

func TestCompactActivities(t *testing.T) {
	gw, router := newFixture(
		testActivity("a", "10:00", 60, 0),
		testActivity("b", "14:00", 30, 1),
	)

	rec := doJSON(t, router, http.MethodPost, "/api/plans/p1/days/d1/activities/compact", map[string]any{
		"dayStart": "09:00",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	stored := gw.plan.Days[0].Activities
	assert.Equal(t, "09:00", stored[0].StartTime)
	assert.Equal(t, "10:00", stored[1].StartTime)
}

func TestInsertBreaksUsesPlanPreferences(t *testing.T) {
	gw, router := newFixture(
		testActivity("a", "09:00", 60, 0),
		testActivity("b", "10:00", 60, 1),
		testActivity("c", "11:00", 60, 2),
	)

	// default preferences: breakFrequency 120, breakDuration 15
	rec := doJSON(t, router, http.MethodPost, "/api/plans/p1/days/d1/activities/breaks", map[string]any{})
	require.Equal(t, http.StatusOK, rec.Code)

	stored := gw.plan.Days[0].Activities
	require.Len(t, stored, 4)
	assert.True(t, stored[2].IsBreak)
	assert.Equal(t, 15, stored[2].Duration)
}

func TestGetFreeSlots(t *testing.T) {
	_, router := newFixture(testActivity("a", "10:00", 60, 0))

	rec := doJSON(t, router, http.MethodGet,
		"/api/plans/p1/days/d1/freeslots?dayStart=08:00&dayEnd=18:00&minDuration=30", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Slots []schedule.TimeSlot `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, "08:00", resp.Slots[0].Start)
	assert.Equal(t, "10:00", resp.Slots[0].End)
	assert.Equal(t, "11:00", resp.Slots[1].Start)
	assert.Equal(t, "18:00", resp.Slots[1].End)
}

func TestCheckConflict(t *testing.T) {
	_, router := newFixture(testActivity("a", "10:00", 60, 0))

	rec := doJSON(t, router, http.MethodGet,
		"/api/plans/p1/days/d1/conflict?startTime=10:30&duration=30", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Conflict bool `json:"conflict"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Conflict)

	rec = doJSON(t, router, http.MethodGet,
		"/api/plans/p1/days/d1/conflict?startTime=11:00&duration=30", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Conflict, "back-to-back is not a conflict")
}
