// Package activities exposes the per-day timeline operations: listing,
// adding, editing, reordering, compaction, break insertion, free-slot
// discovery, and conflict checks.
package activities

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"planora/models"
	"planora/rdx"
	"planora/schedule"
	"planora/store"
	"planora/utils"

	"github.com/julienschmidt/httprouter"
)

// ActivityGateway is the slice of the persistence layer these handlers use.
// Every mutation is either a full-array replacement on one day or a targeted
// field patch; the gateway's single-document atomicity is the only
// concurrency guarantee (concurrent writers are last-write-wins).
type ActivityGateway interface {
	FindByID(ctx context.Context, planID string) (*models.Plan, error)
	AppendActivity(ctx context.Context, planID, dayID string, activity models.Activity) error
	PatchActivity(ctx context.Context, planID, dayID, activityID string, patch models.ActivityPatch) error
	ReplaceDayActivities(ctx context.Context, planID, dayID string, activities []models.Activity) error
	RemoveActivity(ctx context.Context, planID, dayID, activityID string) error
}

type Handlers struct {
	store ActivityGateway
}

func NewHandlers(s ActivityGateway) *Handlers {
	return &Handlers{store: s}
}

func findDay(plan *models.Plan, dayID string) *models.DayPlan {
	for i := range plan.Days {
		if plan.Days[i].ID == dayID {
			return &plan.Days[i]
		}
	}
	return nil
}

// fetchDay loads the plan and locates the day, writing the error response
// itself on failure.
func (h *Handlers) fetchDay(ctx context.Context, w http.ResponseWriter, planID, dayID string) (*models.Plan, *models.DayPlan, bool) {
	plan, err := h.store.FindByID(ctx, planID)
	if err == store.ErrNotFound {
		utils.RespondWithError(w, http.StatusNotFound, "Plan not found")
		return nil, nil, false
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching plan")
		return nil, nil, false
	}

	day := findDay(plan, dayID)
	if day == nil {
		utils.RespondWithError(w, http.StatusNotFound, "Day not found")
		return nil, nil, false
	}
	return plan, day, true
}

// GET /api/plans/:id/days/:dayId/activities
func (h *Handlers) GetActivities(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	_, day, ok := h.fetchDay(ctx, w, ps.ByName("id"), ps.ByName("dayId"))
	if !ok {
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"activities": schedule.SortByTime(day.Activities),
	})
}

// POST /api/plans/:id/days/:dayId/activities
//
// Adds one activity with defaults filled in: a generated id, planned status,
// order 0. The response reports any time conflict with the day's existing
// activities; conflicts are advisory and never block the write.
func (h *Handlers) AddActivity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	planID := ps.ByName("id")
	dayID := ps.ByName("dayId")

	var activity models.Activity
	if err := json.NewDecoder(r.Body).Decode(&activity); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if activity.Title == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Title is required")
		return
	}
	if activity.StartTime == "" || activity.Duration <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Start time and a positive duration are required")
		return
	}

	if activity.ID == "" {
		activity.ID = utils.GetUUID()
	}
	if activity.Status == "" {
		activity.Status = models.StatusPlanned
	}
	if !activity.Status.Valid() {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid activity status")
		return
	}
	if activity.Type == "" {
		activity.Type = models.TypeActivity
	}
	if !activity.Type.Valid() {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid activity type")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	_, day, ok := h.fetchDay(ctx, w, planID, dayID)
	if !ok {
		return
	}

	conflict := schedule.FindConflict(activity.StartTime, activity.Duration, day.Activities)

	if err := h.store.AppendActivity(ctx, planID, dayID, activity); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error adding activity")
		return
	}

	rdx.InvalidatePlan(ctx, planID)

	resp := utils.M{"activity": activity}
	if conflict != nil {
		resp["conflictWith"] = conflict
	}
	utils.RespondWithJSON(w, http.StatusCreated, resp)
}

// PUT /api/plans/:id/days/:dayId/activities/:activityId
//
// Merges the supplied fields into one activity. Omitted fields are untouched.
func (h *Handlers) UpdateActivity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	planID := ps.ByName("id")
	dayID := ps.ByName("dayId")
	activityID := ps.ByName("activityId")

	var patch models.ActivityPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if patch.Status != nil && !patch.Status.Valid() {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid activity status")
		return
	}
	if patch.Type != nil && !patch.Type.Valid() {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid activity type")
		return
	}
	if patch.Duration != nil && *patch.Duration <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Duration must be positive")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	err := h.store.PatchActivity(ctx, planID, dayID, activityID, patch)
	if err == store.ErrNotFound {
		utils.RespondWithError(w, http.StatusNotFound, "Plan not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating activity")
		return
	}

	rdx.InvalidatePlan(ctx, planID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}

// DELETE /api/plans/:id/days/:dayId/activities/:activityId
func (h *Handlers) DeleteActivity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	planID := ps.ByName("id")
	dayID := ps.ByName("dayId")
	activityID := ps.ByName("activityId")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	err := h.store.RemoveActivity(ctx, planID, dayID, activityID)
	if err == store.ErrNotFound {
		utils.RespondWithError(w, http.StatusNotFound, "Plan or day not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error deleting activity")
		return
	}

	rdx.InvalidatePlan(ctx, planID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}

// PATCH /api/plans/:id/days/:dayId/activities
//
// Bulk replace. Order is rewritten from array position first, then the list
// is stored time-sorted; caller-supplied order values are never trusted.
func (h *Handlers) ReplaceActivities(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	planID := ps.ByName("id")
	dayID := ps.ByName("dayId")

	var body struct {
		Activities []models.Activity `json:"activities"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Activities == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Activities are required")
		return
	}

	ordered := schedule.Renumber(body.Activities)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	err := h.store.ReplaceDayActivities(ctx, planID, dayID, schedule.SortByTime(ordered))
	if err == store.ErrNotFound {
		utils.RespondWithError(w, http.StatusNotFound, "Plan or day not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating activities")
		return
	}

	rdx.InvalidatePlan(ctx, planID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}
