package activities

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"planora/rdx"
	"planora/schedule"
	"planora/utils"

	"github.com/julienschmidt/httprouter"
)

// POST /api/plans/:id/days/:dayId/activities/reorder
//
// Moves one activity by index and persists the renumbered list as a full
// replacement of the day's activity array. Two concurrent reorders on the
// same day are last-write-wins.
func (h *Handlers) ReorderActivities(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	planID := ps.ByName("id")
	dayID := ps.ByName("dayId")

	var body struct {
		FromIndex int `json:"fromIndex"`
		ToIndex   int `json:"toIndex"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	_, day, ok := h.fetchDay(ctx, w, planID, dayID)
	if !ok {
		return
	}

	reordered, err := schedule.Reorder(day.Activities, body.FromIndex, body.ToIndex)
	if errors.Is(err, schedule.ErrIndexOutOfRange) {
		utils.RespondWithError(w, http.StatusBadRequest, "Reorder index out of range")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reordering activities")
		return
	}

	if err := h.store.ReplaceDayActivities(ctx, planID, dayID, reordered); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error saving activities")
		return
	}

	rdx.InvalidatePlan(ctx, planID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"activities": reordered})
}

// POST /api/plans/:id/days/:dayId/activities/compact
//
// Shifts every activity to start at the previous one's end, from the day
// start onward. Defaults to the plan's wake-up time.
func (h *Handlers) CompactActivities(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	planID := ps.ByName("id")
	dayID := ps.ByName("dayId")

	var body struct {
		DayStart string `json:"dayStart"`
	}
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&body)
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	plan, day, ok := h.fetchDay(ctx, w, planID, dayID)
	if !ok {
		return
	}

	dayStart := body.DayStart
	if dayStart == "" {
		dayStart = plan.Preferences.WakeUpTime
	}

	compacted := schedule.Compact(day.Activities, dayStart)
	if err := h.store.ReplaceDayActivities(ctx, planID, dayID, compacted); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error saving activities")
		return
	}

	rdx.InvalidatePlan(ctx, planID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"activities": compacted})
}

// POST /api/plans/:id/days/:dayId/activities/breaks
//
// Inserts rest breaks per the plan's break cadence. Breaks share the start
// time of the activity they precede, so the optional compact pass is what
// makes the timeline contiguous again.
func (h *Handlers) InsertBreaks(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	planID := ps.ByName("id")
	dayID := ps.ByName("dayId")

	var body struct {
		BreakFrequency int  `json:"breakFrequency"`
		BreakDuration  int  `json:"breakDuration"`
		Compact        bool `json:"compact"`
	}
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&body)
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	plan, day, ok := h.fetchDay(ctx, w, planID, dayID)
	if !ok {
		return
	}

	frequency := body.BreakFrequency
	if frequency <= 0 {
		frequency = plan.Preferences.BreakFrequency
	}
	duration := body.BreakDuration
	if duration <= 0 {
		duration = plan.Preferences.BreakDuration
	}

	withBreaks := schedule.InsertBreaks(day.Activities, frequency, duration)
	if body.Compact {
		withBreaks = schedule.Compact(withBreaks, plan.Preferences.WakeUpTime)
	}

	if err := h.store.ReplaceDayActivities(ctx, planID, dayID, withBreaks); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error saving activities")
		return
	}

	rdx.InvalidatePlan(ctx, planID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"activities": withBreaks})
}

// GET /api/plans/:id/days/:dayId/freeslots
//
// Lists the gaps of at least minDuration minutes between the day's start and
// end, defaulting to the plan's wake and sleep times.
func (h *Handlers) GetFreeSlots(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	planID := ps.ByName("id")
	dayID := ps.ByName("dayId")
	query := r.URL.Query()

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	plan, day, ok := h.fetchDay(ctx, w, planID, dayID)
	if !ok {
		return
	}

	dayStart := query.Get("dayStart")
	if dayStart == "" {
		dayStart = plan.Preferences.WakeUpTime
	}
	dayEnd := query.Get("dayEnd")
	if dayEnd == "" {
		dayEnd = plan.Preferences.SleepTime
	}
	minDuration, err := strconv.Atoi(query.Get("minDuration"))
	if err != nil || minDuration < 1 {
		minDuration = 30
	}

	slots := schedule.FreeSlots(day.Activities, dayStart, dayEnd, minDuration)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"slots": slots})
}

// GET /api/plans/:id/days/:dayId/conflict?startTime=HH:mm&duration=N
//
// Advisory conflict probe for a candidate time slot. The caller decides
// whether to warn or proceed; nothing is written.
func (h *Handlers) CheckConflict(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	planID := ps.ByName("id")
	dayID := ps.ByName("dayId")
	query := r.URL.Query()

	startTime := query.Get("startTime")
	duration, err := strconv.Atoi(query.Get("duration"))
	if startTime == "" || err != nil || duration <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "startTime and a positive duration are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	_, day, ok := h.fetchDay(ctx, w, planID, dayID)
	if !ok {
		return
	}

	conflict := schedule.FindConflict(startTime, duration, day.Activities)
	resp := utils.M{"conflict": conflict != nil}
	if conflict != nil {
		resp["conflictWith"] = conflict
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
