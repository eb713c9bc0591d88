package plans

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

// PlanGateway is the slice of the persistence layer the plan handlers use.
// Defined here so tests can inject an in-memory fake.
type PlanGateway interface {
	Insert(ctx context.Context, plan models.Plan) error
	FindByID(ctx context.Context, planID string) (*models.Plan, error)
	FindByShareLink(ctx context.Context, shareLink string) (*models.Plan, error)
	List(ctx context.Context, opts store.ListOptions) ([]models.Plan, error)
	Update(ctx context.Context, planID string, patch models.PlanPatch) error
	Delete(ctx context.Context, planID string) error
}

type Handlers struct {
	store PlanGateway
}

func NewHandlers(s PlanGateway) *Handlers {
	return &Handlers{store: s}
}

type createPlanRequest struct {
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	Destination string                  `json:"destination"`
	CoverImage  string                  `json:"coverImage"`
	StartDate   string                  `json:"startDate"`
	EndDate     string                  `json:"endDate"`
	Preferences *models.PlanPreferences `json:"preferences"`
}

// POST /api/plans
func (h *Handlers) CreatePlan(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req createPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if req.Title == "" || req.StartDate == "" || req.EndDate == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Title, start date, and end date are required")
		return
	}

	dates := schedule.DateSequence(req.StartDate, req.EndDate)
	if len(dates) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid date range")
		return
	}

	prefs := schedule.DefaultPreferences()
	if req.Preferences != nil {
		prefs = *req.Preferences
	}

	createdBy := utils.GetUserIDFromRequest(r)
	if createdBy == "" {
		createdBy = "anonymous"
	}

	now := time.Now()
	plan := models.Plan{
		PlanID:      utils.GetUUID(),
		Title:       req.Title,
		Description: req.Description,
		Destination: req.Destination,
		CoverImage:  req.CoverImage,
		Status:      models.PlanDraft,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Days:        schedule.BuildDays(dates),
		Preferences: prefs,
		Sharing:     models.SharingSettings{IsPublic: false, SharedWith: []models.SharedUser{}},
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.store.Insert(ctx, plan); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error creating plan")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"plan": plan})
}

// GET /api/plans/:id
func (h *Handlers) GetPlan(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	planID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if cached := rdx.GetCachedPlan(ctx, planID); cached != nil {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"plan": cached})
		return
	}

	plan, err := h.store.FindByID(ctx, planID)
	if err == store.ErrNotFound {
		utils.RespondWithError(w, http.StatusNotFound, "Plan not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching plan")
		return
	}

	rdx.CachePlan(ctx, plan)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"plan": plan})
}

// GET /api/plans/shared/:link
func (h *Handlers) GetSharedPlan(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	shareLink := ps.ByName("link")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	plan, err := h.store.FindByShareLink(ctx, shareLink)
	if err == store.ErrNotFound {
		utils.RespondWithError(w, http.StatusNotFound, "Plan not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching plan")
		return
	}

	rdx.IncrShareHit(ctx, shareLink)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"plan": plan})
}

// GET /api/plans
func (h *Handlers) GetPlans(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	opts := utils.ParseQueryOptions(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	plans, err := h.store.List(ctx, store.ListOptions{
		Page:      opts.Page,
		Limit:     opts.Limit,
		Status:    opts.Status,
		CreatedBy: r.URL.Query().Get("createdBy"),
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching plans")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"plans": plans})
}

// PUT /api/plans/:id
//
// A partial field merge. When the date range changes, the day set is
// regenerated: days whose dates survive keep their ids and activities, new
// dates get empty days, dropped dates lose theirs.
func (h *Handlers) UpdatePlan(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	planID := ps.ByName("id")

	var patch models.PlanPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if patch.StartDate != nil || patch.EndDate != nil {
		existing, err := h.store.FindByID(ctx, planID)
		if err == store.ErrNotFound {
			utils.RespondWithError(w, http.StatusNotFound, "Plan not found")
			return
		}
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching plan")
			return
		}

		newStart := existing.StartDate
		if patch.StartDate != nil {
			newStart = *patch.StartDate
		}
		newEnd := existing.EndDate
		if patch.EndDate != nil {
			newEnd = *patch.EndDate
		}

		if newStart != existing.StartDate || newEnd != existing.EndDate {
			dates := schedule.DateSequence(newStart, newEnd)
			if len(dates) == 0 {
				utils.RespondWithError(w, http.StatusBadRequest, "Invalid date range")
				return
			}
			patch.Days = schedule.RegenerateDays(existing.Days, dates)
		}
	}

	err := h.store.Update(ctx, planID, patch)
	if err == store.ErrNotFound {
		utils.RespondWithError(w, http.StatusNotFound, "Plan not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating plan")
		return
	}

	rdx.InvalidatePlan(ctx, planID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}

// DELETE /api/plans/:id
func (h *Handlers) DeletePlan(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	planID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	err := h.store.Delete(ctx, planID)
	if err == store.ErrNotFound {
		utils.RespondWithError(w, http.StatusNotFound, "Plan not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error deleting plan")
		return
	}

	rdx.InvalidatePlan(ctx, planID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}

// GET /api/plans/:id/progress
func (h *Handlers) GetProgress(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	planID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	plan, err := h.store.FindByID(ctx, planID)
	if err == store.ErrNotFound {
		utils.RespondWithError(w, http.StatusNotFound, "Plan not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching plan")
		return
	}

	type dayProgress struct {
		DayID     string            `json:"dayId"`
		Date      string            `json:"date"`
		DayNumber int               `json:"dayNumber"`
		Progress  schedule.Progress `json:"progress"`
	}

	days := make([]dayProgress, 0, len(plan.Days))
	total := schedule.Progress{}
	for _, day := range plan.Days {
		p := schedule.DayProgress(day)
		days = append(days, dayProgress{DayID: day.ID, Date: day.Date, DayNumber: day.DayNumber, Progress: p})
		total.Total += p.Total
		total.Completed += p.Completed
	}
	if total.Total > 0 {
		total.Percentage = total.Completed * 100 / total.Total
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"days": days, "overall": total})
}
