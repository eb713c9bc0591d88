package plans

import (
	"context"
	"net/http"
	"os"
	"time"

	"planora/models"
	"planora/rdx"
	"planora/store"
	"planora/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

func newSharingPatch(s models.SharingSettings) models.PlanPatch {
	return models.PlanPatch{Sharing: &s}
}

func newCoverPatch(filename string) models.PlanPatch {
	return models.PlanPatch{CoverImage: &filename}
}

func shareURL(shareLink string) string {
	base := os.Getenv("APP_BASE_URL")
	if base == "" {
		base = "http://localhost:3000"
	}
	return base + "/shared/" + shareLink
}

// POST /api/plans/:id/share
//
// Marks the plan public and issues an opaque share link if it has none.
// Sharing is a contract, not an access-control mechanism: permissions on
// SharedWith entries are stored but never enforced.
func (h *Handlers) SharePlan(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
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

	sharing := plan.Sharing
	if sharing.ShareLink == "" {
		sharing.ShareLink = utils.GenerateRandomString(13)
	}
	sharing.IsPublic = true

	patch := newSharingPatch(sharing)
	if err := h.store.Update(ctx, planID, patch); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error sharing plan")
		return
	}

	rdx.InvalidatePlan(ctx, planID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"shareLink": sharing.ShareLink,
		"url":       shareURL(sharing.ShareLink),
	})
}

// GET /api/plans/:id/share/qr
func (h *Handlers) ShareQR(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
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

	if plan.Sharing.ShareLink == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Plan is not shared")
		return
	}

	png, err := qrcode.Encode(shareURL(plan.Sharing.ShareLink), qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
