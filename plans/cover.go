package plans

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"planora/rdx"
	"planora/store"
	"planora/utils"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"

	_ "image/gif"
	_ "image/png"
)

var coverDir = filepath.Join("static", "covers")

const coverThumbWidth = 400

// POST /api/plans/:id/cover
//
// Accepts a multipart "cover" image, stores the original plus a resized
// thumbnail, and records the filename on the plan.
func (h *Handlers) UploadCover(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	planID := ps.ByName("id")

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	file, header, err := r.FormFile("cover")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Cover file missing")
		return
	}
	defer file.Close()

	ext := filepath.Ext(header.Filename)
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" && ext != ".gif" {
		utils.RespondWithError(w, http.StatusBadRequest, "Unsupported file type")
		return
	}

	buf, err := io.ReadAll(file)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to read file")
		return
	}

	img, _, err := image.Decode(bytes.NewReader(buf))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Not a valid image")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	// make sure the plan exists before touching the filesystem
	if _, err := h.store.FindByID(ctx, planID); err != nil {
		if err == store.ErrNotFound {
			utils.RespondWithError(w, http.StatusNotFound, "Plan not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching plan")
		return
	}

	if err := utils.EnsureDir(coverDir); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to prepare upload directory")
		return
	}

	filename := utils.GetUUID() + ext
	if err := os.WriteFile(filepath.Join(coverDir, filename), buf, 0644); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save cover")
		return
	}

	if err := writeCoverThumb(img, filename); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save thumbnail")
		return
	}

	patch := newCoverPatch(filename)
	if err := h.store.Update(ctx, planID, patch); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating plan")
		return
	}

	rdx.InvalidatePlan(ctx, planID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"coverImage": filename})
}

func writeCoverThumb(img image.Image, filename string) error {
	thumbDir := filepath.Join(coverDir, "thumb")
	if err := utils.EnsureDir(thumbDir); err != nil {
		return err
	}

	// maintain aspect ratio
	resized := imaging.Resize(img, coverThumbWidth, 0, imaging.Lanczos)

	name := filename[:len(filename)-len(filepath.Ext(filename))] + ".jpg"
	out, err := os.Create(filepath.Join(thumbDir, name))
	if err != nil {
		return err
	}
	defer out.Close()

	return jpeg.Encode(out, resized, &jpeg.Options{Quality: 85})
}
