package plans

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"planora/schedule"
	"planora/store"
	"planora/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
)

// GET /api/plans/:id/export
//
// Renders the plan as a printable day-by-day schedule PDF.
func (h *Handlers) ExportPDF(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	planID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
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

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.CellFormat(0, 12, plan.Title, "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	subtitle := fmt.Sprintf("%s - %s", plan.StartDate, plan.EndDate)
	if plan.Destination != "" {
		subtitle = plan.Destination + "  |  " + subtitle
	}
	pdf.CellFormat(0, 8, subtitle, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	for _, day := range plan.Days {
		pdf.SetFont("Arial", "B", 14)
		heading := fmt.Sprintf("Day %d - %s", day.DayNumber, day.Date)
		if day.Title != "" {
			heading += " - " + day.Title
		}
		pdf.CellFormat(0, 10, heading, "B", 1, "L", false, 0, "")

		if len(day.Activities) == 0 {
			pdf.SetFont("Arial", "I", 10)
			pdf.CellFormat(0, 8, "No activities planned", "", 1, "L", false, 0, "")
			pdf.Ln(2)
			continue
		}

		pdf.SetFont("Arial", "", 10)
		for _, a := range schedule.SortByTime(day.Activities) {
			line := fmt.Sprintf("%s  %s (%s)",
				schedule.FormatTimeRange(a.StartTime, a.Duration),
				a.Title,
				schedule.FormatDuration(a.Duration),
			)
			if a.Location != "" {
				line += " @ " + a.Location
			}
			pdf.CellFormat(0, 7, line, "", 1, "L", false, 0, "")
		}
		pdf.Ln(3)
	}

	pdf.SetY(-25)
	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(0, 8, "Exported "+time.Now().Format("02 Jan 2006 15:04"), "T", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=plan-"+planID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
