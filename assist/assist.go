// Package assist is a simulated suggestion generator. Responses are canned
// and keyed by keyword matching on the prompt; there is no model call. The
// rest of the system treats its output like any other externally-proposed
// activity, so swapping in real inference later only touches this package.
package assist

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"strings"

	"planora/models"
	"planora/schedule"
	"planora/utils"

	"github.com/julienschmidt/httprouter"
)

type template struct {
	Title    string
	Type     models.ActivityType
	Duration int
	Location string
}

var cannedSuggestions = map[string][]template{
	"food": {
		{Title: "Breakfast at a local cafe", Type: models.TypeMeal, Duration: 45},
		{Title: "Street food tour", Type: models.TypeMeal, Duration: 90, Location: "Old Town"},
		{Title: "Dinner reservation", Type: models.TypeMeal, Duration: 90},
		{Title: "Farmers market visit", Type: models.TypeMeal, Duration: 60, Location: "Market Square"},
	},
	"sightseeing": {
		{Title: "Old town walking tour", Type: models.TypeSightseeing, Duration: 120, Location: "City Center"},
		{Title: "Viewpoint at sunset", Type: models.TypeSightseeing, Duration: 60},
		{Title: "Museum visit", Type: models.TypeSightseeing, Duration: 90, Location: "National Museum"},
		{Title: "Historic cathedral", Type: models.TypeSightseeing, Duration: 45},
	},
	"relax": {
		{Title: "Spa afternoon", Type: models.TypeWellness, Duration: 120},
		{Title: "Beach time", Type: models.TypeRest, Duration: 180, Location: "Seafront"},
		{Title: "Park picnic", Type: models.TypeRest, Duration: 90, Location: "Central Park"},
		{Title: "Morning yoga", Type: models.TypeWellness, Duration: 60},
	},
	"shopping": {
		{Title: "Local market browse", Type: models.TypeShopping, Duration: 90, Location: "Bazaar"},
		{Title: "Souvenir hunting", Type: models.TypeShopping, Duration: 60},
		{Title: "Mall visit", Type: models.TypeShopping, Duration: 120},
	},
	"active": {
		{Title: "Morning run", Type: models.TypeSports, Duration: 45},
		{Title: "Bike rental tour", Type: models.TypeSports, Duration: 120},
		{Title: "Kayaking trip", Type: models.TypeSports, Duration: 150, Location: "Riverside"},
		{Title: "Hiking trail", Type: models.TypeSports, Duration: 180},
	},
	"evening": {
		{Title: "Live music venue", Type: models.TypeEntertainment, Duration: 120},
		{Title: "Theatre show", Type: models.TypeEntertainment, Duration: 150, Location: "Grand Theatre"},
		{Title: "Rooftop bar", Type: models.TypeSocial, Duration: 90},
	},
}

// keywords that map a free-form prompt to a canned category
var keywordIndex = map[string]string{
	"eat": "food", "food": "food", "restaurant": "food", "meal": "food",
	"lunch": "food", "dinner": "food", "breakfast": "food", "hungry": "food",
	"see": "sightseeing", "sight": "sightseeing", "museum": "sightseeing",
	"tour": "sightseeing", "visit": "sightseeing", "culture": "sightseeing",
	"relax": "relax", "rest": "relax", "chill": "relax", "spa": "relax",
	"beach": "relax", "calm": "relax",
	"shop": "shopping", "buy": "shopping", "market": "shopping",
	"sport": "active", "active": "active", "hike": "active", "run": "active",
	"bike": "active", "outdoor": "active",
	"night": "evening", "evening": "evening", "show": "evening",
	"music": "evening", "party": "evening",
}

func matchCategory(prompt string) string {
	lower := strings.ToLower(prompt)
	for keyword, category := range keywordIndex {
		if strings.Contains(lower, keyword) {
			return category
		}
	}
	return "sightseeing"
}

type suggestRequest struct {
	Prompt    string `json:"prompt"`
	StartTime string `json:"startTime"` // first suggestion's slot, HH:mm
	Count     int    `json:"count"`
}

// POST /api/assist/suggestions
//
// Produces candidate partial activities. They are not persisted here; the
// client adds the ones it wants through the normal activity add path.
func Suggest(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req suggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	count := req.Count
	if count < 1 || count > 5 {
		count = 3
	}
	start := req.StartTime
	if start == "" {
		start = "09:00"
	}

	category := matchCategory(req.Prompt)
	pool := cannedSuggestions[category]

	picks := rand.Perm(len(pool))
	if count > len(picks) {
		count = len(picks)
	}

	suggestions := make([]models.Activity, 0, count)
	slot := start
	for _, idx := range picks[:count] {
		t := pool[idx]
		suggestions = append(suggestions, models.Activity{
			ID:          utils.GetUUID(),
			Title:       t.Title,
			Type:        t.Type,
			StartTime:   slot,
			Duration:    t.Duration,
			Location:    t.Location,
			Status:      models.StatusPlanned,
			AISuggested: true,
		})
		// stack candidates back-to-back from the requested slot
		slot = schedule.AddMinutes(slot, t.Duration)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"category":    category,
		"suggestions": suggestions,
	})
}
