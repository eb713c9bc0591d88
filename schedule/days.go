package schedule

import (
	"time"

	"planora/models"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// DefaultPreferences are applied when a plan is created without explicit
// scheduling preferences.
func DefaultPreferences() models.PlanPreferences {
	return models.PlanPreferences{
		WakeUpTime: "08:00",
		SleepTime:  "22:00",
		MealTimes: models.MealTimes{
			Breakfast: "08:30",
			Lunch:     "13:00",
			Dinner:    "19:30",
		},
		BreakFrequency: 120,
		BreakDuration:  15,
		TravelBuffer:   15,
		Pace:           "moderate",
	}
}

// DateSequence lists every calendar date from start to end inclusive, in
// ascending order. start == end yields one date; start after end yields an
// empty list. Dates are YYYY-MM-DD strings.
func DateSequence(startDate, endDate string) []string {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return []string{}
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return []string{}
	}

	dates := []string{}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(dateLayout))
	}
	return dates
}

// BuildDays creates one empty day per date, numbered from 1.
func BuildDays(dates []string) []models.DayPlan {
	days := make([]models.DayPlan, 0, len(dates))
	for i, date := range dates {
		days = append(days, models.DayPlan{
			ID:         uuid.New().String(),
			Date:       date,
			DayNumber:  i + 1,
			Activities: []models.Activity{},
		})
	}
	return days
}

// RegenerateDays rebuilds a plan's day set for a new date sequence. Existing
// days whose date still appears are reused as-is, keeping their id and
// activities; new dates get fresh empty days. Day numbers are reassigned to
// the 1-based position in the new sequence. Days whose dates fell out of
// range are dropped along with their activities.
func RegenerateDays(existing []models.DayPlan, dates []string) []models.DayPlan {
	byDate := make(map[string]models.DayPlan, len(existing))
	for _, d := range existing {
		byDate[d.Date] = d
	}

	days := make([]models.DayPlan, 0, len(dates))
	for i, date := range dates {
		day, ok := byDate[date]
		if !ok {
			day = models.DayPlan{
				ID:         uuid.New().String(),
				Date:       date,
				Activities: []models.Activity{},
			}
		}
		day.DayNumber = i + 1
		days = append(days, day)
	}
	return days
}
