package schedule

import (
	"math"

	"planora/models"
)

// Progress summarizes how much of a day's timeline has been resolved.
type Progress struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Percentage int `json:"percentage"`
}

// TimeSlot is a contiguous span of a day, free or occupied.
type TimeSlot struct {
	Start    string           `json:"start"`
	End      string           `json:"end"`
	IsFree   bool             `json:"isFree"`
	Activity *models.Activity `json:"activity,omitempty"`
}

// DayProgress counts resolved activities. Completed and skipped both count as
// resolved: skipping is progress, not failure. Percentage is 0 for an empty
// day.
func DayProgress(day models.DayPlan) Progress {
	total := len(day.Activities)
	completed := 0
	for _, a := range day.Activities {
		if a.Status == models.StatusCompleted || a.Status == models.StatusSkipped {
			completed++
		}
	}

	percentage := 0
	if total > 0 {
		percentage = int(math.Round(float64(completed) / float64(total) * 100))
	}
	return Progress{Total: total, Completed: completed, Percentage: percentage}
}

// FreeSlots finds every gap of at least minDuration minutes between dayStart
// and dayEnd. Activities are sorted ascending by start time before the walk;
// overlapping input still produces undefined slot results.
func FreeSlots(activities []models.Activity, dayStart, dayEnd string, minDuration int) []TimeSlot {
	sorted := SortByTime(activities)

	slots := []TimeSlot{}
	current := dayStart

	for i := range sorted {
		gap := MinutesBetween(current, sorted[i].StartTime)
		if gap >= minDuration {
			slots = append(slots, TimeSlot{Start: current, End: sorted[i].StartTime, IsFree: true})
		}
		current = EndTime(sorted[i])
	}

	if MinutesBetween(current, dayEnd) >= minDuration {
		slots = append(slots, TimeSlot{Start: current, End: dayEnd, IsFree: true})
	}

	return slots
}

// TotalDuration sums the planned minutes across activities.
func TotalDuration(activities []models.Activity) int {
	total := 0
	for _, a := range activities {
		total += a.Duration
	}
	return total
}

// CurrentActivity returns the activity whose interval contains the given
// wall-clock time, or nil if the time is free.
func CurrentActivity(activities []models.Activity, clock string) *models.Activity {
	for i := range activities {
		if InRange(clock, activities[i].StartTime, EndTime(activities[i])) {
			return &activities[i]
		}
	}
	return nil
}
