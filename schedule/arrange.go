package schedule

import (
	"errors"
	"sort"

	"planora/models"

	"github.com/google/uuid"
)

var ErrIndexOutOfRange = errors.New("schedule: reorder index out of range")

// SortByTime returns a copy of activities in ascending start-time order.
// The sort is stable: activities sharing a start time keep their input order.
// Duration and the order field are not tie-breakers.
func SortByTime(activities []models.Activity) []models.Activity {
	out := make([]models.Activity, len(activities))
	copy(out, activities)
	sort.SliceStable(out, func(i, j int) bool {
		return clockToMinutes(out[i].StartTime) < clockToMinutes(out[j].StartTime)
	})
	return out
}

// Reorder moves the element at from to position to and rewrites every
// activity's Order field to its new 0-based position.
func Reorder(activities []models.Activity, from, to int) ([]models.Activity, error) {
	if from < 0 || from >= len(activities) || to < 0 || to >= len(activities) {
		return nil, ErrIndexOutOfRange
	}
	out := make([]models.Activity, 0, len(activities))
	out = append(out, activities...)

	moved := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]models.Activity{moved}, out[to:]...)...)

	return Renumber(out), nil
}

// Renumber rewrites every activity's Order field to its array position.
// Order is derived, never authoritative: it is recomputed at every write.
func Renumber(activities []models.Activity) []models.Activity {
	out := make([]models.Activity, len(activities))
	copy(out, activities)
	for i := range out {
		out[i].Order = i
	}
	return out
}

// FindConflict returns the first existing activity whose [start, end) interval
// overlaps the candidate's, or nil if none. Intervals are half-open, so
// back-to-back activities do not conflict. Advisory only: callers decide
// whether to block or warn.
func FindConflict(startTime string, duration int, existing []models.Activity) *models.Activity {
	candidateEnd := AddMinutes(startTime, duration)
	for i := range existing {
		existingEnd := EndTime(existing[i])
		if InRange(startTime, existing[i].StartTime, existingEnd) ||
			InRange(existing[i].StartTime, startTime, candidateEnd) {
			return &existing[i]
		}
	}
	return nil
}

// Compact reschedules activities back-to-back from dayStart, walking them in
// Order-field order and assigning each start time to the previous activity's
// end. Durations and Order values are untouched.
func Compact(activities []models.Activity, dayStart string) []models.Activity {
	out := make([]models.Activity, len(activities))
	copy(out, activities)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })

	current := dayStart
	for i := range out {
		out[i].StartTime = current
		current = AddMinutes(current, out[i].Duration)
	}
	return out
}

// InsertBreaks walks activities in their given order, accumulating elapsed
// minutes, and inserts a rest activity before any activity reached with
// breakFrequency or more minutes since the last break. A break shares the
// start time of the activity it precedes; run Compact afterwards if a
// contiguous timeline is wanted. Every element is renumbered by final
// position.
func InsertBreaks(activities []models.Activity, breakFrequency, breakDuration int) []models.Activity {
	withBreaks := make([]models.Activity, 0, len(activities))
	sinceBreak := 0

	for _, a := range activities {
		if sinceBreak >= breakFrequency && !a.IsBreak {
			withBreaks = append(withBreaks, models.Activity{
				ID:          uuid.New().String(),
				Title:       "Break",
				Type:        models.TypeRest,
				StartTime:   a.StartTime,
				Duration:    breakDuration,
				Status:      models.StatusPlanned,
				IsBreak:     true,
				AISuggested: true,
				Order:       len(withBreaks),
			})
			sinceBreak = 0
		}

		a.Order = len(withBreaks)
		withBreaks = append(withBreaks, a)
		sinceBreak += a.Duration
	}

	return withBreaks
}
