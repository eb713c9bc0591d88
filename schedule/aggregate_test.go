package schedule

import (
	"testing"

	"planora/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withStatus(id string, status models.ActivityStatus) models.Activity {
	a := act(id, "09:00", 30)
	a.Status = status
	return a
}

func TestDayProgressEmpty(t *testing.T) {
	p := DayProgress(models.DayPlan{Activities: []models.Activity{}})
	assert.Equal(t, Progress{Total: 0, Completed: 0, Percentage: 0}, p)
}

func TestDayProgressCountsSkippedAsResolved(t *testing.T) {
	day := models.DayPlan{Activities: []models.Activity{
		withStatus("a", models.StatusCompleted),
		withStatus("b", models.StatusSkipped),
		withStatus("c", models.StatusPlanned),
		withStatus("d", models.StatusInProgress),
	}}

	p := DayProgress(day)
	assert.Equal(t, 4, p.Total)
	assert.Equal(t, 2, p.Completed)
	assert.Equal(t, 50, p.Percentage)
}

func TestDayProgressRounds(t *testing.T) {
	day := models.DayPlan{Activities: []models.Activity{
		withStatus("a", models.StatusCompleted),
		withStatus("b", models.StatusPlanned),
		withStatus("c", models.StatusPlanned),
	}}
	assert.Equal(t, 33, DayProgress(day).Percentage)
}

func TestFreeSlots(t *testing.T) {
	activities := []models.Activity{act("a", "10:00", 60)}

	slots := FreeSlots(activities, "08:00", "18:00", 30)
	require.Len(t, slots, 2)

	assert.Equal(t, "08:00", slots[0].Start)
	assert.Equal(t, "10:00", slots[0].End)
	assert.True(t, slots[0].IsFree)

	assert.Equal(t, "11:00", slots[1].Start)
	assert.Equal(t, "18:00", slots[1].End)
}

func TestFreeSlotsSortsInput(t *testing.T) {
	activities := []models.Activity{
		act("late", "15:00", 60),
		act("early", "09:00", 60),
	}

	slots := FreeSlots(activities, "08:00", "18:00", 30)
	require.Len(t, slots, 3)
	assert.Equal(t, "08:00", slots[0].Start)
	assert.Equal(t, "09:00", slots[0].End)
	assert.Equal(t, "10:00", slots[1].Start)
	assert.Equal(t, "15:00", slots[1].End)
	assert.Equal(t, "16:00", slots[2].Start)
	assert.Equal(t, "18:00", slots[2].End)
}

func TestFreeSlotsRespectsMinDuration(t *testing.T) {
	activities := []models.Activity{act("a", "08:15", 585)} // ends 18:00

	slots := FreeSlots(activities, "08:00", "18:00", 30)
	assert.Empty(t, slots, "15-minute leading gap is below the minimum")
}

func TestFreeSlotsEmptyDay(t *testing.T) {
	slots := FreeSlots(nil, "08:00", "22:00", 30)
	require.Len(t, slots, 1)
	assert.Equal(t, "08:00", slots[0].Start)
	assert.Equal(t, "22:00", slots[0].End)
}

func TestTotalDuration(t *testing.T) {
	assert.Equal(t, 0, TotalDuration(nil))
	assert.Equal(t, 90, TotalDuration([]models.Activity{
		act("a", "09:00", 60),
		act("b", "10:00", 30),
	}))
}

func TestCurrentActivity(t *testing.T) {
	activities := []models.Activity{
		act("a", "09:00", 60),
		act("b", "10:00", 60),
	}

	got := CurrentActivity(activities, "09:30")
	require.NotNil(t, got)
	assert.Equal(t, "a", got.ID)

	got = CurrentActivity(activities, "10:00")
	require.NotNil(t, got)
	assert.Equal(t, "b", got.ID)

	assert.Nil(t, CurrentActivity(activities, "11:30"))
}
