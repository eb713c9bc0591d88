package schedule

import (
	"testing"

	"planora/models"

	"github.com/stretchr/testify/assert"
)

func TestParseAndFormatClock(t *testing.T) {
	h, m := ParseClock("09:05")
	assert.Equal(t, 9, h)
	assert.Equal(t, 5, m)

	assert.Equal(t, "09:05", FormatClock(9, 5))
	assert.Equal(t, "00:00", FormatClock(0, 0))
	assert.Equal(t, "23:59", FormatClock(23, 59))
}

func TestAddMinutes(t *testing.T) {
	assert.Equal(t, "10:30", AddMinutes("09:00", 90))
	assert.Equal(t, "00:10", AddMinutes("23:50", 20), "must wrap past midnight")
	assert.Equal(t, "09:00", AddMinutes("09:00", 0))
	assert.Equal(t, "08:30", AddMinutes("09:00", -30))
	// a 25h duration silently wraps to the next nominal day
	assert.Equal(t, "10:00", AddMinutes("09:00", 25*60))
}

func TestMinutesBetween(t *testing.T) {
	assert.Equal(t, 90, MinutesBetween("09:00", "10:30"))
	assert.Equal(t, 0, MinutesBetween("12:00", "12:00"))
	// no wraparound correction: an earlier end is negative
	assert.Equal(t, -60, MinutesBetween("10:00", "09:00"))
}

func TestInRange(t *testing.T) {
	assert.True(t, InRange("10:00", "10:00", "11:00"), "start is inclusive")
	assert.True(t, InRange("10:59", "10:00", "11:00"))
	assert.False(t, InRange("11:00", "10:00", "11:00"), "end is exclusive")
	assert.False(t, InRange("09:59", "10:00", "11:00"))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45min", FormatDuration(45))
	assert.Equal(t, "1h", FormatDuration(60))
	assert.Equal(t, "1h 30min", FormatDuration(90))
	assert.Equal(t, "2h", FormatDuration(120))
	assert.Equal(t, "0min", FormatDuration(0))
}

func TestEndTime(t *testing.T) {
	a := models.Activity{StartTime: "10:00", Duration: 75}
	assert.Equal(t, "11:15", EndTime(a))
}

func TestFormatTimeRange(t *testing.T) {
	assert.Equal(t, "10:00 - 11:00", FormatTimeRange("10:00", 60))
}
