// Package schedule holds the pure timeline logic: wall-clock arithmetic,
// activity ordering, conflict detection, compaction, break insertion, and
// day/plan generation. Nothing in here touches the network or the database.
package schedule

import (
	"fmt"
	"strconv"
	"strings"

	"planora/models"
)

const minutesPerDay = 24 * 60

// ParseClock splits an HH:mm string into hours and minutes. Inputs are not
// validated; callers must only pass well-formed 24h strings.
func ParseClock(s string) (hours, minutes int) {
	parts := strings.SplitN(s, ":", 2)
	hours, _ = strconv.Atoi(parts[0])
	if len(parts) > 1 {
		minutes, _ = strconv.Atoi(parts[1])
	}
	return hours, minutes
}

// FormatClock renders hours and minutes as a zero-padded HH:mm string.
func FormatClock(hours, minutes int) string {
	return fmt.Sprintf("%02d:%02d", hours, minutes)
}

func clockToMinutes(s string) int {
	h, m := ParseClock(s)
	return h*60 + m
}

// AddMinutes shifts a wall-clock time by delta minutes, wrapping modulo 24h.
// Day overflow is not tracked: a multi-day duration silently wraps.
func AddMinutes(clock string, delta int) string {
	total := clockToMinutes(clock) + delta
	total %= minutesPerDay
	if total < 0 {
		total += minutesPerDay
	}
	return FormatClock(total/60, total%60)
}

// MinutesBetween returns the signed difference end-start in minutes on the
// same nominal day. No wraparound correction: if end is earlier the result
// is negative, which the free-slot search treats as "no gap".
func MinutesBetween(start, end string) int {
	return clockToMinutes(end) - clockToMinutes(start)
}

// InRange reports whether clock falls in the half-open interval [start, end).
func InRange(clock, start, end string) bool {
	t := clockToMinutes(clock)
	return t >= clockToMinutes(start) && t < clockToMinutes(end)
}

// FormatDuration renders a minute count as "45min", "1h" or "1h 30min".
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dmin", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dmin", hours, mins)
}

// EndTime computes an activity's implied end time from start plus duration.
func EndTime(a models.Activity) string {
	return AddMinutes(a.StartTime, a.Duration)
}

// FormatTimeRange renders "HH:mm - HH:mm" for a start time and duration.
func FormatTimeRange(start string, duration int) string {
	return start + " - " + AddMinutes(start, duration)
}
