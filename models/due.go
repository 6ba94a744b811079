package models

import (
	"github.com/jghoshh/virtuo-push/lib/timeutil"
)

// DueOn reports whether the habit's schedule matches the given ISO weekday
// (Monday=1 .. Sunday=7). A weekly schedule is due only on its listed days;
// an empty day list means never due. Every other schedule, including an
// absent or unrecognized type, behaves as daily and is always due.
func (h *Habit) DueOn(weekday int) bool {
	if h.Schedule.Type == ScheduleWeekly {
		for _, d := range h.Schedule.DaysOfWeek {
			if d == weekday {
				return true
			}
		}
		return false
	}
	return true
}

// HasExactReminder reports whether the habit has a usable exact-time reminder:
// the reminder block must exist, be enabled, and carry a well-formed "HH:mm"
// time. Anything short of that means no reminder fires, it is never an error.
func (h *Habit) HasExactReminder() bool {
	if h.Reminder == nil || !h.Reminder.Enabled {
		return false
	}
	return timeutil.ValidClockTime(h.Reminder.Time)
}

// EffectiveTimezone returns the habit's own timezone override when one is set,
// otherwise the owning user's zone. The result is still unvalidated; callers
// pass it through timeutil.ValidateTimezone before use.
func (h *Habit) EffectiveTimezone(userTZ string) string {
	if h.Timezone != "" {
		return h.Timezone
	}
	return userTZ
}
