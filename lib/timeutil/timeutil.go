package timeutil

import (
	"fmt"
	"regexp"
	"time"
)

// DefaultTimezone is the fallback zone used whenever a stored timezone
// identifier is absent or does not resolve to a valid IANA zone.
const DefaultTimezone = "Europe/London"

var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ValidateTimezone returns tz unchanged if it is a non-empty identifier that
// loads as an IANA time zone, and DefaultTimezone otherwise. Timezone strings
// arrive as free-form user data, so this never fails.
func ValidateTimezone(tz string) string {
	if tz == "" {
		return DefaultTimezone
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return DefaultTimezone
	}
	return tz
}

// ValidClockTime reports whether s is a zero-padded 24-hour "HH:mm" string.
func ValidClockTime(s string) bool {
	return clockPattern.MatchString(s)
}

// LocalClock returns the wall-clock "HH:mm" of t in the given zone.
// The zone must already be validated; an unloadable zone degrades to
// DefaultTimezone rather than failing mid-tick.
func LocalClock(t time.Time, tz string) string {
	return t.In(mustLocation(tz)).Format("15:04")
}

// ISOWeekday returns the ISO-8601 weekday number of t in the given zone,
// with Monday=1 through Sunday=7.
func ISOWeekday(t time.Time, tz string) int {
	wd := int(t.In(mustLocation(tz)).Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func mustLocation(tz string) *time.Location {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc, err = time.LoadLocation(DefaultTimezone)
		if err != nil {
			panic(fmt.Sprintf("default timezone %q unavailable: %v", DefaultTimezone, err))
		}
	}
	return loc
}
