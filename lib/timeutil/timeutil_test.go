package timeutil

import (
	"testing"
	"time"
)

func TestValidateTimezone(t *testing.T) {
	if got := ValidateTimezone("Europe/London"); got != "Europe/London" {
		t.Fatalf("want Europe/London, got %s", got)
	}
	if got := ValidateTimezone("America/New_York"); got != "America/New_York" {
		t.Fatalf("want America/New_York, got %s", got)
	}
	if got := ValidateTimezone("Not/AZone"); got != DefaultTimezone {
		t.Fatalf("want fallback %s, got %s", DefaultTimezone, got)
	}
	if got := ValidateTimezone(""); got != DefaultTimezone {
		t.Fatalf("want fallback %s, got %s", DefaultTimezone, got)
	}
}

func TestValidClockTime(t *testing.T) {
	valid := []string{"00:00", "09:00", "16:00", "23:59"}
	for _, s := range valid {
		if !ValidClockTime(s) {
			t.Fatalf("%s should be valid", s)
		}
	}
	invalid := []string{"", "9:00", "24:00", "16:60", "16:00:00", "noon", "16.00"}
	for _, s := range invalid {
		if ValidClockTime(s) {
			t.Fatalf("%s should be invalid", s)
		}
	}
}

func TestLocalClock(t *testing.T) {
	// 2024-06-15 14:30 UTC is 15:30 in London (BST) and 10:30 in New York (EDT).
	at := time.Date(2024, time.June, 15, 14, 30, 0, 0, time.UTC)

	if got := LocalClock(at, "UTC"); got != "14:30" {
		t.Fatalf("want 14:30, got %s", got)
	}
	if got := LocalClock(at, "Europe/London"); got != "15:30" {
		t.Fatalf("want 15:30, got %s", got)
	}
	if got := LocalClock(at, "America/New_York"); got != "10:30" {
		t.Fatalf("want 10:30, got %s", got)
	}
}

func TestLocalClockZeroPadded(t *testing.T) {
	at := time.Date(2024, time.June, 15, 9, 5, 0, 0, time.UTC)
	if got := LocalClock(at, "UTC"); got != "09:05" {
		t.Fatalf("want 09:05, got %s", got)
	}
}

func TestISOWeekday(t *testing.T) {
	// 2024-01-08 is a Monday, 2024-01-14 a Sunday.
	monday := time.Date(2024, time.January, 8, 12, 0, 0, 0, time.UTC)
	sunday := time.Date(2024, time.January, 14, 12, 0, 0, 0, time.UTC)

	if got := ISOWeekday(monday, "UTC"); got != 1 {
		t.Fatalf("want 1 for Monday, got %d", got)
	}
	if got := ISOWeekday(sunday, "UTC"); got != 7 {
		t.Fatalf("want 7 for Sunday, got %d", got)
	}
}

func TestISOWeekdayCrossesDateLine(t *testing.T) {
	// 23:30 Sunday UTC is already Monday in Auckland.
	at := time.Date(2024, time.January, 14, 23, 30, 0, 0, time.UTC)
	if got := ISOWeekday(at, "Pacific/Auckland"); got != 1 {
		t.Fatalf("want 1, got %d", got)
	}
	if got := ISOWeekday(at, "UTC"); got != 7 {
		t.Fatalf("want 7, got %d", got)
	}
}
