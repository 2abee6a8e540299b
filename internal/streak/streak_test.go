package streak

import (
	"testing"
	"time"
)

func ts(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestGate(t *testing.T) {
	now := ts("2024-01-10T14:00:00Z")

	testCases := []struct {
		name          string
		last          *time.Time
		current       int
		wantAvailable bool
		wantStreak    int
	}{
		{"no prior attempt", nil, 0, true, 0},
		{"attempted earlier today", ptr(ts("2024-01-10T09:00:00Z")), 3, false, 3},
		{"attempted yesterday", ptr(ts("2024-01-09T23:30:00Z")), 5, true, 5},
		{"attempted last week", ptr(ts("2024-01-03T10:00:00Z")), 20, true, 20},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			available, streak := Gate(tc.last, tc.current, now)
			if available != tc.wantAvailable {
				t.Errorf("available = %v, want %v", available, tc.wantAvailable)
			}
			if streak != tc.wantStreak {
				t.Errorf("streak = %d, want %d", streak, tc.wantStreak)
			}
		})
	}
}

func TestNext(t *testing.T) {
	now := ts("2024-01-10T14:00:00Z")

	testCases := []struct {
		name    string
		last    *time.Time
		current int
		want    int
	}{
		{"first ever submission", nil, 0, 1},
		{"consecutive day increments", ptr(ts("2024-01-09T18:00:00Z")), 5, 6},
		{"consecutive across midnight", ptr(ts("2024-01-09T23:59:59Z")), 1, 2},
		{"same day is idempotent", ptr(ts("2024-01-10T09:00:00Z")), 3, 3},
		{"same day with zero streak floors at one", ptr(ts("2024-01-10T09:00:00Z")), 0, 1},
		{"two day gap resets", ptr(ts("2024-01-08T10:00:00Z")), 7, 1},
		{"long gap resets regardless of prior value", ptr(ts("2024-01-01T10:00:00Z")), 20, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Next(tc.last, tc.current, now); got != tc.want {
				t.Errorf("Next() = %d, want %d", got, tc.want)
			}
		})
	}
}

// Submitting twice on the same day must leave the streak unchanged after
// the second submission, no matter what time either lands.
func TestSameDayResubmissionDoesNotDoubleCount(t *testing.T) {
	first := ts("2024-01-02T09:00:00Z")
	prior := ts("2024-01-01T12:00:00Z")

	streak := Next(&prior, 3, first)
	if streak != 4 {
		t.Fatalf("first submission streak = %d, want 4", streak)
	}

	second := ts("2024-01-02T14:00:00Z")
	if got := Next(&first, streak, second); got != streak {
		t.Errorf("second same-day submission streak = %d, want %d", got, streak)
	}
}

// The calendar day is the UTC one derived from the stored timestamp, not
// the wall-clock day of whatever zone produced it.
func TestDayBoundaryIsUTC(t *testing.T) {
	// 23:30 in UTC-5 on Jan 9 is 04:30 UTC on Jan 10.
	loc := time.FixedZone("UTC-5", -5*60*60)
	last := time.Date(2024, 1, 9, 23, 30, 0, 0, loc)
	now := ts("2024-01-10T12:00:00Z")

	available, _ := Gate(&last, 2, now)
	if available {
		t.Error("expected gate closed: last attempt falls on today in UTC")
	}
	if got := Next(&last, 2, now); got != 2 {
		t.Errorf("Next() = %d, want 2 (same UTC day)", got)
	}
}

func TestDateKey(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	at := time.Date(2024, 3, 1, 2, 0, 0, 0, loc) // Feb 29 17:00 UTC
	if got := DateKey(at); got != "2024-02-29" {
		t.Errorf("DateKey() = %q, want %q", got, "2024-02-29")
	}
}

func ptr(t time.Time) *time.Time {
	return &t
}
