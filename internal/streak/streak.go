// Package streak implements the daily-engagement gate and streak
// transition shared by the daily problem and daily quiz flows.
//
// All day-boundary math is pinned to UTC. The stored last-attempt value is
// an absolute timestamp; what counts as "a day" must not depend on whatever
// timezone happens to be ambient where the comparison runs.
package streak

import "time"

// DateKey formats t as a YYYY-MM-DD key in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// day truncates t to its UTC calendar date.
func day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Gate decides whether the user may attempt today's activity.
//
// A nil last timestamp means a fresh start: available with streak 0. An
// attempt recorded today closes the gate. Anything earlier leaves the gate
// open with the streak unchanged; the streak only moves on submission.
func Gate(last *time.Time, current int, now time.Time) (available bool, streak int) {
	if last == nil {
		return true, 0
	}
	if day(*last).Equal(day(now)) {
		return false, current
	}
	return true, current
}

// Next computes the streak value to persist for a submission at now.
//
//	no prior attempt          -> 1
//	last attempt today        -> max(current, 1)  (same-day resubmission, no increment)
//	last attempt yesterday    -> current + 1
//	last attempt older        -> 1                (gap resets)
func Next(last *time.Time, current int, now time.Time) int {
	if last == nil {
		return 1
	}
	today := day(now)
	lastDay := day(*last)
	switch {
	case lastDay.Equal(today):
		if current < 1 {
			return 1
		}
		return current
	case lastDay.Equal(today.AddDate(0, 0, -1)):
		return current + 1
	default:
		return 1
	}
}
