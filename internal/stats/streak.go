// Package stats computes derived workout statistics from already-fetched
// session and set rows. Everything here is pure: no storage access, no
// clocks other than the caller-supplied reference time.
package stats

import "time"

// dayKey flattens a calendar date into one ordered integer, so dates read
// in different locations (midnight-UTC rows, a local-clock reference time)
// compare by the day they name rather than by instant.
func dayKey(year int, month time.Month, day int) int {
	return year*10000 + int(month)*100 + day
}

// CurrentStreak returns the number of consecutive calendar days with at
// least one session, walking backward from today. A session recorded today
// counts even if it is the only one. If today has no session yet, the walk
// starts at yesterday instead, so an unbroken run through yesterday still
// reports its full length until the day is over. The session-date set is
// collected first and the today-absent check happens after, against that
// set; the walk stops at the first gap and never passes the earliest known
// session date.
//
// Every date is read as the calendar day it carries in its own location,
// never re-projected into another zone, so session dates stored as
// midnight UTC line up with a reference time from any local clock.
func CurrentStreak(dates []time.Time, today time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	days := make(map[int]bool, len(dates))
	earliest := 0
	for _, d := range dates {
		k := dayKey(d.Date())
		days[k] = true
		if earliest == 0 || k < earliest {
			earliest = k
		}
	}

	y, m, d := today.Date()
	cursor := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if !days[dayKey(cursor.Date())] {
		cursor = cursor.AddDate(0, 0, -1)
	}

	streak := 0
	for k := dayKey(cursor.Date()); k >= earliest; k = dayKey(cursor.Date()) {
		if !days[k] {
			break
		}
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak
}
