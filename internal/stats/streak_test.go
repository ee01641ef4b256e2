package stats

import (
	"testing"
	"time"
)

func d(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// TestCurrentStreakEmpty verifies that no sessions means no streak.
func TestCurrentStreakEmpty(t *testing.T) {
	if got := CurrentStreak(nil, d(2024, 6, 5)); got != 0 {
		t.Errorf("CurrentStreak(nil) = %d, want 0", got)
	}
}

// TestCurrentStreakTable verifies the backward walk over a range of
// session-date layouts, including the walk starting at yesterday when
// today has no session.
func TestCurrentStreakTable(t *testing.T) {
	today := d(2024, 6, 5)
	tests := []struct {
		name  string
		dates []time.Time
		want  int
	}{
		{
			name:  "only today",
			dates: []time.Time{d(2024, 6, 5)},
			want:  1,
		},
		{
			name:  "three consecutive days ending today",
			dates: []time.Time{d(2024, 6, 3), d(2024, 6, 4), d(2024, 6, 5)},
			want:  3,
		},
		{
			name:  "gap before today breaks the chain",
			dates: []time.Time{d(2024, 6, 1), d(2024, 6, 2), d(2024, 6, 3), d(2024, 6, 5)},
			want:  1,
		},
		{
			name:  "today absent, chain through yesterday survives",
			dates: []time.Time{d(2024, 6, 2), d(2024, 6, 3), d(2024, 6, 4)},
			want:  3,
		},
		{
			name:  "today and yesterday absent",
			dates: []time.Time{d(2024, 6, 1), d(2024, 6, 2), d(2024, 6, 3)},
			want:  0,
		},
		{
			name:  "single session far in the past",
			dates: []time.Time{d(2024, 1, 10)},
			want:  0,
		},
		{
			name:  "unsorted input",
			dates: []time.Time{d(2024, 6, 5), d(2024, 6, 3), d(2024, 6, 4)},
			want:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CurrentStreak(tt.dates, today); got != tt.want {
				t.Errorf("CurrentStreak = %d, want %d", got, tt.want)
			}
		})
	}
}

// TestCurrentStreakIgnoresTimeOfDay verifies that dates are compared by
// calendar day: a session stored at 18:30 still matches a midnight today.
func TestCurrentStreakIgnoresTimeOfDay(t *testing.T) {
	dates := []time.Time{
		time.Date(2024, 6, 4, 18, 30, 0, 0, time.UTC),
		time.Date(2024, 6, 5, 7, 15, 0, 0, time.UTC),
	}
	if got := CurrentStreak(dates, d(2024, 6, 5)); got != 2 {
		t.Errorf("CurrentStreak = %d, want 2", got)
	}
}

// TestCurrentStreakLocalClockReference verifies that midnight-UTC session
// dates line up with a reference time from a clock west of UTC. Read as
// instants those dates would shift back a day and break the chain.
func TestCurrentStreakLocalClockReference(t *testing.T) {
	newYork := time.FixedZone("UTC-5", -5*60*60)
	dates := []time.Time{d(2024, 6, 3), d(2024, 6, 4)}

	now := time.Date(2024, 6, 5, 10, 0, 0, 0, newYork)
	if got := CurrentStreak(dates, now); got != 2 {
		t.Errorf("CurrentStreak = %d, want 2 (unbroken run through yesterday)", got)
	}

	// A session "today" counts as today, not as yesterday.
	withToday := append(dates, d(2024, 6, 5))
	if got := CurrentStreak(withToday, now); got != 3 {
		t.Errorf("CurrentStreak with today = %d, want 3", got)
	}
}

// TestCurrentStreakEastOfUTCReference is the mirror case: a clock ahead of
// UTC must not push session dates forward a day either.
func TestCurrentStreakEastOfUTCReference(t *testing.T) {
	tokyo := time.FixedZone("UTC+9", 9*60*60)
	dates := []time.Time{d(2024, 6, 4), d(2024, 6, 5)}

	now := time.Date(2024, 6, 5, 22, 0, 0, 0, tokyo)
	if got := CurrentStreak(dates, now); got != 2 {
		t.Errorf("CurrentStreak = %d, want 2", got)
	}
}

// TestCurrentStreakTerminatesAtEarliest verifies the walk stops once it
// passes the earliest known session date instead of looping further back.
func TestCurrentStreakTerminatesAtEarliest(t *testing.T) {
	// Every day from June 1 through June 5 has a session; the streak is
	// exactly 5 even though the walk would otherwise keep probing.
	dates := []time.Time{
		d(2024, 6, 1), d(2024, 6, 2), d(2024, 6, 3), d(2024, 6, 4), d(2024, 6, 5),
	}
	if got := CurrentStreak(dates, d(2024, 6, 5)); got != 5 {
		t.Errorf("CurrentStreak = %d, want 5", got)
	}
}
