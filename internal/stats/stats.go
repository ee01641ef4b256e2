package stats

import (
	"math"
	"time"

	"github.com/liftlog/liftlog/internal/models"
)

// Compute derives profile statistics from a user's full session history.
// now anchors the current-month count and the streak walk.
//
// The favorite exercise is the one appearing in the most sets; ties keep
// the first name encountered during iteration (an explicit, arbitrary
// tie-break). Average weight is the mean over sets that record a weight —
// weightless sets are excluded from both numerator and denominator — and
// is 0 when no set has a weight, rounded to one decimal as the profile
// view displays it.
func Compute(sessions []models.SessionDay, now time.Time) models.UserStats {
	st := models.UserStats{TotalSessions: len(sessions)}

	counts := make(map[string]int)
	var order []string
	var weightSum float64
	var weightedSets int

	dates := make([]time.Time, 0, len(sessions))
	for _, s := range sessions {
		dates = append(dates, s.Date)
		if s.Date.Year() == now.Year() && s.Date.Month() == now.Month() {
			st.SessionsThisMonth++
		}
		for _, set := range s.Sets {
			st.TotalSets++
			if set.Weight != nil {
				weightSum += *set.Weight
				weightedSets++
			}
			if _, seen := counts[set.ExerciseName]; !seen {
				order = append(order, set.ExerciseName)
			}
			counts[set.ExerciseName]++
		}
	}

	best := 0
	for _, name := range order {
		if counts[name] > best {
			best = counts[name]
			st.FavoriteExercise = name
		}
	}

	if weightedSets > 0 {
		st.AverageWeight = math.Round(weightSum/float64(weightedSets)*10) / 10
	}

	st.CurrentStreak = CurrentStreak(dates, now)
	return st
}
