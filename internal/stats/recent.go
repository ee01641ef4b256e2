package stats

import "github.com/liftlog/liftlog/internal/models"

// generalCategory labels a session whose sets carry no category.
const generalCategory = "general"

// RecentWorkouts summarizes up to n of the given sessions for the profile
// view. Sessions are expected newest-first, as the storage layer returns
// them. Each summary carries the session's dominant exercise category
// (most sets, first-encountered tie-break), its set count, and a rough
// duration estimate: 3 minutes per set, floored at 30.
func RecentWorkouts(sessions []models.SessionDay, n int) []models.RecentWorkout {
	if len(sessions) > n {
		sessions = sessions[:n]
	}

	out := make([]models.RecentWorkout, 0, len(sessions))
	for _, s := range sessions {
		counts := make(map[string]int)
		var order []string
		for _, set := range s.Sets {
			if _, seen := counts[set.Category]; !seen {
				order = append(order, set.Category)
			}
			counts[set.Category]++
		}

		category := generalCategory
		best := 0
		for _, cat := range order {
			if counts[cat] > best {
				best = counts[cat]
				category = cat
			}
		}

		duration := len(s.Sets) * 3
		if duration < 30 {
			duration = 30
		}

		out = append(out, models.RecentWorkout{
			Date:        s.Date,
			Category:    category,
			Sets:        len(s.Sets),
			DurationMin: duration,
		})
	}
	return out
}
