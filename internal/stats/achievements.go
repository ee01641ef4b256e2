package stats

import "github.com/liftlog/liftlog/internal/models"

// Achievements evaluates the fixed milestone list against the given stats.
// The list and thresholds mirror the profile view's badges.
func Achievements(st models.UserStats) []models.Achievement {
	return []models.Achievement{
		{
			Name:        "First session",
			Description: "Complete your first workout session",
			Earned:      st.TotalSessions >= 1,
		},
		{
			Name:        "3-day streak",
			Description: "Train 3 days in a row",
			Earned:      st.CurrentStreak >= 3,
		},
		{
			Name:        "7-day streak",
			Description: "Train 7 days in a row",
			Earned:      st.CurrentStreak >= 7,
		},
		{
			Name:        "Consistency",
			Description: "Complete 20 sessions",
			Earned:      st.TotalSessions >= 20,
		},
		{
			Name:        "Century of sets",
			Description: "Record 100 sets",
			Earned:      st.TotalSets >= 100,
		},
		{
			Name:        "Active month",
			Description: "Train 15 days in one month",
			Earned:      st.SessionsThisMonth >= 15,
		},
	}
}
