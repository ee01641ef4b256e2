package mcp

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// --- Tool definitions ---

var toolGetProfileStats = mcp.NewTool("get_profile_stats",
	mcp.WithDescription("Get aggregate training statistics: total sessions, sessions this month, current day streak, favorite exercise, total sets, average weight, recent workouts, and achievements."),
)

var toolGetSession = mcp.NewTool("get_session",
	mcp.WithDescription("Get the workout session for one calendar date. Returns the logged sets (exercise, reps, weight). A date without a session returns an empty set list."),
	mcp.WithString("date", mcp.Required(), mcp.Description("Calendar date (YYYY-MM-DD)")),
)

var toolGetLeaderboard = mcp.NewTool("get_leaderboard",
	mcp.WithDescription("Get per-exercise leaderboards: the top 10 best lifts across all users, one entry per user, ranked by weight."),
	mcp.WithString("category", mcp.Description("Exercise category (e.g. 'chest', 'legs'). Omit for all categories.")),
)

var toolListCategories = mcp.NewTool("list_categories",
	mcp.WithDescription("List all exercise categories."),
)

var toolListExercises = mcp.NewTool("list_exercises",
	mcp.WithDescription("List the exercises in one category."),
	mcp.WithString("category", mcp.Required(), mcp.Description("Exercise category")),
)

// --- Tool handlers ---

func (h *handlers) getProfileStats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summary, err := h.ds.ProfileSummary(ctx)
	if err != nil {
		h.log.Error("mcp get_profile_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(summary)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getSession(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dateStr, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError("date parameter is required"), nil
	}
	date, err := parseDate(dateStr)
	if err != nil {
		return mcp.NewToolResultError("invalid date format, want YYYY-MM-DD"), nil
	}

	view, err := h.ds.Session(ctx, date)
	if err != nil {
		h.log.Error("mcp get_session", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(view)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getLeaderboard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category := req.GetString("category", "")

	boards, err := h.ds.Leaderboards(ctx, category)
	if err != nil {
		h.log.Error("mcp get_leaderboard", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(boards)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listCategories(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	categories, err := h.ds.Categories(ctx)
	if err != nil {
		h.log.Error("mcp list_categories", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(categories)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category, err := req.RequireString("category")
	if err != nil {
		return mcp.NewToolResultError("category parameter is required"), nil
	}

	exercises, err := h.ds.Exercises(ctx, category)
	if err != nil {
		h.log.Error("mcp list_exercises", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(exercises)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
