package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) profileSummary(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	summary, err := h.ds.ProfileSummary(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(summary)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (h *handlers) exerciseCatalog(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	categories, err := h.ds.Categories(ctx)
	if err != nil {
		return nil, err
	}

	catalog := make(map[string]any, len(categories))
	for _, cat := range categories {
		exercises, err := h.ds.Exercises(ctx, cat)
		if err != nil {
			h.log.Warn("exercise_catalog: category query failed", "category", cat, "error", err)
			continue
		}
		catalog[cat] = exercises
	}

	data, err := json.Marshal(catalog)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
