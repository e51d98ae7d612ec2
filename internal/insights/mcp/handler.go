package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/2beens/fitstats/internal/insights"
	"github.com/2beens/fitstats/internal/workouts"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Handler handles MCP tool requests and responses: parses input, calls the service, formats MCP result.
type Handler struct {
	service contextService
}

// NewHandler builds a handler with the given service.
func NewHandler(service contextService) *Handler {
	return &Handler{
		service: service,
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

func jsonResult(v any) (*mcp.CallToolResult, any, error) {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("Error encoding response: " + err.Error()), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(raw)}},
	}, nil, nil
}

// GetFitstatsContextTool returns the MCP tool handler for get_fitstats_context.
func (h *Handler) GetFitstatsContextTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		text, err := h.service.GetSchema(ctx)
		if err != nil {
			return errorResult("Error fetching schema: " + err.Error()), nil, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: text}},
		}, nil, nil
	}
}

// WorkoutsTimeRangeInput is the input for get_workouts_for_time_range.
type WorkoutsTimeRangeInput struct {
	FromDate string `json:"from_date" jsonschema:"Start date (YYYY-MM-DD)"`
	ToDate   string `json:"to_date" jsonschema:"End date (YYYY-MM-DD)"`
	Type     string `json:"type,omitempty" jsonschema:"Filter by workout type (e.g. strength, running)"`
}

// GetWorkoutsForTimeRangeTool returns the MCP tool handler for get_workouts_for_time_range.
func (h *Handler) GetWorkoutsForTimeRangeTool() func(context.Context, *mcp.CallToolRequest, WorkoutsTimeRangeInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in WorkoutsTimeRangeInput) (*mcp.CallToolResult, any, error) {
		from, err := time.Parse("2006-01-02", in.FromDate)
		if err != nil {
			return errorResult("Invalid from_date: use YYYY-MM-DD"), nil, nil
		}
		to, err := time.Parse("2006-01-02", in.ToDate)
		if err != nil {
			return errorResult("Invalid to_date: use YYYY-MM-DD"), nil, nil
		}
		to = time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, 999999999, to.Location())

		params := workouts.WorkoutParams{
			From: &from,
			To:   &to,
		}
		if in.Type != "" {
			workoutType := workouts.WorkoutType(in.Type)
			if !workoutType.IsValid() {
				return errorResult(fmt.Sprintf("Invalid type: %s", in.Type)), nil, nil
			}
			params.Type = workoutType
		}

		list, err := h.service.ListWorkouts(ctx, params)
		if err != nil {
			return errorResult("Error listing workouts: " + err.Error()), nil, nil
		}
		return jsonResult(list)
	}
}

// SnapshotInput is the shared input for the analytics snapshot tools.
type SnapshotInput struct {
	Type         string `json:"type,omitempty" jsonschema:"Workout type filter: all or strength (default all)"`
	GoalWorkouts int    `json:"goal_workouts,omitempty" jsonschema:"Weekly workouts goal override (default 4)"`
	GoalMinutes  int    `json:"goal_minutes,omitempty" jsonschema:"Weekly active minutes goal override (default 180)"`
}

func (in SnapshotInput) insightsConfig() (insights.Config, error) {
	config := insights.Config{
		WeeklyGoalWorkouts: in.GoalWorkouts,
		WeeklyGoalMinutes:  in.GoalMinutes,
	}
	if in.Type != "" {
		typeFilter := insights.TypeFilter(in.Type)
		if !typeFilter.IsValid() {
			return config, fmt.Errorf("invalid type filter: %s", in.Type)
		}
		config.TypeFilter = typeFilter
	}
	return config, nil
}

func (h *Handler) snapshotForInput(ctx context.Context, in SnapshotInput) (insights.Snapshot, *mcp.CallToolResult) {
	config, err := in.insightsConfig()
	if err != nil {
		return insights.Snapshot{}, errorResult("Invalid type filter: use all or strength")
	}
	snapshot, err := h.service.GetSnapshot(ctx, config)
	if err != nil {
		return insights.Snapshot{}, errorResult("Error computing snapshot: " + err.Error())
	}
	return snapshot, nil
}

// GetSnapshotTool returns the MCP tool handler for get_snapshot.
func (h *Handler) GetSnapshotTool() func(context.Context, *mcp.CallToolRequest, SnapshotInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in SnapshotInput) (*mcp.CallToolResult, any, error) {
		snapshot, errRes := h.snapshotForInput(ctx, in)
		if errRes != nil {
			return errRes, nil, nil
		}
		return jsonResult(snapshot)
	}
}

// GetStreaksTool returns the MCP tool handler for get_streaks.
func (h *Handler) GetStreaksTool() func(context.Context, *mcp.CallToolRequest, SnapshotInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in SnapshotInput) (*mcp.CallToolResult, any, error) {
		snapshot, errRes := h.snapshotForInput(ctx, in)
		if errRes != nil {
			return errRes, nil, nil
		}
		return jsonResult(snapshot.Streaks)
	}
}

// GetPersonalRecordsTool returns the MCP tool handler for get_personal_records.
func (h *Handler) GetPersonalRecordsTool() func(context.Context, *mcp.CallToolRequest, SnapshotInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in SnapshotInput) (*mcp.CallToolResult, any, error) {
		snapshot, errRes := h.snapshotForInput(ctx, in)
		if errRes != nil {
			return errRes, nil, nil
		}
		return jsonResult(snapshot.Records)
	}
}

// GetNearPRsTool returns the MCP tool handler for get_near_prs.
func (h *Handler) GetNearPRsTool() func(context.Context, *mcp.CallToolRequest, SnapshotInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in SnapshotInput) (*mcp.CallToolResult, any, error) {
		snapshot, errRes := h.snapshotForInput(ctx, in)
		if errRes != nil {
			return errRes, nil, nil
		}
		return jsonResult(snapshot.NearPRs)
	}
}

// GetGapRecommendationsTool returns the MCP tool handler for get_gap_recommendations.
func (h *Handler) GetGapRecommendationsTool() func(context.Context, *mcp.CallToolRequest, SnapshotInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in SnapshotInput) (*mcp.CallToolResult, any, error) {
		snapshot, errRes := h.snapshotForInput(ctx, in)
		if errRes != nil {
			return errRes, nil, nil
		}
		return jsonResult(snapshot.GapRecommendations)
	}
}

// GetWeekForecastTool returns the MCP tool handler for get_week_forecast.
func (h *Handler) GetWeekForecastTool() func(context.Context, *mcp.CallToolRequest, SnapshotInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in SnapshotInput) (*mcp.CallToolResult, any, error) {
		snapshot, errRes := h.snapshotForInput(ctx, in)
		if errRes != nil {
			return errRes, nil, nil
		}
		return jsonResult(snapshot.Forecast)
	}
}
