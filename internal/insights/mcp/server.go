package mcp

import (
	"github.com/2beens/fitstats/internal/insights"
	"github.com/2beens/fitstats/internal/workouts"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer builds an MCP server with fitstats tools: schema, raw workouts, analytics
// snapshot and its individual signals (streaks, personal records, near-PRs, gap
// recommendations, week forecast).
func NewServer(pool *pgxpool.Pool, repo *workouts.Repo) *mcp.Server {
	engine := insights.NewEngine()
	svc := NewContextService(NewPoolSchemaRepo(pool), repo, engine)
	h := NewHandler(svc)
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "fitstats-context",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_fitstats_context",
		Description: "Returns the DB schema for fitstats tables (workout, category, subcategory): table names, columns, types, nullable, default. Use when developing the fitstats app and you need the actual backend schema.",
	}, h.GetFitstatsContextTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_workouts_for_time_range",
		Description: "Returns workouts logged within the given date range. Optional filter: type (e.g. strength, running). Use when you need to see what was logged in a period.",
	}, h.GetWorkoutsForTimeRangeTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_snapshot",
		Description: "Returns the full analytics snapshot: streaks, personal records, near-PRs, gap recommendations, week forecast and session guidance. Optional: type (all or strength), goal_workouts, goal_minutes. Use when you want the whole training picture at once.",
	}, h.GetSnapshotTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_streaks",
		Description: "Returns workout streaks: current daily streak, best daily streak and the weekly goal streak. Use when you want consistency stats.",
	}, h.GetStreaksTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_personal_records",
		Description: "Returns per-exercise personal records with the estimated one rep max, heaviest at the top. Use when you need PR numbers (e.g. what is the bench press record).",
	}, h.GetPersonalRecordsTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_near_prs",
		Description: "Returns exercises where a recent top set came within 90% of the personal record. Use when looking for PR attempt candidates.",
	}, h.GetNearPRsTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_gap_recommendations",
		Description: "Returns the most neglected workout focus areas of the last two weeks, least trained first. Use when deciding what to train next.",
	}, h.GetGapRecommendationsTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_week_forecast",
		Description: "Returns this week's goal progress: workouts and minutes so far, what remains, and the daily pace needed to hit the weekly goals. Use when checking how the current week is going.",
	}, h.GetWeekForecastTool())

	return s
}
