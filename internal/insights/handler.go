package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/fitstats/internal/telemetry/tracing"
	"github.com/2beens/fitstats/internal/workouts"
	"github.com/2beens/fitstats/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=insights_mocks_test.go -package=insights_test

type insightsRepo interface {
	ListAll(ctx context.Context, params workouts.WorkoutParams) ([]workouts.Workout, error)
	ListCategories(ctx context.Context) ([]workouts.Category, error)
	ListSubcategories(ctx context.Context) ([]workouts.Subcategory, error)
}

type snapshotComputer interface {
	Compute(ctx context.Context, in ComputeInput) Snapshot
}

type Handler struct {
	repo     insightsRepo
	computer snapshotComputer
	defaults Config
}

func NewHandler(repo insightsRepo, computer snapshotComputer, defaults Config) *Handler {
	return &Handler{
		repo:     repo,
		computer: computer,
		defaults: defaults,
	}
}

func (handler *Handler) HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.insights.snapshot")
	defer span.End()

	snapshot, ok := handler.snapshotForRequest(ctx, w, r)
	if !ok {
		return
	}

	snapshotJson, err := json.Marshal(snapshot)
	if err != nil {
		log.Errorf("failed to marshal insights snapshot: %s", err)
		http.Error(w, "failed to marshal insights snapshot", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, snapshotJson, http.StatusOK)
}

func (handler *Handler) HandleStreaks(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.insights.streaks")
	defer span.End()

	snapshot, ok := handler.snapshotForRequest(ctx, w, r)
	if !ok {
		return
	}
	handler.writeSignal(w, snapshot.Streaks)
}

func (handler *Handler) HandleRecords(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.insights.records")
	defer span.End()

	snapshot, ok := handler.snapshotForRequest(ctx, w, r)
	if !ok {
		return
	}
	handler.writeSignal(w, snapshot.Records)
}

func (handler *Handler) HandleNearPRs(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.insights.nearprs")
	defer span.End()

	snapshot, ok := handler.snapshotForRequest(ctx, w, r)
	if !ok {
		return
	}
	handler.writeSignal(w, snapshot.NearPRs)
}

func (handler *Handler) HandleGaps(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.insights.gaps")
	defer span.End()

	snapshot, ok := handler.snapshotForRequest(ctx, w, r)
	if !ok {
		return
	}
	handler.writeSignal(w, snapshot.GapRecommendations)
}

// HandleWeekForecast serves just the weekly goal forecast, the "how is
// my week going" view.
func (handler *Handler) HandleWeekForecast(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.insights.week")
	defer span.End()

	snapshot, ok := handler.snapshotForRequest(ctx, w, r)
	if !ok {
		return
	}
	handler.writeSignal(w, snapshot.Forecast)
}

func (handler *Handler) HandleGuidance(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.insights.guidance")
	defer span.End()

	snapshot, ok := handler.snapshotForRequest(ctx, w, r)
	if !ok {
		return
	}
	handler.writeSignal(w, snapshot.Guidance)
}

// snapshotForRequest gathers the whole workout log and computes the
// snapshot for it. On failure the response is already written and
// false is returned.
func (handler *Handler) snapshotForRequest(ctx context.Context, w http.ResponseWriter, r *http.Request) (Snapshot, bool) {
	config, err := handler.configFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return Snapshot{}, false
	}

	workoutList, err := handler.repo.ListAll(ctx, workouts.WorkoutParams{})
	if err != nil {
		log.Errorf("failed to list workouts for insights: %s", err)
		http.Error(w, "failed to get insights", http.StatusInternalServerError)
		return Snapshot{}, false
	}
	categories, err := handler.repo.ListCategories(ctx)
	if err != nil {
		log.Errorf("failed to list categories for insights: %s", err)
		http.Error(w, "failed to get insights", http.StatusInternalServerError)
		return Snapshot{}, false
	}
	subcategories, err := handler.repo.ListSubcategories(ctx)
	if err != nil {
		log.Errorf("failed to list subcategories for insights: %s", err)
		http.Error(w, "failed to get insights", http.StatusInternalServerError)
		return Snapshot{}, false
	}

	return handler.computer.Compute(ctx, ComputeInput{
		Workouts:      workoutList,
		Categories:    categories,
		Subcategories: subcategories,
		Config:        config,
	}), true
}

// configFromRequest starts from the configured defaults and applies the
// optional query overrides: type, goal_workouts, goal_minutes.
func (handler *Handler) configFromRequest(r *http.Request) (Config, error) {
	config := handler.defaults

	if typeParam := r.URL.Query().Get("type"); typeParam != "" {
		filter := TypeFilter(typeParam)
		if !filter.IsValid() {
			return Config{}, fmt.Errorf("invalid type filter: %s", typeParam)
		}
		config.TypeFilter = filter
	}

	if goalWorkoutsStr := r.URL.Query().Get("goal_workouts"); goalWorkoutsStr != "" {
		goalWorkouts, err := strconv.Atoi(goalWorkoutsStr)
		if err != nil || goalWorkouts < 1 {
			return Config{}, fmt.Errorf("invalid goal_workouts: %s", goalWorkoutsStr)
		}
		config.WeeklyGoalWorkouts = goalWorkouts
	}

	if goalMinutesStr := r.URL.Query().Get("goal_minutes"); goalMinutesStr != "" {
		goalMinutes, err := strconv.Atoi(goalMinutesStr)
		if err != nil || goalMinutes < 1 {
			return Config{}, fmt.Errorf("invalid goal_minutes: %s", goalMinutesStr)
		}
		config.WeeklyGoalMinutes = goalMinutes
	}

	return config, nil
}

func (handler *Handler) writeSignal(w http.ResponseWriter, signal any) {
	signalJson, err := json.Marshal(signal)
	if err != nil {
		log.Errorf("failed to marshal insights signal: %s", err)
		http.Error(w, "failed to marshal insights signal", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, signalJson, http.StatusOK)
}
