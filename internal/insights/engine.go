package insights

import (
	"context"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/fitstats/internal/telemetry/tracing"
	"github.com/2beens/fitstats/internal/workouts"
)

// Engine computes analytics snapshots from a workout log. It is a pure
// calculator: same input and same clock give the exact same snapshot,
// and the input is never modified.
type Engine struct {
	nowFn func() time.Time
}

func NewEngine() *Engine {
	return &Engine{
		nowFn: time.Now,
	}
}

// NewEngineWithClock pins the clock, used in tests.
func NewEngineWithClock(nowFn func() time.Time) *Engine {
	return &Engine{
		nowFn: nowFn,
	}
}

type ComputeInput struct {
	Workouts      []workouts.Workout     `json:"workouts"`
	Categories    []workouts.Category    `json:"categories"`
	Subcategories []workouts.Subcategory `json:"subcategories"`
	Config        Config                 `json:"config"`
}

func (e *Engine) Compute(ctx context.Context, in ComputeInput) Snapshot {
	_, span := tracing.GlobalTracer.Start(ctx, "insights.engine.compute")
	defer span.End()

	now := e.nowFn()
	loc := now.Location()
	config := in.Config.withDefaults()

	filtered := workoutsForFilter(in.Workouts, config.TypeFilter)
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].StartedAt.Before(filtered[j].StartedAt)
	})

	days := distinctWorkoutDays(filtered, loc)
	streaks := Streaks{
		CurrentDaily: currentDailyStreak(days, now, loc),
		BestDaily:    bestDailyStreak(days),
		WeeklyGoal:   weeklyGoalStreak(filtered, config.WeeklyGoalWorkouts, now, loc),
	}

	records := personalRecords(filtered)
	nearPRList := nearPRs(filtered, records, now)
	gaps := gapRecommendations(filtered, subcategoriesForFilter(in.Categories, in.Subcategories, config.TypeFilter), now)
	forecast := goalForecast(filtered, config, streaks.WeeklyGoal, now, loc)

	span.SetAttributes(attribute.Int("workouts", len(filtered)))
	span.SetAttributes(attribute.Int("records", len(records)))
	span.SetAttributes(attribute.String("type_filter", config.TypeFilter.String()))

	return Snapshot{
		GeneratedAt:        now,
		Config:             config,
		Streaks:            streaks,
		Records:            records,
		NearPRs:            nearPRList,
		GapRecommendations: gaps,
		Forecast:           forecast,
		Guidance:           composeGuidance(nearPRList, gaps, forecast),
	}
}

// workoutsForFilter always copies, Compute sorts the result and must
// leave the caller's slice alone.
func workoutsForFilter(workoutList []workouts.Workout, filter TypeFilter) []workouts.Workout {
	filtered := make([]workouts.Workout, 0, len(workoutList))
	for _, w := range workoutList {
		switch filter {
		case TypeFilterStrength:
			if w.Type != workouts.WorkoutTypeStrength {
				continue
			}
		case TypeFilterAll:
		}
		filtered = append(filtered, w)
	}
	return filtered
}

// subcategoriesForFilter keeps the subcategories whose owning category
// matches the type filter. Subcategories pointing at an unknown
// category are dropped rather than guessed at.
func subcategoriesForFilter(
	categories []workouts.Category,
	subcategories []workouts.Subcategory,
	filter TypeFilter,
) []workouts.Subcategory {
	categoryType := make(map[int]workouts.WorkoutType, len(categories))
	for _, c := range categories {
		categoryType[c.ID] = c.Type
	}

	eligible := make([]workouts.Subcategory, 0, len(subcategories))
	for _, s := range subcategories {
		workoutType, ok := categoryType[s.CategoryID]
		if !ok {
			continue
		}
		switch filter {
		case TypeFilterStrength:
			if workoutType != workouts.WorkoutTypeStrength {
				continue
			}
		case TypeFilterAll:
		}
		eligible = append(eligible, s)
	}
	return eligible
}
