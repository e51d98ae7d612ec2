package test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/2beens/fitstats/internal/insights"
	"github.com/2beens/fitstats/internal/workouts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// insightsGetRequest hits an insights route without any auth, those
// routes are public.
func (s *IntegrationTestSuite) insightsGetRequest(ctx context.Context, path string) (int, []byte) {
	req, err := http.NewRequestWithContext(ctx, "GET", serverEndpoint+path, nil)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	return resp.StatusCode, respBytes
}

func (s *IntegrationTestSuite) getSnapshotRequest(ctx context.Context, query string) insights.Snapshot {
	statusCode, respBytes := s.insightsGetRequest(ctx, "/insights/snapshot"+query)
	require.Equal(s.T(), http.StatusOK, statusCode)

	var snapshot insights.Snapshot
	require.NoError(s.T(), json.Unmarshal(respBytes, &snapshot))
	return snapshot
}

func (s *IntegrationTestSuite) TestInsights() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.deleteAllWorkouts(context.Background())

	s.T().Run("empty workout log", func(t *testing.T) {
		snapshot := s.getSnapshotRequest(ctx, "")

		assert.Equal(t, insights.Config{
			WeeklyGoalWorkouts: 4,
			WeeklyGoalMinutes:  180,
			TypeFilter:         insights.TypeFilterAll,
		}, snapshot.Config)

		assert.Equal(t, insights.Streaks{}, snapshot.Streaks)
		assert.Empty(t, snapshot.Records)
		assert.Empty(t, snapshot.NearPRs)

		// the seeded subcategories, all untouched, sorted by name
		require.Len(t, snapshot.GapRecommendations, 3)
		assert.Equal(t, "Legs", snapshot.GapRecommendations[0].Subcategory)
		assert.Equal(t, "Pull", snapshot.GapRecommendations[1].Subcategory)
		assert.Equal(t, "Push", snapshot.GapRecommendations[2].Subcategory)
		assert.Equal(t, "no sessions in last 14 days", snapshot.GapRecommendations[0].Reason)

		assert.Equal(t, 0, snapshot.Forecast.WorkoutsThisWeek)
		assert.Equal(t, 4, snapshot.Forecast.WorkoutsRemaining)
		assert.Equal(t, 180, snapshot.Forecast.MinutesRemaining)
		assert.Equal(t, "No workouts yet this week. Start today!", snapshot.Forecast.Headline)

		// no near-PR item on an empty log, just the gap and the goal nudge
		require.Len(t, snapshot.Guidance, 2)
		assert.Equal(t, insights.GuidanceSourceGap, snapshot.Guidance[0].Source)
		assert.Equal(t, "Neglected lately: Legs", snapshot.Guidance[0].Title)
		assert.Equal(t, insights.GuidanceSourceForecast, snapshot.Guidance[1].Source)
		assert.Equal(t, "Weekly goal", snapshot.Guidance[1].Title)
	})

	// seed a small workout history:
	//  - a bench press record set a month ago
	//  - a recent attempt within 90% of it
	//  - workouts yesterday and today, for a 2 day streak
	now := time.Now().UTC()
	oldPR := s.newWorkoutRequest(ctx, workouts.Workout{
		Type:            workouts.WorkoutTypeStrength,
		StartedAt:       now.Add(-30 * 24 * time.Hour),
		DurationSeconds: 3600,
		Entries: []workouts.ExerciseEntry{
			{Name: "bench press", Sets: 3, Reps: 5, WeightKg: 100},
		},
	})
	s.newWorkoutRequest(ctx, workouts.Workout{
		Type:            workouts.WorkoutTypeStrength,
		StartedAt:       now.Add(-5 * 24 * time.Hour),
		DurationSeconds: 3600,
		Entries: []workouts.ExerciseEntry{
			{Name: "bench press", Sets: 3, Reps: 5, WeightKg: 92},
		},
	})
	s.newWorkoutRequest(ctx, workouts.Workout{
		Type:            workouts.WorkoutTypeStrength,
		StartedAt:       now.Add(-24 * time.Hour),
		DurationSeconds: 3600,
	})
	s.newWorkoutRequest(ctx, workouts.Workout{
		Type:            workouts.WorkoutTypeStrength,
		StartedAt:       now.Add(-2 * time.Minute),
		DurationSeconds: 1800,
		SubcategoryIDs:  []int{1},
	})

	s.T().Run("snapshot over seeded log", func(t *testing.T) {
		snapshot := s.getSnapshotRequest(ctx, "")

		// trained yesterday and today
		assert.Equal(t, 2, snapshot.Streaks.CurrentDaily)
		assert.Equal(t, 2, snapshot.Streaks.BestDaily)
		assert.Equal(t, 0, snapshot.Streaks.WeeklyGoal)

		require.Len(t, snapshot.Records, 1)
		record := snapshot.Records[0]
		assert.Equal(t, "bench press", record.ExerciseName)
		assert.Equal(t, 100.0, record.TopSetWeightKg)
		assert.Equal(t, 5, record.Reps)
		assert.InDelta(t, 116.67, record.EstOneRepMax, 0.01)
		assert.Equal(t,
			oldPR.StartedAt.Truncate(time.Second),
			record.AchievedAt.Truncate(time.Second),
		)

		require.Len(t, snapshot.NearPRs, 1)
		nearPR := snapshot.NearPRs[0]
		assert.Equal(t, "bench press", nearPR.ExerciseName)
		assert.Equal(t, 92.0, nearPR.LatestWeightKg)
		assert.Equal(t, 100.0, nearPR.PRWeightKg)
		assert.InDelta(t, 0.92, nearPR.Ratio, 0.001)

		// only Push got a session in the last two weeks
		require.Len(t, snapshot.GapRecommendations, 3)
		assert.Equal(t, "Legs", snapshot.GapRecommendations[0].Subcategory)
		assert.Equal(t, 0, snapshot.GapRecommendations[0].HitCount)
		assert.Equal(t, "Pull", snapshot.GapRecommendations[1].Subcategory)
		assert.Equal(t, 0, snapshot.GapRecommendations[1].HitCount)
		assert.Equal(t, "Push", snapshot.GapRecommendations[2].Subcategory)
		assert.Equal(t, 1, snapshot.GapRecommendations[2].HitCount)
		assert.Equal(t, "only 1 session in last 14 days", snapshot.GapRecommendations[2].Reason)

		assert.Positive(t, snapshot.Forecast.WorkoutsRemaining)
		assert.Equal(t, 0, snapshot.Forecast.WeeklyGoalStreak)
		assert.NotEmpty(t, snapshot.Forecast.Headline)

		require.Len(t, snapshot.Guidance, 3)
		assert.Equal(t, "Close to a PR: bench press", snapshot.Guidance[0].Title)
		assert.Equal(t, insights.GuidanceSourceNearPR, snapshot.Guidance[0].Source)
		assert.Equal(t, "Neglected lately: Legs", snapshot.Guidance[1].Title)
		assert.Equal(t, insights.GuidanceSourceGap, snapshot.Guidance[1].Source)
		assert.Equal(t, "Weekly goal", snapshot.Guidance[2].Title)
		assert.Equal(t, insights.GuidanceSourceForecast, snapshot.Guidance[2].Source)
	})

	s.T().Run("signal routes", func(t *testing.T) {
		statusCode, respBytes := s.insightsGetRequest(ctx, "/insights/streaks")
		require.Equal(t, http.StatusOK, statusCode)
		var streaks insights.Streaks
		require.NoError(t, json.Unmarshal(respBytes, &streaks))
		assert.Equal(t, 2, streaks.CurrentDaily)

		statusCode, respBytes = s.insightsGetRequest(ctx, "/insights/records")
		require.Equal(t, http.StatusOK, statusCode)
		var records []insights.ExercisePR
		require.NoError(t, json.Unmarshal(respBytes, &records))
		require.Len(t, records, 1)
		assert.Equal(t, "bench press", records[0].ExerciseName)

		statusCode, respBytes = s.insightsGetRequest(ctx, "/insights/nearprs")
		require.Equal(t, http.StatusOK, statusCode)
		var nearPRs []insights.NearPR
		require.NoError(t, json.Unmarshal(respBytes, &nearPRs))
		require.Len(t, nearPRs, 1)
		assert.InDelta(t, 0.92, nearPRs[0].Ratio, 0.001)

		statusCode, respBytes = s.insightsGetRequest(ctx, "/insights/gaps")
		require.Equal(t, http.StatusOK, statusCode)
		var gaps []insights.GapRecommendation
		require.NoError(t, json.Unmarshal(respBytes, &gaps))
		require.Len(t, gaps, 3)
		assert.Equal(t, "Legs", gaps[0].Subcategory)

		statusCode, respBytes = s.insightsGetRequest(ctx, "/insights/week")
		require.Equal(t, http.StatusOK, statusCode)
		var forecast insights.GoalForecast
		require.NoError(t, json.Unmarshal(respBytes, &forecast))
		assert.Positive(t, forecast.WorkoutsRemaining)

		statusCode, respBytes = s.insightsGetRequest(ctx, "/insights/guidance")
		require.Equal(t, http.StatusOK, statusCode)
		var guidance []insights.GuidanceItem
		require.NoError(t, json.Unmarshal(respBytes, &guidance))
		require.Len(t, guidance, 3)
	})

	s.T().Run("query overrides", func(t *testing.T) {
		snapshot := s.getSnapshotRequest(ctx, "?type=strength&goal_workouts=2&goal_minutes=90")
		assert.Equal(t, insights.Config{
			WeeklyGoalWorkouts: 2,
			WeeklyGoalMinutes:  90,
			TypeFilter:         insights.TypeFilterStrength,
		}, snapshot.Config)

		statusCode, respBytes := s.insightsGetRequest(ctx, "/insights/snapshot?type=zumba")
		assert.Equal(t, http.StatusBadRequest, statusCode)
		assert.Contains(t, string(respBytes), "invalid type filter: zumba")

		statusCode, respBytes = s.insightsGetRequest(ctx, "/insights/snapshot?goal_workouts=nope")
		assert.Equal(t, http.StatusBadRequest, statusCode)
		assert.Contains(t, string(respBytes), "invalid goal_workouts: nope")
	})

	s.T().Run("snapshot caching", func(t *testing.T) {
		first := s.getSnapshotRequest(ctx, "")
		second := s.getSnapshotRequest(ctx, "")
		// unchanged log, the cached snapshot is served as is
		assert.True(t, second.GeneratedAt.Equal(first.GeneratedAt))

		s.newWorkoutRequest(ctx, workouts.Workout{
			Type:            workouts.WorkoutTypeCardio,
			StartedAt:       time.Now().UTC(),
			DurationSeconds: 600,
		})

		third := s.getSnapshotRequest(ctx, "")
		assert.True(t, third.GeneratedAt.After(first.GeneratedAt))
	})
}
