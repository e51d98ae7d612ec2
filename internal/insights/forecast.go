package insights

import (
	"fmt"
	"time"

	"github.com/2beens/fitstats/internal/workouts"
)

// GoalForecast tells how the current week is going against the weekly
// goals and what daily pace would still close the gap.
type GoalForecast struct {
	WorkoutsThisWeek  int     `json:"workoutsThisWeek"`
	MinutesThisWeek   int     `json:"minutesThisWeek"`
	WorkoutsRemaining int     `json:"workoutsRemaining"`
	MinutesRemaining  int     `json:"minutesRemaining"`
	DaysRemaining     int     `json:"daysRemaining"`
	WorkoutsPerDay    float64 `json:"workoutsPerDay"`
	MinutesPerDay     float64 `json:"minutesPerDay"`
	WeeklyGoalStreak  int     `json:"weeklyGoalStreak"`
	Headline          string  `json:"headline"`
	WorkoutsPaceText  string  `json:"workoutsPaceText"`
	MinutesPaceText   string  `json:"minutesPaceText"`
}

func goalForecast(workoutList []workouts.Workout, config Config, weeklyGoalStreak int, now time.Time, loc *time.Location) GoalForecast {
	weekStart := weekOf(now, loc)
	weekEnd := weekStart.AddDate(0, 0, 7)

	count := 0
	totalSeconds := 0
	for _, w := range workoutList {
		if w.StartedAt.Before(weekStart) || !w.StartedAt.Before(weekEnd) {
			continue
		}
		count++
		if w.DurationSeconds > 0 {
			totalSeconds += w.DurationSeconds
		}
	}
	minutes := totalSeconds / 60

	workoutsRemaining := config.WeeklyGoalWorkouts - count
	if workoutsRemaining < 0 {
		workoutsRemaining = 0
	}
	minutesRemaining := config.WeeklyGoalMinutes - minutes
	if minutesRemaining < 0 {
		minutesRemaining = 0
	}

	// today still counts, so this is always at least 1
	dayIndex := (int(dayOf(now, loc).Weekday()) + 6) % 7
	daysRemaining := 7 - dayIndex

	var headline string
	switch {
	case count == 0:
		headline = "No workouts yet this week. Start today!"
	case workoutsRemaining == 0 && minutesRemaining == 0:
		headline = "All weekly goals met. Great work!"
	case workoutsRemaining == 0:
		headline = fmt.Sprintf("Workout goal met. Just %d more minutes to go!", minutesRemaining)
	case workoutsRemaining == 1:
		headline = "You are 1 workout away from your weekly goal!"
	default:
		headline = fmt.Sprintf("You are %d workouts away from your weekly goal!", workoutsRemaining)
	}

	workoutsPaceText := "on track"
	if workoutsRemaining > 0 {
		workoutsPaceText = fmt.Sprintf("%.1f workouts/day", float64(workoutsRemaining)/float64(daysRemaining))
	}
	minutesPaceText := "on track"
	if minutesRemaining > 0 {
		minutesPaceText = fmt.Sprintf("%.1f minutes/day", float64(minutesRemaining)/float64(daysRemaining))
	}

	return GoalForecast{
		WorkoutsThisWeek:  count,
		MinutesThisWeek:   minutes,
		WorkoutsRemaining: workoutsRemaining,
		MinutesRemaining:  minutesRemaining,
		DaysRemaining:     daysRemaining,
		WorkoutsPerDay:    float64(workoutsRemaining) / float64(daysRemaining),
		MinutesPerDay:     float64(minutesRemaining) / float64(daysRemaining),
		WeeklyGoalStreak:  weeklyGoalStreak,
		Headline:          headline,
		WorkoutsPaceText:  workoutsPaceText,
		MinutesPaceText:   minutesPaceText,
	}
}
