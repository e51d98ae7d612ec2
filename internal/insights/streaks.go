package insights

import (
	"sort"
	"time"

	"github.com/2beens/fitstats/internal/workouts"
)

type Streaks struct {
	// CurrentDaily is the number of consecutive days trained up to now.
	// A streak survives a day without training until the following midnight,
	// i.e. training yesterday but not yet today still counts.
	CurrentDaily int `json:"currentDaily"`
	BestDaily    int `json:"bestDaily"`
	// WeeklyGoal is the number of consecutive weeks, counting the current
	// one, in which the weekly workouts goal was reached.
	WeeklyGoal int `json:"weeklyGoal"`
}

// dayOf strips the time of day, keeping the calendar date in loc.
func dayOf(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// weekOf returns the Monday midnight of the week containing t.
func weekOf(t time.Time, loc *time.Location) time.Time {
	day := dayOf(t, loc)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// distinctWorkoutDays returns the distinct calendar days on which at
// least one workout started, sorted ascending.
func distinctWorkoutDays(workoutList []workouts.Workout, loc *time.Location) []time.Time {
	seen := make(map[time.Time]struct{}, len(workoutList))
	var days []time.Time
	for _, w := range workoutList {
		day := dayOf(w.StartedAt, loc)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].Before(days[j])
	})

	return days
}

func currentDailyStreak(days []time.Time, now time.Time, loc *time.Location) int {
	if len(days) == 0 {
		return 0
	}

	trained := make(map[time.Time]struct{}, len(days))
	for _, day := range days {
		trained[day] = struct{}{}
	}

	cursor := dayOf(now, loc)
	if _, ok := trained[cursor]; !ok {
		// nothing today (yet), the streak is still alive if there was
		// a workout yesterday
		cursor = cursor.AddDate(0, 0, -1)
		if _, ok := trained[cursor]; !ok {
			return 0
		}
	}

	streak := 0
	for {
		if _, ok := trained[cursor]; !ok {
			break
		}
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}

	return streak
}

func bestDailyStreak(days []time.Time) int {
	if len(days) == 0 {
		return 0
	}

	best, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i].Equal(days[i-1].AddDate(0, 0, 1)) {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}

	return best
}

// weeklyGoalStreak walks backwards week by week, starting with the week
// of now, and counts how many in a row reached the workouts goal. The
// current week counts only once the goal is actually reached.
func weeklyGoalStreak(workoutList []workouts.Workout, weeklyGoalWorkouts int, now time.Time, loc *time.Location) int {
	if weeklyGoalWorkouts < 1 {
		return 0
	}

	weekCounts := make(map[time.Time]int)
	for _, w := range workoutList {
		weekCounts[weekOf(w.StartedAt, loc)]++
	}

	streak := 0
	week := weekOf(now, loc)
	for weekCounts[week] >= weeklyGoalWorkouts {
		streak++
		week = week.AddDate(0, 0, -7)
	}

	return streak
}
