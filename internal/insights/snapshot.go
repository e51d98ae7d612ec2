package insights

import "time"

// TypeFilter can be one of:
//   - all
//   - strength
type TypeFilter string

const (
	TypeFilterAll      TypeFilter = "all"
	TypeFilterStrength TypeFilter = "strength"
)

func (tf TypeFilter) String() string {
	return string(tf)
}

func (tf TypeFilter) IsValid() bool {
	switch tf {
	case TypeFilterAll,
		TypeFilterStrength:
		return true
	default:
		return false
	}
}

const (
	DefaultWeeklyGoalWorkouts = 4
	DefaultWeeklyGoalMinutes  = 180
)

type Config struct {
	WeeklyGoalWorkouts int        `json:"weeklyGoalWorkouts"`
	WeeklyGoalMinutes  int        `json:"weeklyGoalMinutes"`
	TypeFilter         TypeFilter `json:"typeFilter"`
}

func (c Config) withDefaults() Config {
	if c.WeeklyGoalWorkouts <= 0 {
		c.WeeklyGoalWorkouts = DefaultWeeklyGoalWorkouts
	}
	if c.WeeklyGoalMinutes <= 0 {
		c.WeeklyGoalMinutes = DefaultWeeklyGoalMinutes
	}
	if !c.TypeFilter.IsValid() {
		c.TypeFilter = TypeFilterAll
	}
	return c
}

// Snapshot is the full analytics report over a workout log:
// streaks, personal records, near-PR attempts, training gaps,
// the weekly goal forecast and the composed session guidance.
type Snapshot struct {
	GeneratedAt        time.Time           `json:"generatedAt"`
	Config             Config              `json:"config"`
	Streaks            Streaks             `json:"streaks"`
	Records            []ExercisePR        `json:"records"`
	NearPRs            []NearPR            `json:"nearPrs"`
	GapRecommendations []GapRecommendation `json:"gapRecommendations"`
	Forecast           GoalForecast        `json:"forecast"`
	Guidance           []GuidanceItem      `json:"guidance"`
}
