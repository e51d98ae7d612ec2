package workouts

import "time"

// WorkoutType can be one of:
//   - strength
//   - cardio
//   - yoga
//   - running
//   - cycling
//   - swimming
//   - other
type WorkoutType string

const (
	WorkoutTypeStrength WorkoutType = "strength"
	WorkoutTypeCardio   WorkoutType = "cardio"
	WorkoutTypeYoga     WorkoutType = "yoga"
	WorkoutTypeRunning  WorkoutType = "running"
	WorkoutTypeCycling  WorkoutType = "cycling"
	WorkoutTypeSwimming WorkoutType = "swimming"
	WorkoutTypeOther    WorkoutType = "other"
)

func (wt WorkoutType) String() string {
	return string(wt)
}

func (wt WorkoutType) IsValid() bool {
	switch wt {
	case WorkoutTypeStrength,
		WorkoutTypeCardio,
		WorkoutTypeYoga,
		WorkoutTypeRunning,
		WorkoutTypeCycling,
		WorkoutTypeSwimming,
		WorkoutTypeOther:
		return true
	default:
		return false
	}
}

// ExerciseEntry is a single exercise performed within a workout,
// e.g. 3x8 bench press at 72.5 kilos.
// WeightKg of zero or less means bodyweight / weight not tracked.
type ExerciseEntry struct {
	Name          string  `json:"name"`
	Sets          int     `json:"sets"`
	Reps          int     `json:"reps"`
	WeightKg      float64 `json:"weightKg"`
	SubcategoryID *int    `json:"subcategoryId,omitempty"`
}

type Workout struct {
	ID              int             `json:"id"`
	Type            WorkoutType     `json:"type"`
	StartedAt       time.Time       `json:"startedAt"`
	DurationSeconds int             `json:"durationSeconds"`
	DistanceKm      *float64        `json:"distanceKm,omitempty"`
	CategoryIDs     []int           `json:"categoryIds"`
	SubcategoryIDs  []int           `json:"subcategoryIds"`
	Entries         []ExerciseEntry `json:"entries"`
}

type Category struct {
	ID   int         `json:"id"`
	Name string      `json:"name"`
	Type WorkoutType `json:"type"`
}

type Subcategory struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	CategoryID int    `json:"categoryId"`
}
