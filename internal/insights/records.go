package insights

import (
	"sort"
	"strings"
	"time"

	"github.com/2beens/fitstats/internal/workouts"
)

// ExercisePR is the personal record for a single exercise, with the
// one rep max estimated via the Epley formula.
type ExercisePR struct {
	ExerciseName   string    `json:"exerciseName"`
	TopSetWeightKg float64   `json:"topSetWeightKg"`
	Reps           int       `json:"reps"`
	EstOneRepMax   float64   `json:"estOneRepMax"`
	AchievedAt     time.Time `json:"achievedAt"`
}

// estimateOneRepMax implements Epley: weight * (1 + reps/30).
// Reps below 1 count as a single.
func estimateOneRepMax(weightKg float64, reps int) float64 {
	if reps < 1 {
		reps = 1
	}
	return weightKg * (1 + float64(reps)/30)
}

// exerciseKey folds exercise names so that "Bench Press" and
// " bench press " track the same record.
func exerciseKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// personalRecords finds the best set per exercise. Workouts are expected
// sorted by start time ascending, so on equal estimates the later set
// takes over the record. Entries without a tracked weight are skipped.
func personalRecords(workoutList []workouts.Workout) []ExercisePR {
	records := make(map[string]ExercisePR)
	for _, w := range workoutList {
		for _, entry := range w.Entries {
			if entry.WeightKg <= 0 {
				continue
			}
			name := strings.TrimSpace(entry.Name)
			if name == "" {
				continue
			}

			reps := entry.Reps
			if reps < 1 {
				reps = 1
			}
			est := estimateOneRepMax(entry.WeightKg, reps)

			key := exerciseKey(name)
			if current, ok := records[key]; ok && est < current.EstOneRepMax {
				continue
			}

			records[key] = ExercisePR{
				ExerciseName:   name,
				TopSetWeightKg: entry.WeightKg,
				Reps:           reps,
				EstOneRepMax:   est,
				AchievedAt:     w.StartedAt,
			}
		}
	}

	prs := make([]ExercisePR, 0, len(records))
	for _, pr := range records {
		prs = append(prs, pr)
	}

	sort.Slice(prs, func(i, j int) bool {
		if prs[i].EstOneRepMax == prs[j].EstOneRepMax {
			return prs[i].ExerciseName < prs[j].ExerciseName
		}
		return prs[i].EstOneRepMax > prs[j].EstOneRepMax
	})

	return prs
}
