package insights

import (
	"sort"
	"strings"
	"time"

	"github.com/2beens/fitstats/internal/workouts"
)

const (
	nearPRWindowDays = 14
	nearPRThreshold  = 0.9
)

// NearPR marks an exercise whose heaviest set in the last two weeks came
// within 90% of the personal record without actually beating it.
type NearPR struct {
	ExerciseName   string  `json:"exerciseName"`
	LatestWeightKg float64 `json:"latestWeightKg"`
	PRWeightKg     float64 `json:"prWeightKg"`
	Ratio          float64 `json:"ratio"`
}

// nearPRs compares the heaviest recent set per exercise against the
// record top set. Exercises without a record are skipped, matches at or
// above the record are not "near" and are skipped too.
func nearPRs(workoutList []workouts.Workout, records []ExercisePR, now time.Time) []NearPR {
	recordByKey := make(map[string]ExercisePR, len(records))
	for _, pr := range records {
		recordByKey[exerciseKey(pr.ExerciseName)] = pr
	}

	from := now.AddDate(0, 0, -nearPRWindowDays)
	latest := make(map[string]float64)
	for _, w := range workoutList {
		if w.StartedAt.Before(from) || !w.StartedAt.Before(now) {
			continue
		}
		for _, entry := range w.Entries {
			if entry.WeightKg <= 0 {
				continue
			}
			if strings.TrimSpace(entry.Name) == "" {
				continue
			}
			key := exerciseKey(entry.Name)
			if entry.WeightKg > latest[key] {
				latest[key] = entry.WeightKg
			}
		}
	}

	var nearPRList []NearPR
	for key, latestWeight := range latest {
		pr, ok := recordByKey[key]
		if !ok || pr.TopSetWeightKg <= 0 {
			continue
		}
		ratio := latestWeight / pr.TopSetWeightKg
		if ratio < nearPRThreshold || ratio >= 1.0 {
			continue
		}
		nearPRList = append(nearPRList, NearPR{
			ExerciseName:   pr.ExerciseName,
			LatestWeightKg: latestWeight,
			PRWeightKg:     pr.TopSetWeightKg,
			Ratio:          ratio,
		})
	}

	sort.Slice(nearPRList, func(i, j int) bool {
		if nearPRList[i].Ratio == nearPRList[j].Ratio {
			return nearPRList[i].ExerciseName < nearPRList[j].ExerciseName
		}
		return nearPRList[i].Ratio > nearPRList[j].Ratio
	})

	if nearPRList == nil {
		nearPRList = make([]NearPR, 0)
	}

	return nearPRList
}
