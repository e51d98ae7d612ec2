package insights

import (
	"fmt"
	"sort"
	"time"

	"github.com/2beens/fitstats/internal/workouts"
)

const (
	gapWindowDays         = 14
	maxGapRecommendations = 3
)

// GapRecommendation points at a subcategory that got little or no
// attention in the last two weeks.
type GapRecommendation struct {
	SubcategoryID int    `json:"subcategoryId"`
	Subcategory   string `json:"subcategory"`
	HitCount      int    `json:"hitCount"`
	Reason        string `json:"reason"`
}

// gapRecommendations counts, per subcategory, the workouts in the last
// two weeks referencing it, either directly on the workout or through
// one of its exercise entries. A workout counts at most once per
// subcategory. The least trained subcategories come out first.
func gapRecommendations(workoutList []workouts.Workout, subcategories []workouts.Subcategory, now time.Time) []GapRecommendation {
	counts := make(map[int]int, len(subcategories))
	known := make(map[int]struct{}, len(subcategories))
	for _, s := range subcategories {
		known[s.ID] = struct{}{}
	}

	from := now.AddDate(0, 0, -gapWindowDays)
	for _, w := range workoutList {
		if w.StartedAt.Before(from) || !w.StartedAt.Before(now) {
			continue
		}

		referenced := make(map[int]struct{})
		for _, id := range w.SubcategoryIDs {
			referenced[id] = struct{}{}
		}
		for _, entry := range w.Entries {
			if entry.SubcategoryID != nil {
				referenced[*entry.SubcategoryID] = struct{}{}
			}
		}

		for id := range referenced {
			if _, ok := known[id]; ok {
				counts[id]++
			}
		}
	}

	recommendations := make([]GapRecommendation, 0, len(subcategories))
	for _, s := range subcategories {
		count := counts[s.ID]
		reason := "no sessions in last 14 days"
		if count == 1 {
			reason = "only 1 session in last 14 days"
		} else if count > 1 {
			reason = fmt.Sprintf("only %d sessions in last 14 days", count)
		}
		recommendations = append(recommendations, GapRecommendation{
			SubcategoryID: s.ID,
			Subcategory:   s.Name,
			HitCount:      count,
			Reason:        reason,
		})
	}

	sort.Slice(recommendations, func(i, j int) bool {
		if recommendations[i].HitCount == recommendations[j].HitCount {
			return recommendations[i].Subcategory < recommendations[j].Subcategory
		}
		return recommendations[i].HitCount < recommendations[j].HitCount
	})

	if len(recommendations) > maxGapRecommendations {
		recommendations = recommendations[:maxGapRecommendations]
	}

	return recommendations
}
