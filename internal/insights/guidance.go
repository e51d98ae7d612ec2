package insights

import "fmt"

// GuidanceSource can be one of:
//   - near_pr
//   - gap
//   - forecast
type GuidanceSource string

const (
	GuidanceSourceNearPR   GuidanceSource = "near_pr"
	GuidanceSourceGap      GuidanceSource = "gap"
	GuidanceSourceForecast GuidanceSource = "forecast"
)

type GuidanceItem struct {
	Title  string         `json:"title"`
	Detail string         `json:"detail"`
	Source GuidanceSource `json:"source"`
}

// composeGuidance picks at most one item per signal, in a fixed order:
// the closest near-PR attempt, the most neglected subcategory, then the
// weekly goal gap. Signals with nothing to say contribute nothing.
func composeGuidance(nearPRList []NearPR, gaps []GapRecommendation, forecast GoalForecast) []GuidanceItem {
	items := make([]GuidanceItem, 0, 3)

	if len(nearPRList) > 0 {
		top := nearPRList[0]
		items = append(items, GuidanceItem{
			Title: fmt.Sprintf("Close to a PR: %s", top.ExerciseName),
			Detail: fmt.Sprintf(
				"Latest top set %.1f kg is at %.0f%% of your %.1f kg record. Go for it!",
				top.LatestWeightKg, top.Ratio*100, top.PRWeightKg,
			),
			Source: GuidanceSourceNearPR,
		})
	}

	if len(gaps) > 0 {
		top := gaps[0]
		items = append(items, GuidanceItem{
			Title:  fmt.Sprintf("Neglected lately: %s", top.Subcategory),
			Detail: top.Reason,
			Source: GuidanceSourceGap,
		})
	}

	if forecast.WorkoutsRemaining > 0 {
		items = append(items, GuidanceItem{
			Title:  "Weekly goal",
			Detail: forecast.Headline,
			Source: GuidanceSourceForecast,
		})
	}

	return items
}
