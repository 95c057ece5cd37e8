// Package progress formats water/calorie progress from a completed profile.
// It never mutates state; chart rendering is delegated to an external
// collaborator through the Renderer interface.
package progress

import (
	"context"
	"fmt"

	"github.com/olegbarsukov/fitness-helper/internal/domain"
)

// Report is a snapshot of the user's daily progress.
type Report struct {
	LoggedWaterMl  int
	WaterGoalMl    int
	WaterLeftMl    int
	LoggedCalories int
	CalorieGoal    int
	BurnedCalories int
	Balance        int
}

// Build derives the progress figures from a profile. Remaining water is
// floored at zero for display; the calorie balance may be negative.
func Build(profile *domain.UserProfile) Report {
	left := profile.WaterGoalMl - profile.LoggedWaterMl
	if left < 0 {
		left = 0
	}
	return Report{
		LoggedWaterMl:  profile.LoggedWaterMl,
		WaterGoalMl:    profile.WaterGoalMl,
		WaterLeftMl:    left,
		LoggedCalories: profile.LoggedCalories,
		CalorieGoal:    profile.CalorieGoal,
		BurnedCalories: profile.BurnedCalories,
		Balance:        profile.LoggedCalories - profile.BurnedCalories,
	}
}

// Text renders the report as the user-facing message block.
func (r Report) Text() string {
	return fmt.Sprintf(`Вода:
  - Выпито: %d мл из %d мл.
  - Осталось: %d мл.

Калории:
  - Потреблено: %d ккал из %d ккал.
  - Сожжено: %d ккал.
  - Баланс: %d ккал.`,
		r.LoggedWaterMl, r.WaterGoalMl, r.WaterLeftMl,
		r.LoggedCalories, r.CalorieGoal, r.BurnedCalories, r.Balance)
}

// Point is one labeled bar in a chart series.
type Point struct {
	Label string
	Value int
}

// Series is one bar group of the progress chart.
type Series struct {
	Title      string
	ValueLabel string
	Points     []Point
}

// ChartRequest describes the two-panel progress chart: water goal vs. drunk
// and calorie goal vs. consumed vs. burned.
type ChartRequest struct {
	Series []Series
}

// Renderer turns a chart request into PNG bytes. Implementations live
// outside this module; the bot degrades to text-only when rendering is
// unavailable.
type Renderer interface {
	Render(ctx context.Context, req ChartRequest) ([]byte, error)
}

// BuildChartRequest assembles the chart series from a profile.
func BuildChartRequest(profile *domain.UserProfile) ChartRequest {
	return ChartRequest{
		Series: []Series{
			{
				Title:      "Цель по воде",
				ValueLabel: "Количество воды (мл)",
				Points: []Point{
					{Label: "Цель", Value: profile.WaterGoalMl},
					{Label: "Выпито", Value: profile.LoggedWaterMl},
				},
			},
			{
				Title:      "Цель по калориям",
				ValueLabel: "Калории (ккал)",
				Points: []Point{
					{Label: "Цель", Value: profile.CalorieGoal},
					{Label: "Потреблено", Value: profile.LoggedCalories},
					{Label: "Сожжено", Value: profile.BurnedCalories},
				},
			},
		},
	}
}
