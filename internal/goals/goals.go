// Package goals holds the pure formulas deriving daily water and calorie
// targets from profile attributes. The formulas run once, when profile setup
// completes; later workout logs adjust the stored totals directly.
package goals

import "math"

// WaterGoalMl computes the daily water goal in milliliters. The hot-weather
// bonus applies only when a temperature is known and above 25°C.
func WaterGoalMl(weightKg, activityMinutes int, temperatureC *float64) int {
	goal := weightKg*30 + 500*(activityMinutes/30)
	if temperatureC != nil && *temperatureC > 25 {
		goal += 1000
	}
	return goal
}

// CalorieGoal computes the daily calorie goal. The activity term contributes
// only when the user reported daily activity minutes.
func CalorieGoal(weightKg, heightCm, ageYears, activityMinutes int, coefficient float64) int {
	goal := 10*float64(weightKg) + 6.25*float64(heightCm) - 5*float64(ageYears)
	if activityMinutes > 0 {
		goal += coefficient * (float64(activityMinutes) / 60) * float64(weightKg)
	}
	return int(math.Round(goal))
}

// WorkoutCalories computes calories burned by a logged workout.
func WorkoutCalories(coefficient float64, minutes, weightKg int) int {
	return int(math.Round(coefficient * (float64(minutes) / 60) * float64(weightKg)))
}

// WorkoutWaterMl computes the extra water a workout adds to the daily goal:
// 200 ml per half hour.
func WorkoutWaterMl(minutes int) int {
	return int(math.Round(200 * float64(minutes) / 30))
}

// FoodCalories computes calories for a weighed portion given energy per 100g.
func FoodCalories(caloriesPer100g, weightGrams float64) int {
	return int(math.Round(caloriesPer100g * weightGrams / 100))
}
