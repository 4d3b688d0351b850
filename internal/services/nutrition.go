package services

import (
	"math"

	"github.com/Muvfitness-it/muv-smart-fit-web-sub000/internal/models"
)

// goalOffsetKcal is the flat adjustment applied for lose/gain goals. One
// formula, one constant, applied uniformly everywhere.
const goalOffsetKcal = 500

// CalorieBreakdown is the full calculator output.
type CalorieBreakdown struct {
	BMR            float64 `json:"bmr"`
	TDEE           float64 `json:"tdee"`
	TargetCalories int     `json:"target_calories"`
}

// BMR computes basal metabolic rate via Harris-Benedict.
func BMR(gender models.Gender, age int, weightKg, heightCm float64) float64 {
	if gender == models.GenderMale {
		return 88.362 + 13.397*weightKg + 4.799*heightCm - 5.677*float64(age)
	}
	return 447.593 + 9.247*weightKg + 3.098*heightCm - 4.330*float64(age)
}

// TDEE is total daily energy expenditure: BMR scaled by the activity multiplier.
func TDEE(bmr, activity float64) float64 {
	return bmr * activity
}

// ComputeCalories derives BMR, TDEE and the goal-adjusted calorie target from
// a profile. Pure and deterministic; inputs are pre-validated form fields.
func ComputeCalories(p models.UserProfile) CalorieBreakdown {
	bmr := BMR(p.Gender, p.Age, p.WeightKg, p.HeightCm)
	tdee := TDEE(bmr, p.Activity)

	target := tdee
	switch p.Goal {
	case models.GoalLose:
		target -= goalOffsetKcal
	case models.GoalGain:
		target += goalOffsetKcal
	}

	return CalorieBreakdown{
		BMR:            bmr,
		TDEE:           tdee,
		TargetCalories: int(math.Round(target)),
	}
}

// TargetCalories returns only the goal-adjusted daily kcal target.
func TargetCalories(p models.UserProfile) int {
	return ComputeCalories(p).TargetCalories
}
