package services_test

import (
	"math"
	"testing"

	"github.com/Muvfitness-it/muv-smart-fit-web-sub000/internal/models"
	"github.com/Muvfitness-it/muv-smart-fit-web-sub000/internal/services"
)

func TestBMRHarrisBenedict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		gender models.Gender
		age    int
		weight float64
		height float64
		want   float64
	}{
		{"male 30y 80kg 180cm", models.GenderMale, 30, 80, 180, 1853.632},
		{"female 25y 60kg 165cm", models.GenderFemale, 25, 60, 165, 1405.333},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := services.BMR(tt.gender, tt.age, tt.weight, tt.height)
			if math.Abs(got-tt.want) > 0.01 {
				t.Fatalf("BMR() = %.3f, want %.3f", got, tt.want)
			}
		})
	}
}

func TestComputeCaloriesLoseScenario(t *testing.T) {
	t.Parallel()

	profile := models.UserProfile{
		Gender:   models.GenderMale,
		Age:      30,
		WeightKg: 80,
		HeightCm: 180,
		Activity: 1.55,
		Goal:     models.GoalLose,
	}

	got := services.ComputeCalories(profile)
	if math.Abs(got.BMR-1853.632) > 0.01 {
		t.Fatalf("BMR = %.3f, want 1853.632", got.BMR)
	}
	if math.Abs(got.TDEE-2873.1296) > 0.01 {
		t.Fatalf("TDEE = %.4f, want 2873.1296", got.TDEE)
	}
	if got.TargetCalories != 2373 {
		t.Fatalf("TargetCalories = %d, want 2373", got.TargetCalories)
	}
}

func TestComputeCaloriesGoalOffsets(t *testing.T) {
	t.Parallel()

	base := models.UserProfile{
		Gender:   models.GenderFemale,
		Age:      40,
		WeightKg: 65,
		HeightCm: 168,
		Activity: 1.375,
	}

	lose := base
	lose.Goal = models.GoalLose
	maintain := base
	maintain.Goal = models.GoalMaintain
	gain := base
	gain.Goal = models.GoalGain

	l := services.ComputeCalories(lose).TargetCalories
	m := services.ComputeCalories(maintain).TargetCalories
	g := services.ComputeCalories(gain).TargetCalories

	if m-l != 500 {
		t.Fatalf("maintain-lose = %d, want 500", m-l)
	}
	if g-m != 500 {
		t.Fatalf("gain-maintain = %d, want 500", g-m)
	}
}

func TestComputeCaloriesDeterministic(t *testing.T) {
	t.Parallel()

	profile := models.UserProfile{
		Gender:   models.GenderMale,
		Age:      22,
		WeightKg: 95,
		HeightCm: 190,
		Activity: 1.9,
		Goal:     models.GoalGain,
	}

	first := services.ComputeCalories(profile)
	for i := 0; i < 10; i++ {
		if got := services.ComputeCalories(profile); got != first {
			t.Fatalf("ComputeCalories not deterministic: %+v != %+v", got, first)
		}
	}
}
