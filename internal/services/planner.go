package services

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/Muvfitness-it/muv-smart-fit-web-sub000/internal/models"
)

// PlanRequest carries everything a generator needs to build a plan.
type PlanRequest struct {
	TargetCalories int             `json:"target_calories"`
	Activity       float64         `json:"activity"`
	Goal           models.Goal     `json:"goal"`
	Allergies      []string        `json:"allergies,omitempty"`
	Intolerances   []string        `json:"intolerances,omitempty"`
	PlanType       models.PlanType `json:"plan_type"`
}

// PlanGenerator produces a meal plan from a request. Implementations:
// TemplatePlanner (local, deterministic under a fixed seed) and
// GeminiPlanner (remote model).
type PlanGenerator interface {
	Generate(ctx context.Context, req PlanRequest) (*models.MealPlan, error)
}

// goalMultiplier scales template kcal values by goal.
func goalMultiplier(goal models.Goal) float64 {
	switch goal {
	case models.GoalLose:
		return 0.9
	case models.GoalGain:
		return 1.1
	default:
		return 1.0
	}
}

// TemplatePlanner selects meals from the static per-tier template tables.
// The random source is injected so tests can fix the seed.
type TemplatePlanner struct {
	rng *rand.Rand
}

// NewTemplatePlanner creates a planner; a nil rng gets a time-seeded one.
func NewTemplatePlanner(rng *rand.Rand) *TemplatePlanner {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &TemplatePlanner{rng: rng}
}

// Generate builds a plan by picking one variant per slot uniformly at random
// from the tier matching the request's activity level. Variants containing an
// excluded ingredient keyword are dropped before selection; if that empties a
// slot, the unfiltered variants are used so the plan never comes up short.
// Weekly plans repeat the selection independently per weekday.
func (t *TemplatePlanner) Generate(_ context.Context, req PlanRequest) (*models.MealPlan, error) {
	tier := tierForActivity(req.Activity)
	exclusions := normalizeExclusions(req.Allergies, req.Intolerances)
	multiplier := goalMultiplier(req.Goal)

	plan := &models.MealPlan{
		TargetCalories: req.TargetCalories,
		PlanType:       req.PlanType,
		Days:           make(map[string]models.DayPlan),
	}

	for _, day := range plan.DayKeys() {
		plan.Days[day] = t.generateDay(tier, exclusions, multiplier)
	}

	return plan, nil
}

func (t *TemplatePlanner) generateDay(tier activityTier, exclusions []string, multiplier float64) models.DayPlan {
	day := make(models.DayPlan, len(models.SlotOrder))

	for _, slot := range models.SlotOrder {
		variants := filterTemplates(mealTemplates[tier][slot], exclusions)
		if len(variants) == 0 {
			variants = mealTemplates[tier][slot]
		}

		chosen := variants[t.rng.Intn(len(variants))]
		day[slot] = models.MealSlot{
			Description: chosen.description,
			Ingredients: append([]string(nil), chosen.ingredients...),
			Kcal:        int(float64(chosen.kcal) * multiplier),
		}
	}

	return day
}

// filterTemplates drops variants whose description or ingredients contain an
// excluded keyword.
func filterTemplates(variants []mealTemplate, exclusions []string) []mealTemplate {
	if len(exclusions) == 0 {
		return variants
	}

	var kept []mealTemplate
	for _, v := range variants {
		if !templateExcluded(v, exclusions) {
			kept = append(kept, v)
		}
	}
	return kept
}

func templateExcluded(v mealTemplate, exclusions []string) bool {
	haystack := strings.ToLower(v.description)
	for _, ing := range v.ingredients {
		haystack += " " + strings.ToLower(ing)
	}
	for _, keyword := range exclusions {
		if strings.Contains(haystack, keyword) {
			return true
		}
	}
	return false
}

func normalizeExclusions(lists ...[]string) []string {
	var out []string
	for _, list := range lists {
		for _, item := range list {
			item = strings.ToLower(strings.TrimSpace(item))
			if item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}
