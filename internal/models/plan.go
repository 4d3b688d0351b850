package models

import (
	"time"
)

// Slot names, in the fixed order plans are generated and displayed in.
const (
	SlotBreakfast      = "colazione"
	SlotMorningSnack   = "spuntino_mattutino"
	SlotLunch          = "pranzo"
	SlotAfternoonSnack = "spuntino_pomeridiano"
	SlotDinner         = "cena"
)

// SlotOrder is the canonical emission order for the five daily meal slots.
var SlotOrder = []string{
	SlotBreakfast,
	SlotMorningSnack,
	SlotLunch,
	SlotAfternoonSnack,
	SlotDinner,
}

// SlotLabels maps slot names to their display labels.
var SlotLabels = map[string]string{
	SlotBreakfast:      "Colazione",
	SlotMorningSnack:   "Spuntino Mattutino",
	SlotLunch:          "Pranzo",
	SlotAfternoonSnack: "Spuntino Pomeridiano",
	SlotDinner:         "Cena",
}

// WeekDays are the day keys of a weekly plan, Monday first.
var WeekDays = []string{
	"Lunedì", "Martedì", "Mercoledì", "Giovedì", "Venerdì", "Sabato", "Domenica",
}

// DailyKey is the single day key used by daily plans.
const DailyKey = "Giorno"

// MealSlot is one meal occasion. Kcal is a coarse estimate; per-slot values
// are not required to sum exactly to the plan target.
type MealSlot struct {
	Description string   `json:"description"`
	Ingredients []string `json:"ingredients"`
	Kcal        int      `json:"kcal"`
}

// DayPlan maps slot name -> meal for one day.
type DayPlan map[string]MealSlot

// MealPlan is a generated plan. Immutable once produced. Daily plans hold a
// single day under DailyKey; weekly plans hold one entry per weekday.
type MealPlan struct {
	TargetCalories int                `json:"target_calories"`
	PlanType       PlanType           `json:"plan_type"`
	Days           map[string]DayPlan `json:"days"`
}

// DayKeys returns the plan's day keys in display order.
func (p *MealPlan) DayKeys() []string {
	if p.PlanType == PlanWeekly {
		return WeekDays
	}
	return []string{DailyKey}
}

// StoredMealPlan is a persisted plan row. The plan body round-trips through
// JSONB unchanged: slot structure and kcal values are preserved exactly.
type StoredMealPlan struct {
	ID             int       `json:"id"`
	UserID         int       `json:"user_id"`
	Name           string    `json:"name"`
	TargetCalories int       `json:"target_calories"`
	PlanType       PlanType  `json:"plan_type"`
	IsDraft        bool      `json:"is_draft"`
	Plan           MealPlan  `json:"plan"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// MealPlanSummary is a compact representation for list views.
type MealPlanSummary struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	TargetCalories int       `json:"target_calories"`
	PlanType       PlanType  `json:"plan_type"`
	CreatedAt      time.Time `json:"created_at"`
}

// SavePlanRequest is the request body for saving a generated plan.
type SavePlanRequest struct {
	Name string   `json:"name"`
	Plan MealPlan `json:"plan"`
}
