package models

import (
	"time"
)

// BodyMeasurement is one append-only log row. All metric fields are optional;
// a row carrying only weight and a later one carrying only body fat both
// contribute to the latest stats.
type BodyMeasurement struct {
	ID           int64     `json:"id"`
	UserID       int       `json:"user_id"`
	WeightKg     *float64  `json:"weight_kg,omitempty"`
	HeightCm     *float64  `json:"height_cm,omitempty"`
	BodyFatPct   *float64  `json:"body_fat_pct,omitempty"`
	MuscleMassKg *float64  `json:"muscle_mass_kg,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	MeasuredAt   time.Time `json:"measured_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// RecordMeasurementRequest is the request body for logging a measurement.
type RecordMeasurementRequest struct {
	WeightKg     *float64   `json:"weight_kg,omitempty"`
	HeightCm     *float64   `json:"height_cm,omitempty"`
	BodyFatPct   *float64   `json:"body_fat_pct,omitempty"`
	MuscleMassKg *float64   `json:"muscle_mass_kg,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	MeasuredAt   *time.Time `json:"measured_at,omitempty"`
}

// LatestStats holds the most recent non-null value per metric, each taken
// independently from the measurement log.
type LatestStats struct {
	WeightKg     *float64 `json:"weight_kg,omitempty"`
	HeightCm     *float64 `json:"height_cm,omitempty"`
	BodyFatPct   *float64 `json:"body_fat_pct,omitempty"`
	MuscleMassKg *float64 `json:"muscle_mass_kg,omitempty"`
}

// FoodDiaryEntry records whether a planned meal was eaten. One row per
// (meal_plan_id, date, meal_slot); toggles upsert, never duplicate.
type FoodDiaryEntry struct {
	ID         int64     `json:"id"`
	UserID     int       `json:"user_id"`
	MealPlanID int       `json:"meal_plan_id"`
	Date       string    `json:"date"` // YYYY-MM-DD
	MealSlot   string    `json:"meal_slot"`
	Consumed   bool      `json:"consumed"`
	Notes      string    `json:"notes,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ToggleDiaryRequest is the request body for marking a meal consumed.
type ToggleDiaryRequest struct {
	MealPlanID int    `json:"meal_plan_id"`
	Date       string `json:"date"`
	MealSlot   string `json:"meal_slot"`
	Consumed   bool   `json:"consumed"`
	Notes      string `json:"notes,omitempty"`
}

// AdherencePoint is one day of adherence statistics.
type AdherencePoint struct {
	Date     string  `json:"date"`
	Consumed int     `json:"consumed"`
	Logged   int     `json:"logged"`
	Percent  float64 `json:"percent"`
}
