package models

import (
	"time"
)

// IngredientCost is one row of the ingredient price reference table as stored
// in the database (seeded from CSV for admin browsing; the aggregator itself
// uses the compiled-in table).
type IngredientCost struct {
	ID        int       `json:"id"`
	Phrase    string    `json:"phrase"`
	Category  string    `json:"category"`
	Name      string    `json:"name"`
	Quantity  string    `json:"quantity"`
	Cost      float64   `json:"cost"`
	CreatedAt time.Time `json:"created_at"`
}
