package models

// ShoppingItem is one costed line of a shopping list. Cost accumulates over
// repeated occurrences of the same (category, name); Quantity is a display
// string and becomes "<unit> x<count>" when Count > 1.
type ShoppingItem struct {
	Category string  `json:"category"`
	Name     string  `json:"name"`
	Quantity string  `json:"quantity"`
	Cost     float64 `json:"cost"`
	Count    int     `json:"count"`
}

// ShoppingGroup is a presentation partition of the flat item list by
// category, in stable first-seen order.
type ShoppingGroup struct {
	Category string         `json:"category"`
	Items    []ShoppingItem `json:"items"`
}

// ShoppingList is derived deterministically from a MealPlan. Total equals the
// sum of accumulated item costs rounded to 2 decimals; per-item costs are
// rounded independently, so re-summing displayed values may drift by ±0.01.
// Unmatched lists ingredient strings that had no entry in the cost table.
type ShoppingList struct {
	Items     []ShoppingItem  `json:"items"`
	Groups    []ShoppingGroup `json:"groups"`
	Unmatched []string        `json:"unmatched,omitempty"`
	Total     float64         `json:"total"`
}
