package database

import (
	"context"

	"github.com/Muvfitness-it/muv-smart-fit-web-sub000/internal/models"
)

// UpsertIngredientCost inserts or refreshes one ingredient price row,
// keyed by phrase.
func (db *DB) UpsertIngredientCost(ctx context.Context, row *models.IngredientCost) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO ingredient_costs (phrase, category, name, quantity, cost)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (phrase)
		DO UPDATE SET category = EXCLUDED.category, name = EXCLUDED.name,
			quantity = EXCLUDED.quantity, cost = EXCLUDED.cost
	`, row.Phrase, row.Category, row.Name, row.Quantity, row.Cost)
	return err
}

// ListIngredientCosts returns all price rows ordered by category then name.
func (db *DB) ListIngredientCosts(ctx context.Context) ([]models.IngredientCost, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, phrase, category, name, quantity, cost, created_at
		FROM ingredient_costs
		ORDER BY category, name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var costs []models.IngredientCost
	for rows.Next() {
		var c models.IngredientCost
		if err := rows.Scan(&c.ID, &c.Phrase, &c.Category, &c.Name, &c.Quantity, &c.Cost, &c.CreatedAt); err != nil {
			return nil, err
		}
		costs = append(costs, c)
	}

	return costs, rows.Err()
}

// CountIngredientCosts returns the number of seeded price rows.
func (db *DB) CountIngredientCosts(ctx context.Context) (int, error) {
	var count int
	err := db.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM ingredient_costs").Scan(&count)
	return count, err
}

// TruncateIngredientCosts empties the price table before a full reseed.
func (db *DB) TruncateIngredientCosts(ctx context.Context) error {
	_, err := db.Pool.Exec(ctx, "TRUNCATE ingredient_costs RESTART IDENTITY")
	return err
}
