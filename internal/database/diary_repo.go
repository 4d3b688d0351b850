package database

import (
	"context"
	"strings"

	"github.com/Muvfitness-it/muv-smart-fit-web-sub000/internal/models"
)

// UpsertDiaryEntry records whether a planned meal was eaten. A second toggle
// for the same (meal_plan_id, date, meal_slot) overwrites the existing row.
func (db *DB) UpsertDiaryEntry(ctx context.Context, userID int, req *models.ToggleDiaryRequest) (*models.FoodDiaryEntry, error) {
	entry := &models.FoodDiaryEntry{
		UserID:     userID,
		MealPlanID: req.MealPlanID,
		Date:       req.Date,
		MealSlot:   req.MealSlot,
		Consumed:   req.Consumed,
		Notes:      strings.TrimSpace(req.Notes),
	}

	err := db.Pool.QueryRow(ctx, `
		INSERT INTO food_diary_entries (user_id, meal_plan_id, entry_date, meal_slot, consumed, notes, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (meal_plan_id, entry_date, meal_slot)
		DO UPDATE SET consumed = EXCLUDED.consumed, notes = EXCLUDED.notes, updated_at = NOW()
		RETURNING id, updated_at
	`, userID, req.MealPlanID, req.Date, req.MealSlot, req.Consumed, entry.Notes).Scan(
		&entry.ID,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// ListDiaryEntries returns the user's diary entries within [from, to].
func (db *DB) ListDiaryEntries(ctx context.Context, userID int, from, to string) ([]models.FoodDiaryEntry, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, user_id, meal_plan_id, to_char(entry_date, 'YYYY-MM-DD'), meal_slot, consumed, COALESCE(notes, ''), updated_at
		FROM food_diary_entries
		WHERE user_id = $1 AND entry_date >= $2 AND entry_date <= $3
		ORDER BY entry_date, meal_slot
	`, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.FoodDiaryEntry
	for rows.Next() {
		var e models.FoodDiaryEntry
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.MealPlanID, &e.Date, &e.MealSlot, &e.Consumed, &e.Notes, &e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
