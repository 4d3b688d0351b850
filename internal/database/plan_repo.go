package database

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/Muvfitness-it/muv-smart-fit-web-sub000/internal/models"
)

var (
	ErrPlanNotFound = errors.New("meal plan not found")
	ErrNotPlanOwner = errors.New("not the owner of this meal plan")
)

// SaveMealPlan persists a generated plan for a user. The plan body is stored
// as JSON and round-trips unchanged.
func (db *DB) SaveMealPlan(ctx context.Context, userID int, name string, plan *models.MealPlan) (*models.StoredMealPlan, error) {
	body, err := json.Marshal(plan)
	if err != nil {
		return nil, err
	}

	stored := &models.StoredMealPlan{UserID: userID, Name: name, Plan: *plan}
	err = db.Pool.QueryRow(ctx, `
		INSERT INTO meal_plans (user_id, name, target_calories, plan_type, plan, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, target_calories, plan_type, is_draft, created_at, updated_at
	`, userID, name, plan.TargetCalories, plan.PlanType, body).Scan(
		&stored.ID,
		&stored.TargetCalories,
		&stored.PlanType,
		&stored.IsDraft,
		&stored.CreatedAt,
		&stored.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return stored, nil
}

// UpsertDraftPlan replaces the user's single draft plan with the given body.
func (db *DB) UpsertDraftPlan(ctx context.Context, userID int, plan *models.MealPlan) error {
	body, err := json.Marshal(plan)
	if err != nil {
		return err
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		"DELETE FROM meal_plans WHERE user_id = $1 AND is_draft",
		userID,
	); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO meal_plans (user_id, name, target_calories, plan_type, is_draft, plan, created_at, updated_at)
		VALUES ($1, 'bozza', $2, $3, TRUE, $4, NOW(), NOW())
	`, userID, plan.TargetCalories, plan.PlanType, body); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// GetDraftPlan returns the user's draft plan, if any.
func (db *DB) GetDraftPlan(ctx context.Context, userID int) (*models.MealPlan, error) {
	var body []byte
	err := db.Pool.QueryRow(ctx,
		"SELECT plan FROM meal_plans WHERE user_id = $1 AND is_draft",
		userID,
	).Scan(&body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	plan := &models.MealPlan{}
	if err := json.Unmarshal(body, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// ListMealPlans returns the user's saved plans, newest first. Drafts are
// excluded from list views.
func (db *DB) ListMealPlans(ctx context.Context, userID int) ([]*models.MealPlanSummary, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, name, target_calories, plan_type, created_at
		FROM meal_plans
		WHERE user_id = $1 AND NOT is_draft
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []*models.MealPlanSummary
	for rows.Next() {
		p := &models.MealPlanSummary{}
		if err := rows.Scan(&p.ID, &p.Name, &p.TargetCalories, &p.PlanType, &p.CreatedAt); err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}

	return plans, rows.Err()
}

// GetMealPlanByID retrieves a plan with its full body, enforcing ownership.
func (db *DB) GetMealPlanByID(ctx context.Context, id, userID int) (*models.StoredMealPlan, error) {
	stored := &models.StoredMealPlan{}
	var body []byte

	err := db.Pool.QueryRow(ctx, `
		SELECT id, user_id, name, target_calories, plan_type, is_draft, plan, created_at, updated_at
		FROM meal_plans
		WHERE id = $1
	`, id).Scan(
		&stored.ID,
		&stored.UserID,
		&stored.Name,
		&stored.TargetCalories,
		&stored.PlanType,
		&stored.IsDraft,
		&body,
		&stored.CreatedAt,
		&stored.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	if stored.UserID != userID {
		return nil, ErrNotPlanOwner
	}

	if err := json.Unmarshal(body, &stored.Plan); err != nil {
		return nil, err
	}

	return stored, nil
}

// DeleteMealPlan removes a plan owned by the user.
func (db *DB) DeleteMealPlan(ctx context.Context, id, userID int) error {
	var ownerID int
	err := db.Pool.QueryRow(ctx,
		"SELECT user_id FROM meal_plans WHERE id = $1", id,
	).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrPlanNotFound
		}
		return err
	}
	if ownerID != userID {
		return ErrNotPlanOwner
	}

	_, err = db.Pool.Exec(ctx, "DELETE FROM meal_plans WHERE id = $1", id)
	return err
}
