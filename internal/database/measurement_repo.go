package database

import (
	"context"
	"strings"
	"time"

	"github.com/Muvfitness-it/muv-smart-fit-web-sub000/internal/models"
)

// AddMeasurement appends one body measurement row. Rows are never updated.
func (db *DB) AddMeasurement(ctx context.Context, userID int, req *models.RecordMeasurementRequest) (*models.BodyMeasurement, error) {
	measuredAt := time.Now()
	if req.MeasuredAt != nil && !req.MeasuredAt.IsZero() {
		measuredAt = *req.MeasuredAt
	}

	m := &models.BodyMeasurement{
		UserID:       userID,
		WeightKg:     req.WeightKg,
		HeightCm:     req.HeightCm,
		BodyFatPct:   req.BodyFatPct,
		MuscleMassKg: req.MuscleMassKg,
		Notes:        strings.TrimSpace(req.Notes),
		MeasuredAt:   measuredAt,
	}

	err := db.Pool.QueryRow(ctx, `
		INSERT INTO body_measurements (user_id, weight_kg, height_cm, body_fat_pct, muscle_mass_kg, notes, measured_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at
	`, userID, m.WeightKg, m.HeightCm, m.BodyFatPct, m.MuscleMassKg, m.Notes, m.MeasuredAt).Scan(
		&m.ID,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

// ListMeasurements returns the user's measurements, most recent first.
func (db *DB) ListMeasurements(ctx context.Context, userID, limit int) ([]models.BodyMeasurement, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.Pool.Query(ctx, `
		SELECT id, user_id, weight_kg, height_cm, body_fat_pct, muscle_mass_kg, COALESCE(notes, ''), measured_at, created_at
		FROM body_measurements
		WHERE user_id = $1
		ORDER BY measured_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var measurements []models.BodyMeasurement
	for rows.Next() {
		var m models.BodyMeasurement
		if err := rows.Scan(
			&m.ID, &m.UserID, &m.WeightKg, &m.HeightCm, &m.BodyFatPct, &m.MuscleMassKg,
			&m.Notes, &m.MeasuredAt, &m.CreatedAt,
		); err != nil {
			return nil, err
		}
		measurements = append(measurements, m)
	}

	return measurements, rows.Err()
}
