package services

import (
	"sort"
	"time"

	"github.com/Muvfitness-it/muv-smart-fit-web-sub000/internal/models"
)

// adherenceFloor is the minimum denominator for a day's adherence, so days
// with partial logging aren't reported as fully adherent.
const adherenceFloor = 5

// Adherence computes per-day adherence over the windowDays ending at until.
// A day's percentage is consumed ÷ max(logged, 5). Days with no entries at
// all are included at zero so charts show the gaps.
func Adherence(entries []models.FoodDiaryEntry, windowDays int, until time.Time) []models.AdherencePoint {
	if windowDays <= 0 {
		windowDays = 7
	}

	consumed := make(map[string]int)
	logged := make(map[string]int)
	for _, e := range entries {
		logged[e.Date]++
		if e.Consumed {
			consumed[e.Date]++
		}
	}

	points := make([]models.AdherencePoint, 0, windowDays)
	for i := windowDays - 1; i >= 0; i-- {
		date := until.AddDate(0, 0, -i).Format("2006-01-02")
		n := logged[date]
		denominator := n
		if denominator < adherenceFloor {
			denominator = adherenceFloor
		}
		points = append(points, models.AdherencePoint{
			Date:     date,
			Consumed: consumed[date],
			Logged:   n,
			Percent:  round2(float64(consumed[date]) / float64(denominator) * 100),
		})
	}

	return points
}

// LatestStats scans measurements newest-first and takes the first non-nil
// value per field independently, so a weight-only row and a later
// body-fat-only row both contribute.
func LatestStats(measurements []models.BodyMeasurement) models.LatestStats {
	sorted := append([]models.BodyMeasurement(nil), measurements...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].MeasuredAt.After(sorted[j].MeasuredAt)
	})

	var stats models.LatestStats
	for _, m := range sorted {
		if stats.WeightKg == nil && m.WeightKg != nil {
			stats.WeightKg = m.WeightKg
		}
		if stats.HeightCm == nil && m.HeightCm != nil {
			stats.HeightCm = m.HeightCm
		}
		if stats.BodyFatPct == nil && m.BodyFatPct != nil {
			stats.BodyFatPct = m.BodyFatPct
		}
		if stats.MuscleMassKg == nil && m.MuscleMassKg != nil {
			stats.MuscleMassKg = m.MuscleMassKg
		}
	}

	return stats
}
