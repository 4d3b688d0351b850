package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Muvfitness-it/muv-smart-fit-web-sub000/internal/models"
	"github.com/Muvfitness-it/muv-smart-fit-web-sub000/internal/services"
)

// ToggleDiary marks a planned meal as eaten (or not). Repeated toggles for
// the same plan/date/slot overwrite the previous entry.
func (h *Handler) ToggleDiary(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return Error(c, fiber.StatusUnauthorized, err.Error())
	}

	var req models.ToggleDiaryRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if req.MealPlanID <= 0 {
		return Error(c, fiber.StatusBadRequest, "meal_plan_id is required")
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return Error(c, fiber.StatusBadRequest, "date must be YYYY-MM-DD")
	}
	if !validSlot(req.MealSlot) {
		return Error(c, fiber.StatusBadRequest, "invalid meal_slot")
	}

	// Toggling only makes sense against the user's own plan.
	if _, err := h.db.GetMealPlanByID(c.Context(), req.MealPlanID, userID); err != nil {
		return planError(c, err)
	}

	entry, err := h.db.UpsertDiaryEntry(c.Context(), userID, &req)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to update diary")
	}

	return Success(c, entry)
}

// GetAdherence returns per-day adherence percentages over the requested
// window (default 7 days, ending today).
func (h *Handler) GetAdherence(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return Error(c, fiber.StatusUnauthorized, err.Error())
	}

	windowDays := 7
	if v := c.Query("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 90 {
			return Error(c, fiber.StatusBadRequest, "days must be between 1 and 90")
		}
		windowDays = parsed
	}

	until := time.Now()
	from := until.AddDate(0, 0, -(windowDays - 1)).Format("2006-01-02")
	entries, err := h.db.ListDiaryEntries(c.Context(), userID, from, until.Format("2006-01-02"))
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to load diary")
	}

	return Success(c, services.Adherence(entries, windowDays, until))
}

// AddMeasurement appends one body measurement.
func (h *Handler) AddMeasurement(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return Error(c, fiber.StatusUnauthorized, err.Error())
	}

	var req models.RecordMeasurementRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if req.WeightKg == nil && req.HeightCm == nil && req.BodyFatPct == nil && req.MuscleMassKg == nil {
		return Error(c, fiber.StatusBadRequest, "at least one measurement field is required")
	}
	if req.BodyFatPct != nil && (*req.BodyFatPct < 0 || *req.BodyFatPct > 100) {
		return Error(c, fiber.StatusBadRequest, "body_fat_pct must be between 0 and 100")
	}

	m, err := h.db.AddMeasurement(c.Context(), userID, &req)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to record measurement")
	}

	return c.Status(fiber.StatusCreated).JSON(APIResponse{Success: true, Data: m})
}

// ListMeasurements returns the user's measurement log, most recent first.
func (h *Handler) ListMeasurements(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return Error(c, fiber.StatusUnauthorized, err.Error())
	}

	limit := 50
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= 500 {
			limit = parsed
		}
	}

	measurements, err := h.db.ListMeasurements(c.Context(), userID, limit)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to list measurements")
	}

	return Success(c, measurements)
}

// GetLatestStats returns the most recent non-null value per metric.
func (h *Handler) GetLatestStats(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return Error(c, fiber.StatusUnauthorized, err.Error())
	}

	measurements, err := h.db.ListMeasurements(c.Context(), userID, 500)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to load measurements")
	}

	return Success(c, services.LatestStats(measurements))
}

// ListIngredientCosts returns the seeded ingredient price table (admin).
func (h *Handler) ListIngredientCosts(c *fiber.Ctx) error {
	costs, err := h.db.ListIngredientCosts(c.Context())
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to list ingredient costs")
	}
	return Success(c, costs)
}

func validSlot(slot string) bool {
	for _, s := range models.SlotOrder {
		if s == slot {
			return true
		}
	}
	return false
}
