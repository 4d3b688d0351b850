package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Muvfitness-it/muv-smart-fit-web-sub000/internal/database"
	"github.com/Muvfitness-it/muv-smart-fit-web-sub000/internal/models"
	"github.com/Muvfitness-it/muv-smart-fit-web-sub000/internal/services"
)

// GenerateRequest is the request body for plan generation.
type GenerateRequest struct {
	Profile  models.UserProfile `json:"profile"`
	Strategy string             `json:"strategy,omitempty"` // "template" (default) or "ai"
}

// CalculateCalories computes BMR, TDEE and the calorie target from a profile.
func (h *Handler) CalculateCalories(c *fiber.Ctx) error {
	var profile models.UserProfile
	if err := c.BodyParser(&profile); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if msg := validateProfile(&profile); msg != "" {
		return Error(c, fiber.StatusBadRequest, msg)
	}

	return Success(c, services.ComputeCalories(profile))
}

// GeneratePlan builds a meal plan with the requested strategy and returns it
// together with its shopping list.
func (h *Handler) GeneratePlan(c *fiber.Ctx) error {
	var req GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if msg := validateProfile(&req.Profile); msg != "" {
		return Error(c, fiber.StatusBadRequest, msg)
	}

	var generator services.PlanGenerator = h.template
	if req.Strategy == "ai" {
		if h.gemini == nil {
			return Error(c, fiber.StatusServiceUnavailable, "Servizio AI non configurato. Contatta l'amministratore.")
		}
		generator = h.gemini
	}

	planRequest := services.PlanRequest{
		TargetCalories: services.TargetCalories(req.Profile),
		Activity:       req.Profile.Activity,
		Goal:           req.Profile.Goal,
		Allergies:      req.Profile.Allergies,
		Intolerances:   req.Profile.Intolerances,
		PlanType:       req.Profile.PlanType,
	}

	plan, err := generator.Generate(c.Context(), planRequest)
	if err != nil {
		status, message := translateGenerationError(err)
		return Error(c, status, message)
	}

	return Success(c, fiber.Map{
		"plan":          plan,
		"shopping_list": services.BuildShoppingList(plan),
	})
}

// PutDraft stores the user's in-progress plan; the auto-save loop persists
// it in the background.
func (h *Handler) PutDraft(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return Error(c, fiber.StatusUnauthorized, err.Error())
	}

	var plan models.MealPlan
	if err := c.BodyParser(&plan); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	h.drafts.Put(userID, &plan)
	return Success(c, fiber.Map{"status": "draft stored"})
}

// GetDraft returns the user's draft, preferring the in-memory copy over the
// persisted one.
func (h *Handler) GetDraft(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return Error(c, fiber.StatusUnauthorized, err.Error())
	}

	if plan, ok := h.drafts.Get(userID); ok {
		return Success(c, plan)
	}

	plan, err := h.db.GetDraftPlan(c.Context(), userID)
	if err != nil {
		if errors.Is(err, database.ErrPlanNotFound) {
			return Error(c, fiber.StatusNotFound, "no draft found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to load draft")
	}

	return Success(c, plan)
}

// validateProfile applies the client-side field checks server-side; invalid
// profiles never reach the generators or the network.
func validateProfile(p *models.UserProfile) string {
	if p.Gender != models.GenderMale && p.Gender != models.GenderFemale {
		return "gender must be male or female"
	}
	if p.Age < 14 || p.Age > 100 {
		return "age must be between 14 and 100"
	}
	if p.WeightKg < 30 || p.WeightKg > 300 {
		return "weight must be between 30 and 300 kg"
	}
	if p.HeightCm < 120 || p.HeightCm > 230 {
		return "height must be between 120 and 230 cm"
	}
	if !models.ValidActivity(p.Activity) {
		return "activity must be one of 1.2, 1.375, 1.55, 1.725, 1.9"
	}
	switch p.Goal {
	case models.GoalLose, models.GoalMaintain, models.GoalGain:
	default:
		return "goal must be lose, maintain or gain"
	}
	if p.PlanType == "" {
		p.PlanType = models.PlanDaily
	}
	if p.PlanType != models.PlanDaily && p.PlanType != models.PlanWeekly {
		return "plan_type must be daily or weekly"
	}
	return ""
}

// translateGenerationError maps the generation error taxonomy onto status
// codes and the user-facing Italian messages.
func translateGenerationError(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrAPIKey):
		return fiber.StatusInternalServerError, "Servizio AI non configurato correttamente. Contatta l'amministratore."
	case errors.Is(err, services.ErrQuotaExhausted):
		return fiber.StatusTooManyRequests, "Quota giornaliera del servizio AI esaurita. Riprova più tardi."
	case errors.Is(err, services.ErrRateLimited):
		return fiber.StatusTooManyRequests, "Troppe richieste al servizio AI. Riprova tra qualche minuto."
	case errors.Is(err, services.ErrServiceOverloaded):
		return fiber.StatusServiceUnavailable, "Servizio AI momentaneamente sovraccarico. Riprova tra poco."
	case errors.Is(err, services.ErrContentBlocked):
		return fiber.StatusUnprocessableEntity, "Richiesta bloccata dai filtri di sicurezza. Riformula la richiesta."
	case errors.Is(err, services.ErrInvalidAIResponse):
		return fiber.StatusBadGateway, "Risposta AI non valida. Riprova."
	default:
		return fiber.StatusInternalServerError, "Generazione del piano non riuscita. Riprova."
	}
}
