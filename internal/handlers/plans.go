package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Muvfitness-it/muv-smart-fit-web-sub000/internal/database"
	"github.com/Muvfitness-it/muv-smart-fit-web-sub000/internal/models"
	"github.com/Muvfitness-it/muv-smart-fit-web-sub000/internal/services"
)

// SavePlan persists a generated plan for the current user.
func (h *Handler) SavePlan(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return Error(c, fiber.StatusUnauthorized, err.Error())
	}

	var req models.SavePlanRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return Error(c, fiber.StatusBadRequest, "plan name is required")
	}
	if len(req.Name) > 255 {
		return Error(c, fiber.StatusBadRequest, "plan name too long")
	}
	if len(req.Plan.Days) == 0 {
		return Error(c, fiber.StatusBadRequest, "plan has no days")
	}

	stored, err := h.db.SaveMealPlan(c.Context(), userID, req.Name, &req.Plan)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to save plan")
	}

	return c.Status(fiber.StatusCreated).JSON(APIResponse{Success: true, Data: stored})
}

// ListPlans returns the user's saved plans, newest first.
func (h *Handler) ListPlans(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return Error(c, fiber.StatusUnauthorized, err.Error())
	}

	plans, err := h.db.ListMealPlans(c.Context(), userID)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to list plans")
	}

	return Success(c, plans)
}

// GetPlan returns one saved plan with its full body.
func (h *Handler) GetPlan(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return Error(c, fiber.StatusUnauthorized, err.Error())
	}

	stored, err := h.planByID(c, userID)
	if err != nil {
		return planError(c, err)
	}

	return Success(c, stored)
}

// DeletePlan removes a saved plan.
func (h *Handler) DeletePlan(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return Error(c, fiber.StatusUnauthorized, err.Error())
	}

	planID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid plan id")
	}

	if err := h.db.DeleteMealPlan(c.Context(), planID, userID); err != nil {
		return planError(c, err)
	}

	return Success(c, fiber.Map{"deleted": planID})
}

// BuildShoppingList derives the costed shopping list from a saved plan.
func (h *Handler) BuildShoppingList(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return Error(c, fiber.StatusUnauthorized, err.Error())
	}

	stored, err := h.planByID(c, userID)
	if err != nil {
		return planError(c, err)
	}

	return Success(c, services.BuildShoppingList(&stored.Plan))
}

func (h *Handler) planByID(c *fiber.Ctx, userID int) (*models.StoredMealPlan, error) {
	planID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return nil, errors.New("invalid plan id")
	}
	return h.db.GetMealPlanByID(c.Context(), planID, userID)
}

func planError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, database.ErrPlanNotFound):
		return Error(c, fiber.StatusNotFound, "meal plan not found")
	case errors.Is(err, database.ErrNotPlanOwner):
		return Error(c, fiber.StatusForbidden, "you do not own this meal plan")
	case err.Error() == "invalid plan id":
		return Error(c, fiber.StatusBadRequest, "invalid plan id")
	default:
		return Error(c, fiber.StatusInternalServerError, "failed to load plan")
	}
}
