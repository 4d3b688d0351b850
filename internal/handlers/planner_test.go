package handlers

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/Muvfitness-it/muv-smart-fit-web-sub000/internal/models"
	"github.com/Muvfitness-it/muv-smart-fit-web-sub000/internal/services"
)

func validTestProfile() models.UserProfile {
	return models.UserProfile{
		Gender:   models.GenderMale,
		Age:      30,
		WeightKg: 80,
		HeightCm: 180,
		Activity: 1.55,
		Goal:     models.GoalLose,
		PlanType: models.PlanDaily,
	}
}

func TestValidateProfile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*models.UserProfile)
		wantOK bool
	}{
		{"valid", func(p *models.UserProfile) {}, true},
		{"defaults plan type", func(p *models.UserProfile) { p.PlanType = "" }, true},
		{"bad gender", func(p *models.UserProfile) { p.Gender = "other" }, false},
		{"age too low", func(p *models.UserProfile) { p.Age = 13 }, false},
		{"age too high", func(p *models.UserProfile) { p.Age = 101 }, false},
		{"weight too low", func(p *models.UserProfile) { p.WeightKg = 29 }, false},
		{"height too high", func(p *models.UserProfile) { p.HeightCm = 231 }, false},
		{"off-scale activity", func(p *models.UserProfile) { p.Activity = 1.5 }, false},
		{"bad goal", func(p *models.UserProfile) { p.Goal = "bulk" }, false},
		{"bad plan type", func(p *models.UserProfile) { p.PlanType = "monthly" }, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			profile := validTestProfile()
			tt.mutate(&profile)
			msg := validateProfile(&profile)
			if (msg == "") != tt.wantOK {
				t.Fatalf("validateProfile() = %q, wantOK=%v", msg, tt.wantOK)
			}
		})
	}
}

func TestValidateProfileDefaultsPlanType(t *testing.T) {
	t.Parallel()

	profile := validTestProfile()
	profile.PlanType = ""
	if msg := validateProfile(&profile); msg != "" {
		t.Fatalf("validateProfile() = %q, want accept", msg)
	}
	if profile.PlanType != models.PlanDaily {
		t.Fatalf("plan type = %q, want daily default", profile.PlanType)
	}
}

func TestTranslateGenerationError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err        error
		wantStatus int
	}{
		{services.ErrAPIKey, fiber.StatusInternalServerError},
		{services.ErrQuotaExhausted, fiber.StatusTooManyRequests},
		{services.ErrRateLimited, fiber.StatusTooManyRequests},
		{services.ErrServiceOverloaded, fiber.StatusServiceUnavailable},
		{services.ErrContentBlocked, fiber.StatusUnprocessableEntity},
		{services.ErrInvalidAIResponse, fiber.StatusBadGateway},
		{errors.New("anything else"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		status, message := translateGenerationError(tt.err)
		if status != tt.wantStatus {
			t.Fatalf("translateGenerationError(%v) status = %d, want %d", tt.err, status, tt.wantStatus)
		}
		if message == "" {
			t.Fatalf("translateGenerationError(%v) returned empty message", tt.err)
		}
	}

	// Wrapped errors keep their classification.
	wrapped := errors.Join(errors.New("attempt 3"), services.ErrRateLimited)
	if status, _ := translateGenerationError(wrapped); status != fiber.StatusTooManyRequests {
		t.Fatalf("wrapped rate limit lost its status: %d", status)
	}
}
