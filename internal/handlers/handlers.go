package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Muvfitness-it/muv-smart-fit-web-sub000/internal/config"
	"github.com/Muvfitness-it/muv-smart-fit-web-sub000/internal/database"
	"github.com/Muvfitness-it/muv-smart-fit-web-sub000/internal/services"
)

// Handler holds all handler dependencies
type Handler struct {
	db       *database.DB
	cfg      *config.Config
	template *services.TemplatePlanner
	gemini   *services.GeminiPlanner
	pdf      *services.PDFExporter
	archive  *services.ExportStorage
	drafts   *services.DraftStore
}

// New creates a new Handler instance. gemini and archive may be nil when the
// corresponding credentials are not configured.
func New(db *database.DB, cfg *config.Config, template *services.TemplatePlanner, gemini *services.GeminiPlanner, pdf *services.PDFExporter, archive *services.ExportStorage, drafts *services.DraftStore) *Handler {
	return &Handler{
		db:       db,
		cfg:      cfg,
		template: template,
		gemini:   gemini,
		pdf:      pdf,
		archive:  archive,
		drafts:   drafts,
	}
}

// ErrorHandler is a custom error handler for Fiber
func ErrorHandler(c *fiber.Ctx, err error) error {
	// Default to 500
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	// Check if it's a Fiber error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error": message,
	})
}

// APIResponse is a standard API response structure
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// Meta contains pagination metadata
type Meta struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// Success returns a successful response
func Success(c *fiber.Ctx, data interface{}) error {
	return c.JSON(APIResponse{
		Success: true,
		Data:    data,
	})
}

// Error returns an error response
func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(APIResponse{
		Success: false,
		Error:   message,
	})
}

func getUserID(c *fiber.Ctx) (int, error) {
	userID, ok := c.Locals("user_id").(int)
	if !ok || userID == 0 {
		return 0, errors.New("user not authenticated")
	}
	return userID, nil
}
