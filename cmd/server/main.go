package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/Muvfitness-it/muv-smart-fit-web-sub000/internal/config"
	"github.com/Muvfitness-it/muv-smart-fit-web-sub000/internal/database"
	"github.com/Muvfitness-it/muv-smart-fit-web-sub000/internal/handlers"
	"github.com/Muvfitness-it/muv-smart-fit-web-sub000/internal/middleware"
	"github.com/Muvfitness-it/muv-smart-fit-web-sub000/internal/models"
	"github.com/Muvfitness-it/muv-smart-fit-web-sub000/internal/services"
)

func main() {
	// Load .env file if it exists
	godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create admin user if it doesn't exist
	if err := database.EnsureAdminUser(db, cfg); err != nil {
		log.Printf("Warning: Could not ensure admin user: %v", err)
	}

	// Plan generators. The template planner always works; the Gemini planner
	// is only wired when an API key is configured.
	templatePlanner := services.NewTemplatePlanner(nil)
	var geminiPlanner *services.GeminiPlanner
	if cfg.GeminiAPIKey != "" {
		geminiPlanner = services.NewGeminiPlanner(cfg.GeminiAPIKey, cfg.GeminiModel)
		log.Printf("AI plan generation enabled (model %s)", cfg.GeminiModel)
	} else {
		log.Println("GEMINI_API_KEY not set, AI plan generation disabled")
	}

	pdfExporter := services.NewPDFExporter(cfg.PDFLogoURL)

	// S3/Garage archive for exported PDFs (optional)
	var archive *services.ExportStorage
	if cfg.S3Endpoint != "" && cfg.S3AccessKey != "" && cfg.S3SecretKey != "" {
		archive, err = services.NewExportStorage(cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3Region, cfg.S3UseSSL)
		if err != nil {
			log.Printf("Warning: Failed to initialize export storage: %v", err)
			archive = nil
		} else if err := archive.EnsureBucket(context.Background()); err != nil {
			log.Printf("Warning: Failed to ensure export bucket exists: %v", err)
		}
	} else {
		log.Println("S3 credentials not configured, PDF archiving disabled")
	}

	// Draft store with background auto-save
	drafts := services.NewDraftStore()
	saver := services.NewAutoSaver(cfg.AutosaveInterval, drafts.DraftPersister(
		func(ctx context.Context, userID int, plan *models.MealPlan) error {
			return db.UpsertDraftPlan(ctx, userID, plan)
		},
	))
	drafts.AttachSaver(saver)

	saverCtx, cancelSaver := context.WithCancel(context.Background())
	defer cancelSaver()
	saver.Start(saverCtx)
	defer saver.Stop()

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	// Create handler with dependencies
	h := handlers.New(db, cfg, templatePlanner, geminiPlanner, pdfExporter, archive, drafts)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// API routes
	api := app.Group("/api")

	// Auth routes (public)
	auth := api.Group("/auth")
	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)
	auth.Get("/me", middleware.AuthRequired(cfg), h.GetCurrentUser)
	auth.Post("/refresh", middleware.AuthRequired(cfg), h.RefreshToken)

	// Calorie calculator is public; it computes from the request body alone.
	api.Post("/planner/calories", h.CalculateCalories)

	// Planner routes (authenticated)
	planner := api.Group("/planner", middleware.AuthRequired(cfg))
	planner.Post("/generate", h.GeneratePlan)
	planner.Put("/draft", h.PutDraft)
	planner.Get("/draft", h.GetDraft)

	// Saved plan routes (authenticated)
	plans := api.Group("/plans", middleware.AuthRequired(cfg))
	plans.Post("/", h.SavePlan)
	plans.Get("/", h.ListPlans)
	plans.Get("/:id", h.GetPlan)
	plans.Delete("/:id", h.DeletePlan)
	plans.Get("/:id/shopping-list", h.BuildShoppingList)
	plans.Get("/:id/export.pdf", h.ExportPlanPDF)
	plans.Get("/:id/shopping-list/export.pdf", h.ExportShoppingPDF)

	// Tracking routes (authenticated)
	tracking := api.Group("/tracking", middleware.AuthRequired(cfg))
	tracking.Post("/diary/toggle", h.ToggleDiary)
	tracking.Get("/diary/adherence", h.GetAdherence)
	tracking.Post("/measurements", h.AddMeasurement)
	tracking.Get("/measurements", h.ListMeasurements)
	tracking.Get("/measurements/latest", h.GetLatestStats)

	// Admin routes (admin only)
	admin := api.Group("/admin", middleware.AuthRequired(cfg), middleware.AdminRequired())
	admin.Get("/ingredients", h.ListIngredientCosts)

	log.Printf("Server starting on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
