package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/candidate-screener/internal/config"
	"alfredoptarigan/candidate-screener/internal/handlers"
	"alfredoptarigan/candidate-screener/internal/middleware"
	"alfredoptarigan/candidate-screener/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize services
	uploadService := services.NewUploadService(cfg.Storage.MaxFileSize)
	encoder := services.NewDocumentEncoder(services.NewPDFParserService())
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Printf("✅ Gemini AI initialized successfully (model: %s)\n", cfg.Gemini.Model)

	screeningService := services.NewScreeningService(
		geminiService,
		encoder,
		cfg.Screening.MaxResumes,
	)
	log.Println("✅ Screening service initialized")

	app := NewApp(cfg, screeningService, uploadService)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)
	log.Printf("📖 API Documentation: http://localhost%s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// NewApp builds the fiber application with all routes registered.
func NewApp(cfg *config.Config, screeningService services.ScreeningService, uploadService services.UploadService) *fiber.App {
	screenHandler := handlers.NewScreenHandler(screeningService, uploadService)
	compareHandler := handlers.NewCompareHandler(screeningService, uploadService)
	exportHandler := handlers.NewExportHandler()

	app := fiber.New(fiber.Config{
		AppName:      "Candidate Screener API",
		ReadTimeout:  2 * time.Minute,
		WriteTimeout: 2 * time.Minute,
		BodyLimit:    bodyLimit(cfg),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	limit := middleware.RateLimiter(cfg.RateLimit.Max, cfg.RateLimit.Window)

	// API endpoints
	api.Post("/screen", limit, screenHandler.HandleScreen)
	api.Post("/compare", limit, compareHandler.HandleCompare)
	api.Post("/export", exportHandler.HandleExport)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Candidate Screener API",
			"version": "1.0.0",
			"endpoints": []string{
				"GET /api/v1/health",
				"POST /api/v1/screen",
				"POST /api/v1/compare",
				"POST /api/v1/export",
			},
		})
	})

	return app
}

// defaultBodyResumes sizes the body when the resume count is unlimited.
const defaultBodyResumes = 20

// bodyLimit fits every resume plus a job description file in one body.
// Zero leaves fiber's default in place.
func bodyLimit(cfg *config.Config) int {
	if cfg.Storage.MaxFileSize <= 0 {
		return 0
	}

	resumes := cfg.Screening.MaxResumes
	if resumes <= 0 {
		resumes = defaultBodyResumes
	}
	return int(cfg.Storage.MaxFileSize) * (resumes + 1)
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	return handlers.RespondError(c, err)
}
