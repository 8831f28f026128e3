package main

import (
	"context"
	"errors"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/fadilmartias/resume-generator/internal/config"
	"github.com/fadilmartias/resume-generator/internal/domain/fiber/handler"
	"github.com/fadilmartias/resume-generator/internal/middleware"
	"github.com/fadilmartias/resume-generator/internal/repository"
	"github.com/fadilmartias/resume-generator/internal/service"
	"github.com/fadilmartias/resume-generator/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	ctx := context.Background()
	err := godotenv.Load()
	if err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()

	app := fiber.New(fiber.Config{
		AppName: appConfig.Name,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			// Status code defaults to 500
			code := fiber.StatusInternalServerError

			// Retrieve the custom status code if it's a *fiber.Error
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}

			return ctx.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: config.LoadAppConfig().Env != "production",
	}))

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed, // 1
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return config.LoadAppConfig().Env != "production"
		},
	}))
	app.Use(healthcheck.New())

	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))

	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	llm, err := newTextGenerator(ctx, appConfig.LLMProvider)
	if err != nil {
		log.Fatal(err)
	}

	sessions := repository.NewSessionRepository()
	renderer := service.NewChromeRenderService()

	parse := usecase.NewParseUsecase(llm)
	rank := usecase.NewRankUsecase(llm)
	bullets := usecase.NewBulletsUsecase(llm)
	compose, err := usecase.NewComposeUsecase(rank, bullets, renderer, loadResumeLayout())
	if err != nil {
		log.Fatal(err)
	}
	coverLetter := usecase.NewCoverLetterUsecase(llm)

	h := handler.NewResumeHandler(sessions, parse, compose, coverLetter)
	h.RegisterRoutes(app)

	// Monitor goroutine count
	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			log.Printf("Active goroutines: %d", runtime.NumGoroutine())
		}
	}()

	log.Println("Server running on ", appConfig.Port)
	if err := app.Listen(appConfig.Port); err != nil {
		log.Fatal(err)
	}
}

func newTextGenerator(ctx context.Context, provider string) (service.TextGenerator, error) {
	switch provider {
	case "openrouter":
		return service.NewOpenRouterService(), nil
	default:
		return service.NewGeminiService(ctx)
	}
}

// loadResumeLayout reads the layout template from disk, falling back to the
// built-in layout when the file is missing.
func loadResumeLayout() string {
	layout, err := os.ReadFile("templates/resume.html")
	if err != nil {
		log.Println("Could not load templates/resume.html, using built-in layout")
		return ""
	}
	return string(layout)
}
