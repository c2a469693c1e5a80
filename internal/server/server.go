// Package server monta a aplicação fiber que expõe a entrevista para a
// interface web.
package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"entrevista-ai/internal/config"
)

// New cria a aplicação fiber com middleware e rotas
func New(server config.ServerConfig, handler *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Entrevista AI API",
		ReadTimeout:  server.ReadTimeout,
		WriteTimeout: server.WriteTimeout,
		BodyLimit:    int(server.MaxUploadSize),
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/sessions", handler.HandleCreateSession)
	api.Get("/sessions/:id", handler.HandleGetSession)
	api.Post("/sessions/:id/answers", handler.HandleSubmitAnswer)
	api.Post("/sessions/:id/advance", handler.HandleAdvance)
	api.Get("/sessions/:id/summary", handler.HandleSummary)
	api.Delete("/sessions/:id", handler.HandleDeleteSession)
	api.Post("/sessions/:id/recording/start", handler.HandleStartRecording)
	api.Post("/sessions/:id/recording/stop", handler.HandleStopRecording)
	api.Post("/sessions/:id/transcript", handler.HandlePushTranscript)
	api.Post("/job-description", handler.HandleUploadJobDescription)
	api.Get("/metrics", handler.HandleMetrics)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Entrevista AI API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/sessions",
				"GET /api/v1/sessions/:id",
				"POST /api/v1/sessions/:id/answers",
				"POST /api/v1/sessions/:id/advance",
				"GET /api/v1/sessions/:id/summary",
				"DELETE /api/v1/sessions/:id",
				"POST /api/v1/job-description",
			},
		})
	})

	return app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
