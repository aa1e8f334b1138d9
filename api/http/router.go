package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/brunovmr/trilha/api/http/handlers"
)

// Register wires all HTTP routes onto the given Fiber app.
func Register(app *fiber.App, health *handlers.HealthHandler, profile *handlers.ProfileHandler, match *handlers.MatchHandler) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Probes for orchestrators and monitoring
	v1.Get("/health", health.Health)
	v1.Get("/ready", health.Ready)

	// Candidate profile built from a résumé and platform activity
	p := v1.Group("/profiles/:ownerId")
	p.Get("/", profile.Get)
	p.Post("/resume", profile.UploadResume)
	p.Post("/text", profile.BuildFromText)
	p.Post("/courses", profile.CompleteCourse)

	// Compatibility analysis between a candidate and a job posting
	m := v1.Group("/matches/:ownerId/:jobId")
	m.Get("/", match.Get)
	m.Post("/", match.Compute)
}
