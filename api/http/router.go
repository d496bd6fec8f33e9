package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/meinc/jobagent/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app.
func Register(
	app *fiber.App,
	health *handlers.HealthHandler,
	authH *handlers.AuthHandler,
	profileH *handlers.ProfileHandler,
	guideH *handlers.GuideHandler,
	trackerH *handlers.TrackerHandler,
	prefsH *handlers.PreferencesHandler,
	authMW fiber.Handler,
) {
	// Health and readiness endpoints for probes/monitoring
	app.Get("/", health.Info)
	app.Get("/health", health.Health)
	app.Get("/ready", health.Ready)

	api := app.Group("/api")

	a := api.Group("/auth")
	a.Post("/register", authH.Register)
	a.Post("/login", authH.Login)

	// Resume profiles
	r := api.Group("/resume")
	r.Post("/upload", profileH.Upload)
	r.Post("/", profileH.Create)
	r.Get("/:id", profileH.Get)
	r.Patch("/:id", profileH.Patch)
	r.Delete("/:id", profileH.Delete)
	api.Get("/resumes", profileH.List)

	// Bullet-point coaching
	g := api.Group("/guide")
	g.Post("/critique", guideH.Critique)
	g.Post("/refine", guideH.Refine)

	// Job-search metadata
	api.Post("/jobs", trackerH.CreateJob)
	api.Get("/jobs", trackerH.ListJobs)
	api.Get("/jobs/:id", trackerH.GetJob)
	api.Patch("/jobs/:id/status", trackerH.UpdateJobStatus)
	api.Post("/network", trackerH.CreateContact)
	api.Get("/network", trackerH.ListContacts)
	api.Post("/decisions", trackerH.CreateDecision)
	api.Get("/decisions", trackerH.ListDecisions)
	api.Post("/workflows", trackerH.CreateWorkflow)
	api.Get("/workflows", trackerH.ListWorkflows)
	api.Patch("/workflows/:id", trackerH.CompleteWorkflow)

	// Per-user preferences, keyed by token subject
	p := api.Group("/preferences", authMW)
	p.Get("/", prefsH.Get)
	p.Put("/", prefsH.Put)
}
