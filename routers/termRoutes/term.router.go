package termRoutes

import (
	controllers "quizdeck/controllers/term"
	"quizdeck/middleware"
	validators "quizdeck/validators/term"

	"github.com/gofiber/fiber/v2"
)

// SetupTermRoutes sets up term editing and per-user progress routes
func SetupTermRoutes(app *fiber.App) {
	termGroup := app.Group("/terms")

	termGroup.Patch("/:id", middleware.JWTMiddleware, validators.TermID(), validators.UpdateTerm(), controllers.UpdateTerm)
	termGroup.Delete("/:id", middleware.JWTMiddleware, validators.TermID(), controllers.DeleteTerm)

	// Per-user progress
	termGroup.Get("/:id/progress", middleware.JWTMiddleware, validators.TermID(), controllers.GetProgress)
	termGroup.Patch("/:id/progress", middleware.JWTMiddleware, validators.TermID(), validators.UpdateProgress(), controllers.UpdateProgress)
	termGroup.Post("/:id/update-status", middleware.JWTMiddleware, validators.TermID(), validators.UpdateStatus(), controllers.UpdateStatus)
}
