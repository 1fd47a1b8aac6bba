package moduleRoutes

import (
	controllers "quizdeck/controllers/module"
	"quizdeck/middleware"
	validators "quizdeck/validators/module"

	"github.com/gofiber/fiber/v2"
)

// SetupModuleRoutes sets up all module and collection routes
func SetupModuleRoutes(app *fiber.App) {
	moduleGroup := app.Group("/modules")

	moduleGroup.Post("/", middleware.JWTMiddleware, validators.CreateModule(), controllers.CreateModule)

	// Fixed paths before the :id routes
	moduleGroup.Get("/me", middleware.JWTMiddleware, controllers.MyModules)
	moduleGroup.Get("/collection", middleware.JWTMiddleware, controllers.Collection)
	moduleGroup.Get("/public", middleware.JWTMiddleware, controllers.SearchPublic)

	moduleGroup.Get("/:id", middleware.JWTMiddleware, validators.ModuleID(), controllers.GetModule)
	moduleGroup.Patch("/:id", middleware.JWTMiddleware, validators.ModuleID(), validators.UpdateModule(), controllers.UpdateModule)
	moduleGroup.Delete("/:id", middleware.JWTMiddleware, validators.ModuleID(), controllers.DeleteModule)
	moduleGroup.Patch("/:id/visibility", middleware.JWTMiddleware, validators.ModuleID(), validators.UpdateVisibility(), controllers.UpdateVisibility)

	// Collection membership
	moduleGroup.Post("/:id/collect", middleware.JWTMiddleware, validators.ModuleID(), controllers.Collect)
	moduleGroup.Delete("/:id/collect", middleware.JWTMiddleware, validators.ModuleID(), controllers.Uncollect)

	// Terms live under their module
	moduleGroup.Post("/:id/terms", middleware.JWTMiddleware, validators.ModuleID(), validators.CreateTerm(), controllers.CreateTerm)
}
