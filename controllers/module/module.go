package moduleController

import (
	"quizdeck/database"
	"quizdeck/middleware"
	"quizdeck/services/study"

	"github.com/gofiber/fiber/v2"
)

func svc() *study.Service {
	return study.New(database.Database.Db)
}

// CreateModule creates a module owned by the caller
func CreateModule(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := c.Locals("validatedCreateModule").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		IsPrivate   *bool  `json:"isPrivate"`
	})

	view, err := svc().CreateModule(userID, study.CreateModuleInput{
		Title:       reqData.Title,
		Description: reqData.Description,
		IsPrivate:   reqData.IsPrivate,
	})
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module created!", view)
}

// UpdateModule updates title/description of an owned module
func UpdateModule(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	moduleID := c.Locals("moduleID").(uint)

	reqData := c.Locals("validatedUpdateModule").(*struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
	})

	view, err := svc().UpdateModule(userID, moduleID, study.UpdateModuleInput{
		Title:       reqData.Title,
		Description: reqData.Description,
	})
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module updated!", view)
}

// UpdateVisibility toggles isPrivate on an owned module
func UpdateVisibility(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	moduleID := c.Locals("moduleID").(uint)

	reqData := c.Locals("validatedVisibility").(*struct {
		IsPrivate *bool `json:"isPrivate"`
	})

	view, err := svc().UpdateVisibility(userID, moduleID, *reqData.IsPrivate)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Visibility updated!", view)
}

// MyModules lists modules owned by the caller, with aggregates
func MyModules(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	views, err := svc().MyModules(userID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Modules fetched successfully!", views)
}

// Collection lists modules the caller has added, with aggregates
func Collection(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	views, err := svc().Collection(userID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Collection fetched successfully!", views)
}

// SearchPublic searches public modules by title/description substring
func SearchPublic(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	views, err := svc().SearchPublic(userID, c.Query("q"))
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Public modules fetched successfully!", views)
}

// Collect adds a module to the caller's collection
func Collect(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	moduleID := c.Locals("moduleID").(uint)

	view, err := svc().Collect(userID, moduleID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module added to collection!", view)
}

// Uncollect removes a module from the caller's collection
func Uncollect(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	moduleID := c.Locals("moduleID").(uint)

	view, err := svc().Uncollect(userID, moduleID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module removed from collection!", view)
}

// GetModule returns full module detail including per-term progress
func GetModule(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	moduleID := c.Locals("moduleID").(uint)

	view, err := svc().GetModule(userID, moduleID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module fetched successfully!", view)
}

// DeleteModule deletes an owned module and everything under it
func DeleteModule(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	moduleID := c.Locals("moduleID").(uint)

	if err := svc().DeleteModule(userID, moduleID); err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module deleted!", nil)
}

// CreateTerm adds a term to an owned module
func CreateTerm(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	moduleID := c.Locals("moduleID").(uint)

	reqData := c.Locals("validatedCreateTerm").(*struct {
		Term       string  `json:"term"`
		Definition string  `json:"definition"`
		Status     *string `json:"status"`
		IsStarred  *bool   `json:"isStarred"`
	})

	view, err := svc().CreateTerm(userID, moduleID, study.CreateTermInput{
		Term:       reqData.Term,
		Definition: reqData.Definition,
		Status:     reqData.Status,
		IsStarred:  reqData.IsStarred,
	})
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Term created!", view)
}
