package termController

import (
	"quizdeck/database"
	"quizdeck/middleware"
	"quizdeck/services/study"

	"github.com/gofiber/fiber/v2"
)

func svc() *study.Service {
	return study.New(database.Database.Db)
}

// UpdateTerm edits a term's text or the owner's per-term fields
func UpdateTerm(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	termID := c.Locals("termID").(uint)

	reqData := c.Locals("validatedUpdateTerm").(*struct {
		Term       *string `json:"term"`
		Definition *string `json:"definition"`
		Status     *string `json:"status"`
		IsStarred  *bool   `json:"isStarred"`
	})

	view, err := svc().UpdateTerm(userID, termID, study.UpdateTermInput{
		Term:       reqData.Term,
		Definition: reqData.Definition,
		Status:     reqData.Status,
		IsStarred:  reqData.IsStarred,
	})
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Term updated!", view)
}

// DeleteTerm removes a term from an owned module
func DeleteTerm(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	termID := c.Locals("termID").(uint)

	if err := svc().DeleteTerm(userID, termID); err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Term deleted!", nil)
}

// UpdateProgress sets the caller's status and/or star for a term
func UpdateProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	termID := c.Locals("termID").(uint)

	reqData := c.Locals("validatedUpdateProgress").(*struct {
		Status    *string `json:"status"`
		IsStarred *bool   `json:"isStarred"`
	})

	view, err := svc().UpdateProgress(userID, termID, study.UpdateProgressInput{
		Status:    reqData.Status,
		IsStarred: reqData.IsStarred,
	})
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated!", view)
}

// UpdateStatus applies one success/failure study attempt
func UpdateStatus(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	termID := c.Locals("termID").(uint)

	reqData := c.Locals("validatedUpdateStatus").(*struct {
		Success *bool `json:"success"`
	})

	view, err := svc().UpdateStatus(userID, termID, *reqData.Success)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Term status updated successfully!", view)
}

// GetProgress reads the caller's progress for a term
func GetProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	termID := c.Locals("termID").(uint)

	view, err := svc().GetProgress(userID, termID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", view)
}
