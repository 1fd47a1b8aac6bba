package termValidator

import (
	"strings"

	"quizdeck/middleware"
	"quizdeck/models"

	"github.com/gofiber/fiber/v2"
)

// TermID validates the :id route param
func TermID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid term ID!", nil)
		}
		c.Locals("termID", uint(id))
		return c.Next()
	}
}

// UpdateTerm validates the term edit request
func UpdateTerm() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Term       *string `json:"term"`
			Definition *string `json:"definition"`
			Status     *string `json:"status"`
			IsStarred  *bool   `json:"isStarred"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Term == nil && reqData.Definition == nil && reqData.Status == nil && reqData.IsStarred == nil {
			errors["body"] = "Nothing to update!"
		}
		if reqData.Term != nil && strings.TrimSpace(*reqData.Term) == "" {
			errors["term"] = "Term cannot be empty!"
		}
		if reqData.Definition != nil && strings.TrimSpace(*reqData.Definition) == "" {
			errors["definition"] = "Definition cannot be empty!"
		}
		if reqData.Status != nil && !models.ValidStatus(*reqData.Status) {
			errors["status"] = "Status must be not_started, in_progress or completed!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUpdateTerm", reqData)
		return c.Next()
	}
}

// UpdateProgress validates the progress update request
func UpdateProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Status    *string `json:"status"`
			IsStarred *bool   `json:"isStarred"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Status == nil && reqData.IsStarred == nil {
			errors["body"] = "Nothing to update!"
		}
		if reqData.Status != nil && !models.ValidStatus(*reqData.Status) {
			errors["status"] = "Status must be not_started, in_progress or completed!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUpdateProgress", reqData)
		return c.Next()
	}
}

// UpdateStatus validates the success/failure attempt request
func UpdateStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Success *bool `json:"success"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Success == nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"success": "success is required!",
			})
		}

		c.Locals("validatedUpdateStatus", reqData)
		return c.Next()
	}
}
