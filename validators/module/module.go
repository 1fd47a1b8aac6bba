package moduleValidator

import (
	"strings"

	"quizdeck/middleware"
	"quizdeck/models"

	"github.com/gofiber/fiber/v2"
)

// ModuleID validates the :id route param
func ModuleID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module ID!", nil)
		}
		c.Locals("moduleID", uint(id))
		return c.Next()
	}
}

// CreateModule validates the module creation request
func CreateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			IsPrivate   *bool  `json:"isPrivate"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)

		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		} else if len(reqData.Title) > 100 {
			errors["title"] = "Title must be at most 100 characters!"
		}
		if len(reqData.Description) > 1000 {
			errors["description"] = "Description must be at most 1000 characters!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateModule", reqData)
		return c.Next()
	}
}

// UpdateModule validates the module update request
func UpdateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       *string `json:"title"`
			Description *string `json:"description"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Title == nil && reqData.Description == nil {
			errors["body"] = "Nothing to update!"
		}
		if reqData.Title != nil && strings.TrimSpace(*reqData.Title) == "" {
			errors["title"] = "Title cannot be empty!"
		}
		if reqData.Title != nil && len(strings.TrimSpace(*reqData.Title)) > 100 {
			errors["title"] = "Title must be at most 100 characters!"
		}
		if reqData.Description != nil && len(*reqData.Description) > 1000 {
			errors["description"] = "Description must be at most 1000 characters!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUpdateModule", reqData)
		return c.Next()
	}
}

// UpdateVisibility validates the visibility toggle request
func UpdateVisibility() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			IsPrivate *bool `json:"isPrivate"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.IsPrivate == nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"isPrivate": "isPrivate is required!",
			})
		}

		c.Locals("validatedVisibility", reqData)
		return c.Next()
	}
}

// CreateTerm validates the term creation request
func CreateTerm() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Term       string  `json:"term"`
			Definition string  `json:"definition"`
			Status     *string `json:"status"`
			IsStarred  *bool   `json:"isStarred"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Term = strings.TrimSpace(reqData.Term)

		if reqData.Term == "" {
			errors["term"] = "Term is required!"
		}
		if strings.TrimSpace(reqData.Definition) == "" {
			errors["definition"] = "Definition is required!"
		}
		if reqData.Status != nil && !models.ValidStatus(*reqData.Status) {
			errors["status"] = "Status must be not_started, in_progress or completed!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateTerm", reqData)
		return c.Next()
	}
}
