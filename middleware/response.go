package middleware

import (
	"errors"
	"log"

	"quizdeck/services/study"

	"github.com/gofiber/fiber/v2"
)

// JsonResponse writes the standard response envelope
func JsonResponse(c *fiber.Ctx, statusCode int, ok bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"ok":      ok,
		"message": message,
		"data":    data,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errs map[string]string) error {
	return JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Validation failed!", errs)
}

// ErrorResponse maps service errors onto the envelope with the matching
// HTTP status. Unexpected errors are logged and returned as a generic 500.
func ErrorResponse(c *fiber.Ctx, err error) error {
	var status int
	var code string

	switch {
	case errors.Is(err, study.ErrModuleNotFound),
		errors.Is(err, study.ErrTermNotFound),
		errors.Is(err, study.ErrUserNotFound):
		status, code = fiber.StatusNotFound, "not_found"
	case errors.Is(err, study.ErrPrivateModule),
		errors.Is(err, study.ErrNotOwner),
		errors.Is(err, study.ErrNotCollected),
		errors.Is(err, study.ErrOwnCollection):
		status, code = fiber.StatusForbidden, "forbidden"
	case errors.Is(err, study.ErrSlugTaken),
		errors.Is(err, study.ErrTitleTaken),
		errors.Is(err, study.ErrTermTaken):
		status, code = fiber.StatusConflict, "conflict"
	default:
		log.Printf("Unexpected error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"ok":      false,
			"message": "Something went wrong!",
			"error":   "internal",
		})
	}

	return c.Status(status).JSON(fiber.Map{
		"ok":      false,
		"message": err.Error(),
		"error":   code,
	})
}
