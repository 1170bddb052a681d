package handlers

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/candidate-screener/internal/models"
	"alfredoptarigan/candidate-screener/internal/services"
)

// StatusFor maps a service error onto an HTTP status code.
func StatusFor(err error) int {
	var fiberErr *fiber.Error
	var fileErr *services.FileReadError

	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.Is(err, services.ErrInputPrecondition):
		return fiber.StatusBadRequest
	case errors.As(err, &fileErr):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, services.ErrGenerationFailed):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// RespondError writes err as an ErrorResponse.
func RespondError(c *fiber.Ctx, err error) error {
	code := StatusFor(err)
	return c.Status(code).JSON(models.ErrorResponse{
		Error: err.Error(),
		Code:  code,
	})
}

func badRequest(format string, args ...any) error {
	return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf(format, args...))
}

// extractValidationErrors turns validator errors into one readable message.
func extractValidationErrors(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		ve := validationErrors[0]
		if ve.Param() != "" {
			return fmt.Sprintf("validation error: %s - %s=%s", ve.Namespace(), ve.Tag(), ve.Param())
		}
		return fmt.Sprintf("validation error: %s - %s", ve.Namespace(), ve.Tag())
	}
	return "validation error: invalid request"
}
