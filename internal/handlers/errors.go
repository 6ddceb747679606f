package handlers

import (
	"errors"

	"sporton/internal/apperrors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// statusFor maps an error kind to its HTTP status.
func statusFor(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindValidation, apperrors.KindEmptyCart:
		return fiber.StatusBadRequest
	case apperrors.KindNotFound:
		return fiber.StatusNotFound
	case apperrors.KindInvalidState, apperrors.KindReferentialIntegrity:
		return fiber.StatusConflict
	case apperrors.KindStorage:
		return fiber.StatusServiceUnavailable
	}
	return fiber.StatusInternalServerError
}

// respondError writes err as a JSON error body with the status of its kind.
func respondError(c *fiber.Ctx, err error) error {
	kind := apperrors.KindOf(err)
	status := statusFor(kind)

	body := fiber.Map{
		"message": err.Error(),
		"error":   kind.String(),
	}
	var verr *apperrors.ValidationError
	if errors.As(err, &verr) {
		body["message"] = "Validation failed"
		body["errors"] = verr.Violations
	}
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("request failed")
	}
	return c.Status(status).JSON(body)
}

// badRequest reports a body that could not be parsed.
func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}
