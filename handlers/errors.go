// handlers/errors.go
package handlers

import (
	"errors"
	"log"

	"word-league-system/models"

	"github.com/gofiber/fiber/v2"
)

// writeError maps service errors onto status codes with a {"detail": ...} body.
func writeError(c *fiber.Ctx, err error) error {
	status, detail := fiber.StatusInternalServerError, "internal server error"

	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		status, detail = fiber.StatusBadRequest, verr.Detail
	case errors.Is(err, models.ErrNotFound):
		status, detail = fiber.StatusNotFound, err.Error()
	case errors.Is(err, models.ErrNotMember):
		status, detail = fiber.StatusForbidden, err.Error()
	case errors.Is(err, models.ErrAlreadySolved),
		errors.Is(err, models.ErrGuessLimitReached),
		errors.Is(err, models.ErrPuzzleInactive):
		status, detail = fiber.StatusConflict, err.Error()
	default:
		log.Printf("❌ %s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(fiber.Map{"detail": detail})
}
