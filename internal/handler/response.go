package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"reflect"

	"go-parts-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// getActor reads the authenticated user set by RequireAuth.
func getActor(c *fiber.Ctx) service.Actor {
	var actor service.Actor
	if id, ok := c.Locals("user_id").(string); ok {
		actor.ID, _ = uuid.Parse(id)
	}
	if email, ok := c.Locals("user_email").(string); ok {
		actor.Email = email
	}
	return actor
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

func invalidID(c *fiber.Ctx, field string) error {
	return c.Status(400).JSON(fiber.Map{"error": "Invalid " + field, "field": field})
}

func invalidJSON(c *fiber.Ctx) error {
	return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
}

// bodyError reports an unparseable request body against the field that
// failed to decode, or fallback when the decoder does not name one.
func bodyError(err error, fallback string) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		msg := "has the wrong type"
		switch typeErr.Type.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			msg = "must be a whole number"
		}
		return &service.ValidationError{Field: typeErr.Field, Message: msg}
	}
	return &service.ValidationError{Field: fallback, Message: "invalid request body"}
}

// respondError maps service errors onto HTTP status codes.
func respondError(c *fiber.Ctx, err error) error {
	var verr *service.ValidationError
	var stockErr *service.InsufficientStockError

	switch {
	case errors.As(err, &verr):
		return c.Status(400).JSON(fiber.Map{"error": verr.Error(), "field": verr.Field, "message": verr.Message})
	case errors.As(err, &stockErr):
		return c.Status(409).JSON(fiber.Map{"error": stockErr.Error(), "available": stockErr.Available})
	case errors.Is(err, service.ErrNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrDuplicate):
		return c.Status(409).JSON(fiber.Map{"error": err.Error()})
	default:
		slog.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
}
