package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/mobile-subscribers-api/internal/application/dto"
	"github.com/jhoicas/mobile-subscribers-api/internal/domain"
)

// Códigos de error expuestos en dto.ErrorResponse.
const (
	CodeNotFound    = "NOT_FOUND"
	CodeValidation  = "VALIDATION"
	CodeInvalidBody = "INVALID_BODY"
	CodeInvalidID   = "INVALID_ID"
	CodeInternal    = "INTERNAL"
)

// writeError traduce los errores de dominio a respuestas HTTP.
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: CodeNotFound, Message: err.Error()})
	case errors.Is(err, domain.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeValidation, Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: CodeInternal, Message: "error interno"})
	}
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeInvalidBody, Message: "cuerpo inválido"})
}

// paramID lee el parámetro :id como entero. Solo un valor no numérico es inválido;
// ids sin fila (0, negativos) siguen el flujo normal: 404 en lecturas, no-op en DELETE.
func paramID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func invalidID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeInvalidID, Message: "id inválido"})
}
