package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Etiquetas-api/internal/application/dto"
	"github.com/jhoicas/Etiquetas-api/internal/domain"
	"github.com/jhoicas/Etiquetas-api/internal/domain/entity"
	"github.com/jhoicas/Etiquetas-api/internal/domain/label"
)

// respondDomainError mapea errores de dominio a respuestas HTTP.
// Errores de validación -> 400 (con la discrepancia cuando aplica);
// errores de estado -> 409; colaboradores externos -> 502/504.
func respondDomainError(c *fiber.Ctx, err error) error {
	var discrepancy *label.DiscrepancyError
	if errors.As(err, &discrepancy) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "QUANTITY_MISMATCH", Message: discrepancy.Error()})
	}
	var stateErr *entity.StateError
	if errors.As(err, &stateErr) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: stateErr.Error()})
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrSerialNotCommitted):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "SERIAL_NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicatePending):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_PENDING", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrOrderExhausted):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ORDER_EXHAUSTED", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, domain.ErrPrinterTimeout):
		return c.Status(fiber.StatusGatewayTimeout).JSON(dto.ErrorResponse{Code: "PRINTER_TIMEOUT", Message: err.Error()})
	case errors.Is(err, domain.ErrDispatchFailed):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "DISPATCH_FAILED", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
