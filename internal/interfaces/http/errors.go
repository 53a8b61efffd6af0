package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/invorya/pos-ledger/internal/application/dto"
	"github.com/invorya/pos-ledger/internal/domain"
)

// respondError traduce la taxonomía de errores de dominio a HTTP. Los errores
// de contención llevan 503 para que el cliente sepa que reintentar la
// operación completa es seguro; los de negocio no son reintentables tal cual.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthenticated):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHENTICATED", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrItemInactive):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ITEM_INACTIVE", Message: err.Error()})
	case errors.Is(err, domain.ErrDocumentCancelled):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_CANCELLED", Message: err.Error()})
	case errors.Is(err, domain.ErrLedgerConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "LEDGER_CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrStorageConstraint):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONSTRAINT", Message: err.Error()})
	case errors.Is(err, domain.ErrStorageContention):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "STORAGE_BUSY", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
