package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/invorya/pos-ledger/internal/application/dto"
	"github.com/invorya/pos-ledger/internal/application/inventory"
	"github.com/invorya/pos-ledger/internal/domain/entity"
)

// InventoryHandler maneja ajustes manuales y lecturas del libro (protegido).
type InventoryHandler struct {
	adjustmentUC *inventory.AdjustmentUseCase
	historyUC    *inventory.HistoryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(adjustmentUC *inventory.AdjustmentUseCase, historyUC *inventory.HistoryUseCase) *InventoryHandler {
	return &InventoryHandler{adjustmentUC: adjustmentUC, historyUC: historyUC}
}

// CreateAdjustment registra un ajuste manual y devuelve el id del movimiento.
func (h *InventoryHandler) CreateAdjustment(c *fiber.Ctx) error {
	var in dto.ProcessAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	id, err := h.adjustmentUC.ProcessAdjustment(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResponse{MovementID: id})
}

// MovementHistory lista los movimientos de un artículo, más recientes primero.
func (h *InventoryHandler) MovementHistory(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return nil
	}
	filter, ok := parseMovementFilter(c)
	if !ok {
		return nil
	}
	movements, err := h.historyUC.GetMovementHistory(c.Context(), id, filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(movements), "movements": toMovementDTOs(movements)})
}

// AllMovements lista movimientos de todo el inventario para reportes.
func (h *InventoryHandler) AllMovements(c *fiber.Ctx) error {
	filter, ok := parseMovementFilter(c)
	if !ok {
		return nil
	}
	movements, err := h.historyUC.ListAllMovements(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(movements), "movements": toMovementDTOs(movements)})
}

// LedgerAudit reproduce el libro del artículo y lo compara con sus contadores.
func (h *InventoryHandler) LedgerAudit(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return nil
	}
	audit, err := h.historyUC.VerifyLedger(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(audit)
}

// parseMovementFilter lee los filtros de query. Responde 400 si algo no parsea.
func parseMovementFilter(c *fiber.Ctx) (entity.MovementFilter, bool) {
	var q dto.MovementHistoryQuery
	if err := c.QueryParser(&q); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
		return entity.MovementFilter{}, false
	}
	q.DefaultPage()
	return entity.MovementFilter{
		From:           q.From,
		To:             q.To,
		MovementTypeID: q.MovementTypeID,
		UserID:         q.UserID,
		Limit:          q.Limit,
		Offset:         q.Offset,
	}, true
}

func toMovementDTOs(movements []*entity.Movement) []dto.MovementDTO {
	out := make([]dto.MovementDTO, 0, len(movements))
	for _, m := range movements {
		out = append(out, inventory.ToMovementDTO(m))
	}
	return out
}
