package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/invorya/pos-ledger/internal/application/dto"
	"github.com/invorya/pos-ledger/internal/application/inventory"
)

// ItemHandler maneja las peticiones HTTP de artículos (protegido).
type ItemHandler struct {
	uc *inventory.ItemUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *inventory.ItemUseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// Create da de alta un artículo (flujo de Entrada inicial).
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	id, err := h.uc.CreateItem(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// GetByID devuelve un artículo. Acepta ?by=code para resolver por código.
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	if c.Query("by") == "code" {
		item, err := h.uc.GetItemByCode(c.Context(), c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(inventory.ToItemDTO(item))
	}
	id, ok := parseID(c, "id")
	if !ok {
		return nil
	}
	item, err := h.uc.GetItem(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inventory.ToItemDTO(item))
}

// Update edita atributos descriptivos; nunca toca los contadores.
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return nil
	}
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.UpdateItem(c.Context(), GetUserID(c), id, in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "artículo actualizado"})
}

// Deactivate marca el artículo como inactivo.
func (h *ItemHandler) Deactivate(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return nil
	}
	if err := h.uc.DeactivateItem(c.Context(), GetUserID(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "artículo desactivado"})
}

// PolicyViolations lista artículos con stock fuera de min_stock/max_stock.
func (h *ItemHandler) PolicyViolations(c *fiber.Ctx) error {
	items, err := h.uc.ListPolicyViolations(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, inventory.ToItemDTO(it))
	}
	return c.JSON(fiber.Map{"total": len(out), "items": out})
}

// parseID lee un parámetro de ruta numérico. Si no es válido escribe el 400
// y devuelve ok en false; el handler solo debe retornar nil.
func parseID(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
		return 0, false
	}
	return id, true
}
