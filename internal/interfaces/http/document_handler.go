package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/invorya/pos-ledger/internal/application/dto"
	"github.com/invorya/pos-ledger/internal/application/inventory"
	"github.com/invorya/pos-ledger/internal/domain/entity"
)

// DocumentHandler maneja facturas de venta, compras y anulaciones (protegido).
type DocumentHandler struct {
	saleUC     *inventory.SaleUseCase
	purchaseUC *inventory.PurchaseUseCase
	cancelUC   *inventory.CancelUseCase
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(saleUC *inventory.SaleUseCase, purchaseUC *inventory.PurchaseUseCase, cancelUC *inventory.CancelUseCase) *DocumentHandler {
	return &DocumentHandler{saleUC: saleUC, purchaseUC: purchaseUC, cancelUC: cancelUC}
}

// CreateSale procesa una factura de venta completa.
func (h *DocumentHandler) CreateSale(c *fiber.Ctx) error {
	var in dto.ProcessSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	id, err := h.saleUC.ProcessSale(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.DocumentResponse{ID: id, Status: entity.DocumentStatusProcessed})
}

// CreatePurchase procesa una compra (física o contable).
func (h *DocumentHandler) CreatePurchase(c *fiber.Ctx) error {
	var in dto.ProcessPurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	id, err := h.purchaseUC.ProcessPurchase(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.DocumentResponse{ID: id, Status: entity.DocumentStatusProcessed})
}

// CancelSale anula una factura aplicando los deltas inversos.
func (h *DocumentHandler) CancelSale(c *fiber.Ctx) error {
	return h.cancel(c, inventory.DocumentTypeInvoice)
}

// CancelPurchase anula una compra aplicando los deltas inversos.
func (h *DocumentHandler) CancelPurchase(c *fiber.Ctx) error {
	return h.cancel(c, inventory.DocumentTypePurchase)
}

func (h *DocumentHandler) cancel(c *fiber.Ctx, documentType string) error {
	id, ok := parseID(c, "id")
	if !ok {
		return nil
	}
	if err := h.cancelUC.CancelDocument(c.Context(), GetUserID(c), documentType, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.DocumentResponse{ID: id, Status: entity.DocumentStatusCancelled})
}
