package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/invorya/pos-ledger/internal/application/inventory"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC       *inventory.ItemUseCase
	SaleUC       *inventory.SaleUseCase
	PurchaseUC   *inventory.PurchaseUseCase
	AdjustmentUC *inventory.AdjustmentUseCase
	CancelUC     *inventory.CancelUseCase
	HistoryUC    *inventory.HistoryUseCase
	JWTSecret    string
}

// Router registra las rutas de la API. Todas las operaciones de inventario
// requieren Bearer Token: el UserID del token firma cada movimiento.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Artículos
	items := api.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/", itemHandler.Create)
	items.Get("/policy-violations", itemHandler.PolicyViolations)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Deactivate)

	// Documentos (ventas y compras) y anulaciones
	documentHandler := NewDocumentHandler(deps.SaleUC, deps.PurchaseUC, deps.CancelUC)
	api.Post("/sales", documentHandler.CreateSale)
	api.Post("/sales/:id/cancel", documentHandler.CancelSale)
	api.Post("/purchases", documentHandler.CreatePurchase)
	api.Post("/purchases/:id/cancel", documentHandler.CancelPurchase)

	// Ajustes manuales y libro de movimientos
	inventoryHandler := NewInventoryHandler(deps.AdjustmentUC, deps.HistoryUC)
	api.Post("/adjustments", inventoryHandler.CreateAdjustment)
	api.Get("/movements", inventoryHandler.AllMovements)
	items.Get("/:id/movements", inventoryHandler.MovementHistory)
	items.Get("/:id/ledger-audit", inventoryHandler.LedgerAudit)
}
