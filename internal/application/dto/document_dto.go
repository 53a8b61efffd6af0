package dto

import "github.com/shopspring/decimal"

// SaleLine línea de una factura de venta. El artículo puede referirse por id
// o por código; si UnitPrice viene en cero se usa el precio del artículo.
type SaleLine struct {
	ItemID    int64           `json:"item_id,omitempty"`
	ItemCode  string          `json:"item_code,omitempty"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price,omitempty"`
}

// ProcessSaleRequest body para POST /api/sales.
type ProcessSaleRequest struct {
	CustomerID int64      `json:"customer_id"`
	Lines      []SaleLine `json:"lines"`
}

// PurchaseLine línea de una compra a proveedor.
type PurchaseLine struct {
	ItemID   int64           `json:"item_id,omitempty"`
	ItemCode string          `json:"item_code,omitempty"`
	Quantity int64           `json:"quantity"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

// ProcessPurchaseRequest body para POST /api/purchases.
// QuantityOnly registra la adquisición contable sin recepción física:
// sube quantity y deja stock intacto.
type ProcessPurchaseRequest struct {
	SupplierID   int64          `json:"supplier_id"`
	QuantityOnly bool           `json:"quantity_only,omitempty"`
	Lines        []PurchaseLine `json:"lines"`
}

// ProcessAdjustmentRequest body para POST /api/adjustments.
// Deltas explícitos con signo; Notes es obligatorio. MovementTypeID es
// opcional: en cero se infiere Ajuste positivo/negativo por el signo; con
// valor permite registrar reservas, liberaciones o pérdidas, y el catálogo
// de tipos limita qué contadores puede tocar cada uno.
type ProcessAdjustmentRequest struct {
	ItemID         int64  `json:"item_id,omitempty"`
	ItemCode       string `json:"item_code,omitempty"`
	MovementTypeID int64  `json:"movement_type_id,omitempty"`
	QuantityChange int64  `json:"quantity_change"`
	StockChange    int64  `json:"stock_change"`
	Notes          string `json:"notes"`
}

// DocumentResponse respuesta de procesamiento de un documento.
type DocumentResponse struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

// MovementResponse respuesta de un ajuste manual (movimiento sin documento).
type MovementResponse struct {
	MovementID int64 `json:"movement_id"`
}
