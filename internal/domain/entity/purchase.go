package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Modos de compra: física recibe mercancía (suben ambos contadores);
// contable registra la adquisición sin recepción (sube solo quantity, el
// stock disponible no cambia hasta que la mercancía llegue).
const (
	PurchaseModePhysical     = "fisica"
	PurchaseModeQuantityOnly = "contable"
)

// Purchase representa la cabecera de una compra a proveedor.
type Purchase struct {
	ID          int64
	SupplierID  int64
	Mode        string
	Status      string
	Total       decimal.Decimal
	CreatedBy   int64
	CreatedAt   time.Time
	CancelledAt *time.Time
}

// PurchaseDetail representa una línea de detalle de una compra.
type PurchaseDetail struct {
	ID         int64
	PurchaseID int64
	ItemID     int64
	Quantity   int64
	UnitCost   decimal.Decimal
	Subtotal   decimal.Decimal
}
