package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de documento. Máquina de estados: procesada -> anulada, sin vuelta
// atrás; un documento procesado no se edita, solo se anula.
const (
	DocumentStatusProcessed = "procesada"
	DocumentStatusCancelled = "anulada"
)

// Invoice representa la cabecera de una factura de venta.
type Invoice struct {
	ID          int64
	CustomerID  int64
	Status      string
	Total       decimal.Decimal
	CreatedBy   int64
	CreatedAt   time.Time
	CancelledAt *time.Time
}

// InvoiceDetail representa una línea de detalle de una factura.
type InvoiceDetail struct {
	ID        int64
	InvoiceID int64
	ItemID    int64
	Quantity  int64
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}
