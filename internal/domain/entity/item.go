package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem representa un artículo del inventario con sus dos contadores
// independientes: Quantity (unidades en propiedad / control administrativo) y
// Stock (unidades disponibles para venta o asignación).
//
// Los contadores nunca pueden quedar negativos y solo los mutan los
// orquestadores (cada cambio deja una fila en inventory_movements). El resto
// de atributos se edita por una vía aparte que jamás toca los contadores.
// MinStock/MaxStock son límites de política: se reportan, no se bloquean.
type InventoryItem struct {
	ID          int64
	Code        string // código único legible (SKU)
	Name        string
	Description string
	Quantity    int64
	Stock       int64
	MinStock    int64
	MaxStock    int64
	Cost        decimal.Decimal
	Price       decimal.Decimal
	SupplierID  *int64
	ExpiresAt   *time.Time
	Active      bool // nunca se borra físicamente; se desactiva
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BelowMinStock indica si el stock quedó por debajo del mínimo de política.
func (i *InventoryItem) BelowMinStock() bool {
	return i.MinStock > 0 && i.Stock < i.MinStock
}

// AboveMaxStock indica si el stock superó el máximo de política.
func (i *InventoryItem) AboveMaxStock() bool {
	return i.MaxStock > 0 && i.Stock > i.MaxStock
}
