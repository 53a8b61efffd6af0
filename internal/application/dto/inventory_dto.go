package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest body para POST /api/items (flujo de Entrada inicial).
// Las existencias iniciales generan un movimiento "Entrada inicial"; el
// INSERT del artículo siempre arranca con contadores en cero.
type CreateItemRequest struct {
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	InitialQuantity int64           `json:"initial_quantity,omitempty"`
	InitialStock    int64           `json:"initial_stock,omitempty"`
	MinStock        int64           `json:"min_stock,omitempty"`
	MaxStock        int64           `json:"max_stock,omitempty"`
	Cost            decimal.Decimal `json:"cost,omitempty"`
	Price           decimal.Decimal `json:"price"`
	SupplierID      *int64          `json:"supplier_id,omitempty"`
	ExpiresAt       *time.Time      `json:"expires_at,omitempty"`
}

// UpdateItemRequest body para PUT /api/items/:id. Solo atributos
// descriptivos: esta vía jamás toca quantity ni stock.
type UpdateItemRequest struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	MinStock    int64           `json:"min_stock,omitempty"`
	MaxStock    int64           `json:"max_stock,omitempty"`
	Cost        decimal.Decimal `json:"cost,omitempty"`
	Price       decimal.Decimal `json:"price"`
	SupplierID  *int64          `json:"supplier_id,omitempty"`
	ExpiresAt   *time.Time      `json:"expires_at,omitempty"`
}

// ItemResponse representación HTTP de un artículo.
type ItemResponse struct {
	ID          int64           `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Quantity    int64           `json:"quantity"`
	Stock       int64           `json:"stock"`
	MinStock    int64           `json:"min_stock"`
	MaxStock    int64           `json:"max_stock"`
	Cost        decimal.Decimal `json:"cost"`
	Price       decimal.Decimal `json:"price"`
	SupplierID  *int64          `json:"supplier_id,omitempty"`
	ExpiresAt   *time.Time      `json:"expires_at,omitempty"`
	Active      bool            `json:"active"`

	// Banderas de política: informativas, nunca bloquean operaciones.
	BelowMinStock bool `json:"below_min_stock"`
	AboveMaxStock bool `json:"above_max_stock"`
}

// MovementHistoryQuery filtros para GET /api/items/:id/movements.
type MovementHistoryQuery struct {
	From           *time.Time `query:"from"`
	To             *time.Time `query:"to"`
	MovementTypeID *int64     `query:"movement_type_id"`
	UserID         *int64     `query:"user_id"`
	PageRequest
}

// MovementDTO representación HTTP de un movimiento del libro.
type MovementDTO struct {
	ID               int64     `json:"id"`
	ItemID           int64     `json:"item_id"`
	MovementTypeID   int64     `json:"movement_type_id"`
	MovementType     string    `json:"movement_type"`
	QuantityChange   int64     `json:"quantity_change"`
	StockChange      int64     `json:"stock_change"`
	PreviousQuantity int64     `json:"previous_quantity"`
	NewQuantity      int64     `json:"new_quantity"`
	PreviousStock    int64     `json:"previous_stock"`
	NewStock         int64     `json:"new_stock"`
	UserID           int64     `json:"user_id"`
	ReferenceID      *int64    `json:"reference_id,omitempty"`
	ReferenceType    string    `json:"reference_type,omitempty"`
	Notes            string    `json:"notes,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// LedgerAuditResponse resultado de reproducir el libro de un artículo contra
// sus contadores materializados.
type LedgerAuditResponse struct {
	ItemID         int64 `json:"item_id"`
	LedgerQuantity int64 `json:"ledger_quantity"`
	LedgerStock    int64 `json:"ledger_stock"`
	ItemQuantity   int64 `json:"item_quantity"`
	ItemStock      int64 `json:"item_stock"`
	Consistent     bool  `json:"consistent"`
}
