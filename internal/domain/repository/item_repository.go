package repository

import "github.com/invorya/pos-ledger/internal/domain/entity"

// CounterChange es el resultado de aplicar un delta sobre los contadores de
// un artículo: valores previos y nuevos leídos en la misma sentencia.
type CounterChange struct {
	PreviousQuantity int64
	PreviousStock    int64
	NewQuantity      int64
	NewStock         int64
}

// ItemRepository acceso al almacén de contadores (tabla inventory).
//
// ApplyDelta es la única vía de mutación de Quantity/Stock: una sola sentencia
// UPDATE condicional que falla con domain.ErrInsufficientStock si algún
// contador quedaría negativo, sin ventana de lectura-modificación-escritura.
// UpdateInfo edita atributos descriptivos y jamás toca los contadores.
type ItemRepository interface {
	GetByID(id int64) (*entity.InventoryItem, error)
	GetByCode(code string) (*entity.InventoryItem, error)
	Create(item *entity.InventoryItem) (int64, error)
	UpdateInfo(item *entity.InventoryItem) error
	Deactivate(id int64) error
	ApplyDelta(id int64, quantityDelta, stockDelta int64) (*CounterChange, error)
	ListOutsidePolicyBounds() ([]*entity.InventoryItem, error)
}
