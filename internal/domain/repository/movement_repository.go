package repository

import "github.com/invorya/pos-ledger/internal/domain/entity"

// MovementRepository acceso al libro de movimientos (append-only).
//
// Append nunca actualiza filas existentes; el invariante previo/nuevo lo
// garantiza el orquestador, que pasa el CounterChange leído en la misma
// transacción. Los listados ordenan por fecha de creación descendente.
type MovementRepository interface {
	Append(m *entity.Movement) (int64, error)
	GetByID(id int64) (*entity.Movement, error)
	ListByItem(itemID int64, f entity.MovementFilter) ([]*entity.Movement, error)
	ListAll(f entity.MovementFilter) ([]*entity.Movement, error)
	ListByReference(referenceType string, referenceID int64) ([]*entity.Movement, error)
	// LastMovementID devuelve el id del movimiento más reciente del artículo
	// (0 si no tiene). Se usa para detectar movimientos posteriores a un
	// documento antes de permitir su anulación.
	LastMovementID(itemID int64) (int64, error)
	// ReplayItem recorre el libro del artículo en orden de creación y suma
	// los deltas desde (0,0); el resultado debe coincidir con los contadores
	// actuales del artículo.
	ReplayItem(itemID int64) (quantity, stock int64, err error)
}
