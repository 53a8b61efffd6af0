package inventory

import (
	"fmt"
	"time"

	"github.com/invorya/pos-ledger/internal/domain"
	"github.com/invorya/pos-ledger/internal/domain/entity"
	"github.com/invorya/pos-ledger/internal/domain/repository"
)

// resolveItem resuelve una referencia de línea por id o por código.
func resolveItem(itemRepo repository.ItemRepository, id int64, code string) (*entity.InventoryItem, error) {
	switch {
	case id > 0:
		return itemRepo.GetByID(id)
	case code != "":
		return itemRepo.GetByCode(code)
	default:
		return nil, domain.ErrValidation
	}
}

// movementInput parámetros para aplicar un delta y asentarlo en el libro.
type movementInput struct {
	item           *entity.InventoryItem
	movementTypeID int64
	quantityChange int64
	stockChange    int64
	userID         int64
	referenceID    *int64
	referenceType  string
	notes          string
	now            time.Time
}

// applyAndRecord es el paso central de todo orquestador: consulta el tipo de
// movimiento para verificar qué contadores permite tocar, aplica el delta
// condicional sobre inventory y agrega la fila del libro con el par
// previo/nuevo devuelto por la misma sentencia. Debe ejecutarse dentro de la
// transacción del documento.
func applyAndRecord(itemRepo repository.ItemRepository, movRepo repository.MovementRepository, in movementInput) error {
	mt, ok := entity.MovementTypeByID(in.movementTypeID)
	if !ok {
		return fmt.Errorf("tipo de movimiento %d: %w", in.movementTypeID, domain.ErrValidation)
	}
	if in.quantityChange != 0 && !mt.AffectsQuantity {
		return fmt.Errorf("tipo %q no afecta quantity: %w", mt.Name, domain.ErrValidation)
	}
	if in.stockChange != 0 && !mt.AffectsStock {
		return fmt.Errorf("tipo %q no afecta stock: %w", mt.Name, domain.ErrValidation)
	}

	change, err := itemRepo.ApplyDelta(in.item.ID, in.quantityChange, in.stockChange)
	if err != nil {
		return err
	}
	_, err = movRepo.Append(&entity.Movement{
		ItemID:           in.item.ID,
		MovementTypeID:   in.movementTypeID,
		QuantityChange:   in.quantityChange,
		StockChange:      in.stockChange,
		PreviousQuantity: change.PreviousQuantity,
		NewQuantity:      change.NewQuantity,
		PreviousStock:    change.PreviousStock,
		NewStock:         change.NewStock,
		UserID:           in.userID,
		ReferenceID:      in.referenceID,
		ReferenceType:    in.referenceType,
		Notes:            in.notes,
		CreatedAt:        in.now,
	})
	return err
}
