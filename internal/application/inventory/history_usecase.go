package inventory

import (
	"context"

	"github.com/invorya/pos-ledger/internal/application/dto"
	"github.com/invorya/pos-ledger/internal/domain/entity"
	"github.com/invorya/pos-ledger/internal/domain/repository"
)

// HistoryUseCase lecturas del libro de movimientos para pantallas de reporte.
// Solo proyecciones: nada aquí muta estado.
type HistoryUseCase struct {
	itemRepo repository.ItemRepository
	movRepo  repository.MovementRepository
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(itemRepo repository.ItemRepository, movRepo repository.MovementRepository) *HistoryUseCase {
	return &HistoryUseCase{itemRepo: itemRepo, movRepo: movRepo}
}

// GetMovementHistory lista los movimientos de un artículo, más recientes
// primero. Falla con ErrNotFound si el artículo no existe.
func (uc *HistoryUseCase) GetMovementHistory(ctx context.Context, itemID int64, f entity.MovementFilter) ([]*entity.Movement, error) {
	if _, err := uc.itemRepo.GetByID(itemID); err != nil {
		return nil, err
	}
	return uc.movRepo.ListByItem(itemID, f)
}

// ListAllMovements lista movimientos de todo el inventario para reportes.
func (uc *HistoryUseCase) ListAllMovements(ctx context.Context, f entity.MovementFilter) ([]*entity.Movement, error) {
	return uc.movRepo.ListAll(f)
}

// VerifyLedger reproduce el libro del artículo desde (0,0) y lo compara con
// los contadores materializados en inventory. Consistent en false delata que
// alguien mutó contadores por fuera de los orquestadores.
func (uc *HistoryUseCase) VerifyLedger(ctx context.Context, itemID int64) (*dto.LedgerAuditResponse, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	quantity, stock, err := uc.movRepo.ReplayItem(itemID)
	if err != nil {
		return nil, err
	}
	return &dto.LedgerAuditResponse{
		ItemID:         itemID,
		LedgerQuantity: quantity,
		LedgerStock:    stock,
		ItemQuantity:   item.Quantity,
		ItemStock:      item.Stock,
		Consistent:     quantity == item.Quantity && stock == item.Stock,
	}, nil
}

// ToMovementDTO proyecta un movimiento a su representación HTTP con el nombre
// del tipo resuelto desde el catálogo.
func ToMovementDTO(m *entity.Movement) dto.MovementDTO {
	name := ""
	if mt, ok := entity.MovementTypeByID(m.MovementTypeID); ok {
		name = mt.Name
	}
	return dto.MovementDTO{
		ID:               m.ID,
		ItemID:           m.ItemID,
		MovementTypeID:   m.MovementTypeID,
		MovementType:     name,
		QuantityChange:   m.QuantityChange,
		StockChange:      m.StockChange,
		PreviousQuantity: m.PreviousQuantity,
		NewQuantity:      m.NewQuantity,
		PreviousStock:    m.PreviousStock,
		NewStock:         m.NewStock,
		UserID:           m.UserID,
		ReferenceID:      m.ReferenceID,
		ReferenceType:    m.ReferenceType,
		Notes:            m.Notes,
		CreatedAt:        m.CreatedAt,
	}
}
