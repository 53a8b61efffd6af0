package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/invorya/pos-ledger/internal/application/dto"
	"github.com/invorya/pos-ledger/internal/domain"
	"github.com/invorya/pos-ledger/internal/domain/entity"
	"github.com/invorya/pos-ledger/internal/domain/repository"
	"github.com/invorya/pos-ledger/pkg/logger"
)

// AdjustmentUseCase procesa ajustes manuales: el caller entrega deltas
// explícitos con signo y una nota obligatoria que queda asentada textual en
// el movimiento. Un ajuste no tiene documento propio: su rastro es la fila
// del libro, y su id es lo que se devuelve.
type AdjustmentUseCase struct {
	txRunner TxRunner
	itemRepo repository.ItemRepository
	log      *logger.Logger
}

// NewAdjustmentUseCase construye el caso de uso.
func NewAdjustmentUseCase(txRunner TxRunner, itemRepo repository.ItemRepository, log *logger.Logger) *AdjustmentUseCase {
	return &AdjustmentUseCase{txRunner: txRunner, itemRepo: itemRepo, log: log}
}

// ProcessAdjustment aplica el ajuste y devuelve el id del movimiento creado.
// Ambos deltas deben mantener los contadores no negativos; signos mezclados
// (uno sube, el otro baja) se rechazan porque el modo del ajuste es uno solo:
// positivo o negativo.
func (uc *AdjustmentUseCase) ProcessAdjustment(ctx context.Context, userID int64, in dto.ProcessAdjustmentRequest) (int64, error) {
	if userID == 0 {
		return 0, domain.ErrUnauthenticated
	}
	if strings.TrimSpace(in.Notes) == "" {
		return 0, fmt.Errorf("nota obligatoria en ajustes: %w", domain.ErrValidation)
	}
	if in.QuantityChange == 0 && in.StockChange == 0 {
		return 0, domain.ErrValidation
	}
	if in.QuantityChange > 0 && in.StockChange < 0 || in.QuantityChange < 0 && in.StockChange > 0 {
		return 0, fmt.Errorf("deltas con signos opuestos: %w", domain.ErrValidation)
	}

	item, err := resolveItem(uc.itemRepo, in.ItemID, in.ItemCode)
	if err != nil {
		return 0, err
	}
	if !item.Active {
		return 0, fmt.Errorf("artículo %s: %w", item.Code, domain.ErrItemInactive)
	}

	movementTypeID := entity.MovementTypeAdjustmentPos
	if in.QuantityChange < 0 || in.StockChange < 0 {
		movementTypeID = entity.MovementTypeAdjustmentNeg
	}
	if in.MovementTypeID != 0 {
		// Tipos ligados a documentos solo entran por su orquestador.
		switch in.MovementTypeID {
		case entity.MovementTypeSale, entity.MovementTypePurchase, entity.MovementTypeInitialEntry:
			return 0, fmt.Errorf("tipo de movimiento reservado a documentos: %w", domain.ErrValidation)
		}
		if _, ok := entity.MovementTypeByID(in.MovementTypeID); !ok {
			return 0, fmt.Errorf("tipo de movimiento %d: %w", in.MovementTypeID, domain.ErrValidation)
		}
		movementTypeID = in.MovementTypeID
	}

	now := time.Now()
	opID := uuid.NewString()
	var movementID int64

	err = uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
		_ repository.InvoiceRepository,
		_ repository.PurchaseRepository,
	) error {
		mt, _ := entity.MovementTypeByID(movementTypeID)
		if in.QuantityChange != 0 && !mt.AffectsQuantity || in.StockChange != 0 && !mt.AffectsStock {
			return domain.ErrValidation
		}
		change, err := itemRepo.ApplyDelta(item.ID, in.QuantityChange, in.StockChange)
		if err != nil {
			return err
		}
		id, err := movRepo.Append(&entity.Movement{
			ItemID:           item.ID,
			MovementTypeID:   movementTypeID,
			QuantityChange:   in.QuantityChange,
			StockChange:      in.StockChange,
			PreviousQuantity: change.PreviousQuantity,
			NewQuantity:      change.NewQuantity,
			PreviousStock:    change.PreviousStock,
			NewStock:         change.NewStock,
			UserID:           userID,
			Notes:            in.Notes,
			CreatedAt:        now,
		})
		if err != nil {
			return err
		}
		movementID = id
		return nil
	})
	if err != nil {
		return 0, err
	}

	uc.log.Info().
		Str("op_id", opID).
		Int64("movement_id", movementID).
		Int64("item_id", item.ID).
		Int64("user_id", userID).
		Int64("quantity_change", in.QuantityChange).
		Int64("stock_change", in.StockChange).
		Msg("ajuste manual procesado")
	return movementID, nil
}
