package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invorya/pos-ledger/internal/application/dto"
	"github.com/invorya/pos-ledger/internal/domain"
	"github.com/invorya/pos-ledger/internal/domain/entity"
	"github.com/invorya/pos-ledger/internal/domain/repository"
	"github.com/invorya/pos-ledger/pkg/logger"
)

// PurchaseUseCase procesa compras a proveedor. En modo físico cada línea sube
// ambos contadores; en modo contable (QuantityOnly) sube solo quantity porque
// la mercancía aún no está disponible para venta. No hay tope superior:
// max_stock es consultivo.
type PurchaseUseCase struct {
	txRunner TxRunner
	itemRepo repository.ItemRepository
	log      *logger.Logger
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(txRunner TxRunner, itemRepo repository.ItemRepository, log *logger.Logger) *PurchaseUseCase {
	return &PurchaseUseCase{txRunner: txRunner, itemRepo: itemRepo, log: log}
}

type resolvedPurchaseLine struct {
	item     *entity.InventoryItem
	quantity int64
	unitCost decimal.Decimal
}

// ProcessPurchase valida todas las líneas y procesa la compra en una sola
// transacción. Devuelve el id de la compra.
func (uc *PurchaseUseCase) ProcessPurchase(ctx context.Context, userID int64, in dto.ProcessPurchaseRequest) (int64, error) {
	if userID == 0 {
		return 0, domain.ErrUnauthenticated
	}
	if in.SupplierID <= 0 || len(in.Lines) == 0 {
		return 0, domain.ErrValidation
	}

	lines := make([]resolvedPurchaseLine, 0, len(in.Lines))
	for i, l := range in.Lines {
		if l.Quantity <= 0 || l.UnitCost.LessThan(decimal.Zero) {
			return 0, fmt.Errorf("línea %d: %w", i+1, domain.ErrValidation)
		}
		item, err := resolveItem(uc.itemRepo, l.ItemID, l.ItemCode)
		if err != nil {
			return 0, fmt.Errorf("línea %d: %w", i+1, err)
		}
		if !item.Active {
			return 0, fmt.Errorf("línea %d, artículo %s: %w", i+1, item.Code, domain.ErrItemInactive)
		}
		lines = append(lines, resolvedPurchaseLine{item: item, quantity: l.Quantity, unitCost: l.UnitCost})
	}

	mode := entity.PurchaseModePhysical
	if in.QuantityOnly {
		mode = entity.PurchaseModeQuantityOnly
	}
	now := time.Now()
	opID := uuid.NewString()
	var purchaseID int64

	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
		_ repository.InvoiceRepository,
		purchaseRepo repository.PurchaseRepository,
	) error {
		var total decimal.Decimal
		for _, l := range lines {
			total = total.Add(l.unitCost.Mul(decimal.NewFromInt(l.quantity)))
		}
		p := &entity.Purchase{
			SupplierID: in.SupplierID,
			Mode:       mode,
			Status:     entity.DocumentStatusProcessed,
			Total:      total,
			CreatedBy:  userID,
			CreatedAt:  now,
		}
		id, err := purchaseRepo.Create(p)
		if err != nil {
			return err
		}
		purchaseID = id

		for i, l := range lines {
			detail := &entity.PurchaseDetail{
				PurchaseID: purchaseID,
				ItemID:     l.item.ID,
				Quantity:   l.quantity,
				UnitCost:   l.unitCost,
				Subtotal:   l.unitCost.Mul(decimal.NewFromInt(l.quantity)),
			}
			if _, err := purchaseRepo.CreateDetail(detail); err != nil {
				return fmt.Errorf("compra %d línea %d: %w", purchaseID, i+1, err)
			}
			stockChange := l.quantity
			if in.QuantityOnly {
				stockChange = 0
			}
			if err := applyAndRecord(itemRepo, movRepo, movementInput{
				item:           l.item,
				movementTypeID: entity.MovementTypePurchase,
				quantityChange: l.quantity,
				stockChange:    stockChange,
				userID:         userID,
				referenceID:    &purchaseID,
				referenceType:  entity.ReferencePurchase,
				now:            now,
			}); err != nil {
				return fmt.Errorf("compra %d línea %d: %w", purchaseID, i+1, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	uc.log.Info().
		Str("op_id", opID).
		Int64("purchase_id", purchaseID).
		Int64("user_id", userID).
		Str("mode", mode).
		Int("lines", len(lines)).
		Msg("compra procesada")
	return purchaseID, nil
}
