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

// SaleUseCase procesa facturas de venta: valida todas las líneas, y dentro de
// una transacción persiste cabecera y detalles, descuenta ambos contadores
// por línea y agrega el movimiento "Venta" que referencia la factura.
type SaleUseCase struct {
	txRunner TxRunner
	itemRepo repository.ItemRepository
	log      *logger.Logger
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(txRunner TxRunner, itemRepo repository.ItemRepository, log *logger.Logger) *SaleUseCase {
	return &SaleUseCase{txRunner: txRunner, itemRepo: itemRepo, log: log}
}

// resolvedLine línea con el artículo ya resuelto y el precio definitivo.
type resolvedLine struct {
	item      *entity.InventoryItem
	quantity  int64
	unitPrice decimal.Decimal
}

// ProcessSale valida la factura completa antes de mutar nada y luego la
// procesa en una sola transacción. Devuelve el id de la factura.
func (uc *SaleUseCase) ProcessSale(ctx context.Context, userID int64, in dto.ProcessSaleRequest) (int64, error) {
	if userID == 0 {
		return 0, domain.ErrUnauthenticated
	}
	if in.CustomerID <= 0 || len(in.Lines) == 0 {
		return 0, domain.ErrValidation
	}

	// Validación completa fuera de la tx: si la línea 3 está mal, no se
	// escribe nada de las líneas 1 y 2.
	lines := make([]resolvedLine, 0, len(in.Lines))
	for i, l := range in.Lines {
		if l.Quantity <= 0 {
			return 0, fmt.Errorf("línea %d: %w", i+1, domain.ErrValidation)
		}
		item, err := resolveItem(uc.itemRepo, l.ItemID, l.ItemCode)
		if err != nil {
			return 0, fmt.Errorf("línea %d: %w", i+1, err)
		}
		if !item.Active {
			return 0, fmt.Errorf("línea %d, artículo %s: %w", i+1, item.Code, domain.ErrItemInactive)
		}
		// Pre-chequeo contra valores actuales; ApplyDelta vuelve a garantizar
		// la no-negatividad de forma atómica dentro de la tx.
		if item.Quantity < l.Quantity || item.Stock < l.Quantity {
			return 0, fmt.Errorf("línea %d, artículo %s: %w", i+1, item.Code, domain.ErrInsufficientStock)
		}
		unitPrice := l.UnitPrice
		if unitPrice.IsZero() {
			unitPrice = item.Price
		}
		if unitPrice.LessThan(decimal.Zero) {
			return 0, fmt.Errorf("línea %d: %w", i+1, domain.ErrValidation)
		}
		lines = append(lines, resolvedLine{item: item, quantity: l.Quantity, unitPrice: unitPrice})
	}

	now := time.Now()
	opID := uuid.NewString()
	var invoiceID int64

	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
		invoiceRepo repository.InvoiceRepository,
		_ repository.PurchaseRepository,
	) error {
		var total decimal.Decimal
		for _, l := range lines {
			total = total.Add(l.unitPrice.Mul(decimal.NewFromInt(l.quantity)))
		}
		inv := &entity.Invoice{
			CustomerID: in.CustomerID,
			Status:     entity.DocumentStatusProcessed,
			Total:      total,
			CreatedBy:  userID,
			CreatedAt:  now,
		}
		id, err := invoiceRepo.Create(inv)
		if err != nil {
			return err
		}
		invoiceID = id

		for i, l := range lines {
			detail := &entity.InvoiceDetail{
				InvoiceID: invoiceID,
				ItemID:    l.item.ID,
				Quantity:  l.quantity,
				UnitPrice: l.unitPrice,
				Subtotal:  l.unitPrice.Mul(decimal.NewFromInt(l.quantity)),
			}
			if _, err := invoiceRepo.CreateDetail(detail); err != nil {
				return fmt.Errorf("factura %d línea %d: %w", invoiceID, i+1, err)
			}
			if err := applyAndRecord(itemRepo, movRepo, movementInput{
				item:           l.item,
				movementTypeID: entity.MovementTypeSale,
				quantityChange: -l.quantity,
				stockChange:    -l.quantity,
				userID:         userID,
				referenceID:    &invoiceID,
				referenceType:  entity.ReferenceInvoice,
				now:            now,
			}); err != nil {
				return fmt.Errorf("factura %d línea %d: %w", invoiceID, i+1, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	uc.log.Info().
		Str("op_id", opID).
		Int64("invoice_id", invoiceID).
		Int64("user_id", userID).
		Int("lines", len(lines)).
		Msg("factura procesada")
	return invoiceID, nil
}
