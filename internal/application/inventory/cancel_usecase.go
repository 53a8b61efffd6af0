package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/invorya/pos-ledger/internal/domain"
	"github.com/invorya/pos-ledger/internal/domain/entity"
	"github.com/invorya/pos-ledger/internal/domain/repository"
	"github.com/invorya/pos-ledger/pkg/logger"
)

// Tipos de documento anulables.
const (
	DocumentTypeInvoice  = "invoice"
	DocumentTypePurchase = "purchase"
)

// CancelUseCase anula un documento procesado aplicando el delta inverso de
// cada línea por la misma vía contador+libro, dentro de una transacción.
//
// La anulación se rechaza con ErrLedgerConflict si el artículo registró
// movimientos posteriores a los del documento: revertir sobre un estado que
// ya avanzó no restaura nada coherente. Quien necesite corregir en ese caso
// debe usar un ajuste manual compensatorio.
type CancelUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
}

// NewCancelUseCase construye el caso de uso.
func NewCancelUseCase(txRunner TxRunner, log *logger.Logger) *CancelUseCase {
	return &CancelUseCase{txRunner: txRunner, log: log}
}

// CancelDocument anula la factura o compra indicada. La reversión puede
// fallar con ErrInsufficientStock (p. ej. el stock vendido ya se consumió por
// otra vía); en ese caso el documento queda activo.
func (uc *CancelUseCase) CancelDocument(ctx context.Context, userID int64, documentType string, documentID int64) error {
	if userID == 0 {
		return domain.ErrUnauthenticated
	}
	if documentID <= 0 {
		return domain.ErrValidation
	}

	now := time.Now()
	opID := uuid.NewString()

	var err error
	switch documentType {
	case DocumentTypeInvoice:
		err = uc.cancelInvoice(ctx, userID, documentID, now)
	case DocumentTypePurchase:
		err = uc.cancelPurchase(ctx, userID, documentID, now)
	default:
		return fmt.Errorf("tipo de documento %q: %w", documentType, domain.ErrValidation)
	}
	if err != nil {
		return err
	}

	uc.log.Info().
		Str("op_id", opID).
		Str("document_type", documentType).
		Int64("document_id", documentID).
		Int64("user_id", userID).
		Msg("documento anulado")
	return nil
}

func (uc *CancelUseCase) cancelInvoice(ctx context.Context, userID, invoiceID int64, now time.Time) error {
	return uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
		invoiceRepo repository.InvoiceRepository,
		_ repository.PurchaseRepository,
	) error {
		inv, err := invoiceRepo.GetByID(invoiceID)
		if err != nil {
			return err
		}
		if inv.Status == entity.DocumentStatusCancelled {
			return domain.ErrDocumentCancelled
		}
		details, err := invoiceRepo.GetDetails(invoiceID)
		if err != nil {
			return err
		}
		if err := uc.checkNoLaterMovements(movRepo, entity.ReferenceInvoice, invoiceID); err != nil {
			return err
		}
		for i, d := range details {
			item, err := itemRepo.GetByID(d.ItemID)
			if err != nil {
				return err
			}
			// Inversa de la venta: ambos contadores suben.
			if err := applyAndRecord(itemRepo, movRepo, movementInput{
				item:           item,
				movementTypeID: entity.MovementTypeAdjustmentPos,
				quantityChange: d.Quantity,
				stockChange:    d.Quantity,
				userID:         userID,
				referenceID:    &invoiceID,
				referenceType:  entity.ReferenceInvoiceCancellation,
				notes:          fmt.Sprintf("anulación de factura %d", invoiceID),
				now:            now,
			}); err != nil {
				return fmt.Errorf("anulación factura %d línea %d: %w", invoiceID, i+1, err)
			}
		}
		return invoiceRepo.MarkCancelled(invoiceID, now)
	})
}

func (uc *CancelUseCase) cancelPurchase(ctx context.Context, userID, purchaseID int64, now time.Time) error {
	return uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
		_ repository.InvoiceRepository,
		purchaseRepo repository.PurchaseRepository,
	) error {
		p, err := purchaseRepo.GetByID(purchaseID)
		if err != nil {
			return err
		}
		if p.Status == entity.DocumentStatusCancelled {
			return domain.ErrDocumentCancelled
		}
		details, err := purchaseRepo.GetDetails(purchaseID)
		if err != nil {
			return err
		}
		if err := uc.checkNoLaterMovements(movRepo, entity.ReferencePurchase, purchaseID); err != nil {
			return err
		}
		for i, d := range details {
			item, err := itemRepo.GetByID(d.ItemID)
			if err != nil {
				return err
			}
			// Inversa de la compra: los contadores bajan; en modo contable el
			// stock nunca subió, así que tampoco baja.
			stockChange := -d.Quantity
			if p.Mode == entity.PurchaseModeQuantityOnly {
				stockChange = 0
			}
			if err := applyAndRecord(itemRepo, movRepo, movementInput{
				item:           item,
				movementTypeID: entity.MovementTypeAdjustmentNeg,
				quantityChange: -d.Quantity,
				stockChange:    stockChange,
				userID:         userID,
				referenceID:    &purchaseID,
				referenceType:  entity.ReferencePurchaseCancellation,
				notes:          fmt.Sprintf("anulación de compra %d", purchaseID),
				now:            now,
			}); err != nil {
				return fmt.Errorf("anulación compra %d línea %d: %w", purchaseID, i+1, err)
			}
		}
		return purchaseRepo.MarkCancelled(purchaseID, now)
	})
}

// checkNoLaterMovements rechaza la anulación si algún artículo del documento
// tiene movimientos más recientes que los que el propio documento produjo.
func (uc *CancelUseCase) checkNoLaterMovements(movRepo repository.MovementRepository, referenceType string, documentID int64) error {
	own, err := movRepo.ListByReference(referenceType, documentID)
	if err != nil {
		return err
	}
	lastOwn := make(map[int64]int64, len(own))
	for _, m := range own {
		if m.ID > lastOwn[m.ItemID] {
			lastOwn[m.ItemID] = m.ID
		}
	}
	for itemID, ownID := range lastOwn {
		lastID, err := movRepo.LastMovementID(itemID)
		if err != nil {
			return err
		}
		if lastID > ownID {
			return fmt.Errorf("artículo %d: %w", itemID, domain.ErrLedgerConflict)
		}
	}
	return nil
}
