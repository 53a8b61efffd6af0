package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/invorya/pos-ledger/internal/application/inventory"
	"github.com/invorya/pos-ledger/internal/domain"
	"github.com/invorya/pos-ledger/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción SQLite. Cada documento
// (factura, compra, ajuste, anulación) corre completo dentro de una
// transacción: detalle, actualización de contadores y fila del libro se
// confirman o revierten juntos.
type TxRunner struct {
	db       *sql.DB
	attempts int
	backoff  time.Duration
}

// NewTxRunner construye el runner. attempts/backoff aplican a cada sentencia
// dentro de la transacción y al propio BEGIN.
func NewTxRunner(db *sql.DB, attempts int, backoff time.Duration) *TxRunner {
	if attempts <= 0 {
		attempts = DefaultRetryAttempts
	}
	if backoff <= 0 {
		backoff = DefaultRetryBackoff
	}
	return &TxRunner{db: db, attempts: attempts, backoff: backoff}
}

// Run inicia una transacción, ejecuta fn con repos atados a esa tx y hace
// Commit o Rollback. El BEGIN se reintenta con la misma política que las
// sentencias porque SQLite también puede responder busy al abrir la tx.
func (r *TxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
	invoiceRepo repository.InvoiceRepository,
	purchaseRepo repository.PurchaseRepository,
) error) error {
	tx, err := r.begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	ex := NewExecutor(tx, r.attempts, r.backoff)
	itemRepo := NewItemRepository(ex)
	movRepo := NewMovementRepository(ex)
	invoiceRepo := NewInvoiceRepository(ex)
	purchaseRepo := NewPurchaseRepository(ex)

	if err := fn(itemRepo, movRepo, invoiceRepo, purchaseRepo); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *TxRunner) begin(ctx context.Context) (*sql.Tx, error) {
	var last error
	for attempt := 1; attempt <= r.attempts; attempt++ {
		tx, err := r.db.BeginTx(ctx, nil)
		if err == nil {
			return tx, nil
		}
		if !isBusy(err) {
			return nil, err
		}
		last = err
		if attempt == r.attempts {
			break
		}
		select {
		case <-time.After(time.Duration(attempt) * r.backoff):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, fmt.Errorf("%w (último error: %v)", domain.ErrStorageContention, last)
}
