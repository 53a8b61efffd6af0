package inventory

import (
	"context"

	"github.com/invorya/pos-ledger/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Cada documento corre completo en una
// transacción: o se confirman detalle, contadores y libro, o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
		invoiceRepo repository.InvoiceRepository,
		purchaseRepo repository.PurchaseRepository,
	) error) error
}
