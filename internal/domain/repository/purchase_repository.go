package repository

import (
	"time"

	"github.com/invorya/pos-ledger/internal/domain/entity"
)

// PurchaseRepository acceso a compras a proveedor y sus detalles.
type PurchaseRepository interface {
	Create(p *entity.Purchase) (int64, error)
	CreateDetail(d *entity.PurchaseDetail) (int64, error)
	GetByID(id int64) (*entity.Purchase, error)
	GetDetails(purchaseID int64) ([]*entity.PurchaseDetail, error)
	// MarkCancelled transiciona procesada -> anulada. Falla con
	// domain.ErrDocumentCancelled si el documento ya estaba anulado.
	MarkCancelled(id int64, at time.Time) error
}
