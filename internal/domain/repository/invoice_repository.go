package repository

import (
	"time"

	"github.com/invorya/pos-ledger/internal/domain/entity"
)

// InvoiceRepository acceso a facturas de venta y sus detalles.
type InvoiceRepository interface {
	Create(inv *entity.Invoice) (int64, error)
	CreateDetail(d *entity.InvoiceDetail) (int64, error)
	GetByID(id int64) (*entity.Invoice, error)
	GetDetails(invoiceID int64) ([]*entity.InvoiceDetail, error)
	// MarkCancelled transiciona procesada -> anulada. Falla con
	// domain.ErrDocumentCancelled si el documento ya estaba anulado.
	MarkCancelled(id int64, at time.Time) error
}
