package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/invorya/pos-ledger/internal/domain"
	"github.com/invorya/pos-ledger/internal/domain/entity"
	"github.com/invorya/pos-ledger/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository sobre SQLite.
type InvoiceRepo struct {
	ex *Executor
}

// NewInvoiceRepository construye el adaptador. Pasar un Executor sobre pool o tx.
func NewInvoiceRepository(ex *Executor) *InvoiceRepo {
	return &InvoiceRepo{ex: ex}
}

// Create inserta la cabecera de la factura y devuelve su id.
func (r *InvoiceRepo) Create(inv *entity.Invoice) (int64, error) {
	query := `
		INSERT INTO invoices (customer_id, status, total, created_by, created_at)
		VALUES (?, ?, ?, ?, ?)`
	res, err := r.ex.Exec(context.Background(), query,
		inv.CustomerID, inv.Status, inv.Total.String(), inv.CreatedBy, inv.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("create invoice: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create invoice id: %w", err)
	}
	inv.ID = id
	return id, nil
}

// CreateDetail inserta una línea de detalle.
func (r *InvoiceRepo) CreateDetail(d *entity.InvoiceDetail) (int64, error) {
	query := `
		INSERT INTO invoice_details (invoice_id, item_id, quantity, unit_price, subtotal)
		VALUES (?, ?, ?, ?, ?)`
	res, err := r.ex.Exec(context.Background(), query,
		d.InvoiceID, d.ItemID, d.Quantity, d.UnitPrice.String(), d.Subtotal.String())
	if err != nil {
		return 0, fmt.Errorf("create invoice detail: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create invoice detail id: %w", err)
	}
	d.ID = id
	return id, nil
}

// GetByID obtiene la cabecera de una factura.
func (r *InvoiceRepo) GetByID(id int64) (*entity.Invoice, error) {
	query := `
		SELECT id, customer_id, status, total, created_by, created_at, cancelled_at
		FROM invoices WHERE id = ?`
	var (
		inv   entity.Invoice
		total string
	)
	err := r.ex.QueryRowScan(context.Background(), query, []any{id},
		&inv.ID, &inv.CustomerID, &inv.Status, &total, &inv.CreatedBy,
		&inv.CreatedAt, &inv.CancelledAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	if inv.Total, err = decimal.NewFromString(total); err != nil {
		return nil, fmt.Errorf("parse invoice total: %w", err)
	}
	return &inv, nil
}

// GetDetails lista las líneas de una factura en su orden original.
func (r *InvoiceRepo) GetDetails(invoiceID int64) ([]*entity.InvoiceDetail, error) {
	query := `
		SELECT id, invoice_id, item_id, quantity, unit_price, subtotal
		FROM invoice_details WHERE invoice_id = ? ORDER BY id ASC`
	rows, err := r.ex.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("get invoice details: %w", err)
	}
	defer rows.Close()

	var list []*entity.InvoiceDetail
	for rows.Next() {
		var (
			d                   entity.InvoiceDetail
			unitPrice, subtotal string
		)
		if err := rows.Scan(&d.ID, &d.InvoiceID, &d.ItemID, &d.Quantity, &unitPrice, &subtotal); err != nil {
			return nil, fmt.Errorf("scan invoice detail: %w", err)
		}
		if d.UnitPrice, err = decimal.NewFromString(unitPrice); err != nil {
			return nil, fmt.Errorf("parse detail unit price: %w", err)
		}
		if d.Subtotal, err = decimal.NewFromString(subtotal); err != nil {
			return nil, fmt.Errorf("parse detail subtotal: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// MarkCancelled transiciona procesada -> anulada. El WHERE sobre status hace
// la transición atómica: si no toca filas, el documento no existe o ya estaba
// anulado, y se distingue consultando la cabecera.
func (r *InvoiceRepo) MarkCancelled(id int64, at time.Time) error {
	res, err := r.ex.Exec(context.Background(),
		`UPDATE invoices SET status = ?, cancelled_at = ? WHERE id = ? AND status = ?`,
		entity.DocumentStatusCancelled, at, id, entity.DocumentStatusProcessed)
	if err != nil {
		return fmt.Errorf("cancel invoice: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("cancel invoice: %w", err)
	}
	if n == 0 {
		if _, getErr := r.GetByID(id); getErr != nil {
			return getErr
		}
		return domain.ErrDocumentCancelled
	}
	return nil
}
