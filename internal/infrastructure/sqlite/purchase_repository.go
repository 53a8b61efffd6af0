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

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación de PurchaseRepository sobre SQLite.
type PurchaseRepo struct {
	ex *Executor
}

// NewPurchaseRepository construye el adaptador. Pasar un Executor sobre pool o tx.
func NewPurchaseRepository(ex *Executor) *PurchaseRepo {
	return &PurchaseRepo{ex: ex}
}

// Create inserta la cabecera de la compra y devuelve su id.
func (r *PurchaseRepo) Create(p *entity.Purchase) (int64, error) {
	query := `
		INSERT INTO purchases (supplier_id, mode, status, total, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.ex.Exec(context.Background(), query,
		p.SupplierID, p.Mode, p.Status, p.Total.String(), p.CreatedBy, p.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("create purchase: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create purchase id: %w", err)
	}
	p.ID = id
	return id, nil
}

// CreateDetail inserta una línea de detalle.
func (r *PurchaseRepo) CreateDetail(d *entity.PurchaseDetail) (int64, error) {
	query := `
		INSERT INTO purchase_details (purchase_id, item_id, quantity, unit_cost, subtotal)
		VALUES (?, ?, ?, ?, ?)`
	res, err := r.ex.Exec(context.Background(), query,
		d.PurchaseID, d.ItemID, d.Quantity, d.UnitCost.String(), d.Subtotal.String())
	if err != nil {
		return 0, fmt.Errorf("create purchase detail: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create purchase detail id: %w", err)
	}
	d.ID = id
	return id, nil
}

// GetByID obtiene la cabecera de una compra.
func (r *PurchaseRepo) GetByID(id int64) (*entity.Purchase, error) {
	query := `
		SELECT id, supplier_id, mode, status, total, created_by, created_at, cancelled_at
		FROM purchases WHERE id = ?`
	var (
		p     entity.Purchase
		total string
	)
	err := r.ex.QueryRowScan(context.Background(), query, []any{id},
		&p.ID, &p.SupplierID, &p.Mode, &p.Status, &total, &p.CreatedBy,
		&p.CreatedAt, &p.CancelledAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	if p.Total, err = decimal.NewFromString(total); err != nil {
		return nil, fmt.Errorf("parse purchase total: %w", err)
	}
	return &p, nil
}

// GetDetails lista las líneas de una compra en su orden original.
func (r *PurchaseRepo) GetDetails(purchaseID int64) ([]*entity.PurchaseDetail, error) {
	query := `
		SELECT id, purchase_id, item_id, quantity, unit_cost, subtotal
		FROM purchase_details WHERE purchase_id = ? ORDER BY id ASC`
	rows, err := r.ex.Query(context.Background(), query, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("get purchase details: %w", err)
	}
	defer rows.Close()

	var list []*entity.PurchaseDetail
	for rows.Next() {
		var (
			d                  entity.PurchaseDetail
			unitCost, subtotal string
		)
		if err := rows.Scan(&d.ID, &d.PurchaseID, &d.ItemID, &d.Quantity, &unitCost, &subtotal); err != nil {
			return nil, fmt.Errorf("scan purchase detail: %w", err)
		}
		if d.UnitCost, err = decimal.NewFromString(unitCost); err != nil {
			return nil, fmt.Errorf("parse detail unit cost: %w", err)
		}
		if d.Subtotal, err = decimal.NewFromString(subtotal); err != nil {
			return nil, fmt.Errorf("parse detail subtotal: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// MarkCancelled transiciona procesada -> anulada, igual que en facturas.
func (r *PurchaseRepo) MarkCancelled(id int64, at time.Time) error {
	res, err := r.ex.Exec(context.Background(),
		`UPDATE purchases SET status = ?, cancelled_at = ? WHERE id = ? AND status = ?`,
		entity.DocumentStatusCancelled, at, id, entity.DocumentStatusProcessed)
	if err != nil {
		return fmt.Errorf("cancel purchase: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("cancel purchase: %w", err)
	}
	if n == 0 {
		if _, getErr := r.GetByID(id); getErr != nil {
			return getErr
		}
		return domain.ErrDocumentCancelled
	}
	return nil
}
