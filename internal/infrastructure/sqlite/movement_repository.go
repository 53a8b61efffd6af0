package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/invorya/pos-ledger/internal/domain"
	"github.com/invorya/pos-ledger/internal/domain/entity"
	"github.com/invorya/pos-ledger/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación de MovementRepository sobre SQLite.
// El libro es append-only: no existe Update ni Delete en este adaptador.
type MovementRepo struct {
	ex *Executor
}

// NewMovementRepository construye el adaptador. Pasar un Executor sobre pool o tx.
func NewMovementRepository(ex *Executor) *MovementRepo {
	return &MovementRepo{ex: ex}
}

const movementColumns = `id, item_id, movement_type_id, quantity_change, stock_change,
	previous_quantity, new_quantity, previous_stock, new_stock,
	user_id, reference_id, reference_type, notes, created_at`

// Append inserta un movimiento y devuelve su id. El caller debe pasar el par
// previo/nuevo leído en la misma operación lógica que actualizó el contador.
func (r *MovementRepo) Append(m *entity.Movement) (int64, error) {
	query := `
		INSERT INTO inventory_movements (item_id, movement_type_id, quantity_change, stock_change,
			previous_quantity, new_quantity, previous_stock, new_stock,
			user_id, reference_id, reference_type, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.ex.Exec(context.Background(), query,
		m.ItemID, m.MovementTypeID, m.QuantityChange, m.StockChange,
		m.PreviousQuantity, m.NewQuantity, m.PreviousStock, m.NewStock,
		m.UserID, m.ReferenceID, m.ReferenceType, m.Notes, m.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("append movement: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("append movement id: %w", err)
	}
	m.ID = id
	return id, nil
}

// GetByID obtiene un movimiento por id.
func (r *MovementRepo) GetByID(id int64) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM inventory_movements WHERE id = ?`
	var m entity.Movement
	err := r.ex.QueryRowScan(context.Background(), query, []any{id},
		&m.ID, &m.ItemID, &m.MovementTypeID, &m.QuantityChange, &m.StockChange,
		&m.PreviousQuantity, &m.NewQuantity, &m.PreviousStock, &m.NewStock,
		&m.UserID, &m.ReferenceID, &m.ReferenceType, &m.Notes, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return &m, nil
}

// ListByItem lista los movimientos de un artículo, más recientes primero.
func (r *MovementRepo) ListByItem(itemID int64, f entity.MovementFilter) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM inventory_movements WHERE item_id = ?`
	args := []any{itemID}
	query, args = applyFilter(query, args, f)
	return r.list(query, args)
}

// ListAll lista movimientos de todos los artículos para reportes.
func (r *MovementRepo) ListAll(f entity.MovementFilter) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM inventory_movements WHERE 1 = 1`
	var args []any
	query, args = applyFilter(query, args, f)
	return r.list(query, args)
}

// ListByReference lista los movimientos causados por un documento de negocio,
// en orden de creación ascendente (el orden de las líneas del documento).
func (r *MovementRepo) ListByReference(referenceType string, referenceID int64) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM inventory_movements
		WHERE reference_type = ? AND reference_id = ? ORDER BY id ASC`
	return r.list(query, []any{referenceType, referenceID})
}

// LastMovementID devuelve el id del movimiento más reciente del artículo, 0 si no tiene.
func (r *MovementRepo) LastMovementID(itemID int64) (int64, error) {
	var id int64
	err := r.ex.QueryRowScan(context.Background(),
		`SELECT COALESCE(MAX(id), 0) FROM inventory_movements WHERE item_id = ?`,
		[]any{itemID}, &id)
	if err != nil {
		return 0, fmt.Errorf("last movement id: %w", err)
	}
	return id, nil
}

// ReplayItem suma los deltas del libro del artículo en orden de creación
// desde (0,0). El resultado debe igualar los contadores materializados en
// inventory; cualquier diferencia delata una inconsistencia del libro.
func (r *MovementRepo) ReplayItem(itemID int64) (int64, int64, error) {
	var quantity, stock int64
	err := r.ex.QueryRowScan(context.Background(),
		`SELECT COALESCE(SUM(quantity_change), 0), COALESCE(SUM(stock_change), 0)
		 FROM inventory_movements WHERE item_id = ?`,
		[]any{itemID}, &quantity, &stock)
	if err != nil {
		return 0, 0, fmt.Errorf("replay item %d: %w", itemID, err)
	}
	return quantity, stock, nil
}

// applyFilter agrega las condiciones del filtro y el ORDER BY descendente.
func applyFilter(query string, args []any, f entity.MovementFilter) (string, []any) {
	if f.From != nil {
		query += " AND created_at >= ?"
		args = append(args, *f.From)
	}
	if f.To != nil {
		query += " AND created_at <= ?"
		args = append(args, *f.To)
	}
	if f.MovementTypeID != nil {
		query += " AND movement_type_id = ?"
		args = append(args, *f.MovementTypeID)
	}
	if f.UserID != nil {
		query += " AND user_id = ?"
		args = append(args, *f.UserID)
	}
	query += " ORDER BY id DESC"
	if f.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, f.Limit, f.Offset)
	}
	return query, args
}

func (r *MovementRepo) list(query string, args []any) ([]*entity.Movement, error) {
	rows, err := r.ex.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.ItemID, &m.MovementTypeID, &m.QuantityChange,
			&m.StockChange, &m.PreviousQuantity, &m.NewQuantity, &m.PreviousStock,
			&m.NewStock, &m.UserID, &m.ReferenceID, &m.ReferenceType, &m.Notes,
			&m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
