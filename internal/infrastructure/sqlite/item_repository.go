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

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación de ItemRepository sobre SQLite (usable con pool o tx).
type ItemRepo struct {
	ex *Executor
}

// NewItemRepository construye el adaptador. Pasar un Executor sobre pool o tx.
func NewItemRepository(ex *Executor) *ItemRepo {
	return &ItemRepo{ex: ex}
}

const itemColumns = `id, code, name, description, quantity, stock, min_stock, max_stock,
	cost, price, supplier_id, expires_at, active, created_at, updated_at`

// GetByID obtiene un artículo por id. Devuelve domain.ErrNotFound si no existe.
func (r *ItemRepo) GetByID(id int64) (*entity.InventoryItem, error) {
	return r.getWhere("id = ?", id)
}

// GetByCode obtiene un artículo por su código único.
func (r *ItemRepo) GetByCode(code string) (*entity.InventoryItem, error) {
	return r.getWhere("code = ?", code)
}

func (r *ItemRepo) getWhere(cond string, arg any) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory WHERE ` + cond
	var (
		it          entity.InventoryItem
		cost, price string
	)
	err := r.ex.QueryRowScan(context.Background(), query, []any{arg},
		&it.ID, &it.Code, &it.Name, &it.Description, &it.Quantity, &it.Stock,
		&it.MinStock, &it.MaxStock, &cost, &price, &it.SupplierID, &it.ExpiresAt,
		&it.Active, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	if it.Cost, err = decimal.NewFromString(cost); err != nil {
		return nil, fmt.Errorf("parse item cost: %w", err)
	}
	if it.Price, err = decimal.NewFromString(price); err != nil {
		return nil, fmt.Errorf("parse item price: %w", err)
	}
	return &it, nil
}

// Create inserta un artículo nuevo con sus contadores iniciales en cero.
// Las existencias iniciales entran después por el flujo de Entrada inicial,
// nunca por el INSERT, para que el libro registre el alta.
func (r *ItemRepo) Create(item *entity.InventoryItem) (int64, error) {
	query := `
		INSERT INTO inventory (code, name, description, quantity, stock, min_stock, max_stock,
			cost, price, supplier_id, expires_at, active, created_at, updated_at)
		VALUES (?, ?, ?, 0, 0, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.ex.Exec(context.Background(), query,
		item.Code, item.Name, item.Description, item.MinStock, item.MaxStock,
		item.Cost.String(), item.Price.String(), item.SupplierID, item.ExpiresAt,
		item.Active, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("create item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create item id: %w", err)
	}
	item.ID = id
	return id, nil
}

// UpdateInfo edita los atributos descriptivos del artículo (código, nombre,
// descripción, precios, límites de política, proveedor, vencimiento). Esta es
// la vía sin libro: prohibido tocar quantity/stock desde aquí.
func (r *ItemRepo) UpdateInfo(item *entity.InventoryItem) error {
	query := `
		UPDATE inventory
		SET code = ?, name = ?, description = ?, min_stock = ?, max_stock = ?,
			cost = ?, price = ?, supplier_id = ?, expires_at = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.ex.Exec(context.Background(), query,
		item.Code, item.Name, item.Description, item.MinStock, item.MaxStock,
		item.Cost.String(), item.Price.String(), item.SupplierID, item.ExpiresAt,
		time.Now(), item.ID,
	)
	if err != nil {
		return fmt.Errorf("update item info: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update item info: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Deactivate marca el artículo como inactivo. Nunca hay borrado físico.
func (r *ItemRepo) Deactivate(id int64) error {
	res, err := r.ex.Exec(context.Background(),
		`UPDATE inventory SET active = 0, updated_at = ? WHERE id = ?`, time.Now(), id)
	if err != nil {
		return fmt.Errorf("deactivate item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deactivate item: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ApplyDelta aplica ambos deltas en una sola sentencia condicional: el WHERE
// garantiza que ningún contador quede negativo sin ventana de carrera entre
// lectura y escritura, y RETURNING entrega los valores nuevos en la misma
// operación. Si la sentencia no toca filas se distingue entre artículo
// inexistente (ErrNotFound) y contador insuficiente (ErrInsufficientStock).
func (r *ItemRepo) ApplyDelta(id int64, quantityDelta, stockDelta int64) (*repository.CounterChange, error) {
	query := `
		UPDATE inventory
		SET quantity = quantity + ?, stock = stock + ?, updated_at = ?
		WHERE id = ? AND quantity + ? >= 0 AND stock + ? >= 0
		RETURNING quantity, stock`
	var newQuantity, newStock int64
	err := r.ex.QueryRowScan(context.Background(), query,
		[]any{quantityDelta, stockDelta, time.Now(), id, quantityDelta, stockDelta},
		&newQuantity, &newStock,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if _, getErr := r.GetByID(id); getErr != nil {
				return nil, getErr
			}
			return nil, fmt.Errorf("item %d: %w", id, domain.ErrInsufficientStock)
		}
		return nil, fmt.Errorf("apply delta item %d: %w", id, err)
	}
	return &repository.CounterChange{
		PreviousQuantity: newQuantity - quantityDelta,
		PreviousStock:    newStock - stockDelta,
		NewQuantity:      newQuantity,
		NewStock:         newStock,
	}, nil
}

// ListOutsidePolicyBounds lista artículos activos cuyo stock quedó fuera de
// los límites de política (bajo min_stock o sobre max_stock). Solo reporte:
// los límites son consultivos y nunca bloquean una operación.
func (r *ItemRepo) ListOutsidePolicyBounds() ([]*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory
		WHERE active = 1
		  AND ((min_stock > 0 AND stock < min_stock) OR (max_stock > 0 AND stock > max_stock))
		ORDER BY code`
	rows, err := r.ex.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list items outside bounds: %w", err)
	}
	defer rows.Close()

	var list []*entity.InventoryItem
	for rows.Next() {
		var (
			it          entity.InventoryItem
			cost, price string
		)
		if err := rows.Scan(&it.ID, &it.Code, &it.Name, &it.Description, &it.Quantity,
			&it.Stock, &it.MinStock, &it.MaxStock, &cost, &price, &it.SupplierID,
			&it.ExpiresAt, &it.Active, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		if it.Cost, err = decimal.NewFromString(cost); err != nil {
			return nil, fmt.Errorf("parse item cost: %w", err)
		}
		if it.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("parse item price: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}
