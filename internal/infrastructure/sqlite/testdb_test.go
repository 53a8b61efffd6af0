package sqlite

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/invorya/pos-ledger/internal/domain/entity"
	"github.com/invorya/pos-ledger/pkg/config"
)

// newTestDB abre una base en memoria con el esquema migrado y el catálogo
// de tipos de movimiento sembrado.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	cfg := config.DBConfig{
		Path:          ":memory:",
		BusyTimeout:   5 * time.Second,
		RetryAttempts: 3,
		RetryBackoff:  time.Millisecond,
	}
	db, err := Open(context.Background(), cfg)
	require.NoError(t, err, "debe abrir la base en memoria")
	t.Cleanup(func() { db.Close() })
	require.NoError(t, Migrate(context.Background(), db), "debe migrar el esquema")
	return db
}

func newTestExecutor(t *testing.T) *Executor {
	t.Helper()
	return NewExecutor(newTestDB(t), 3, time.Millisecond)
}

// seedItem crea un artículo y, si se piden existencias, las aplica vía
// ApplyDelta para respetar el INSERT con contadores en cero.
func seedItem(t *testing.T, ex *Executor, code string, quantity, stock int64) *entity.InventoryItem {
	t.Helper()
	repo := NewItemRepository(ex)
	now := time.Now()
	item := &entity.InventoryItem{
		Code:      code,
		Name:      "Artículo " + code,
		Cost:      decimal.NewFromInt(10),
		Price:     decimal.NewFromInt(15),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := repo.Create(item)
	require.NoError(t, err, "debe crearse el artículo de prueba")
	if quantity != 0 || stock != 0 {
		_, err = repo.ApplyDelta(item.ID, quantity, stock)
		require.NoError(t, err)
		item.Quantity, item.Stock = quantity, stock
	}
	return item
}
