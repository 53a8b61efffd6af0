package inventory_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/invorya/pos-ledger/internal/application/dto"
	"github.com/invorya/pos-ledger/internal/application/inventory"
	"github.com/invorya/pos-ledger/internal/domain/entity"
	"github.com/invorya/pos-ledger/internal/domain/repository"
	"github.com/invorya/pos-ledger/internal/infrastructure/sqlite"
	"github.com/invorya/pos-ledger/pkg/config"
	"github.com/invorya/pos-ledger/pkg/logger"
)

const testUserID = int64(1)

// testEnv arma los casos de uso sobre una base SQLite en memoria, con la
// misma tubería ejecutor + tx runner que usa el binario real.
type testEnv struct {
	db           *sql.DB
	itemRepo     repository.ItemRepository
	movementRepo repository.MovementRepository
	invoiceRepo  repository.InvoiceRepository
	purchaseRepo repository.PurchaseRepository

	items       *inventory.ItemUseCase
	sales       *inventory.SaleUseCase
	purchases   *inventory.PurchaseUseCase
	adjustments *inventory.AdjustmentUseCase
	cancels     *inventory.CancelUseCase
	history     *inventory.HistoryUseCase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := config.DBConfig{
		Path:          ":memory:",
		BusyTimeout:   5 * time.Second,
		RetryAttempts: 3,
		RetryBackoff:  time.Millisecond,
	}
	db, err := sqlite.Open(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sqlite.Migrate(context.Background(), db))

	ex := sqlite.NewExecutor(db, cfg.RetryAttempts, cfg.RetryBackoff)
	txRunner := sqlite.NewTxRunner(db, cfg.RetryAttempts, cfg.RetryBackoff)
	log := logger.New(logger.Config{Env: "production", Level: "error"})

	itemRepo := sqlite.NewItemRepository(ex)
	movementRepo := sqlite.NewMovementRepository(ex)
	return &testEnv{
		db:           db,
		itemRepo:     itemRepo,
		movementRepo: movementRepo,
		invoiceRepo:  sqlite.NewInvoiceRepository(ex),
		purchaseRepo: sqlite.NewPurchaseRepository(ex),
		items:        inventory.NewItemUseCase(txRunner, itemRepo, log),
		sales:        inventory.NewSaleUseCase(txRunner, itemRepo, log),
		purchases:    inventory.NewPurchaseUseCase(txRunner, itemRepo, log),
		adjustments:  inventory.NewAdjustmentUseCase(txRunner, itemRepo, log),
		cancels:      inventory.NewCancelUseCase(txRunner, log),
		history:      inventory.NewHistoryUseCase(itemRepo, movementRepo),
	}
}

// createItem da de alta un artículo con existencias iniciales por el flujo
// completo de Entrada inicial.
func (e *testEnv) createItem(t *testing.T, code string, initial int64) int64 {
	t.Helper()
	id, err := e.items.CreateItem(context.Background(), testUserID, dto.CreateItemRequest{
		Code:            code,
		Name:            "Artículo " + code,
		InitialQuantity: initial,
		InitialStock:    initial,
		Cost:            decimal.RequireFromString("10"),
		Price:           decimal.RequireFromString("15"),
	})
	require.NoError(t, err)
	return id
}

// sell procesa una factura de una línea sobre el artículo.
func (e *testEnv) sell(t *testing.T, itemID, quantity int64) int64 {
	t.Helper()
	invoiceID, err := e.sales.ProcessSale(context.Background(), testUserID, dto.ProcessSaleRequest{
		CustomerID: 1,
		Lines:      []dto.SaleLine{{ItemID: itemID, Quantity: quantity}},
	})
	require.NoError(t, err)
	return invoiceID
}

// buy procesa una compra de una línea, física o contable.
func (e *testEnv) buy(t *testing.T, itemID, quantity int64, quantityOnly bool) int64 {
	t.Helper()
	purchaseID, err := e.purchases.ProcessPurchase(context.Background(), testUserID, dto.ProcessPurchaseRequest{
		SupplierID:   3,
		QuantityOnly: quantityOnly,
		Lines:        []dto.PurchaseLine{{ItemID: itemID, Quantity: quantity, UnitCost: decimal.RequireFromString("8")}},
	})
	require.NoError(t, err)
	return purchaseID
}

// counters lee los contadores actuales del artículo.
func (e *testEnv) counters(t *testing.T, itemID int64) (int64, int64) {
	t.Helper()
	item, err := e.itemRepo.GetByID(itemID)
	require.NoError(t, err)
	return item.Quantity, item.Stock
}

// movementCount cuenta las filas del libro del artículo.
func (e *testEnv) movementCount(t *testing.T, itemID int64) int {
	t.Helper()
	list, err := e.movementRepo.ListByItem(itemID, entity.MovementFilter{})
	require.NoError(t, err)
	return len(list)
}
