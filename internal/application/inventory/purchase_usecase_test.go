package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invorya/pos-ledger/internal/application/dto"
	"github.com/invorya/pos-ledger/internal/domain"
	"github.com/invorya/pos-ledger/internal/domain/entity"
)

func TestProcessPurchase_FisicaSubeAmbosContadores(t *testing.T) {
	env := newTestEnv(t)
	itemID := env.createItem(t, "CMP-01", 10)

	purchaseID, err := env.purchases.ProcessPurchase(context.Background(), testUserID, dto.ProcessPurchaseRequest{
		SupplierID: 3,
		Lines: []dto.PurchaseLine{
			{ItemID: itemID, Quantity: 25, UnitCost: decimal.RequireFromString("8")},
		},
	})
	require.NoError(t, err)
	require.NotZero(t, purchaseID)

	quantity, stock := env.counters(t, itemID)
	assert.Equal(t, int64(35), quantity)
	assert.Equal(t, int64(35), stock)

	p, err := env.purchaseRepo.GetByID(purchaseID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseModePhysical, p.Mode)
	assert.Equal(t, entity.DocumentStatusProcessed, p.Status)
	assert.True(t, p.Total.Equal(decimal.RequireFromString("200")), "total = 25 x 8")

	movements, err := env.movementRepo.ListByReference(entity.ReferencePurchase, purchaseID)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, entity.MovementTypePurchase, movements[0].MovementTypeID)
	assert.Equal(t, int64(25), movements[0].QuantityChange)
	assert.Equal(t, int64(25), movements[0].StockChange)
}

// Compra contable: sube quantity, stock queda intacto porque la mercancía aún
// no es vendible.
func TestProcessPurchase_ContableNoTocaStock(t *testing.T) {
	env := newTestEnv(t)
	itemID := env.createItem(t, "CMP-02", 10)

	purchaseID, err := env.purchases.ProcessPurchase(context.Background(), testUserID, dto.ProcessPurchaseRequest{
		SupplierID:   3,
		QuantityOnly: true,
		Lines: []dto.PurchaseLine{
			{ItemID: itemID, Quantity: 15, UnitCost: decimal.RequireFromString("8")},
		},
	})
	require.NoError(t, err)

	quantity, stock := env.counters(t, itemID)
	assert.Equal(t, int64(25), quantity)
	assert.Equal(t, int64(10), stock, "modo contable no toca stock")

	p, err := env.purchaseRepo.GetByID(purchaseID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseModeQuantityOnly, p.Mode)

	movements, err := env.movementRepo.ListByReference(entity.ReferencePurchase, purchaseID)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, int64(15), movements[0].QuantityChange)
	assert.Zero(t, movements[0].StockChange)
}

// No hay tope superior: comprar por encima de max_stock procede igual.
func TestProcessPurchase_MaxStockNoBloquea(t *testing.T) {
	env := newTestEnv(t)
	itemID := env.createItem(t, "CMP-03", 10)
	item, err := env.itemRepo.GetByID(itemID)
	require.NoError(t, err)
	item.MaxStock = 12
	require.NoError(t, env.itemRepo.UpdateInfo(item))

	_, err = env.purchases.ProcessPurchase(context.Background(), testUserID, dto.ProcessPurchaseRequest{
		SupplierID: 3,
		Lines: []dto.PurchaseLine{
			{ItemID: itemID, Quantity: 100, UnitCost: decimal.RequireFromString("1")},
		},
	})
	require.NoError(t, err, "max_stock es consultivo, no un tope")

	quantity, _ := env.counters(t, itemID)
	assert.Equal(t, int64(110), quantity)
}

func TestProcessPurchase_Validacion(t *testing.T) {
	env := newTestEnv(t)
	itemID := env.createItem(t, "CMP-04", 0)

	cases := []struct {
		name string
		in   dto.ProcessPurchaseRequest
	}{
		{"sin proveedor", dto.ProcessPurchaseRequest{Lines: []dto.PurchaseLine{{ItemID: itemID, Quantity: 1}}}},
		{"sin líneas", dto.ProcessPurchaseRequest{SupplierID: 3}},
		{"cantidad cero", dto.ProcessPurchaseRequest{SupplierID: 3, Lines: []dto.PurchaseLine{{ItemID: itemID}}}},
		{"costo negativo", dto.ProcessPurchaseRequest{SupplierID: 3, Lines: []dto.PurchaseLine{
			{ItemID: itemID, Quantity: 1, UnitCost: decimal.RequireFromString("-1")},
		}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.purchases.ProcessPurchase(context.Background(), testUserID, tc.in)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestProcessPurchase_ArticuloInactivo(t *testing.T) {
	env := newTestEnv(t)
	itemID := env.createItem(t, "CMP-05", 0)
	require.NoError(t, env.items.DeactivateItem(context.Background(), testUserID, itemID))

	_, err := env.purchases.ProcessPurchase(context.Background(), testUserID, dto.ProcessPurchaseRequest{
		SupplierID: 3,
		Lines:      []dto.PurchaseLine{{ItemID: itemID, Quantity: 1, UnitCost: decimal.RequireFromString("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrItemInactive)
}
