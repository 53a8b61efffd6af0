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

// Venta de 10 sobre 100: ambos contadores bajan a 90 y el libro asienta el
// movimiento con la foto previa/nueva y la referencia a la factura.
func TestProcessSale_DescuentaContadoresYAsientaMovimiento(t *testing.T) {
	env := newTestEnv(t)
	itemID := env.createItem(t, "VTA-01", 100)

	invoiceID, err := env.sales.ProcessSale(context.Background(), testUserID, dto.ProcessSaleRequest{
		CustomerID: 1,
		Lines: []dto.SaleLine{
			{ItemID: itemID, Quantity: 10, UnitPrice: decimal.RequireFromString("12.50")},
		},
	})
	require.NoError(t, err)
	require.NotZero(t, invoiceID)

	quantity, stock := env.counters(t, itemID)
	assert.Equal(t, int64(90), quantity)
	assert.Equal(t, int64(90), stock)

	movements, err := env.movementRepo.ListByReference(entity.ReferenceInvoice, invoiceID)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	m := movements[0]
	assert.Equal(t, entity.MovementTypeSale, m.MovementTypeID)
	assert.Equal(t, int64(-10), m.QuantityChange)
	assert.Equal(t, int64(-10), m.StockChange)
	assert.Equal(t, int64(100), m.PreviousQuantity)
	assert.Equal(t, int64(90), m.NewQuantity)
	assert.Equal(t, int64(100), m.PreviousStock)
	assert.Equal(t, int64(90), m.NewStock)
	assert.Equal(t, testUserID, m.UserID)

	inv, err := env.invoiceRepo.GetByID(invoiceID)
	require.NoError(t, err)
	assert.Equal(t, entity.DocumentStatusProcessed, inv.Status)
	assert.True(t, inv.Total.Equal(decimal.RequireFromString("125")), "total = 10 x 12.50")
}

// Línea sin precio: se factura al precio del artículo.
func TestProcessSale_PrecioPorDefecto(t *testing.T) {
	env := newTestEnv(t)
	itemID := env.createItem(t, "VTA-02", 50) // precio 15

	invoiceID, err := env.sales.ProcessSale(context.Background(), testUserID, dto.ProcessSaleRequest{
		CustomerID: 1,
		Lines:      []dto.SaleLine{{ItemID: itemID, Quantity: 4}},
	})
	require.NoError(t, err)

	inv, err := env.invoiceRepo.GetByID(invoiceID)
	require.NoError(t, err)
	assert.True(t, inv.Total.Equal(decimal.RequireFromString("60")), "total = 4 x 15")
}

// Stock insuficiente: la venta falla completa, contadores intactos, libro sin
// filas nuevas y sin factura creada.
func TestProcessSale_StockInsuficienteNoEscribeNada(t *testing.T) {
	env := newTestEnv(t)
	itemID := env.createItem(t, "VTA-03", 5)

	before := env.movementCount(t, itemID)
	_, err := env.sales.ProcessSale(context.Background(), testUserID, dto.ProcessSaleRequest{
		CustomerID: 1,
		Lines:      []dto.SaleLine{{ItemID: itemID, Quantity: 10}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	quantity, stock := env.counters(t, itemID)
	assert.Equal(t, int64(5), quantity, "la venta rechazada no debe tocar quantity")
	assert.Equal(t, int64(5), stock)
	assert.Equal(t, before, env.movementCount(t, itemID), "sin filas nuevas en el libro")
}

// Una línea inválida aborta la factura completa: las líneas válidas anteriores
// tampoco se aplican.
func TestProcessSale_LineaInvalidaAbortaTodo(t *testing.T) {
	env := newTestEnv(t)
	okID := env.createItem(t, "VTA-04", 100)

	_, err := env.sales.ProcessSale(context.Background(), testUserID, dto.ProcessSaleRequest{
		CustomerID: 1,
		Lines: []dto.SaleLine{
			{ItemID: okID, Quantity: 5},
			{ItemCode: "NO-EXISTE", Quantity: 1},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	quantity, stock := env.counters(t, okID)
	assert.Equal(t, int64(100), quantity)
	assert.Equal(t, int64(100), stock)
}

func TestProcessSale_ArticuloInactivo(t *testing.T) {
	env := newTestEnv(t)
	itemID := env.createItem(t, "VTA-05", 20)
	require.NoError(t, env.items.DeactivateItem(context.Background(), testUserID, itemID))

	_, err := env.sales.ProcessSale(context.Background(), testUserID, dto.ProcessSaleRequest{
		CustomerID: 1,
		Lines:      []dto.SaleLine{{ItemID: itemID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrItemInactive)
}

func TestProcessSale_SinSesion(t *testing.T) {
	env := newTestEnv(t)
	itemID := env.createItem(t, "VTA-06", 20)

	_, err := env.sales.ProcessSale(context.Background(), 0, dto.ProcessSaleRequest{
		CustomerID: 1,
		Lines:      []dto.SaleLine{{ItemID: itemID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestProcessSale_Validacion(t *testing.T) {
	env := newTestEnv(t)
	itemID := env.createItem(t, "VTA-07", 20)

	cases := []struct {
		name string
		in   dto.ProcessSaleRequest
	}{
		{"sin cliente", dto.ProcessSaleRequest{Lines: []dto.SaleLine{{ItemID: itemID, Quantity: 1}}}},
		{"sin líneas", dto.ProcessSaleRequest{CustomerID: 1}},
		{"cantidad cero", dto.ProcessSaleRequest{CustomerID: 1, Lines: []dto.SaleLine{{ItemID: itemID}}}},
		{"línea sin artículo", dto.ProcessSaleRequest{CustomerID: 1, Lines: []dto.SaleLine{{Quantity: 1}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.sales.ProcessSale(context.Background(), testUserID, tc.in)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

// Varias líneas sobre el mismo artículo consumen de forma acumulada dentro de
// la misma transacción.
func TestProcessSale_VariasLineasMismoArticulo(t *testing.T) {
	env := newTestEnv(t)
	itemID := env.createItem(t, "VTA-08", 10)

	_, err := env.sales.ProcessSale(context.Background(), testUserID, dto.ProcessSaleRequest{
		CustomerID: 1,
		Lines: []dto.SaleLine{
			{ItemID: itemID, Quantity: 4},
			{ItemID: itemID, Quantity: 3},
		},
	})
	require.NoError(t, err)

	quantity, stock := env.counters(t, itemID)
	assert.Equal(t, int64(3), quantity)
	assert.Equal(t, int64(3), stock)
}
