package sqlite

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invorya/pos-ledger/internal/domain"
	"github.com/invorya/pos-ledger/internal/domain/entity"
)

func TestItemRepository_CreateYGet(t *testing.T) {
	ex := newTestExecutor(t)
	repo := NewItemRepository(ex)

	now := time.Now()
	supplier := int64(7)
	item := &entity.InventoryItem{
		Code:        "CAF-001",
		Name:        "Café molido 500g",
		Description: "Tostado medio",
		MinStock:    5,
		MaxStock:    100,
		Cost:        decimal.RequireFromString("8.50"),
		Price:       decimal.RequireFromString("12.90"),
		SupplierID:  &supplier,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	id, err := repo.Create(item)
	require.NoError(t, err)
	require.NotZero(t, id)

	got, err := repo.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, "CAF-001", got.Code)
	assert.Equal(t, "Café molido 500g", got.Name)
	assert.True(t, got.Cost.Equal(decimal.RequireFromString("8.50")), "el costo debe sobrevivir el viaje por TEXT")
	assert.True(t, got.Price.Equal(decimal.RequireFromString("12.90")))
	require.NotNil(t, got.SupplierID)
	assert.Equal(t, int64(7), *got.SupplierID)

	// El INSERT siempre arranca con contadores en cero.
	assert.Zero(t, got.Quantity)
	assert.Zero(t, got.Stock)

	byCode, err := repo.GetByCode("CAF-001")
	require.NoError(t, err)
	assert.Equal(t, id, byCode.ID)
}

func TestItemRepository_GetInexistente(t *testing.T) {
	repo := NewItemRepository(newTestExecutor(t))

	_, err := repo.GetByID(999)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.GetByCode("NADA")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItemRepository_CodigoDuplicado(t *testing.T) {
	ex := newTestExecutor(t)
	repo := NewItemRepository(ex)
	seedItem(t, ex, "DUP-01", 0, 0)

	now := time.Now()
	_, err := repo.Create(&entity.InventoryItem{
		Code: "DUP-01", Name: "Otro", Active: true, CreatedAt: now, UpdatedAt: now,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorageConstraint,
		"el código es único: duplicarlo debe clasificarse como constraint")
}

// ──────────────────────────────────────────────────────────────────────────────
// ApplyDelta — la única vía que muta contadores
// ──────────────────────────────────────────────────────────────────────────────

func TestItemRepository_ApplyDelta_DevuelvePrevioYNuevo(t *testing.T) {
	ex := newTestExecutor(t)
	repo := NewItemRepository(ex)
	item := seedItem(t, ex, "DELTA-01", 100, 100)

	change, err := repo.ApplyDelta(item.ID, -10, -10)
	require.NoError(t, err)
	assert.Equal(t, int64(100), change.PreviousQuantity)
	assert.Equal(t, int64(100), change.PreviousStock)
	assert.Equal(t, int64(90), change.NewQuantity)
	assert.Equal(t, int64(90), change.NewStock)

	got, err := repo.GetByID(item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(90), got.Quantity)
	assert.Equal(t, int64(90), got.Stock)
}

func TestItemRepository_ApplyDelta_DeltasIndependientes(t *testing.T) {
	ex := newTestExecutor(t)
	repo := NewItemRepository(ex)
	item := seedItem(t, ex, "DELTA-02", 50, 50)

	// Solo stock: quantity queda intacta.
	change, err := repo.ApplyDelta(item.ID, 0, -5)
	require.NoError(t, err)
	assert.Equal(t, int64(50), change.NewQuantity)
	assert.Equal(t, int64(45), change.NewStock)
}

func TestItemRepository_ApplyDelta_InsuficienteNoMuta(t *testing.T) {
	ex := newTestExecutor(t)
	repo := NewItemRepository(ex)
	item := seedItem(t, ex, "DELTA-03", 3, 3)

	_, err := repo.ApplyDelta(item.ID, -5, -5)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, err := repo.GetByID(item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Quantity, "un delta rechazado no debe tocar quantity")
	assert.Equal(t, int64(3), got.Stock, "un delta rechazado no debe tocar stock")
}

// Basta con que UN contador quede negativo para rechazar ambos deltas.
func TestItemRepository_ApplyDelta_UnContadorInsuficienteRechazaTodo(t *testing.T) {
	ex := newTestExecutor(t)
	repo := NewItemRepository(ex)
	item := seedItem(t, ex, "DELTA-04", 10, 2)

	_, err := repo.ApplyDelta(item.ID, -5, -5)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, err := repo.GetByID(item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), got.Quantity)
	assert.Equal(t, int64(2), got.Stock)
}

func TestItemRepository_ApplyDelta_ArticuloInexistente(t *testing.T) {
	repo := NewItemRepository(newTestExecutor(t))

	_, err := repo.ApplyDelta(999, 1, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound,
		"artículo inexistente debe distinguirse de contador insuficiente")
}

// ──────────────────────────────────────────────────────────────────────────────
// Vía sin libro y política de stock
// ──────────────────────────────────────────────────────────────────────────────

func TestItemRepository_UpdateInfo_NoTocaContadores(t *testing.T) {
	ex := newTestExecutor(t)
	repo := NewItemRepository(ex)
	item := seedItem(t, ex, "UPD-01", 40, 40)

	item.Name = "Nombre nuevo"
	item.Price = decimal.RequireFromString("99.99")
	require.NoError(t, repo.UpdateInfo(item))

	got, err := repo.GetByID(item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Nombre nuevo", got.Name)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("99.99")))
	assert.Equal(t, int64(40), got.Quantity, "la edición descriptiva no pasa por contadores")
	assert.Equal(t, int64(40), got.Stock)
}

func TestItemRepository_Deactivate(t *testing.T) {
	ex := newTestExecutor(t)
	repo := NewItemRepository(ex)
	item := seedItem(t, ex, "OFF-01", 0, 0)

	require.NoError(t, repo.Deactivate(item.ID))

	got, err := repo.GetByID(item.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)

	assert.ErrorIs(t, repo.Deactivate(999), domain.ErrNotFound)
}

func TestItemRepository_ListOutsidePolicyBounds(t *testing.T) {
	ex := newTestExecutor(t)
	repo := NewItemRepository(ex)

	now := time.Now()
	low := &entity.InventoryItem{Code: "LOW-01", Name: "Bajo mínimo", MinStock: 10, Active: true, CreatedAt: now, UpdatedAt: now}
	_, err := repo.Create(low)
	require.NoError(t, err)
	_, err = repo.ApplyDelta(low.ID, 3, 3)
	require.NoError(t, err)

	high := &entity.InventoryItem{Code: "HIGH-01", Name: "Sobre máximo", MaxStock: 5, Active: true, CreatedAt: now, UpdatedAt: now}
	_, err = repo.Create(high)
	require.NoError(t, err)
	_, err = repo.ApplyDelta(high.ID, 20, 20)
	require.NoError(t, err)

	ok := &entity.InventoryItem{Code: "OK-01", Name: "Dentro de límites", MinStock: 1, MaxStock: 50, Active: true, CreatedAt: now, UpdatedAt: now}
	_, err = repo.Create(ok)
	require.NoError(t, err)
	_, err = repo.ApplyDelta(ok.ID, 10, 10)
	require.NoError(t, err)

	list, err := repo.ListOutsidePolicyBounds()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "HIGH-01", list[0].Code, "orden por código")
	assert.Equal(t, "LOW-01", list[1].Code)
}
