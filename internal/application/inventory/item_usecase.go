package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invorya/pos-ledger/internal/application/dto"
	"github.com/invorya/pos-ledger/internal/domain"
	"github.com/invorya/pos-ledger/internal/domain/entity"
	"github.com/invorya/pos-ledger/internal/domain/repository"
	"github.com/invorya/pos-ledger/pkg/logger"
)

// ItemUseCase gestiona el ciclo de vida de los artículos: alta con Entrada
// inicial, edición de atributos descriptivos (vía sin libro) y desactivación.
type ItemUseCase struct {
	txRunner TxRunner
	itemRepo repository.ItemRepository
	log      *logger.Logger
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(txRunner TxRunner, itemRepo repository.ItemRepository, log *logger.Logger) *ItemUseCase {
	return &ItemUseCase{txRunner: txRunner, itemRepo: itemRepo, log: log}
}

// CreateItem da de alta un artículo. El INSERT arranca con contadores en
// cero; si hay existencias iniciales se aplican con un movimiento "Entrada
// inicial" dentro de la misma transacción, para que el libro registre el alta
// desde el primer día.
func (uc *ItemUseCase) CreateItem(ctx context.Context, userID int64, in dto.CreateItemRequest) (int64, error) {
	if userID == 0 {
		return 0, domain.ErrUnauthenticated
	}
	if strings.TrimSpace(in.Code) == "" || strings.TrimSpace(in.Name) == "" {
		return 0, domain.ErrValidation
	}
	if in.InitialQuantity < 0 || in.InitialStock < 0 || in.MinStock < 0 || in.MaxStock < 0 {
		return 0, domain.ErrValidation
	}
	if in.Price.LessThan(decimal.Zero) || in.Cost.LessThan(decimal.Zero) {
		return 0, domain.ErrValidation
	}
	// El stock inicial no puede superar lo que se posee.
	if in.InitialStock > in.InitialQuantity {
		return 0, fmt.Errorf("stock inicial mayor que cantidad inicial: %w", domain.ErrValidation)
	}

	now := time.Now()
	opID := uuid.NewString()
	var itemID int64

	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
		_ repository.InvoiceRepository,
		_ repository.PurchaseRepository,
	) error {
		item := &entity.InventoryItem{
			Code:        strings.TrimSpace(in.Code),
			Name:        strings.TrimSpace(in.Name),
			Description: in.Description,
			MinStock:    in.MinStock,
			MaxStock:    in.MaxStock,
			Cost:        in.Cost,
			Price:       in.Price,
			SupplierID:  in.SupplierID,
			ExpiresAt:   in.ExpiresAt,
			Active:      true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		id, err := itemRepo.Create(item)
		if err != nil {
			return err
		}
		itemID = id

		if in.InitialQuantity > 0 || in.InitialStock > 0 {
			if err := applyAndRecord(itemRepo, movRepo, movementInput{
				item:           item,
				movementTypeID: entity.MovementTypeInitialEntry,
				quantityChange: in.InitialQuantity,
				stockChange:    in.InitialStock,
				userID:         userID,
				notes:          "alta de artículo",
				now:            now,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	uc.log.Info().
		Str("op_id", opID).
		Int64("item_id", itemID).
		Int64("user_id", userID).
		Msg("artículo creado")
	return itemID, nil
}

// UpdateItem edita atributos descriptivos. Nunca pasa por el libro ni toca
// los contadores.
func (uc *ItemUseCase) UpdateItem(ctx context.Context, userID, itemID int64, in dto.UpdateItemRequest) error {
	if userID == 0 {
		return domain.ErrUnauthenticated
	}
	if strings.TrimSpace(in.Code) == "" || strings.TrimSpace(in.Name) == "" {
		return domain.ErrValidation
	}
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return err
	}
	item.Code = strings.TrimSpace(in.Code)
	item.Name = strings.TrimSpace(in.Name)
	item.Description = in.Description
	item.MinStock = in.MinStock
	item.MaxStock = in.MaxStock
	item.Cost = in.Cost
	item.Price = in.Price
	item.SupplierID = in.SupplierID
	item.ExpiresAt = in.ExpiresAt
	return uc.itemRepo.UpdateInfo(item)
}

// DeactivateItem desactiva el artículo (nunca se borra físicamente).
func (uc *ItemUseCase) DeactivateItem(ctx context.Context, userID, itemID int64) error {
	if userID == 0 {
		return domain.ErrUnauthenticated
	}
	return uc.itemRepo.Deactivate(itemID)
}

// GetItem obtiene un artículo por id.
func (uc *ItemUseCase) GetItem(ctx context.Context, itemID int64) (*entity.InventoryItem, error) {
	return uc.itemRepo.GetByID(itemID)
}

// GetItemByCode obtiene un artículo por su código único.
func (uc *ItemUseCase) GetItemByCode(ctx context.Context, code string) (*entity.InventoryItem, error) {
	return uc.itemRepo.GetByCode(code)
}

// ListPolicyViolations lista artículos con stock fuera de los límites
// min_stock/max_stock. Solo reporte: los límites no bloquean operaciones.
func (uc *ItemUseCase) ListPolicyViolations(ctx context.Context) ([]*entity.InventoryItem, error) {
	return uc.itemRepo.ListOutsidePolicyBounds()
}

// ToItemDTO proyecta un artículo a su representación HTTP.
func ToItemDTO(i *entity.InventoryItem) dto.ItemResponse {
	return dto.ItemResponse{
		ID:            i.ID,
		Code:          i.Code,
		Name:          i.Name,
		Description:   i.Description,
		Quantity:      i.Quantity,
		Stock:         i.Stock,
		MinStock:      i.MinStock,
		MaxStock:      i.MaxStock,
		Cost:          i.Cost,
		Price:         i.Price,
		SupplierID:    i.SupplierID,
		ExpiresAt:     i.ExpiresAt,
		Active:        i.Active,
		BelowMinStock: i.BelowMinStock(),
		AboveMaxStock: i.AboveMaxStock(),
	}
}
