// Package items contiene el caso de uso del catálogo de ítems de stock.
package items

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// CreateItemInput entrada para registrar un ítem nuevo.
type CreateItemInput struct {
	ProductID        string
	VariantID        *string
	SKU              string
	Name             string
	Category         string
	UnitCost         decimal.Decimal
	BackorderAllowed bool
}

// UseCase operaciones del catálogo. El stock NO se toca por aquí: todo
// cambio de cantidad pasa por el ledger.
type UseCase struct {
	itemRepo repository.StockItemRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(itemRepo repository.StockItemRepository) *UseCase {
	return &UseCase{itemRepo: itemRepo}
}

// Create registra un ítem con stock inicial cero. El SKU es único; un
// duplicado devuelve ErrDuplicate.
func (uc *UseCase) Create(ctx context.Context, input CreateItemInput) (*entity.StockItem, error) {
	input.SKU = strings.TrimSpace(input.SKU)
	input.Name = strings.TrimSpace(input.Name)
	if input.ProductID == "" || input.SKU == "" || input.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.UnitCost.IsNegative() {
		return nil, fmt.Errorf("%w: costo unitario negativo", domain.ErrInvalidInput)
	}
	item := &entity.StockItem{
		ProductID:        input.ProductID,
		VariantID:        input.VariantID,
		SKU:              input.SKU,
		Name:             input.Name,
		Category:         input.Category,
		CurrentStock:     0,
		UnitCost:         input.UnitCost,
		BackorderAllowed: input.BackorderAllowed,
		UpdatedAt:        time.Now(),
	}
	if err := uc.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Get devuelve un ítem por ID.
func (uc *UseCase) Get(ctx context.Context, id string) (*entity.StockItem, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrUnknownItem
	}
	return item, nil
}

// GetBySKU devuelve un ítem por SKU.
func (uc *UseCase) GetBySKU(ctx context.Context, sku string) (*entity.StockItem, error) {
	item, err := uc.itemRepo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrUnknownItem
	}
	return item, nil
}

// List pagina el catálogo.
func (uc *UseCase) List(ctx context.Context, limit, offset int) ([]*entity.StockItem, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return uc.itemRepo.List(ctx, limit, offset)
}

// GetCurrentStock lectura rápida de la proyección (sin plegar el ledger).
func (uc *UseCase) GetCurrentStock(ctx context.Context, id string) (int64, error) {
	item, err := uc.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	return item.CurrentStock, nil
}
