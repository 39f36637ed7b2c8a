package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// StockItemRepository puerto de persistencia para ítems de stock.
// CurrentStock solo se escribe vía UpdateStock dentro de la transacción
// de append del ledger (GetForUpdate bloquea la fila antes).
type StockItemRepository interface {
	Create(ctx context.Context, item *entity.StockItem) error
	GetByID(ctx context.Context, id string) (*entity.StockItem, error)
	GetBySKU(ctx context.Context, sku string) (*entity.StockItem, error)
	List(ctx context.Context, limit, offset int) ([]*entity.StockItem, error)
	ListIDs(ctx context.Context) ([]string, error)
	// GetForUpdate bloquea la fila del ítem (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.StockItem, error)
	UpdateStock(ctx context.Context, id string, quantity int64) error
}
