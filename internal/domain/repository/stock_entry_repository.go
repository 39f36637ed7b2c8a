package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// HistoryCursor posición de reanudación para el escaneo del historial:
// clave compuesta (created_at, id) para evitar huecos y duplicados entre
// páginas aunque varias entradas compartan el mismo timestamp.
type HistoryCursor struct {
	CreatedAt time.Time
	EntryID   string
}

// StockEntryRepository puerto de persistencia del ledger (append-only).
// No existen Update ni Delete: las correcciones son nuevas entradas.
type StockEntryRepository interface {
	Create(ctx context.Context, entry *entity.StockEntry) error
	// ListForItem escaneo keyset ascendente por (created_at, id), reanudable
	// desde after. from/to acotan por created_at; nil = sin límite.
	ListForItem(ctx context.Context, itemID string, from, to *time.Time, after *HistoryCursor, limit int) ([]*entity.StockEntry, error)
	ListRecent(ctx context.Context, limit int) ([]*entity.StockEntry, error)
	// SumQuantityChange pliega el ledger completo de un ítem (reconciliación).
	SumQuantityChange(ctx context.Context, itemID string) (int64, error)
}
