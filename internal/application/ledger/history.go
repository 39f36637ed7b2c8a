package ledger

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
)

// HistoryPage página del historial de un ítem con el cursor de reanudación.
// NextCursor vacío = no hay más páginas.
type HistoryPage struct {
	Entries    []*entity.StockEntry
	NextCursor string
}

// HistoryUseCase lecturas del ledger (sin bloqueo, sobre el pool).
type HistoryUseCase struct {
	entryRepo repository.StockEntryRepository
	itemRepo  repository.StockItemRepository
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(entryRepo repository.StockEntryRepository, itemRepo repository.StockItemRepository) *HistoryUseCase {
	return &HistoryUseCase{entryRepo: entryRepo, itemRepo: itemRepo}
}

// ListForItem historial de un ítem en orden ascendente por (created_at, id),
// paginado por cursor keyset. from/to opcionales acotan por fecha.
func (uc *HistoryUseCase) ListForItem(ctx context.Context, itemID string, from, to *time.Time, limit int, cursor string) (*HistoryPage, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrUnknownItem
	}
	after, err := DecodeCursor(cursor)
	if err != nil {
		return nil, err
	}
	// Pide una entrada extra para saber si hay página siguiente.
	entries, err := uc.entryRepo.ListForItem(ctx, itemID, from, to, after, limit+1)
	if err != nil {
		return nil, err
	}
	page := &HistoryPage{Entries: entries}
	if len(entries) > limit {
		page.Entries = entries[:limit]
		last := page.Entries[len(page.Entries)-1]
		page.NextCursor = EncodeCursor(repository.HistoryCursor{CreatedAt: last.CreatedAt, EntryID: last.ID})
	}
	return page, nil
}

// ListRecent últimos movimientos del ledger, más reciente primero.
func (uc *HistoryUseCase) ListRecent(ctx context.Context, limit int) ([]*entity.StockEntry, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	return uc.entryRepo.ListRecent(ctx, limit)
}
