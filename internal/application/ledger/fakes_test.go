package ledger_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-ledger-api/internal/application/ledger"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// memStore almacén en memoria compartido por los repos fake.
type memStore struct {
	mu      sync.Mutex
	items   map[string]*entity.StockItem
	entries []*entity.StockEntry
	notes   []*entity.ReconciliationNote
}

func newMemStore() *memStore {
	return &memStore{items: map[string]*entity.StockItem{}}
}

func (s *memStore) addItem(item *entity.StockItem) {
	s.items[item.ID] = item
}

// fakeTxRunner emula la transacción con un mutex: igual que el bloqueo de
// fila en PostgreSQL, serializa las secciones críticas concurrentes.
type fakeTxRunner struct {
	store *memStore
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	itemRepo repository.StockItemRepository,
	entryRepo repository.StockEntryRepository,
	noteRepo repository.ReconciliationNoteRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return fn(&fakeItemRepo{store: r.store}, &fakeEntryRepo{store: r.store}, &fakeNoteRepo{store: r.store})
}

// fakeItemRepo acceso directo al memStore; el locking lo aporta el runner.
type fakeItemRepo struct {
	store *memStore
}

func (r *fakeItemRepo) Create(_ context.Context, item *entity.StockItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	r.store.items[item.ID] = item
	return nil
}

func (r *fakeItemRepo) GetByID(_ context.Context, id string) (*entity.StockItem, error) {
	item, ok := r.store.items[id]
	if !ok {
		return nil, nil
	}
	clone := *item
	return &clone, nil
}

func (r *fakeItemRepo) GetBySKU(_ context.Context, sku string) (*entity.StockItem, error) {
	for _, item := range r.store.items {
		if item.SKU == sku {
			clone := *item
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeItemRepo) List(_ context.Context, limit, offset int) ([]*entity.StockItem, error) {
	var list []*entity.StockItem
	for _, item := range r.store.items {
		clone := *item
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].SKU < list[j].SKU })
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (r *fakeItemRepo) ListIDs(_ context.Context) ([]string, error) {
	var ids []string
	for id := range r.store.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *fakeItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockItem, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeItemRepo) UpdateStock(_ context.Context, id string, quantity int64) error {
	item, ok := r.store.items[id]
	if !ok {
		return domain.ErrUnknownItem
	}
	item.CurrentStock = quantity
	item.UpdatedAt = time.Now()
	return nil
}

type fakeEntryRepo struct {
	store *memStore
}

func (r *fakeEntryRepo) Create(_ context.Context, entry *entity.StockEntry) error {
	if entry.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		entry.ID = id.String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	r.store.entries = append(r.store.entries, entry)
	return nil
}

func (r *fakeEntryRepo) ListForItem(_ context.Context, itemID string, from, to *time.Time, after *repository.HistoryCursor, limit int) ([]*entity.StockEntry, error) {
	var list []*entity.StockEntry
	for _, e := range r.store.entries {
		if e.ItemID != itemID {
			continue
		}
		if from != nil && e.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && e.CreatedAt.After(*to) {
			continue
		}
		list = append(list, e)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
	if after != nil {
		idx := 0
		for idx < len(list) {
			e := list[idx]
			if e.CreatedAt.After(after.CreatedAt) ||
				(e.CreatedAt.Equal(after.CreatedAt) && e.ID > after.EntryID) {
				break
			}
			idx++
		}
		list = list[idx:]
	}
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (r *fakeEntryRepo) ListRecent(_ context.Context, limit int) ([]*entity.StockEntry, error) {
	list := append([]*entity.StockEntry(nil), r.store.entries...)
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (r *fakeEntryRepo) SumQuantityChange(_ context.Context, itemID string) (int64, error) {
	var sum int64
	for _, e := range r.store.entries {
		if e.ItemID == itemID {
			sum += e.QuantityChange
		}
	}
	return sum, nil
}

type fakeNoteRepo struct {
	store *memStore
}

func (r *fakeNoteRepo) Create(_ context.Context, note *entity.ReconciliationNote) error {
	if note.ID == "" {
		note.ID = uuid.NewString()
	}
	r.store.notes = append(r.store.notes, note)
	return nil
}

func (r *fakeNoteRepo) ListForItem(_ context.Context, itemID string, limit int) ([]*entity.ReconciliationNote, error) {
	var list []*entity.ReconciliationNote
	for _, n := range r.store.notes {
		if n.ItemID == itemID {
			list = append(list, n)
		}
	}
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

// Verificación de contratos de los fakes.
var (
	_ ledger.TxRunner                         = (*fakeTxRunner)(nil)
	_ repository.StockItemRepository          = (*fakeItemRepo)(nil)
	_ repository.StockEntryRepository         = (*fakeEntryRepo)(nil)
	_ repository.ReconciliationNoteRepository = (*fakeNoteRepo)(nil)
)
