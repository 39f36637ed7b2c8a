package purchasing_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-ledger-api/internal/application/purchasing"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// memStore almacén en memoria para los tests de órdenes de compra.
type memStore struct {
	mu      sync.Mutex
	items   map[string]*entity.StockItem
	entries []*entity.StockEntry
	orders  map[string]*entity.PurchaseOrder
}

func newMemStore() *memStore {
	return &memStore{
		items:  map[string]*entity.StockItem{},
		orders: map[string]*entity.PurchaseOrder{},
	}
}

// fakeReceivingTxRunner serializa las recepciones con un mutex, igual que
// el bloqueo de cabecera en PostgreSQL. Con lockLog registra el orden en
// que se toman los locks de fila de ítems.
type fakeReceivingTxRunner struct {
	store   *memStore
	lockLog *[]string
}

var _ purchasing.ReceivingTxRunner = (*fakeReceivingTxRunner)(nil)

func (r *fakeReceivingTxRunner) RunReceiving(_ context.Context, fn func(
	itemRepo repository.StockItemRepository,
	entryRepo repository.StockEntryRepository,
	orderRepo repository.PurchaseOrderRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	// Copia de trabajo: si fn falla, nada de lo escrito se conserva
	// (emula el rollback de la transacción).
	snapshot := r.store.clone()
	err := fn(&fakeItemRepo{store: r.store, lockLog: r.lockLog}, &fakeEntryRepo{store: r.store}, &fakeOrderRepo{store: r.store})
	if err != nil {
		r.store.restore(snapshot)
		return err
	}
	return nil
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for id, item := range s.items {
		clone := *item
		c.items[id] = &clone
	}
	for _, e := range s.entries {
		clone := *e
		c.entries = append(c.entries, &clone)
	}
	for id, o := range s.orders {
		clone := *o
		clone.Items = nil
		for _, line := range o.Items {
			lineClone := *line
			clone.Items = append(clone.Items, &lineClone)
		}
		c.orders[id] = &clone
	}
	return c
}

func (s *memStore) restore(snapshot *memStore) {
	s.items = snapshot.items
	s.entries = snapshot.entries
	s.orders = snapshot.orders
}

type fakeItemRepo struct {
	store   *memStore
	lockLog *[]string
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
	return nil, nil
}

func (r *fakeItemRepo) ListIDs(_ context.Context) ([]string, error) { return nil, nil }

func (r *fakeItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockItem, error) {
	if r.lockLog != nil {
		*r.lockLog = append(*r.lockLog, id)
	}
	return r.GetByID(ctx, id)
}

func (r *fakeItemRepo) UpdateStock(_ context.Context, id string, quantity int64) error {
	item, ok := r.store.items[id]
	if !ok {
		return domain.ErrUnknownItem
	}
	item.CurrentStock = quantity
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

func (r *fakeEntryRepo) ListForItem(context.Context, string, *time.Time, *time.Time, *repository.HistoryCursor, int) ([]*entity.StockEntry, error) {
	return nil, nil
}

func (r *fakeEntryRepo) ListRecent(context.Context, int) ([]*entity.StockEntry, error) {
	return nil, nil
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

type fakeOrderRepo struct {
	store *memStore
}

var _ repository.PurchaseOrderRepository = (*fakeOrderRepo)(nil)

func (r *fakeOrderRepo) Create(_ context.Context, order *entity.PurchaseOrder) error {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	for _, line := range order.Items {
		line.PurchaseOrderID = order.ID
	}
	r.store.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	order, ok := r.store.orders[id]
	if !ok {
		return nil, nil
	}
	return order, nil
}

func (r *fakeOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeOrderRepo) List(_ context.Context, limit, offset int) ([]*entity.PurchaseOrder, error) {
	var list []*entity.PurchaseOrder
	for _, o := range r.store.orders {
		list = append(list, o)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id string, status entity.OrderStatus) error {
	order, ok := r.store.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	order.Status = status
	return nil
}

func (r *fakeOrderRepo) UpdateLineReceived(_ context.Context, orderID, itemID string, received int64, overReceived bool) error {
	order, ok := r.store.orders[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	line := order.Line(itemID)
	if line == nil || line.ReceivedQuantity > received {
		return domain.ErrNotFound
	}
	line.ReceivedQuantity = received
	line.OverReceived = overReceived
	return nil
}
