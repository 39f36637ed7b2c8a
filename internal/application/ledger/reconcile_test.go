package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/ledger"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

func newReconcileFixture(storedStock int64, changes []int64) (*ledger.ReconcileUseCase, *memStore) {
	store := newMemStore()
	store.addItem(&entity.StockItem{
		ID:           testItemID,
		SKU:          "SKU-001",
		Name:         "Tornillo M4",
		CurrentStock: storedStock,
	})
	var running int64
	for _, ch := range changes {
		store.entries = append(store.entries, &entity.StockEntry{
			ItemID:         testItemID,
			Type:           entity.ChangeAdjustment,
			QuantityBefore: running,
			QuantityAfter:  running + ch,
			QuantityChange: ch,
			CreatedBy:      "user-1",
		})
		running += ch
	}
	uc := ledger.NewReconcileUseCase(&fakeTxRunner{store: store}, &fakeItemRepo{store: store}, &fakeNoteRepo{store: store}, nil)
	return uc, store
}

func TestReconcile_CorrigeDeriva(t *testing.T) {
	// El ledger suma 7 pero la proyección dice 10 (deriva simulada).
	uc, store := newReconcileFixture(10, []int64{5, 2})

	result, err := uc.Reconcile(context.Background(), testItemID)
	require.NoError(t, err)

	assert.True(t, result.Drift)
	assert.Equal(t, int64(10), result.StoredStock)
	assert.Equal(t, int64(7), result.CurrentStock)
	assert.Equal(t, int64(7), store.items[testItemID].CurrentStock, "la proyección queda corregida")

	require.Len(t, store.notes, 1, "la deriva deja una nota de auditoría")
	note := store.notes[0]
	assert.Equal(t, int64(10), note.StoredQuantity)
	assert.Equal(t, int64(7), note.ComputedQuantity)
	assert.Equal(t, int64(-3), note.Delta)

	assert.Len(t, store.entries, 2, "la reconciliación no escribe entradas en el ledger")
}

func TestReconcile_SinDerivaEsNoOp(t *testing.T) {
	uc, store := newReconcileFixture(7, []int64{5, 2})

	result, err := uc.Reconcile(context.Background(), testItemID)
	require.NoError(t, err)
	assert.False(t, result.Drift)
	assert.Empty(t, store.notes, "sin deriva no hay nota")
}

// Idempotencia: una segunda pasada inmediata no encuentra deriva y no
// duplica la nota.
func TestReconcile_Idempotente(t *testing.T) {
	uc, store := newReconcileFixture(10, []int64{5, 2})

	first, err := uc.Reconcile(context.Background(), testItemID)
	require.NoError(t, err)
	require.True(t, first.Drift)

	second, err := uc.Reconcile(context.Background(), testItemID)
	require.NoError(t, err)
	assert.False(t, second.Drift)
	assert.Len(t, store.notes, 1, "la segunda pasada no agrega nota")
}

func TestReconcile_ItemDesconocido(t *testing.T) {
	uc, _ := newReconcileFixture(0, nil)

	_, err := uc.Reconcile(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrUnknownItem)
}

func TestReconcileAll_BarreTodosLosItems(t *testing.T) {
	store := newMemStore()
	// Ítem consistente.
	store.addItem(&entity.StockItem{ID: "item-a", SKU: "A", CurrentStock: 0})
	// Ítem con deriva: proyección 5, ledger vacío (suma 0).
	store.addItem(&entity.StockItem{ID: "item-b", SKU: "B", CurrentStock: 5})
	uc := ledger.NewReconcileUseCase(&fakeTxRunner{store: store}, &fakeItemRepo{store: store}, &fakeNoteRepo{store: store}, nil)

	sweep, err := uc.ReconcileAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sweep.Checked)
	assert.Equal(t, 1, sweep.Corrected)
	assert.Equal(t, int64(0), store.items["item-b"].CurrentStock)
}

// Las notas escritas por Reconcile son consultables después.
func TestNotes_ExponeLasDerivasCorregidas(t *testing.T) {
	uc, _ := newReconcileFixture(10, []int64{5, 2})

	_, err := uc.Reconcile(context.Background(), testItemID)
	require.NoError(t, err)

	notes, err := uc.Notes(context.Background(), testItemID, 0)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, int64(10), notes[0].StoredQuantity)
	assert.Equal(t, int64(7), notes[0].ComputedQuantity)
	assert.Equal(t, int64(-3), notes[0].Delta)

	_, err = uc.Notes(context.Background(), "no-existe", 0)
	assert.ErrorIs(t, err, domain.ErrUnknownItem)
}

func TestReconcileAll_CancelableEntreItems(t *testing.T) {
	store := newMemStore()
	store.addItem(&entity.StockItem{ID: "item-a", SKU: "A"})
	store.addItem(&entity.StockItem{ID: "item-b", SKU: "B"})
	uc := ledger.NewReconcileUseCase(&fakeTxRunner{store: store}, &fakeItemRepo{store: store}, &fakeNoteRepo{store: store}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancelado antes de empezar

	sweep, err := uc.ReconcileAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, sweep.Checked, "cancelado antes del primer ítem no procesa ninguno")
}
