package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/ledger"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// seedEntries inserta n entradas encadenadas para el ítem de prueba.
// Varias comparten created_at para ejercitar el desempate por id.
func seedEntries(t *testing.T, store *memStore, n int) {
	t.Helper()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := &fakeEntryRepo{store: store}
	for i := 0; i < n; i++ {
		err := repo.Create(context.Background(), &entity.StockEntry{
			ItemID:         testItemID,
			Type:           entity.ChangeRestock,
			QuantityBefore: int64(i),
			QuantityAfter:  int64(i + 1),
			QuantityChange: 1,
			CreatedBy:      "user-1",
			// Dos entradas por segundo: empates de created_at resueltos por id.
			CreatedAt: base.Add(time.Duration(i/2) * time.Second),
		})
		require.NoError(t, err)
	}
}

func newHistoryFixture(t *testing.T, n int) *ledger.HistoryUseCase {
	t.Helper()
	store := newMemStore()
	store.addItem(&entity.StockItem{ID: testItemID, SKU: "SKU-001", Name: "Tornillo M4"})
	seedEntries(t, store, n)
	return ledger.NewHistoryUseCase(&fakeEntryRepo{store: store}, &fakeItemRepo{store: store})
}

// Recorrer todo el historial por páginas de 7 debe visitar cada entrada
// exactamente una vez y en orden, incluso con created_at repetidos.
func TestHistory_PaginacionSinHuecosNiDuplicados(t *testing.T) {
	const total = 23
	uc := newHistoryFixture(t, total)

	seen := map[string]bool{}
	var lastBefore int64 = -1
	cursor := ""
	pages := 0
	for {
		page, err := uc.ListForItem(context.Background(), testItemID, nil, nil, 7, cursor)
		require.NoError(t, err)
		pages++
		for _, e := range page.Entries {
			assert.False(t, seen[e.ID], "entrada repetida entre páginas: %s", e.ID)
			seen[e.ID] = true
			assert.Greater(t, e.QuantityBefore, lastBefore, "el orden ascendente se mantiene entre páginas")
			lastBefore = e.QuantityBefore
		}
		if page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}
	assert.Len(t, seen, total)
	assert.Equal(t, 4, pages, "23 entradas en páginas de 7 son 4 páginas")
}

func TestHistory_UltimaPaginaSinCursor(t *testing.T) {
	uc := newHistoryFixture(t, 5)

	page, err := uc.ListForItem(context.Background(), testItemID, nil, nil, 10, "")
	require.NoError(t, err)
	assert.Len(t, page.Entries, 5)
	assert.Empty(t, page.NextCursor, "si no hay más entradas el cursor va vacío")
}

func TestHistory_FiltroPorFechas(t *testing.T) {
	uc := newHistoryFixture(t, 10)

	from := time.Date(2026, 1, 1, 0, 0, 2, 0, time.UTC)
	to := time.Date(2026, 1, 1, 0, 0, 3, 0, time.UTC)
	page, err := uc.ListForItem(context.Background(), testItemID, &from, &to, 50, "")
	require.NoError(t, err)
	// Segundos 2 y 3, dos entradas por segundo.
	assert.Len(t, page.Entries, 4)
}

func TestHistory_ItemDesconocido(t *testing.T) {
	uc := newHistoryFixture(t, 3)

	_, err := uc.ListForItem(context.Background(), "no-existe", nil, nil, 10, "")
	assert.ErrorIs(t, err, domain.ErrUnknownItem)
}

func TestHistory_CursorMalformado(t *testing.T) {
	uc := newHistoryFixture(t, 3)

	_, err := uc.ListForItem(context.Background(), testItemID, nil, nil, 10, "cursor-roto")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHistory_LimiteAcotado(t *testing.T) {
	uc := newHistoryFixture(t, 250)

	page, err := uc.ListForItem(context.Background(), testItemID, nil, nil, 9999, "")
	require.NoError(t, err)
	assert.Len(t, page.Entries, 200, "el límite se acota a 200 aunque pidan más")
}

// El feed de actividad devuelve los movimientos más recientes primero.
func TestListRecent(t *testing.T) {
	uc := newHistoryFixture(t, 12)

	entries, err := uc.ListRecent(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, entries, 5)
	// La entrada más nueva encabeza el feed; el orden desciende.
	for i := 1; i < len(entries); i++ {
		assert.GreaterOrEqual(t, entries[i-1].QuantityBefore, entries[i].QuantityBefore)
	}
	assert.Equal(t, int64(11), entries[0].QuantityBefore)
}

func TestListRecent_LimitePorDefecto(t *testing.T) {
	uc := newHistoryFixture(t, 60)

	entries, err := uc.ListRecent(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, entries, 50, "sin limit se usa el defecto del historial")
}
