package ledger_test

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/ledger"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

func TestCursor_IdaYVuelta(t *testing.T) {
	original := repository.HistoryCursor{
		CreatedAt: time.Date(2026, 3, 15, 10, 30, 0, 123456789, time.UTC),
		EntryID:   "0195cafe-0000-7000-8000-000000000001",
	}
	encoded := ledger.EncodeCursor(original)
	decoded, err := ledger.DecodeCursor(encoded)
	require.NoError(t, err)
	require.NotNil(t, decoded)
	assert.True(t, original.CreatedAt.Equal(decoded.CreatedAt))
	assert.Equal(t, original.EntryID, decoded.EntryID)
}

func TestDecodeCursor_VacioEsNil(t *testing.T) {
	decoded, err := ledger.DecodeCursor("")
	require.NoError(t, err)
	assert.Nil(t, decoded, "cursor vacío significa desde el inicio")
}

func TestDecodeCursor_Malformado(t *testing.T) {
	cases := []struct {
		name   string
		cursor string
	}{
		{"no es base64", "???no-base64???"},
		{"sin separador", base64.URLEncoding.EncodeToString([]byte("solo-una-parte"))},
		{"fecha inválida", base64.URLEncoding.EncodeToString([]byte("ayer|id-123"))},
		{"id vacío", base64.URLEncoding.EncodeToString([]byte("2026-03-15T10:30:00Z|"))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ledger.DecodeCursor(tc.cursor)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}
