package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// Tabla de convención de signos: tipos de signo fijo reciben magnitud
// positiva; ADJUSTMENT y TRANSFER llegan ya firmados.
func TestDelta_ConvencionDeSignos(t *testing.T) {
	cases := []struct {
		name     string
		typ      entity.ChangeType
		quantity int64
		want     int64
	}{
		{"venta resta", entity.ChangeSale, 5, -5},
		{"merma resta", entity.ChangeDamage, 3, -3},
		{"devolución suma", entity.ChangeRefund, 4, 4},
		{"reposición suma", entity.ChangeRestock, 10, 10},
		{"retorno suma", entity.ChangeReturn, 2, 2},
		{"ajuste positivo pasa tal cual", entity.ChangeAdjustment, 7, 7},
		{"ajuste negativo pasa tal cual", entity.ChangeAdjustment, -7, -7},
		{"transfer negativo pasa tal cual", entity.ChangeTransfer, -1, -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := entity.Delta(tc.typ, tc.quantity)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDelta_CantidadesInvalidas(t *testing.T) {
	cases := []struct {
		name     string
		typ      entity.ChangeType
		quantity int64
		wantErr  error
	}{
		{"venta con cantidad cero", entity.ChangeSale, 0, domain.ErrInvalidQuantity},
		{"venta con cantidad negativa", entity.ChangeSale, -5, domain.ErrInvalidQuantity},
		{"reposición con cantidad negativa", entity.ChangeRestock, -1, domain.ErrInvalidQuantity},
		{"ajuste con cantidad cero", entity.ChangeAdjustment, 0, domain.ErrInvalidQuantity},
		{"tipo desconocido", entity.ChangeType("PROMO"), 5, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := entity.Delta(tc.typ, tc.quantity)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestChangeType_Valid(t *testing.T) {
	for _, typ := range []entity.ChangeType{
		entity.ChangeSale, entity.ChangeRefund, entity.ChangeRestock,
		entity.ChangeAdjustment, entity.ChangeDamage, entity.ChangeReturn,
		entity.ChangeTransfer,
	} {
		assert.True(t, typ.Valid(), "el tipo %s debe ser válido", typ)
	}
	assert.False(t, entity.ChangeType("SALE ").Valid(), "tipos con espacios no son válidos")
	assert.False(t, entity.ChangeType("sale").Valid(), "los tipos son case-sensitive")
}

func TestChainsAfter_EncadenaConLaAnterior(t *testing.T) {
	first := &entity.StockEntry{QuantityBefore: 0, QuantityAfter: 10}
	second := &entity.StockEntry{QuantityBefore: 10, QuantityAfter: 7}
	broken := &entity.StockEntry{QuantityBefore: 9, QuantityAfter: 6}

	assert.True(t, first.ChainsAfter(nil), "la primera entrada encadena con nil")
	assert.True(t, second.ChainsAfter(first))
	assert.False(t, broken.ChainsAfter(first), "before distinto del after anterior rompe la cadena")
}
