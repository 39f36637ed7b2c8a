package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

func TestClassifyStock(t *testing.T) {
	cases := []struct {
		name      string
		stock     int64
		threshold int64
		want      entity.AlertState
	}{
		{"stock por encima del umbral", 20, 10, entity.AlertOK},
		{"stock exactamente en el umbral", 10, 10, entity.AlertLow},
		{"stock dentro del umbral", 5, 10, entity.AlertLow},
		{"stock en cero", 0, 10, entity.AlertOut},
		{"stock negativo por backorder", -3, 10, entity.AlertOut},
		{"sin umbral solo distingue agotado", 1, 0, entity.AlertOK},
		{"sin umbral y agotado", 0, 0, entity.AlertOut},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, entity.ClassifyStock(tc.stock, tc.threshold))
		})
	}
}
