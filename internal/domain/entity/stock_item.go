package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockItem representa una unidad almacenable: un producto o una variante
// específica de producto. CurrentStock es la proyección materializada de la
// suma de movimientos del ledger; solo el camino de append la escribe.
type StockItem struct {
	ID               string
	ProductID        string
	VariantID        *string // nil si el ítem es un producto sin variantes
	SKU              string
	Name             string
	Category         string
	CurrentStock     int64
	UnitCost         decimal.Decimal // costo unitario para valorización
	BackorderAllowed bool            // permite stock negativo (backorder) para este ítem
	UpdatedAt        time.Time
}

// StockValue devuelve CurrentStock × UnitCost para valorización de inventario.
func (i *StockItem) StockValue() decimal.Decimal {
	return i.UnitCost.Mul(decimal.NewFromInt(i.CurrentStock))
}
