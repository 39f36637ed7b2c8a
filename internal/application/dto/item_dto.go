package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// CreateItemRequest body para POST /api/items.
type CreateItemRequest struct {
	ProductID        string          `json:"product_id"`
	VariantID        *string         `json:"variant_id,omitempty"`
	SKU              string          `json:"sku"`
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	BackorderAllowed bool            `json:"backorder_allowed"`
}

// StockItemDTO representación HTTP de un ítem del catálogo.
type StockItemDTO struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	VariantID        *string         `json:"variant_id,omitempty"`
	SKU              string          `json:"sku"`
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	CurrentStock     int64           `json:"current_stock"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	StockValue       decimal.Decimal `json:"stock_value"`
	BackorderAllowed bool            `json:"backorder_allowed"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// NewStockItemDTO mapea la entidad a su representación HTTP.
func NewStockItemDTO(item *entity.StockItem) *StockItemDTO {
	return &StockItemDTO{
		ID:               item.ID,
		ProductID:        item.ProductID,
		VariantID:        item.VariantID,
		SKU:              item.SKU,
		Name:             item.Name,
		Category:         item.Category,
		CurrentStock:     item.CurrentStock,
		UnitCost:         item.UnitCost,
		StockValue:       item.StockValue(),
		BackorderAllowed: item.BackorderAllowed,
		UpdatedAt:        item.UpdatedAt,
	}
}

// NewStockItemDTOs mapea un listado de ítems.
func NewStockItemDTOs(items []*entity.StockItem) []*StockItemDTO {
	out := make([]*StockItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, NewStockItemDTO(it))
	}
	return out
}

// CurrentStockDTO respuesta de GET /api/items/:id/stock.
type CurrentStockDTO struct {
	ItemID       string `json:"item_id"`
	CurrentStock int64  `json:"current_stock"`
}

// AlertStateDTO respuesta de GET /api/items/:id/alert.
type AlertStateDTO struct {
	ItemID       string `json:"item_id"`
	State        string `json:"state"`
	CurrentStock int64  `json:"current_stock"`
	Threshold    *int64 `json:"threshold,omitempty"` // nil = alertas deshabilitadas
}

// SetThresholdRequest body para PUT /api/items/:id/alert-config.
type SetThresholdRequest struct {
	Threshold int64 `json:"threshold"`
}
