package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// CreateOrderRequest body para POST /api/purchase-orders.
type CreateOrderRequest struct {
	SupplierID string                   `json:"supplier_id"`
	Items      []CreateOrderLineRequest `json:"items"`
}

// CreateOrderLineRequest línea solicitada en una orden nueva.
type CreateOrderLineRequest struct {
	ItemID   string          `json:"item_id"`
	Quantity int64           `json:"quantity"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

// ChangeStatusRequest body para PUT /api/purchase-orders/:id/status.
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// ReceiptRequest body para POST /api/purchase-orders/:id/receipts.
type ReceiptRequest struct {
	Items []ReceiptLineRequest `json:"items"`
}

// ReceiptLineRequest cantidad recibida de un ítem en la entrega.
type ReceiptLineRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int64  `json:"quantity"`
}

// PurchaseOrderDTO representación HTTP de una orden de compra.
type PurchaseOrderDTO struct {
	ID         string                  `json:"id"`
	SupplierID string                  `json:"supplier_id"`
	Status     string                  `json:"status"`
	Items      []*PurchaseOrderLineDTO `json:"items"`
	CreatedBy  string                  `json:"created_by"`
	CreatedAt  time.Time               `json:"created_at"`
	UpdatedAt  time.Time               `json:"updated_at"`
}

// PurchaseOrderLineDTO línea de la orden con su acumulado recibido.
type PurchaseOrderLineDTO struct {
	ItemID           string          `json:"item_id"`
	OrderedQuantity  int64           `json:"ordered_quantity"`
	ReceivedQuantity int64           `json:"received_quantity"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	OverReceived     bool            `json:"over_received"`
}

// NewPurchaseOrderDTO mapea la entidad a su representación HTTP.
func NewPurchaseOrderDTO(o *entity.PurchaseOrder) *PurchaseOrderDTO {
	dto := &PurchaseOrderDTO{
		ID:         o.ID,
		SupplierID: o.SupplierID,
		Status:     string(o.Status),
		CreatedBy:  o.CreatedBy,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
	for _, line := range o.Items {
		dto.Items = append(dto.Items, &PurchaseOrderLineDTO{
			ItemID:           line.ItemID,
			OrderedQuantity:  line.OrderedQuantity,
			ReceivedQuantity: line.ReceivedQuantity,
			UnitCost:         line.UnitCost,
			OverReceived:     line.OverReceived,
		})
	}
	return dto
}

// NewPurchaseOrderDTOs mapea un listado de órdenes.
func NewPurchaseOrderDTOs(orders []*entity.PurchaseOrder) []*PurchaseOrderDTO {
	out := make([]*PurchaseOrderDTO, 0, len(orders))
	for _, o := range orders {
		out = append(out, NewPurchaseOrderDTO(o))
	}
	return out
}

// ReceiptResponse respuesta de POST /api/purchase-orders/:id/receipts.
type ReceiptResponse struct {
	Order   *PurchaseOrderDTO `json:"order"`
	Entries []*StockEntryDTO  `json:"entries"`
}
