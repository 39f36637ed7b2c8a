package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado de una orden de compra a proveedor.
type OrderStatus string

const (
	OrderDraft     OrderStatus = "DRAFT"     // en edición
	OrderPending   OrderStatus = "PENDING"   // enviada al proveedor
	OrderConfirmed OrderStatus = "CONFIRMED" // confirmada por el proveedor
	OrderShipped   OrderStatus = "SHIPPED"   // despachada
	OrderReceived  OrderStatus = "RECEIVED"  // totalmente recibida (terminal)
	OrderCancelled OrderStatus = "CANCELLED" // cancelada (terminal)
)

// transitions transiciones válidas de la máquina de estados.
// CANCELLED es alcanzable desde cualquier estado no terminal.
var transitions = map[OrderStatus][]OrderStatus{
	OrderDraft:     {OrderPending, OrderCancelled},
	OrderPending:   {OrderConfirmed, OrderCancelled},
	OrderConfirmed: {OrderShipped, OrderReceived, OrderCancelled},
	OrderShipped:   {OrderReceived, OrderCancelled},
}

// CanTransition indica si el paso from → to es válido.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal indica si el estado no admite más cambios.
func (s OrderStatus) Terminal() bool {
	return s == OrderReceived || s == OrderCancelled
}

// PurchaseOrder orden de reposición a un proveedor.
type PurchaseOrder struct {
	ID         string
	SupplierID string
	Status     OrderStatus
	Items      []*PurchaseOrderItem
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Receivable indica si la orden admite recepciones de mercancía.
// Se puede recibir en cualquier estado no terminal posterior a DRAFT.
func (o *PurchaseOrder) Receivable() bool {
	switch o.Status {
	case OrderPending, OrderConfirmed, OrderShipped:
		return true
	default:
		return false
	}
}

// FullyReceived indica si todas las líneas alcanzaron la cantidad ordenada.
func (o *PurchaseOrder) FullyReceived() bool {
	for _, it := range o.Items {
		if it.ReceivedQuantity < it.OrderedQuantity {
			return false
		}
	}
	return len(o.Items) > 0
}

// Line busca la línea de un ítem; nil si la orden no lo incluye.
func (o *PurchaseOrder) Line(itemID string) *PurchaseOrderItem {
	for _, it := range o.Items {
		if it.ItemID == itemID {
			return it
		}
	}
	return nil
}

// PurchaseOrderItem línea de una orden de compra.
// ReceivedQuantity es acumulativa y monotónicamente no decreciente.
type PurchaseOrderItem struct {
	PurchaseOrderID  string
	ItemID           string
	OrderedQuantity  int64
	ReceivedQuantity int64
	UnitCost         decimal.Decimal
	OverReceived     bool // recepción por encima de lo ordenado (permitida pero marcada)
}
