package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

func TestCanTransition(t *testing.T) {
	valid := []struct{ from, to entity.OrderStatus }{
		{entity.OrderDraft, entity.OrderPending},
		{entity.OrderPending, entity.OrderConfirmed},
		{entity.OrderConfirmed, entity.OrderShipped},
		{entity.OrderShipped, entity.OrderReceived},
		{entity.OrderConfirmed, entity.OrderReceived},
		{entity.OrderDraft, entity.OrderCancelled},
		{entity.OrderShipped, entity.OrderCancelled},
	}
	for _, tc := range valid {
		assert.True(t, entity.CanTransition(tc.from, tc.to), "%s → %s debe ser válida", tc.from, tc.to)
	}

	invalid := []struct{ from, to entity.OrderStatus }{
		{entity.OrderDraft, entity.OrderShipped},
		{entity.OrderDraft, entity.OrderReceived},
		{entity.OrderPending, entity.OrderDraft},
		{entity.OrderReceived, entity.OrderCancelled},
		{entity.OrderCancelled, entity.OrderPending},
		{entity.OrderReceived, entity.OrderPending},
	}
	for _, tc := range invalid {
		assert.False(t, entity.CanTransition(tc.from, tc.to), "%s → %s debe ser inválida", tc.from, tc.to)
	}
}

func TestOrderStatus_Terminal(t *testing.T) {
	assert.True(t, entity.OrderReceived.Terminal())
	assert.True(t, entity.OrderCancelled.Terminal())
	assert.False(t, entity.OrderDraft.Terminal())
	assert.False(t, entity.OrderShipped.Terminal())
}

func TestPurchaseOrder_Receivable(t *testing.T) {
	for _, status := range []entity.OrderStatus{entity.OrderPending, entity.OrderConfirmed, entity.OrderShipped} {
		o := &entity.PurchaseOrder{Status: status}
		assert.True(t, o.Receivable(), "una orden %s admite recepciones", status)
	}
	for _, status := range []entity.OrderStatus{entity.OrderDraft, entity.OrderReceived, entity.OrderCancelled} {
		o := &entity.PurchaseOrder{Status: status}
		assert.False(t, o.Receivable(), "una orden %s no admite recepciones", status)
	}
}

func TestPurchaseOrder_FullyReceived(t *testing.T) {
	order := &entity.PurchaseOrder{
		Items: []*entity.PurchaseOrderItem{
			{ItemID: "a", OrderedQuantity: 100, ReceivedQuantity: 40},
			{ItemID: "b", OrderedQuantity: 50, ReceivedQuantity: 50},
		},
	}
	assert.False(t, order.FullyReceived(), "con una línea incompleta la orden no está recibida")

	order.Items[0].ReceivedQuantity = 100
	assert.True(t, order.FullyReceived())

	empty := &entity.PurchaseOrder{}
	assert.False(t, empty.FullyReceived(), "una orden sin líneas nunca está recibida")
}

func TestPurchaseOrder_Line(t *testing.T) {
	order := &entity.PurchaseOrder{
		Items: []*entity.PurchaseOrderItem{
			{ItemID: "a"},
			{ItemID: "b"},
		},
	}
	assert.NotNil(t, order.Line("b"))
	assert.Nil(t, order.Line("zzz"), "ítem fuera de la orden devuelve nil")
}
