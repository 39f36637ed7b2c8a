package dto

import (
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// RegisterMovementRequest body para POST /api/inventory/movements.
// Quantity es magnitud positiva para tipos de signo fijo y llega firmada
// para ADJUSTMENT y TRANSFER.
type RegisterMovementRequest struct {
	ItemID            string  `json:"item_id"`
	Type              string  `json:"type"`
	Quantity          int64   `json:"quantity"`
	Reason            string  `json:"reason,omitempty"`
	RelatedOrderID    *string `json:"related_order_id,omitempty"`
	RelatedSupplierID *string `json:"related_supplier_id,omitempty"`
}

// StockEntryDTO representación HTTP de una entrada del ledger.
type StockEntryDTO struct {
	ID                string    `json:"id"`
	ItemID            string    `json:"item_id"`
	Type              string    `json:"type"`
	QuantityBefore    int64     `json:"quantity_before"`
	QuantityAfter     int64     `json:"quantity_after"`
	QuantityChange    int64     `json:"quantity_change"`
	Reason            string    `json:"reason,omitempty"`
	RelatedOrderID    *string   `json:"related_order_id,omitempty"`
	RelatedSupplierID *string   `json:"related_supplier_id,omitempty"`
	CreatedBy         string    `json:"created_by"`
	CreatedAt         time.Time `json:"created_at"`
}

// NewStockEntryDTO mapea la entidad a su representación HTTP.
func NewStockEntryDTO(e *entity.StockEntry) *StockEntryDTO {
	return &StockEntryDTO{
		ID:                e.ID,
		ItemID:            e.ItemID,
		Type:              string(e.Type),
		QuantityBefore:    e.QuantityBefore,
		QuantityAfter:     e.QuantityAfter,
		QuantityChange:    e.QuantityChange,
		Reason:            e.Reason,
		RelatedOrderID:    e.RelatedOrderID,
		RelatedSupplierID: e.RelatedSupplierID,
		CreatedBy:         e.CreatedBy,
		CreatedAt:         e.CreatedAt,
	}
}

// NewStockEntryDTOs mapea un listado de entradas.
func NewStockEntryDTOs(entries []*entity.StockEntry) []*StockEntryDTO {
	out := make([]*StockEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, NewStockEntryDTO(e))
	}
	return out
}

// MovementResponse respuesta de POST /api/inventory/movements: la entrada
// confirmada más el estado de alerta tras el movimiento.
type MovementResponse struct {
	Entry      *StockEntryDTO `json:"entry"`
	AlertState string         `json:"alert_state,omitempty"`
}

// HistoryResponse página del historial de un ítem.
// NextCursor vacío = última página.
type HistoryResponse struct {
	Entries    []*StockEntryDTO `json:"entries"`
	NextCursor string           `json:"next_cursor,omitempty"`
}

// ReconcileResponse respuesta de POST /api/inventory/reconcile/:id.
type ReconcileResponse struct {
	ItemID       string `json:"item_id"`
	Drift        bool   `json:"drift"`
	StoredStock  int64  `json:"stored_stock"`
	CurrentStock int64  `json:"current_stock"`
}

// ReconciliationNoteDTO nota de auditoría de una deriva corregida.
type ReconciliationNoteDTO struct {
	ID               string    `json:"id"`
	ItemID           string    `json:"item_id"`
	StoredQuantity   int64     `json:"stored_quantity"`
	ComputedQuantity int64     `json:"computed_quantity"`
	Delta            int64     `json:"delta"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewReconciliationNoteDTOs mapea el listado de notas.
func NewReconciliationNoteDTOs(notes []*entity.ReconciliationNote) []ReconciliationNoteDTO {
	out := make([]ReconciliationNoteDTO, 0, len(notes))
	for _, n := range notes {
		out = append(out, ReconciliationNoteDTO{
			ID:               n.ID,
			ItemID:           n.ItemID,
			StoredQuantity:   n.StoredQuantity,
			ComputedQuantity: n.ComputedQuantity,
			Delta:            n.Delta,
			CreatedAt:        n.CreatedAt,
		})
	}
	return out
}
