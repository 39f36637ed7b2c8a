package purchasing

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// ReceivingTxRunner ejecuta una recepción de mercancía dentro de una
// transacción de BD: las entradas RESTOCK del ledger y las líneas de la
// orden se confirman juntas o ninguna.
type ReceivingTxRunner interface {
	RunReceiving(ctx context.Context, fn func(
		itemRepo repository.StockItemRepository,
		entryRepo repository.StockEntryRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error) error
}
