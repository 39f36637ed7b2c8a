package purchasing

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/application/ledger"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
)

// ReceiptLine cantidad recibida de un ítem en una entrega.
type ReceiptLine struct {
	ItemID   string
	Quantity int64
}

// ReceiptInput entrada de una recepción (entrega parcial o total).
type ReceiptInput struct {
	OrderID string
	Lines   []ReceiptLine
	ActorID string
}

// ReceiptResult resultado de aplicar una recepción.
type ReceiptResult struct {
	Order   *entity.PurchaseOrder
	Entries []*entity.StockEntry
}

// ReceiveUseCase aplica recepciones de mercancía contra una orden de
// compra. Todo-o-nada: cada línea produce su entrada RESTOCK en el
// ledger y actualiza el acumulado recibido dentro de una misma
// transacción; si cualquier línea falla, nada se confirma. Cuando todas
// las líneas alcanzan lo ordenado la orden pasa a RECEIVED.
type ReceiveUseCase struct {
	txRunner         ReceivingTxRunner
	isRetryable      ledger.ConflictClassifier
	maxRetries       int
	allowOverReceipt bool
	log              *logger.Logger
}

// NewReceiveUseCase construye el caso de uso. allowOverReceipt habilita
// recibir por encima de lo ordenado (la línea queda marcada, nunca pasa
// en silencio). Conflictos de serialización/deadlock se reintentan igual
// que en el append.
func NewReceiveUseCase(
	txRunner ReceivingTxRunner,
	isRetryable ledger.ConflictClassifier,
	maxRetries int,
	allowOverReceipt bool,
	log *logger.Logger,
) *ReceiveUseCase {
	if maxRetries < 1 {
		maxRetries = 1
	}
	if isRetryable == nil {
		isRetryable = func(error) bool { return false }
	}
	return &ReceiveUseCase{
		txRunner:         txRunner,
		isRetryable:      isRetryable,
		maxRetries:       maxRetries,
		allowOverReceipt: allowOverReceipt,
		log:              log,
	}
}

// ReceiveItems registra una entrega contra la orden.
func (uc *ReceiveUseCase) ReceiveItems(ctx context.Context, input ReceiptInput) (*ReceiptResult, error) {
	if input.OrderID == "" || input.ActorID == "" || len(input.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	seen := make(map[string]bool, len(input.Lines))
	for _, line := range input.Lines {
		if line.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		if seen[line.ItemID] {
			return nil, domain.ErrDuplicate
		}
		seen[line.ItemID] = true
	}
	// Orden de bloqueo determinista: recepciones concurrentes de órdenes
	// que comparten ítems toman los locks de fila en el mismo orden y no
	// pueden abrazarse en deadlock.
	lines := append([]ReceiptLine(nil), input.Lines...)
	sort.Slice(lines, func(i, j int) bool { return lines[i].ItemID < lines[j].ItemID })

	var result *ReceiptResult
	var err error
	for attempt := 0; attempt < uc.maxRetries; attempt++ {
		if attempt > 0 {
			// Backoff lineal acotado entre reintentos.
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * 50 * time.Millisecond):
			}
		}
		result, err = uc.applyReceipt(ctx, input, lines)
		if err == nil {
			return result, nil
		}
		if !uc.isRetryable(err) {
			return nil, err
		}
	}
	return nil, domain.ErrRetryExhausted
}

// applyReceipt ejecuta un intento de la recepción dentro de su transacción.
func (uc *ReceiveUseCase) applyReceipt(ctx context.Context, input ReceiptInput, lines []ReceiptLine) (*ReceiptResult, error) {
	result := &ReceiptResult{}
	err := uc.txRunner.RunReceiving(ctx, func(
		itemRepo repository.StockItemRepository,
		entryRepo repository.StockEntryRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error {
		// Bloquea la cabecera: recepciones concurrentes de la misma orden
		// se serializan y el acumulado por línea nunca se pisa.
		order, err := orderRepo.GetForUpdate(ctx, input.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !order.Receivable() {
			return fmt.Errorf("%w: estado %s", domain.ErrOrderNotReceivable, order.Status)
		}

		for _, recv := range lines {
			line := order.Line(recv.ItemID)
			if line == nil {
				return fmt.Errorf("%w: el ítem %s no pertenece a la orden", domain.ErrInvalidInput, recv.ItemID)
			}
			newReceived := line.ReceivedQuantity + recv.Quantity
			over := newReceived > line.OrderedQuantity
			if over && !uc.allowOverReceipt {
				return fmt.Errorf("%w: ítem %s recibiría %d de %d ordenadas",
					domain.ErrOverReceipt, recv.ItemID, newReceived, line.OrderedQuantity)
			}

			entry, err := ledger.AppendInTx(ctx, itemRepo, entryRepo, ledger.AppendInput{
				ItemID:            recv.ItemID,
				Type:              entity.ChangeRestock,
				Quantity:          recv.Quantity,
				Reason:            "Recepción de orden de compra",
				RelatedOrderID:    &order.ID,
				RelatedSupplierID: &order.SupplierID,
				ActorID:           input.ActorID,
			})
			if err != nil {
				return err
			}
			result.Entries = append(result.Entries, entry)

			if err := orderRepo.UpdateLineReceived(ctx, order.ID, recv.ItemID, newReceived, over); err != nil {
				return err
			}
			line.ReceivedQuantity = newReceived
			line.OverReceived = line.OverReceived || over
			if over && uc.log != nil {
				uc.log.Warn().
					Str("order_id", order.ID).
					Str("item_id", recv.ItemID).
					Int64("received", newReceived).
					Int64("ordered", line.OrderedQuantity).
					Msg("recepción por encima de lo ordenado")
			}
		}

		if order.FullyReceived() {
			if err := orderRepo.UpdateStatus(ctx, order.ID, entity.OrderReceived); err != nil {
				return err
			}
			order.Status = entity.OrderReceived
		}
		result.Order = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
