package ledger

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// AppendInput entrada para registrar un movimiento en el ledger.
// Quantity es magnitud (positiva) para tipos de signo fijo (SALE, REFUND,
// RESTOCK, DAMAGE, RETURN) y llega firmada para ADJUSTMENT y TRANSFER.
type AppendInput struct {
	ItemID            string
	Type              entity.ChangeType
	Quantity          int64
	Reason            string
	RelatedOrderID    *string
	RelatedSupplierID *string
	ActorID           string
}

// AppendUseCase registra movimientos de stock de forma transaccional con
// bloqueo de fila (SELECT FOR UPDATE) sobre el ítem y Commit/Rollback.
// Conflictos de serialización se reintentan con backoff acotado; solo si
// se agota el presupuesto el error llega al caller como ErrRetryExhausted.
type AppendUseCase struct {
	txRunner    TxRunner
	isRetryable ConflictClassifier
	maxRetries  int
}

// NewAppendUseCase construye el caso de uso.
func NewAppendUseCase(txRunner TxRunner, isRetryable ConflictClassifier, maxRetries int) *AppendUseCase {
	if maxRetries < 1 {
		maxRetries = 1
	}
	if isRetryable == nil {
		isRetryable = func(error) bool { return false }
	}
	return &AppendUseCase{txRunner: txRunner, isRetryable: isRetryable, maxRetries: maxRetries}
}

// Append valida la entrada, ejecuta la sección crítica dentro de una
// transacción y devuelve la entrada confirmada del ledger.
func (uc *AppendUseCase) Append(ctx context.Context, input AppendInput) (*entity.StockEntry, error) {
	if input.ItemID == "" || input.ActorID == "" {
		return nil, domain.ErrInvalidInput
	}
	// Valida tipo y signo antes de abrir la transacción.
	if _, err := entity.Delta(input.Type, input.Quantity); err != nil {
		return nil, err
	}

	var entry *entity.StockEntry
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
		err = uc.txRunner.Run(ctx, func(
			itemRepo repository.StockItemRepository,
			entryRepo repository.StockEntryRepository,
			_ repository.ReconciliationNoteRepository,
		) error {
			e, txErr := AppendInTx(ctx, itemRepo, entryRepo, input)
			entry = e
			return txErr
		})
		if err == nil {
			return entry, nil
		}
		if !uc.isRetryable(err) {
			return nil, err
		}
	}
	return nil, domain.ErrRetryExhausted
}

// AppendInTx ejecuta la sección crítica del ledger con repositorios ya
// atados a la transacción del caller (misma tx): bloquea la fila del ítem,
// valida el invariante de no-negatividad, inserta la entrada y actualiza
// la proyección. Lo usa Append y también la recepción de órdenes de compra
// para producir sus entradas RESTOCK dentro de su propia transacción.
func AppendInTx(
	ctx context.Context,
	itemRepo repository.StockItemRepository,
	entryRepo repository.StockEntryRepository,
	input AppendInput,
) (*entity.StockEntry, error) {
	delta, err := entity.Delta(input.Type, input.Quantity)
	if err != nil {
		return nil, err
	}

	// Bloquea la fila del ítem: serializa appends concurrentes del mismo SKU.
	item, err := itemRepo.GetForUpdate(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrUnknownItem
	}

	before := item.CurrentStock
	after := before + delta
	if after < 0 && !item.BackorderAllowed {
		if delta < 0 {
			return nil, domain.ErrInsufficientStock
		}
		return nil, domain.ErrInvalidQuantity
	}

	entry := &entity.StockEntry{
		ItemID:            input.ItemID,
		Type:              input.Type,
		QuantityBefore:    before,
		QuantityAfter:     after,
		QuantityChange:    delta,
		Reason:            input.Reason,
		RelatedOrderID:    input.RelatedOrderID,
		RelatedSupplierID: input.RelatedSupplierID,
		CreatedBy:         input.ActorID,
		CreatedAt:         time.Now(),
	}
	if err := entryRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	if err := itemRepo.UpdateStock(ctx, input.ItemID, after); err != nil {
		return nil, err
	}
	return entry, nil
}
