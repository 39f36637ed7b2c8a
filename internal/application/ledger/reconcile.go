package ledger

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
)

// ReconcileResult resultado de reconciliar un ítem.
type ReconcileResult struct {
	ItemID       string
	Drift        bool  // la proyección no coincidía con el ledger
	StoredStock  int64 // proyección encontrada
	CurrentStock int64 // stock tras reconciliar (suma del ledger)
}

// SweepResult resultado del barrido completo.
type SweepResult struct {
	Checked   int
	Corrected int
}

// ReconcileUseCase recalcula la proyección de un ítem plegando su ledger y
// corrige la deriva si existe. Es el mecanismo de auto-reparación del
// sistema (crash a mitad de transacción, bug sospechado). Idempotente:
// una segunda pasada sin appends intermedios no encuentra deriva y no
// emite nota. Toma el mismo bloqueo por ítem que el append, así que es
// seguro ejecutarlo con tráfico en vivo.
type ReconcileUseCase struct {
	txRunner TxRunner
	itemRepo repository.StockItemRepository
	noteRepo repository.ReconciliationNoteRepository
	log      *logger.Logger
}

// NewReconcileUseCase construye el caso de uso. noteRepo atado al pool:
// las notas se escriben dentro de la tx de Reconcile pero se consultan
// sin bloqueo.
func NewReconcileUseCase(
	txRunner TxRunner,
	itemRepo repository.StockItemRepository,
	noteRepo repository.ReconciliationNoteRepository,
	log *logger.Logger,
) *ReconcileUseCase {
	return &ReconcileUseCase{txRunner: txRunner, itemRepo: itemRepo, noteRepo: noteRepo, log: log}
}

// Reconcile reconcilia un único ítem dentro de una transacción.
// La deriva no es fatal: se corrige, se registra una nota de auditoría y
// se informa en el resultado; nunca se propaga como error al caller.
func (uc *ReconcileUseCase) Reconcile(ctx context.Context, itemID string) (*ReconcileResult, error) {
	var result *ReconcileResult
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.StockItemRepository,
		entryRepo repository.StockEntryRepository,
		noteRepo repository.ReconciliationNoteRepository,
	) error {
		item, err := itemRepo.GetForUpdate(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrUnknownItem
		}
		computed, err := entryRepo.SumQuantityChange(ctx, itemID)
		if err != nil {
			return err
		}
		result = &ReconcileResult{
			ItemID:       itemID,
			StoredStock:  item.CurrentStock,
			CurrentStock: computed,
		}
		if computed == item.CurrentStock {
			return nil
		}
		result.Drift = true
		if err := itemRepo.UpdateStock(ctx, itemID, computed); err != nil {
			return err
		}
		return noteRepo.Create(ctx, &entity.ReconciliationNote{
			ItemID:           itemID,
			StoredQuantity:   item.CurrentStock,
			ComputedQuantity: computed,
			Delta:            computed - item.CurrentStock,
			CreatedAt:        time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}
	if result.Drift && uc.log != nil {
		uc.log.Warn().
			Str("item_id", itemID).
			Int64("stored", result.StoredStock).
			Int64("computed", result.CurrentStock).
			Msg("deriva de proyección corregida")
	}
	return result, nil
}

// Notes devuelve las notas de auditoría de un ítem, más reciente primero.
// Son el rastro de cada deriva corregida: qué proyección se encontró, qué
// dijo el ledger y el delta aplicado.
func (uc *ReconcileUseCase) Notes(ctx context.Context, itemID string, limit int) ([]*entity.ReconciliationNote, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrUnknownItem
	}
	return uc.noteRepo.ListForItem(ctx, itemID, limit)
}

// ReconcileAll barre todos los ítems. Cancelable entre ítems (nunca a
// mitad de un ítem): al cancelar devuelve el avance parcial y ctx.Err().
func (uc *ReconcileUseCase) ReconcileAll(ctx context.Context) (*SweepResult, error) {
	ids, err := uc.itemRepo.ListIDs(ctx)
	if err != nil {
		return nil, err
	}
	sweep := &SweepResult{}
	for _, id := range ids {
		select {
		case <-ctx.Done():
			return sweep, ctx.Err()
		default:
		}
		res, err := uc.Reconcile(ctx, id)
		if err != nil {
			return sweep, err
		}
		sweep.Checked++
		if res.Drift {
			sweep.Corrected++
		}
	}
	return sweep, nil
}
