package alerts

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
)

// EvaluatorUseCase mantiene el estado de alerta por ítem. Se invoca
// inmediatamente después de cada append confirmado (misma operación
// lógica, no misma transacción), de modo que el estado de alerta nunca
// queda más de una entrada por detrás del stock real.
//
// Debounce: al entrar a LOW/OUT con notified=false emite un único evento
// y marca notified=true; oscilaciones posteriores dentro del episodio no
// re-disparan. Al recuperar stock por encima del umbral, notified se
// limpia para que una caída futura vuelva a notificar.
type EvaluatorUseCase struct {
	itemRepo  repository.StockItemRepository
	alertRepo repository.AlertConfigRepository
	notifier  Notifier
	log       *logger.Logger
}

// NewEvaluatorUseCase construye el evaluador.
func NewEvaluatorUseCase(
	itemRepo repository.StockItemRepository,
	alertRepo repository.AlertConfigRepository,
	notifier Notifier,
	log *logger.Logger,
) *EvaluatorUseCase {
	return &EvaluatorUseCase{itemRepo: itemRepo, alertRepo: alertRepo, notifier: notifier, log: log}
}

// Evaluate clasifica el stock del ítem frente a su umbral y aplica las
// transiciones de la máquina OK/LOW/OUT sobre el flag notified.
// Sin configuración de alerta el ítem solo distingue OK/OUT (umbral 0)
// y nunca notifica.
func (uc *EvaluatorUseCase) Evaluate(ctx context.Context, itemID string) (entity.AlertState, error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return "", err
	}
	if item == nil {
		return "", domain.ErrUnknownItem
	}

	cfg, err := uc.alertRepo.Get(ctx, itemID)
	if err != nil {
		return "", err
	}
	if cfg == nil {
		return entity.ClassifyStock(item.CurrentStock, 0), nil
	}

	state := entity.ClassifyStock(item.CurrentStock, cfg.Threshold)
	switch {
	case state != entity.AlertOK && !cfg.Notified:
		// Transición OK → LOW/OUT: emitir una sola vez por episodio.
		event := entity.AlertEvent{
			ItemID:       item.ID,
			SKU:          item.SKU,
			ProductName:  item.Name,
			State:        state,
			CurrentStock: item.CurrentStock,
			Threshold:    cfg.Threshold,
			OccurredAt:   time.Now(),
		}
		if err := uc.notifier.Notify(ctx, event); err != nil {
			// La notificación no debe tumbar la operación de stock;
			// se reintentará al siguiente movimiento dentro del episodio.
			uc.log.Error().Err(err).Str("item_id", itemID).Msg("emitir evento de alerta")
			return state, nil
		}
		cfg.Notified = true
		if err := uc.alertRepo.Upsert(ctx, cfg); err != nil {
			return state, err
		}
	case state == entity.AlertOK && cfg.Notified:
		// Recuperación: limpiar el flag para re-notificar en el próximo episodio.
		cfg.Notified = false
		if err := uc.alertRepo.Upsert(ctx, cfg); err != nil {
			return state, err
		}
	}
	return state, nil
}

// StateResult estado de alerta de un ítem para lecturas.
type StateResult struct {
	State      entity.AlertState
	Configured bool // hay umbral configurado para el ítem
	Threshold  int64
}

// State clasifica el stock del ítem sin efectos secundarios: no notifica
// ni toca el flag notified. Para el endpoint de consulta.
func (uc *EvaluatorUseCase) State(ctx context.Context, itemID string) (*StateResult, error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrUnknownItem
	}
	cfg, err := uc.alertRepo.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}
	result := &StateResult{}
	if cfg != nil {
		result.Configured = true
		result.Threshold = cfg.Threshold
	}
	result.State = entity.ClassifyStock(item.CurrentStock, result.Threshold)
	return result, nil
}

// SetThreshold configura (o reconfigura) el umbral de alerta de un ítem.
// Solo almacenamiento; la evaluación ocurre en el próximo movimiento.
func (uc *EvaluatorUseCase) SetThreshold(ctx context.Context, itemID string, threshold int64) error {
	if threshold < 0 {
		return domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrUnknownItem
	}
	existing, err := uc.alertRepo.Get(ctx, itemID)
	if err != nil {
		return err
	}
	cfg := &entity.AlertConfig{ItemID: itemID, Threshold: threshold}
	if existing != nil {
		// Conserva el estado del episodio en curso al cambiar el umbral.
		cfg.Notified = existing.Notified
	}
	return uc.alertRepo.Upsert(ctx, cfg)
}

// RemoveConfig deshabilita las alertas de un ítem.
func (uc *EvaluatorUseCase) RemoveConfig(ctx context.Context, itemID string) error {
	return uc.alertRepo.Delete(ctx, itemID)
}
