package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.AlertConfigRepository = (*AlertConfigRepo)(nil)

// AlertConfigRepo implementación de AlertConfigRepository sobre PostgreSQL.
type AlertConfigRepo struct {
	q Querier
}

// NewAlertConfigRepository construye el adaptador. Acepta pool o tx (Querier).
func NewAlertConfigRepository(q Querier) *AlertConfigRepo {
	return &AlertConfigRepo{q: q}
}

// Get obtiene la configuración de alerta de un ítem; nil si no tiene alerta habilitada.
func (r *AlertConfigRepo) Get(ctx context.Context, itemID string) (*entity.AlertConfig, error) {
	query := `
		SELECT item_id, threshold, notified, updated_at
		FROM stock_alerts WHERE item_id = $1`
	var c entity.AlertConfig
	err := r.q.QueryRow(ctx, query, itemID).Scan(&c.ItemID, &c.Threshold, &c.Notified, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get alert config: %w", err)
	}
	return &c, nil
}

// Upsert inserta o actualiza umbral y flag notified de un ítem.
func (r *AlertConfigRepo) Upsert(ctx context.Context, cfg *entity.AlertConfig) error {
	query := `
		INSERT INTO stock_alerts (item_id, threshold, notified, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (item_id)
		DO UPDATE SET threshold = EXCLUDED.threshold, notified = EXCLUDED.notified, updated_at = now()`
	_, err := r.q.Exec(ctx, query, cfg.ItemID, cfg.Threshold, cfg.Notified)
	if err != nil {
		return fmt.Errorf("upsert alert config: %w", err)
	}
	return nil
}

// Delete deshabilita la alerta de un ítem.
func (r *AlertConfigRepo) Delete(ctx context.Context, itemID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM stock_alerts WHERE item_id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("delete alert config: %w", err)
	}
	return nil
}
