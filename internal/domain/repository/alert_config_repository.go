package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// AlertConfigRepository puerto para la configuración de alertas por ítem.
type AlertConfigRepository interface {
	Get(ctx context.Context, itemID string) (*entity.AlertConfig, error)
	Upsert(ctx context.Context, cfg *entity.AlertConfig) error
	Delete(ctx context.Context, itemID string) error
}
