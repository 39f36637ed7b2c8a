package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// ReconciliationNoteRepository puerto para notas de auditoría de reconciliación.
type ReconciliationNoteRepository interface {
	Create(ctx context.Context, note *entity.ReconciliationNote) error
	ListForItem(ctx context.Context, itemID string, limit int) ([]*entity.ReconciliationNote, error)
}
