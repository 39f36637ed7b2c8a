package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.ReconciliationNoteRepository = (*ReconciliationNoteRepo)(nil)

// ReconciliationNoteRepo implementación sobre PostgreSQL (usable con pool o tx).
type ReconciliationNoteRepo struct {
	q Querier
}

// NewReconciliationNoteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReconciliationNoteRepository(q Querier) *ReconciliationNoteRepo {
	return &ReconciliationNoteRepo{q: q}
}

// Create persiste una nota de reconciliación.
func (r *ReconciliationNoteRepo) Create(ctx context.Context, note *entity.ReconciliationNote) error {
	if note.ID == "" {
		note.ID = uuid.New().String()
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO reconciliation_notes (id, item_id, stored_quantity, computed_quantity, delta, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		note.ID, note.ItemID, note.StoredQuantity, note.ComputedQuantity, note.Delta, note.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create reconciliation note: %w", err)
	}
	return nil
}

// ListForItem notas de un ítem, más reciente primero.
func (r *ReconciliationNoteRepo) ListForItem(ctx context.Context, itemID string, limit int) ([]*entity.ReconciliationNote, error) {
	query := `
		SELECT id, item_id, stored_quantity, computed_quantity, delta, created_at
		FROM reconciliation_notes WHERE item_id = $1
		ORDER BY created_at DESC LIMIT $2`
	rows, err := r.q.Query(ctx, query, itemID, limit)
	if err != nil {
		return nil, fmt.Errorf("list reconciliation notes: %w", err)
	}
	defer rows.Close()
	var list []*entity.ReconciliationNote
	for rows.Next() {
		var n entity.ReconciliationNote
		if err := rows.Scan(&n.ID, &n.ItemID, &n.StoredQuantity, &n.ComputedQuantity, &n.Delta, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan reconciliation note: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}
