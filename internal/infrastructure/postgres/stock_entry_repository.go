package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.StockEntryRepository = (*StockEntryRepo)(nil)

// StockEntryRepo implementación del ledger sobre PostgreSQL (usable con pool o tx).
// La tabla stock_ledger es append-only: aquí no existen UPDATE ni DELETE.
type StockEntryRepo struct {
	q Querier
}

// NewStockEntryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockEntryRepository(q Querier) *StockEntryRepo {
	return &StockEntryRepo{q: q}
}

const stockEntryColumns = `id, item_id, change_type, quantity_before, quantity_after, quantity_change,
		reason, related_order_id, related_supplier_id, created_by, created_at`

// Create persiste una entrada del ledger. El ID es UUIDv7 para que
// (created_at, id) sea una clave compuesta ordenable sin empates ambiguos.
func (r *StockEntryRepo) Create(ctx context.Context, entry *entity.StockEntry) error {
	if entry.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("generar id de entrada: %w", err)
		}
		entry.ID = id.String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO stock_ledger (` + stockEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	reason := (*string)(nil)
	if entry.Reason != "" {
		reason = &entry.Reason
	}
	_, err := r.q.Exec(ctx, query,
		entry.ID, entry.ItemID, entry.Type, entry.QuantityBefore, entry.QuantityAfter,
		entry.QuantityChange, reason, entry.RelatedOrderID, entry.RelatedSupplierID,
		entry.CreatedBy, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create ledger entry: %w", err)
	}
	return nil
}

// ListForItem escaneo keyset ascendente por (created_at, id). El cursor
// after reanuda exactamente después de la última entrada devuelta, sin
// huecos ni duplicados aunque varias entradas compartan created_at.
func (r *StockEntryRepo) ListForItem(ctx context.Context, itemID string, from, to *time.Time, after *repository.HistoryCursor, limit int) ([]*entity.StockEntry, error) {
	query := `
		SELECT ` + stockEntryColumns + `
		FROM stock_ledger WHERE item_id = $1`
	args := []any{itemID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	if after != nil {
		query += fmt.Sprintf(" AND (created_at, id) > ($%d, $%d)", pos, pos+1)
		args = append(args, after.CreatedAt, after.EntryID)
		pos += 2
	}
	query += fmt.Sprintf(" ORDER BY created_at ASC, id ASC LIMIT $%d", pos)
	args = append(args, limit)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// ListRecent últimas entradas del ledger, más reciente primero.
func (r *StockEntryRepo) ListRecent(ctx context.Context, limit int) ([]*entity.StockEntry, error) {
	query := `
		SELECT ` + stockEntryColumns + `
		FROM stock_ledger ORDER BY created_at DESC, id DESC LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent ledger entries: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// SumQuantityChange pliega el ledger completo de un ítem. Base de la
// reconciliación: el resultado es el stock "verdadero" del ítem.
func (r *StockEntryRepo) SumQuantityChange(ctx context.Context, itemID string) (int64, error) {
	var sum int64
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity_change), 0) FROM stock_ledger WHERE item_id = $1`,
		itemID,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum ledger entries: %w", err)
	}
	return sum, nil
}

func scanEntries(rows pgx.Rows) ([]*entity.StockEntry, error) {
	var list []*entity.StockEntry
	for rows.Next() {
		var e entity.StockEntry
		var reason *string
		if err := rows.Scan(&e.ID, &e.ItemID, &e.Type, &e.QuantityBefore, &e.QuantityAfter,
			&e.QuantityChange, &reason, &e.RelatedOrderID, &e.RelatedSupplierID,
			&e.CreatedBy, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		if reason != nil {
			e.Reason = *reason
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
