package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.StockItemRepository = (*StockItemRepo)(nil)

// StockItemRepo implementación sobre PostgreSQL (usable con pool o tx).
type StockItemRepo struct {
	q Querier
}

// NewStockItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockItemRepository(q Querier) *StockItemRepo {
	return &StockItemRepo{q: q}
}

const stockItemColumns = `id, product_id, variant_id, sku, name, category, current_stock, unit_cost, backorder_allowed, updated_at`

// Create persiste un ítem de stock nuevo (stock inicial cero salvo indicación).
func (r *StockItemRepo) Create(ctx context.Context, item *entity.StockItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.UpdatedAt.IsZero() {
		item.UpdatedAt = time.Now()
	}
	query := `
		INSERT INTO stock_items (` + stockItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.ProductID, item.VariantID, item.SKU, item.Name, item.Category,
		item.CurrentStock, item.UnitCost, item.BackorderAllowed, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create stock item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID.
func (r *StockItemRepo) GetByID(ctx context.Context, id string) (*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// GetBySKU obtiene un ítem por SKU.
func (r *StockItemRepo) GetBySKU(ctx context.Context, sku string) (*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE sku = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, sku))
}

// GetForUpdate obtiene el ítem y bloquea la fila (SELECT FOR UPDATE).
// El bloqueo es por ítem: dos SKUs distintos nunca contienden entre sí.
func (r *StockItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// UpdateStock escribe la proyección current_stock. Solo debe invocarse
// dentro de la transacción de append o de reconciliación, con la fila
// previamente bloqueada por GetForUpdate.
func (r *StockItemRepo) UpdateStock(ctx context.Context, id string, quantity int64) error {
	query := `UPDATE stock_items SET current_stock = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, quantity)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUnknownItem
	}
	return nil
}

// List lista ítems paginados por SKU.
func (r *StockItemRepo) List(ctx context.Context, limit, offset int) ([]*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items ORDER BY sku LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock items: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockItem
	for rows.Next() {
		item, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

// ListIDs devuelve todos los IDs de ítems (barrido de reconciliación).
func (r *StockItemRepo) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT id FROM stock_items ORDER BY sku`)
	if err != nil {
		return nil, fmt.Errorf("list stock item ids: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan stock item id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *StockItemRepo) scanOne(row pgx.Row) (*entity.StockItem, error) {
	var i entity.StockItem
	err := row.Scan(&i.ID, &i.ProductID, &i.VariantID, &i.SKU, &i.Name, &i.Category,
		&i.CurrentStock, &i.UnitCost, &i.BackorderAllowed, &i.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock item: %w", err)
	}
	return &i, nil
}

func (r *StockItemRepo) scanRow(rows pgx.Rows) (*entity.StockItem, error) {
	var i entity.StockItem
	if err := rows.Scan(&i.ID, &i.ProductID, &i.VariantID, &i.SKU, &i.Name, &i.Category,
		&i.CurrentStock, &i.UnitCost, &i.BackorderAllowed, &i.UpdatedAt); err != nil {
		return nil, fmt.Errorf("scan stock item: %w", err)
	}
	return &i, nil
}
