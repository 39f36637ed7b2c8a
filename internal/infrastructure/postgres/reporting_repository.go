package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.ReportingRepository = (*ReportingRepo)(nil)

// ReportingRepo consultas de solo lectura para el dashboard de inventario.
// Siempre lee sobre el pool (nunca dentro de la transacción de append):
// el reporting no debe bloquear ni ser bloqueado por el camino de escritura.
type ReportingRepo struct {
	pool *pgxpool.Pool
}

// NewReportingRepository construye el adaptador de reporting.
func NewReportingRepository(pool *pgxpool.Pool) *ReportingRepo {
	return &ReportingRepo{pool: pool}
}

// GetSummary totales del inventario: conteo de productos, agotados,
// bajo umbral y valor total (Σ current_stock × unit_cost).
func (r *ReportingRepo) GetSummary(ctx context.Context) (*repository.SummaryResult, error) {
	const query = `
	SELECT
	    COUNT(*)                                                          AS total_products,
	    COUNT(*) FILTER (WHERE i.current_stock <= 0)                      AS out_of_stock,
	    COUNT(*) FILTER (
	        WHERE i.current_stock > 0
	          AND a.threshold IS NOT NULL
	          AND i.current_stock <= a.threshold
	    )                                                                 AS low_stock,
	    COALESCE(SUM(GREATEST(i.current_stock, 0) * i.unit_cost), 0)      AS inventory_value
	FROM stock_items i
	LEFT JOIN stock_alerts a ON a.item_id = i.id`

	var s repository.SummaryResult
	err := r.pool.QueryRow(ctx, query).Scan(
		&s.TotalProducts, &s.OutOfStockCount, &s.LowStockCount, &s.InventoryValue,
	)
	if err != nil {
		return nil, fmt.Errorf("reporting.GetSummary: %w", err)
	}
	return &s, nil
}

// GetStockByCategory stock y valor agregados por categoría.
func (r *ReportingRepo) GetStockByCategory(ctx context.Context) ([]repository.CategoryStockResult, error) {
	const query = `
	SELECT
	    COALESCE(NULLIF(category, ''), 'Sin categoría')              AS category,
	    COALESCE(SUM(current_stock), 0)                              AS total_stock,
	    COALESCE(SUM(GREATEST(current_stock, 0) * unit_cost), 0)     AS value
	FROM stock_items
	GROUP BY 1
	ORDER BY value DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("reporting.GetStockByCategory: %w", err)
	}
	defer rows.Close()

	var results []repository.CategoryStockResult
	for rows.Next() {
		var row repository.CategoryStockResult
		if err := rows.Scan(&row.Category, &row.TotalStock, &row.Value); err != nil {
			return nil, fmt.Errorf("reporting.GetStockByCategory scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetTrend pliega el ledger por día y signo del cambio dentro del rango.
// Siempre se recalcula sobre el ledger vivo: las correcciones tardías
// (ADJUSTMENT) se reflejan en la serie sin caché destructiva.
func (r *ReportingRepo) GetTrend(ctx context.Context, from, to time.Time) ([]repository.TrendPoint, error) {
	const query = `
	SELECT
	    date_trunc('day', created_at)::date                                      AS day,
	    COALESCE(SUM(quantity_change) FILTER (WHERE quantity_change > 0), 0)     AS in_qty,
	    COALESCE(SUM(-quantity_change) FILTER (WHERE quantity_change < 0), 0)    AS out_qty
	FROM stock_ledger
	WHERE created_at BETWEEN $1 AND $2
	GROUP BY 1
	ORDER BY 1`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("reporting.GetTrend: %w", err)
	}
	defer rows.Close()

	var results []repository.TrendPoint
	for rows.Next() {
		var p repository.TrendPoint
		if err := rows.Scan(&p.Date, &p.InQty, &p.OutQty); err != nil {
			return nil, fmt.Errorf("reporting.GetTrend scan: %w", err)
		}
		results = append(results, p)
	}
	return results, rows.Err()
}

// GetRecentChanges últimos movimientos con nombre y SKU del ítem.
func (r *ReportingRepo) GetRecentChanges(ctx context.Context, limit int) ([]repository.RecentChangeResult, error) {
	const query = `
	SELECT
	    l.id,
	    l.item_id,
	    l.change_type,
	    l.quantity_change,
	    i.name      AS product_name,
	    i.sku       AS product_sku,
	    l.created_by,
	    l.created_at
	FROM stock_ledger l
	JOIN stock_items i ON i.id = l.item_id
	ORDER BY l.created_at DESC, l.id DESC
	LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("reporting.GetRecentChanges: %w", err)
	}
	defer rows.Close()

	var results []repository.RecentChangeResult
	for rows.Next() {
		var row repository.RecentChangeResult
		if err := rows.Scan(
			&row.EntryID, &row.ItemID, &row.ChangeType, &row.QuantityChange,
			&row.ProductName, &row.ProductSKU, &row.CreatedBy, &row.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("reporting.GetRecentChanges scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetLowStockAlerts ítems con alerta configurada y stock dentro del umbral,
// ordenados por déficit descendente (mayor quiebre primero).
func (r *ReportingRepo) GetLowStockAlerts(ctx context.Context, limit int) ([]repository.LowStockAlertResult, error) {
	const query = `
	SELECT
	    i.id,
	    i.name          AS product_name,
	    i.sku           AS product_sku,
	    i.current_stock AS stock,
	    a.threshold
	FROM stock_items i
	JOIN stock_alerts a ON a.item_id = i.id
	WHERE i.current_stock <= a.threshold
	ORDER BY (a.threshold - i.current_stock) DESC
	LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("reporting.GetLowStockAlerts: %w", err)
	}
	defer rows.Close()

	var results []repository.LowStockAlertResult
	for rows.Next() {
		var row repository.LowStockAlertResult
		if err := rows.Scan(&row.ItemID, &row.ProductName, &row.ProductSKU, &row.Stock, &row.Threshold); err != nil {
			return nil, fmt.Errorf("reporting.GetLowStockAlerts scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
