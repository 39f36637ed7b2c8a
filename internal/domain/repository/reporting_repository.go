package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// SummaryResult totales del dashboard derivados de las proyecciones.
type SummaryResult struct {
	TotalProducts   int64
	LowStockCount   int64
	OutOfStockCount int64
	InventoryValue  decimal.Decimal // Σ current_stock × unit_cost
}

// CategoryStockResult stock y valor agregados por categoría de producto.
type CategoryStockResult struct {
	Category   string
	TotalStock int64
	Value      decimal.Decimal
}

// TrendPoint cantidades de entrada/salida de un día, plegadas del ledger.
type TrendPoint struct {
	Date   time.Time
	InQty  int64
	OutQty int64
}

// RecentChangeResult movimiento reciente con datos del ítem para el widget.
type RecentChangeResult struct {
	EntryID        string
	ItemID         string
	ChangeType     entity.ChangeType
	QuantityChange int64
	ProductName    string
	ProductSKU     string
	CreatedBy      string
	CreatedAt      time.Time
}

// LowStockAlertResult ítem por debajo de su umbral, ordenado por déficit.
type LowStockAlertResult struct {
	ItemID      string
	ProductName string
	ProductSKU  string
	Stock       int64
	Threshold   int64
}

// ReportingRepository consultas de solo lectura para el dashboard.
// Lecturas sin bloqueo sobre el pool; pueden observar stock ligeramente
// desactualizado frente a un append en vuelo (consistencia eventual).
type ReportingRepository interface {
	GetSummary(ctx context.Context) (*SummaryResult, error)
	GetStockByCategory(ctx context.Context) ([]CategoryStockResult, error)
	GetTrend(ctx context.Context, from, to time.Time) ([]TrendPoint, error)
	GetRecentChanges(ctx context.Context, limit int) ([]RecentChangeResult, error)
	GetLowStockAlerts(ctx context.Context, limit int) ([]LowStockAlertResult, error)
}
