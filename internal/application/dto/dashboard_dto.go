package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	TotalProducts   int64           `json:"total_products"`
	LowStockCount   int64           `json:"low_stock_count"`
	OutOfStockCount int64           `json:"out_of_stock_count"`
	InventoryValue  decimal.Decimal `json:"inventory_value"` // Σ stock × costo unitario
}

// NewDashboardSummaryDTO mapea el resultado del repositorio.
func NewDashboardSummaryDTO(s *repository.SummaryResult) *DashboardSummaryDTO {
	return &DashboardSummaryDTO{
		TotalProducts:   s.TotalProducts,
		LowStockCount:   s.LowStockCount,
		OutOfStockCount: s.OutOfStockCount,
		InventoryValue:  s.InventoryValue.Round(2),
	}
}

// CategoryStockDTO fila del widget de stock por categoría.
type CategoryStockDTO struct {
	Category   string          `json:"category"`
	TotalStock int64           `json:"total_stock"`
	Value      decimal.Decimal `json:"value"`
}

// NewCategoryStockDTOs mapea las filas del repositorio.
func NewCategoryStockDTOs(rows []repository.CategoryStockResult) []CategoryStockDTO {
	out := make([]CategoryStockDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, CategoryStockDTO{
			Category:   r.Category,
			TotalStock: r.TotalStock,
			Value:      r.Value.Round(2),
		})
	}
	return out
}

// TrendPointDTO entradas y salidas de un día.
type TrendPointDTO struct {
	Date   string `json:"date"` // YYYY-MM-DD
	InQty  int64  `json:"in_qty"`
	OutQty int64  `json:"out_qty"`
}

// NewTrendPointDTOs mapea los puntos de la tendencia.
func NewTrendPointDTOs(points []repository.TrendPoint) []TrendPointDTO {
	out := make([]TrendPointDTO, 0, len(points))
	for _, p := range points {
		out = append(out, TrendPointDTO{
			Date:   p.Date.Format("2006-01-02"),
			InQty:  p.InQty,
			OutQty: p.OutQty,
		})
	}
	return out
}

// RecentChangeDTO fila del widget de actividad reciente.
type RecentChangeDTO struct {
	EntryID        string    `json:"entry_id"`
	ItemID         string    `json:"item_id"`
	Type           string    `json:"type"`
	QuantityChange int64     `json:"quantity_change"`
	ProductName    string    `json:"product_name"`
	ProductSKU     string    `json:"product_sku"`
	CreatedBy      string    `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewRecentChangeDTOs mapea las filas del repositorio.
func NewRecentChangeDTOs(rows []repository.RecentChangeResult) []RecentChangeDTO {
	out := make([]RecentChangeDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, RecentChangeDTO{
			EntryID:        r.EntryID,
			ItemID:         r.ItemID,
			Type:           string(r.ChangeType),
			QuantityChange: r.QuantityChange,
			ProductName:    r.ProductName,
			ProductSKU:     r.ProductSKU,
			CreatedBy:      r.CreatedBy,
			CreatedAt:      r.CreatedAt,
		})
	}
	return out
}

// LowStockAlertDTO fila del widget de ítems bajo umbral.
type LowStockAlertDTO struct {
	ItemID      string `json:"item_id"`
	ProductName string `json:"product_name"`
	ProductSKU  string `json:"product_sku"`
	Stock       int64  `json:"stock"`
	Threshold   int64  `json:"threshold"`
	Deficit     int64  `json:"deficit"` // threshold - stock
}

// NewLowStockAlertDTOs mapea las filas del repositorio.
func NewLowStockAlertDTOs(rows []repository.LowStockAlertResult) []LowStockAlertDTO {
	out := make([]LowStockAlertDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, LowStockAlertDTO{
			ItemID:      r.ItemID,
			ProductName: r.ProductName,
			ProductSKU:  r.ProductSKU,
			Stock:       r.Stock,
			Threshold:   r.Threshold,
			Deficit:     r.Threshold - r.Stock,
		})
	}
	return out
}

// DashboardDTO respuesta del dashboard combinado (GET /api/dashboard).
// Las secciones en nil corresponden a widgets degradados; Errors indica
// cuáles fallaron.
type DashboardDTO struct {
	Summary       *DashboardSummaryDTO `json:"summary"`
	ByCategory    []CategoryStockDTO   `json:"by_category"`
	Trend         []TrendPointDTO      `json:"trend"`
	RecentChanges []RecentChangeDTO    `json:"recent_changes"`
	LowStock      []LowStockAlertDTO   `json:"low_stock"`
	GeneratedAt   time.Time            `json:"generated_at"`
	Errors        map[string]string    `json:"errors,omitempty"`
}
