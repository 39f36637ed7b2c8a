// Package reporting contiene los casos de uso de solo lectura del
// dashboard operativo de inventario.
package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
)

const (
	dashboardRecentChanges = 10  // movimientos en el widget de actividad
	dashboardLowStockLimit = 20  // ítems en el widget de alertas
	dashboardTrendDays     = 30  // ventana de la tendencia diaria
	dashboardMaxRows       = 100 // tope de filas por widget
)

// DashboardUseCase agrega los widgets del dashboard. Todas las lecturas
// van por ReportingRepository (consultas read-only sobre el pool); nunca
// toca el camino de escritura del ledger.
type DashboardUseCase struct {
	reportingRepo repository.ReportingRepository
	log           *logger.Logger
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(reportingRepo repository.ReportingRepository, log *logger.Logger) *DashboardUseCase {
	return &DashboardUseCase{reportingRepo: reportingRepo, log: log}
}

// GetSummary totales de inventario: productos, bajo stock, agotados y valor.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	summary, err := uc.reportingRepo.GetSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: resumen: %w", err)
	}
	return dto.NewDashboardSummaryDTO(summary), nil
}

// GetStockByCategory stock y valor agregados por categoría.
func (uc *DashboardUseCase) GetStockByCategory(ctx context.Context) ([]dto.CategoryStockDTO, error) {
	rows, err := uc.reportingRepo.GetStockByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: stock por categoría: %w", err)
	}
	return dto.NewCategoryStockDTOs(rows), nil
}

// GetTrend entradas y salidas por día. Sin rango explícito cubre los
// últimos 30 días.
func (uc *DashboardUseCase) GetTrend(ctx context.Context, from, to *time.Time) ([]dto.TrendPointDTO, error) {
	end := time.Now()
	if to != nil {
		end = *to
	}
	start := end.AddDate(0, 0, -dashboardTrendDays)
	if from != nil {
		start = *from
	}
	if !start.Before(end) {
		return nil, fmt.Errorf("dashboard: %w: rango de fechas invertido", domain.ErrInvalidInput)
	}
	points, err := uc.reportingRepo.GetTrend(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("dashboard: tendencia: %w", err)
	}
	return dto.NewTrendPointDTOs(points), nil
}

// GetRecentChanges últimos movimientos del ledger con datos del producto.
// limit <= 0 usa el tamaño por defecto del widget.
func (uc *DashboardUseCase) GetRecentChanges(ctx context.Context, limit int) ([]dto.RecentChangeDTO, error) {
	limit = clampLimit(limit, dashboardRecentChanges)
	rows, err := uc.reportingRepo.GetRecentChanges(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("dashboard: movimientos recientes: %w", err)
	}
	return dto.NewRecentChangeDTOs(rows), nil
}

// GetLowStockAlerts ítems por debajo de su umbral, mayor déficit primero.
// limit <= 0 usa el tamaño por defecto del widget.
func (uc *DashboardUseCase) GetLowStockAlerts(ctx context.Context, limit int) ([]dto.LowStockAlertDTO, error) {
	limit = clampLimit(limit, dashboardLowStockLimit)
	rows, err := uc.reportingRepo.GetLowStockAlerts(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("dashboard: alertas de bajo stock: %w", err)
	}
	return dto.NewLowStockAlertDTOs(rows), nil
}

// GetDashboard construye el dashboard completo con las 5 consultas en
// paralelo. Degradación por widget: si una consulta falla, su sección
// llega en nil y el error queda en Errors[<widget>]; el resto del
// dashboard se sirve igual. Solo si TODOS los widgets fallan se
// devuelve error.
func (uc *DashboardUseCase) GetDashboard(ctx context.Context) (*dto.DashboardDTO, error) {
	type summaryResult struct {
		data *dto.DashboardSummaryDTO
		err  error
	}
	type categoriesResult struct {
		data []dto.CategoryStockDTO
		err  error
	}
	type trendResult struct {
		data []dto.TrendPointDTO
		err  error
	}
	type recentResult struct {
		data []dto.RecentChangeDTO
		err  error
	}
	type alertsResult struct {
		data []dto.LowStockAlertDTO
		err  error
	}

	summaryCh := make(chan summaryResult, 1)
	categoriesCh := make(chan categoriesResult, 1)
	trendCh := make(chan trendResult, 1)
	recentCh := make(chan recentResult, 1)
	alertsCh := make(chan alertsResult, 1)

	go func() {
		data, err := uc.GetSummary(ctx)
		summaryCh <- summaryResult{data, err}
	}()
	go func() {
		data, err := uc.GetStockByCategory(ctx)
		categoriesCh <- categoriesResult{data, err}
	}()
	go func() {
		data, err := uc.GetTrend(ctx, nil, nil)
		trendCh <- trendResult{data, err}
	}()
	go func() {
		data, err := uc.GetRecentChanges(ctx, 0)
		recentCh <- recentResult{data, err}
	}()
	go func() {
		data, err := uc.GetLowStockAlerts(ctx, 0)
		alertsCh <- alertsResult{data, err}
	}()

	summary := <-summaryCh
	categories := <-categoriesCh
	trend := <-trendCh
	recent := <-recentCh
	alerts := <-alertsCh

	board := &dto.DashboardDTO{
		Summary:       summary.data,
		ByCategory:    categories.data,
		Trend:         trend.data,
		RecentChanges: recent.data,
		LowStock:      alerts.data,
		GeneratedAt:   time.Now(),
		Errors:        map[string]string{},
	}
	failures := 0
	for widget, err := range map[string]error{
		"summary":        summary.err,
		"by_category":    categories.err,
		"trend":          trend.err,
		"recent_changes": recent.err,
		"low_stock":      alerts.err,
	} {
		if err == nil {
			continue
		}
		failures++
		board.Errors[widget] = "widget no disponible"
		if uc.log != nil {
			uc.log.Error().Err(err).Str("widget", widget).Msg("widget del dashboard degradado")
		}
	}
	if failures == 5 {
		return nil, fmt.Errorf("dashboard: todas las consultas fallaron: %w", summary.err)
	}
	if len(board.Errors) == 0 {
		board.Errors = nil
	}
	return board, nil
}

// clampLimit normaliza el limit pedido: sin valor usa el defecto del
// widget y nunca excede el tope por consulta.
func clampLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > dashboardMaxRows {
		return dashboardMaxRows
	}
	return limit
}
