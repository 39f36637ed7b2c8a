package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger-api/internal/application/reporting"
)

// DashboardHandler maneja los endpoints de solo lectura del dashboard.
type DashboardHandler struct {
	uc *reporting.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *reporting.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetDashboard devuelve el dashboard completo con degradación por widget:
// las secciones cuya consulta falló llegan en nil y listadas en errors.
// GET /api/dashboard
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	board, err := h.uc.GetDashboard(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(board)
}

// GetSummary totales de inventario (productos, bajo stock, agotados, valor).
// GET /api/dashboard/summary
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// GetStockByCategory stock y valor agregados por categoría.
// GET /api/dashboard/stock-by-category
func (h *DashboardHandler) GetStockByCategory(c *fiber.Ctx) error {
	rows, err := h.uc.GetStockByCategory(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"categories": rows})
}

// GetTrend entradas y salidas por día; ?from y ?to (RFC3339) opcionales.
// GET /api/dashboard/trend
func (h *DashboardHandler) GetTrend(c *fiber.Ctx) error {
	from, err := parseTimeQuery(c, "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errRFC3339("from"))
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errRFC3339("to"))
	}
	points, err := h.uc.GetTrend(c.Context(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"trend": points})
}

// GetRecentChanges últimos movimientos con datos del producto; ?limit
// opcional (defecto 10, máx 100).
// GET /api/dashboard/recent-changes
func (h *DashboardHandler) GetRecentChanges(c *fiber.Ctx) error {
	rows, err := h.uc.GetRecentChanges(c.Context(), c.QueryInt("limit"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"recent_changes": rows})
}

// GetLowStockAlerts ítems bajo umbral, mayor déficit primero; ?limit
// opcional (defecto 20, máx 100).
// GET /api/dashboard/low-stock-alerts
func (h *DashboardHandler) GetLowStockAlerts(c *fiber.Ctx) error {
	rows, err := h.uc.GetLowStockAlerts(c.Context(), c.QueryInt("limit"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"low_stock_alerts": rows})
}
