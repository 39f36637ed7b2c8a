package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger-api/internal/application/alerts"
	"github.com/jhoicas/stock-ledger-api/internal/application/items"
	"github.com/jhoicas/stock-ledger-api/internal/application/ledger"
	"github.com/jhoicas/stock-ledger-api/internal/application/purchasing"
	"github.com/jhoicas/stock-ledger-api/internal/application/reporting"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemsUC     *items.UseCase
	AppendUC    *ledger.AppendUseCase
	HistoryUC   *ledger.HistoryUseCase
	ReconcileUC *ledger.ReconcileUseCase
	EvaluatorUC *alerts.EvaluatorUseCase
	PurchaseUC  *purchasing.UseCase
	ReceiveUC   *purchasing.ReceiveUseCase
	DashboardUC *reporting.DashboardUseCase
	JWTSecret   string
	Log         *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	admin := RequireRole("admin")

	// Catálogo de ítems y alertas (protegido)
	itemHandler := NewItemHandler(deps.ItemsUC, deps.EvaluatorUC)
	inv := protected.Group("/inventory")
	invItems := inv.Group("/items")
	invItems.Post("/", admin, itemHandler.Create)
	invItems.Get("/", itemHandler.List)
	invItems.Get("/:id", itemHandler.GetByID)
	invItems.Get("/:id/stock", itemHandler.GetStock)
	invItems.Get("/:id/alert", itemHandler.GetAlertState)
	invItems.Put("/:id/alert-config", admin, itemHandler.SetAlertConfig)
	invItems.Delete("/:id/alert-config", admin, itemHandler.DeleteAlertConfig)

	// Ledger de movimientos (protegido)
	inventoryHandler := NewInventoryHandler(deps.AppendUC, deps.HistoryUC, deps.ReconcileUC, deps.EvaluatorUC, deps.Log)
	inv.Post("/movements", inventoryHandler.RegisterMovement)
	inv.Get("/recent", inventoryHandler.GetRecent)
	invItems.Get("/:id/history", inventoryHandler.GetHistory)
	invItems.Get("/:id/reconciliation-notes", admin, inventoryHandler.GetReconciliationNotes)
	inv.Post("/reconcile/:id", admin, inventoryHandler.Reconcile)

	// Órdenes de compra (protegido)
	orders := protected.Group("/purchase-orders")
	orderHandler := NewPurchaseOrderHandler(deps.PurchaseUC, deps.ReceiveUC)
	orders.Post("/", admin, orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Post("/:id/status", admin, orderHandler.ChangeStatus)
	orders.Post("/:id/receipts", admin, orderHandler.Receive)

	// Dashboard (protegido, solo lectura)
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/", dashboardHandler.GetDashboard)
	dashboard.Get("/summary", dashboardHandler.GetSummary)
	dashboard.Get("/stock-by-category", dashboardHandler.GetStockByCategory)
	dashboard.Get("/trend", dashboardHandler.GetTrend)
	dashboard.Get("/recent-changes", dashboardHandler.GetRecentChanges)
	dashboard.Get("/low-stock-alerts", dashboardHandler.GetLowStockAlerts)
}
