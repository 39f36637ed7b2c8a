package http_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/reporting"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
	apphttp "github.com/jhoicas/stock-ledger-api/internal/interfaces/http"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
)

// spyReportingRepo registra el limit que recibe cada consulta acotada.
type spyReportingRepo struct {
	recentLimit   int
	lowStockLimit int
}

var _ repository.ReportingRepository = (*spyReportingRepo)(nil)

func (r *spyReportingRepo) GetSummary(context.Context) (*repository.SummaryResult, error) {
	return &repository.SummaryResult{}, nil
}

func (r *spyReportingRepo) GetStockByCategory(context.Context) ([]repository.CategoryStockResult, error) {
	return nil, nil
}

func (r *spyReportingRepo) GetTrend(context.Context, time.Time, time.Time) ([]repository.TrendPoint, error) {
	return nil, nil
}

func (r *spyReportingRepo) GetRecentChanges(_ context.Context, limit int) ([]repository.RecentChangeResult, error) {
	r.recentLimit = limit
	return nil, nil
}

func (r *spyReportingRepo) GetLowStockAlerts(_ context.Context, limit int) ([]repository.LowStockAlertResult, error) {
	r.lowStockLimit = limit
	return nil, nil
}

func buildDashboardApp() (*fiber.App, *spyReportingRepo) {
	repo := &spyReportingRepo{}
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	handler := apphttp.NewDashboardHandler(reporting.NewDashboardUseCase(repo, log))

	app := fiber.New()
	app.Get("/dashboard/recent-changes", handler.GetRecentChanges)
	app.Get("/dashboard/low-stock-alerts", handler.GetLowStockAlerts)
	return app, repo
}

// ?limit debe llegar hasta el repositorio; sin él se usan los tamaños por
// defecto de cada widget.
func TestDashboardHandler_LimitLlegaAlRepositorio(t *testing.T) {
	app, repo := buildDashboardApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/dashboard/recent-changes?limit=3", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 3, repo.recentLimit)

	resp, err = app.Test(httptest.NewRequest("GET", "/dashboard/low-stock-alerts?limit=7", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 7, repo.lowStockLimit)
}

func TestDashboardHandler_SinLimitUsaDefectos(t *testing.T) {
	app, repo := buildDashboardApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/dashboard/recent-changes", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 10, repo.recentLimit)

	resp, err = app.Test(httptest.NewRequest("GET", "/dashboard/low-stock-alerts", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 20, repo.lowStockLimit)
}
