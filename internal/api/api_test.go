package api

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rpggio/costtrack/internal/domain/activity"
	"github.com/rpggio/costtrack/internal/domain/expense"
	"github.com/rpggio/costtrack/internal/domain/insight"
	"github.com/rpggio/costtrack/internal/domain/inventory"
	"github.com/rpggio/costtrack/internal/domain/labor"
	"github.com/rpggio/costtrack/internal/domain/metrics"
	"github.com/rpggio/costtrack/internal/domain/project"
	"github.com/rpggio/costtrack/internal/export"
	"github.com/rpggio/costtrack/internal/sqlite"
	"github.com/rpggio/costtrack/internal/store"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var fixedNow = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func newTestServices(t *testing.T) Services {
	t.Helper()
	ctx := context.Background()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { db.Close() })
	activitySvc := activity.NewService(sqlite.NewActivityRepository(db), nil)

	s, err := store.Open(ctx, sqlite.NewKVRepository(db), store.DefaultNamespace, nil)
	require.NoError(t, err)
	projectRepo := store.NewProjectRepository(s)
	expenseRepo := store.NewExpenseRepository(s)
	laborRepo := store.NewLaborRepository(s)

	projects := project.NewService(projectRepo, activitySvc, nil)
	expenses := expense.NewService(expenseRepo, activitySvc, nil)
	metricsSvc := metrics.NewService(projectRepo, expenseRepo, laborRepo)
	_, err = projects.SeedDemo(ctx)
	require.NoError(t, err)

	return Services{
		Projects:  projects,
		Expenses:  expenses,
		Labor:     labor.NewService(laborRepo, activitySvc, nil),
		Inventory: inventory.NewService(store.NewInventoryRepository(s), activitySvc, nil),
		Metrics:   metricsSvc,
		Insight:   insight.NewService(metricsSvc, nil, activitySvc, nil),
		Export:    export.NewService(projects, expenses, metricsSvc, t.TempDir(), nil),
		Activity:  activitySvc,
	}
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	return NewRouter(Config{Services: newTestServices(t), Now: func() time.Time { return fixedNow }})
}

func do(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
}

func TestProjectsCRUD(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/api/projects", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decode[[]project.Project](t, rec), 2)

	rec = do(t, router, http.MethodPost, "/api/projects", map[string]any{
		"id": "yol-9", "name": "İzmir Çevre Yolu", "category": "road", "status": "planned",
		"total_budget": 8_000_000, "capacity": 25, "start_date": "2024-02-01",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[project.Project](t, rec)
	require.Equal(t, project.StatusPlanning, created.Status)

	rec = do(t, router, http.MethodPatch, "/api/projects/yol-9", map[string]any{"percent_complete": 12.5})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 12.5, decode[project.Project](t, rec).PercentComplete)

	rec = do(t, router, http.MethodPatch, "/api/projects/yol-9", map[string]any{"percent_complete": 120})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/projects/yol-9/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	m := decode[metrics.Metrics](t, rec)
	require.Equal(t, "km", m.UnitLabel)
	require.Equal(t, 1.0, m.CPI)

	rec = do(t, router, http.MethodDelete, "/api/projects/yol-9", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/projects/yol-9", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, decode[map[string]string](t, rec)["error"], "not found")
}

func TestCreateProject_Validation(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/api/projects", map[string]any{"name": "X", "category": "bridge", "total_budget": 1})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/projects", map[string]any{"id": "1", "name": "X", "category": "solar", "total_budget": 1})
	require.Equal(t, http.StatusConflict, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/projects", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExpensesAndLabor(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/api/expenses", map[string]any{
		"project_id": "1", "amount": 3_000_000, "category": "Malzeme", "description": "Panel alımı", "date": "2024-04-01",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	exp := decode[expense.Expense](t, rec)
	require.Equal(t, expense.TypeMaterial, exp.Type)

	rec = do(t, router, http.MethodPost, "/api/expenses", map[string]any{"project_id": "nope", "amount": 1, "description": "x"})
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/labor", map[string]any{
		"project_id": "1", "worker_name": "Mehmet Demir", "hours": 4, "overtime": 0, "daily_rate": 1000,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	lab := decode[map[string]any](t, rec)
	require.Equal(t, 500.0, lab["cost"])

	rec = do(t, router, http.MethodGet, "/api/expenses?project_id=1", nil)
	require.Len(t, decode[[]expense.Expense](t, rec), 1)
	rec = do(t, router, http.MethodGet, "/api/expenses?project_id=2", nil)
	require.Empty(t, decode[[]expense.Expense](t, rec))

	rec = do(t, router, http.MethodGet, "/api/projects/1/metrics", nil)
	m := decode[metrics.Metrics](t, rec)
	require.InDelta(t, 3_000_500, m.ActualCost, 1e-6)
	require.InDelta(t, 6_750_000, m.EarnedValue, 1e-6)

	rec = do(t, router, http.MethodDelete, "/api/expenses/"+exp.ID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, router, http.MethodDelete, "/api/expenses/"+exp.ID, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/labor", nil)
	records := decode[[]map[string]any](t, rec)
	require.Len(t, records, 1)
	rec = do(t, router, http.MethodDelete, "/api/labor/"+records[0]["id"].(string), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestInventory(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/api/inventory", map[string]any{
		"name": "Çimento", "quantity": 10, "unit": "ton", "min_stock": 10,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	item := decode[inventory.ItemView](t, rec)
	require.Equal(t, inventory.StatusCritical, item.Status)

	rec = do(t, router, http.MethodGet, "/api/inventory?status=critical", nil)
	require.Len(t, decode[[]inventory.ItemView](t, rec), 1)

	rec = do(t, router, http.MethodPatch, "/api/inventory/"+item.ID, map[string]any{"quantity": 40})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, inventory.StatusSufficient, decode[inventory.ItemView](t, rec).Status)

	rec = do(t, router, http.MethodPatch, "/api/inventory/"+item.ID, map[string]any{})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodDelete, "/api/inventory/"+item.ID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, router, http.MethodPatch, "/api/inventory/"+item.ID, map[string]any{"quantity": 1})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAnalysisEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/api/portfolio", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	portfolio := decode[metrics.Portfolio](t, rec)
	require.Equal(t, 2, portfolio.ProjectCount)
	require.InDelta(t, 60_000_000, portfolio.TotalBudget, 1e-6)

	rec = do(t, router, http.MethodPost, "/api/projects/1/insight", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	ins := decode[insight.Insight](t, rec)
	require.True(t, ins.Fallback)

	rec = do(t, router, http.MethodPost, "/api/projects/zzz/insight", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/budget-templates/solar", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	tmpl := decode[map[string]any](t, rec)
	require.Equal(t, 6_000_000.0, tmpl["planned_total"])

	rec = do(t, router, http.MethodGet, "/api/budget-templates/bridge", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/activity?project_id=1&type=insight_generated", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	entries := decode[[]activity.ActivityEntry](t, rec)
	require.Len(t, entries, 1)
	require.Equal(t, LocalActor, entries[0].Actor)
}

func TestDownloads(t *testing.T) {
	router := newTestRouter(t)
	rec := do(t, router, http.MethodPost, "/api/expenses", map[string]any{
		"project_id": "2", "amount": 42_000, "category": "Akaryakıt", "description": "Motorin", "type": "fuel",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/expenses/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Disposition"), "MegaCost_Rapor_2024-05-01.csv")
	rows, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, export.ExpenseHeader, rows[0])
	require.Equal(t, "Ankara-Niğde Otoyolu", rows[1][1])

	rec = do(t, router, http.MethodGet, "/api/expenses/export?format=xlsx", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, export.FormatXLSX.ContentType(), rec.Header().Get("Content-Type"))

	rec = do(t, router, http.MethodGet, "/api/expenses/export?format=docx", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/projects/2/report", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))

	rec = do(t, router, http.MethodGet, "/api/projects/404/report", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

type resolverStub map[string]string

func (r resolverStub) Resolve(_ context.Context, token string) (string, error) {
	if label, ok := r[token]; ok {
		return label, nil
	}
	return "", errors.New("unknown key")
}

func TestBearerAuth(t *testing.T) {
	svc := newTestServices(t)
	router := NewRouter(Config{Services: svc, AuthEnabled: true, Resolver: resolverStub{"ct_ok": "saha-ofisi"}})

	rec := do(t, router, http.MethodGet, "/api/projects", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodDelete, "/api/projects/2", nil)
	req.Header.Set("Authorization", "Bearer ct_ok")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	req.Header.Set("Authorization", "Bearer ct_wrong")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	entries, err := svc.Activity.GetRecentActivity(context.Background(), activity.ListActivityOptions{ProjectID: "2"})
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	require.Equal(t, "saha-ofisi", entries[0].Actor)

	// health stays public
	rec = do(t, router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestMCPMount(t *testing.T) {
	mcpHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})
	router := NewRouter(Config{Services: newTestServices(t), MCPHandler: mcpHandler})
	rec := do(t, router, http.MethodPost, "/mcp", map[string]any{})
	require.Equal(t, http.StatusAccepted, rec.Code)
}
