// Package api serves the JSON REST API used by the dashboard.
package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rpggio/costtrack/internal/domain/activity"
	"github.com/rpggio/costtrack/internal/domain/expense"
	"github.com/rpggio/costtrack/internal/domain/insight"
	"github.com/rpggio/costtrack/internal/domain/inventory"
	"github.com/rpggio/costtrack/internal/domain/labor"
	"github.com/rpggio/costtrack/internal/domain/metrics"
	"github.com/rpggio/costtrack/internal/domain/project"
	"github.com/rpggio/costtrack/internal/export"
)

type ProjectService interface {
	Create(ctx context.Context, req project.CreateRequest) (*project.Project, error)
	List(ctx context.Context) ([]project.Project, error)
	Get(ctx context.Context, id string) (*project.Project, error)
	Update(ctx context.Context, req project.UpdateRequest) (*project.Project, error)
	Delete(ctx context.Context, id string) error
}

type ExpenseService interface {
	Create(ctx context.Context, req expense.CreateRequest) (*expense.Expense, error)
	List(ctx context.Context, projectID string) ([]expense.Expense, error)
	Delete(ctx context.Context, id string) error
}

type LaborService interface {
	Create(ctx context.Context, req labor.CreateRequest) (*labor.Record, error)
	List(ctx context.Context, projectID string) ([]labor.Record, error)
	Delete(ctx context.Context, id string) error
}

type InventoryService interface {
	Create(ctx context.Context, req inventory.CreateRequest) (*inventory.Item, error)
	List(ctx context.Context) ([]inventory.Item, error)
	SetQuantity(ctx context.Context, id string, quantity float64) (*inventory.Item, error)
	Delete(ctx context.Context, id string) error
}

type MetricsService interface {
	ProjectMetrics(ctx context.Context, projectID string) (metrics.Metrics, error)
	Portfolio(ctx context.Context) (metrics.Portfolio, error)
}

type InsightService interface {
	Generate(ctx context.Context, projectID string) (*insight.Insight, error)
}

// ExportService streams downloads straight into the response.
type ExportService interface {
	WriteExpenses(ctx context.Context, w io.Writer, f export.Format, projectID string) error
	WriteProjectReport(ctx context.Context, w io.Writer, projectID, narrative string) error
}

type ActivityService interface {
	GetRecentActivity(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// Services contains the domain services behind the REST API.
type Services struct {
	Projects  ProjectService
	Expenses  ExpenseService
	Labor     LaborService
	Inventory InventoryService
	Metrics   MetricsService
	Insight   InsightService
	Export    ExportService
	Activity  ActivityService
}

// KeyResolver resolves the label of an API key from its bearer token.
type KeyResolver interface {
	Resolve(ctx context.Context, token string) (string, error)
}

// Config configures the router.
type Config struct {
	Services    Services
	CORSOrigins []string
	AuthEnabled bool
	Resolver    KeyResolver
	// MCPHandler, when set, is mounted at /mcp.
	MCPHandler http.Handler
	Logger     *slog.Logger
	// Now is used for download file names; defaults to time.Now.
	Now func() time.Time
}

type handler struct {
	svc    Services
	logger *slog.Logger
	now    func() time.Time
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(cfg Config) *gin.Engine {
	h := &handler{svc: cfg.Services, logger: cfg.Logger, now: cfg.Now}
	if h.now == nil {
		h.now = time.Now
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(cfg.Logger))
	router.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	if cfg.MCPHandler != nil {
		mcpHandler := gin.WrapH(cfg.MCPHandler)
		router.Any("/mcp", mcpHandler)
	}

	api := router.Group("/api")
	if cfg.AuthEnabled && cfg.Resolver != nil {
		api.Use(bearerAuth(cfg.Resolver))
	} else {
		api.Use(localActor())
	}

	projects := api.Group("/projects")
	projects.GET("", h.listProjects)
	projects.POST("", h.createProject)
	projects.GET("/:id", h.getProject)
	projects.PATCH("/:id", h.updateProject)
	projects.DELETE("/:id", h.deleteProject)
	projects.GET("/:id/metrics", h.projectMetrics)
	projects.POST("/:id/insight", h.projectInsight)
	projects.GET("/:id/report", h.projectReport)

	expenses := api.Group("/expenses")
	expenses.GET("", h.listExpenses)
	expenses.POST("", h.createExpense)
	expenses.GET("/export", h.exportExpenses)
	expenses.DELETE("/:id", h.deleteExpense)

	inv := api.Group("/inventory")
	inv.GET("", h.listInventory)
	inv.POST("", h.createInventoryItem)
	inv.PATCH("/:id", h.adjustInventory)
	inv.DELETE("/:id", h.deleteInventoryItem)

	lab := api.Group("/labor")
	lab.GET("", h.listLabor)
	lab.POST("", h.createLabor)
	lab.DELETE("/:id", h.deleteLabor)

	api.GET("/portfolio", h.portfolio)
	api.GET("/budget-templates/:category", h.budgetTemplate)
	api.GET("/activity", h.listActivity)

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	cfg.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "Mcp-Session-Id"}
	cfg.ExposeHeaders = []string{"Content-Disposition", "Mcp-Session-Id"}
	cfg.MaxAge = 12 * time.Hour
	return cfg
}
