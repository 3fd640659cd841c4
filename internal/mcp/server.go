package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/costtrack/internal/domain/activity"
	"github.com/rpggio/costtrack/internal/domain/expense"
	"github.com/rpggio/costtrack/internal/domain/insight"
	"github.com/rpggio/costtrack/internal/domain/inventory"
	"github.com/rpggio/costtrack/internal/domain/labor"
	"github.com/rpggio/costtrack/internal/domain/metrics"
	"github.com/rpggio/costtrack/internal/domain/project"
	"github.com/rpggio/costtrack/internal/export"
)

// Version is reported to MCP clients during initialization.
const Version = "0.2.0"

// ProjectService defines project operations needed by MCP.
type ProjectService interface {
	Create(ctx context.Context, req project.CreateRequest) (*project.Project, error)
	List(ctx context.Context) ([]project.Project, error)
	Get(ctx context.Context, id string) (*project.Project, error)
	Update(ctx context.Context, req project.UpdateRequest) (*project.Project, error)
	Delete(ctx context.Context, id string) error
}

// ExpenseService defines expense operations needed by MCP.
type ExpenseService interface {
	Create(ctx context.Context, req expense.CreateRequest) (*expense.Expense, error)
	List(ctx context.Context, projectID string) ([]expense.Expense, error)
	Delete(ctx context.Context, id string) error
}

// LaborService defines labor operations needed by MCP.
type LaborService interface {
	Create(ctx context.Context, req labor.CreateRequest) (*labor.Record, error)
	List(ctx context.Context, projectID string) ([]labor.Record, error)
	Delete(ctx context.Context, id string) error
}

// InventoryService defines inventory operations needed by MCP.
type InventoryService interface {
	Create(ctx context.Context, req inventory.CreateRequest) (*inventory.Item, error)
	List(ctx context.Context) ([]inventory.Item, error)
	Critical(ctx context.Context) ([]inventory.Item, error)
	SetQuantity(ctx context.Context, id string, quantity float64) (*inventory.Item, error)
	Delete(ctx context.Context, id string) error
}

// MetricsService defines metric derivations needed by MCP.
type MetricsService interface {
	ProjectMetrics(ctx context.Context, projectID string) (metrics.Metrics, error)
	Portfolio(ctx context.Context) (metrics.Portfolio, error)
}

// InsightService produces AI cost commentary.
type InsightService interface {
	Generate(ctx context.Context, projectID string) (*insight.Insight, error)
}

// ExportService writes report files to the export directory.
type ExportService interface {
	SaveExpenses(ctx context.Context, f export.Format, projectID string) (string, error)
	SaveProjectReport(ctx context.Context, projectID, narrative string) (string, error)
}

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// Services contains all domain services needed by MCP.
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

// Config contains server configuration.
type Config struct {
	Services      Services
	Resolver      KeyResolver
	AuthEnabled   bool
	TransportMode string // "stdio" or "http"
	Logger        *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "costtrack",
		Version: Version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	// Stdio is a local process; only HTTP honours AuthEnabled.
	identity := noAuthMiddleware(LocalActor)
	if cfg.TransportMode != "stdio" && cfg.AuthEnabled && cfg.Resolver != nil {
		identity = authMiddleware(cfg.Resolver)
	}
	// Identity runs first so traffic logs carry the actor.
	server.AddReceivingMiddleware(identity, trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Services, cfg.Logger)

	return server
}
