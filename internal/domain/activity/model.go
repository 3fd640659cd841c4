package activity

import "time"

// ActivityType represents the type of activity event
type ActivityType string

const (
	TypeProjectCreated    ActivityType = "project_created"
	TypeProjectUpdated    ActivityType = "project_updated"
	TypeProjectDeleted    ActivityType = "project_deleted"
	TypeExpenseAdded      ActivityType = "expense_added"
	TypeExpenseDeleted    ActivityType = "expense_deleted"
	TypeInventoryAdded    ActivityType = "inventory_added"
	TypeInventoryAdjusted ActivityType = "inventory_adjusted"
	TypeInventoryDeleted  ActivityType = "inventory_deleted"
	TypeLaborAdded        ActivityType = "labor_added"
	TypeLaborDeleted      ActivityType = "labor_deleted"
	TypeInsightGenerated  ActivityType = "insight_generated"
	TypeBudgetAlert       ActivityType = "budget_alert"
	TypeStockAlert        ActivityType = "stock_alert"
)

// ActivityEntry represents an event in the activity log
type ActivityEntry struct {
	ID           int64        `json:"id"`
	ProjectID    string       `json:"project_id,omitempty"`
	EntityID     string       `json:"entity_id,omitempty"`
	ActivityType ActivityType `json:"type"`
	Actor        string       `json:"actor,omitempty"`
	Summary      string       `json:"summary"`
	Details      string       `json:"details,omitempty"` // JSON string
	CreatedAt    time.Time    `json:"created_at"`
}
