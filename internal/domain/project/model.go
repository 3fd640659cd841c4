package project

import "time"

// Category is the construction vertical a project belongs to.
type Category string

const (
	CategorySolar Category = "solar"
	CategoryRoad  Category = "road"
)

// Valid reports whether c is a supported vertical.
func (c Category) Valid() bool {
	return c == CategorySolar || c == CategoryRoad
}

// UnitLabel is the physical unit capacity is measured in.
func (c Category) UnitLabel() string {
	if c == CategorySolar {
		return "MW"
	}
	return "KM"
}

// Status is the lifecycle state of a project.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
	StatusPlanning  Status = "PLANNING"

	// statusPlanned is the older spelling of StatusPlanning.
	statusPlanned Status = "PLANNED"
)

// NormalizeStatus maps accepted spellings onto the canonical statuses.
// An empty status defaults to ACTIVE.
func NormalizeStatus(s Status) (Status, bool) {
	switch s {
	case StatusActive, StatusCompleted, StatusPlanning:
		return s, true
	case statusPlanned:
		return StatusPlanning, true
	case "":
		return StatusActive, true
	default:
		return "", false
	}
}

// Project is a capital project whose costs are tracked.
type Project struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Category        Category   `json:"category"`
	Location        string     `json:"location,omitempty"`
	Status          Status     `json:"status"`
	TotalBudget     float64    `json:"total_budget"`
	Capacity        float64    `json:"capacity"`
	StartDate       time.Time  `json:"start_date"`
	TargetEndDate   *time.Time `json:"target_end_date,omitempty"`
	PercentComplete float64    `json:"percent_complete"`
	TargetCO2Saved  *float64   `json:"target_co2_saved,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// UnitLabel is the unit of the project's capacity.
func (p Project) UnitLabel() string {
	return p.Category.UnitLabel()
}
