package expense

import "time"

// Type classifies what an expense paid for.
type Type string

const (
	TypeMaterial Type = "MATERIAL"
	TypeLabor    Type = "LABOR"
	TypeMachine  Type = "MACHINE"
	TypeFuel     Type = "FUEL"
	TypeOther    Type = "OTHER"
)

// Types lists every expense type in display order.
var Types = []Type{TypeMaterial, TypeLabor, TypeMachine, TypeFuel, TypeOther}

// Valid reports whether t is a known expense type.
func (t Type) Valid() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// DefaultCategory is used when an expense is entered without a category.
const DefaultCategory = "Malzeme"

// Expense is a single cost transaction against a project.
type Expense struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	Amount      float64   `json:"amount"`
	Quantity    *float64  `json:"quantity,omitempty"`
	Unit        string    `json:"unit,omitempty"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Type        Type      `json:"type"`
	CreatedAt   time.Time `json:"created_at"`
}
