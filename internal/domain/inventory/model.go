package inventory

import "time"

// StockStatus is derived from quantity and minimum stock at read time.
type StockStatus string

const (
	StatusCritical   StockStatus = "critical"
	StatusSufficient StockStatus = "sufficient"
)

// Item is a stock-keeping record.
type Item struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category,omitempty"`
	Quantity    float64   `json:"quantity"`
	Unit        string    `json:"unit,omitempty"`
	MinStock    float64   `json:"min_stock"`
	LastUpdated time.Time `json:"last_updated"`
}

// Status is critical once quantity has fallen to the minimum stock or below.
func (i Item) Status() StockStatus {
	if i.Quantity <= i.MinStock {
		return StatusCritical
	}
	return StatusSufficient
}

// ItemView pairs an item with its derived status for display.
type ItemView struct {
	Item
	Status StockStatus `json:"status"`
}

// View returns the item with its status resolved.
func (i Item) View() ItemView {
	return ItemView{Item: i, Status: i.Status()}
}
