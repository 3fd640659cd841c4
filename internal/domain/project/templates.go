package project

// BudgetItem is one reference line of a budget template.
type BudgetItem struct {
	ID            string  `json:"id"`
	Category      string  `json:"category"`
	ItemName      string  `json:"item_name"`
	PlannedAmount float64 `json:"planned_amount"`
	Unit          string  `json:"unit"`
	UnitPrice     float64 `json:"unit_price"`
}

var budgetTemplates = map[Category][]BudgetItem{
	CategorySolar: {
		{ID: "g1", Category: "Sivil İşler", ItemName: "Hafriyat ve Saha Düzenleme", PlannedAmount: 500_000, Unit: "m2", UnitPrice: 50},
		{ID: "g2", Category: "Mekanik", ItemName: "Konstrüksiyon Montajı", PlannedAmount: 1_200_000, Unit: "MW", UnitPrice: 80_000},
		{ID: "g3", Category: "Mekanik", ItemName: "Panel Montajı", PlannedAmount: 2_000_000, Unit: "Adet", UnitPrice: 15},
		{ID: "g4", Category: "Elektrik", ItemName: "DC Kablolama ve Inverter", PlannedAmount: 1_500_000, Unit: "MW", UnitPrice: 100_000},
		{ID: "g5", Category: "Elektrik", ItemName: "AC Orta Gerilim İşleri", PlannedAmount: 800_000, Unit: "Lump Sum", UnitPrice: 800_000},
	},
	CategoryRoad: {
		{ID: "y1", Category: "Toprak İşleri", ItemName: "Kazı-Dolgu (Hafriyat)", PlannedAmount: 2_500_000, Unit: "m3", UnitPrice: 120},
		{ID: "y2", Category: "Üst Yapı", ItemName: "Alt Temel Tabakası", PlannedAmount: 1_200_000, Unit: "km", UnitPrice: 300_000},
		{ID: "y3", Category: "Üst Yapı", ItemName: "Temel Tabakası", PlannedAmount: 1_800_000, Unit: "km", UnitPrice: 450_000},
		{ID: "y4", Category: "Asfalt", ItemName: "Bitümlü Sıcak Karışım", PlannedAmount: 4_000_000, Unit: "ton", UnitPrice: 2_200},
		{ID: "y5", Category: "Sanat Yapıları", ItemName: "Menfezler ve Drenaj", PlannedAmount: 900_000, Unit: "Adet", UnitPrice: 45_000},
	},
}

// BudgetTemplate returns a copy of the reference budget for a category.
func BudgetTemplate(c Category) ([]BudgetItem, error) {
	items, ok := budgetTemplates[c]
	if !ok {
		return nil, ErrInvalidInput
	}
	out := make([]BudgetItem, len(items))
	copy(out, items)
	return out, nil
}

// PlannedTotal sums the planned amounts of items.
func PlannedTotal(items []BudgetItem) float64 {
	var total float64
	for _, item := range items {
		total += item.PlannedAmount
	}
	return total
}
