package export

import (
	"fmt"
	"io"
	"sort"

	"github.com/xuri/excelize/v2"
)

const (
	expenseSheet = "Harcamalar"
	summarySheet = "Özet"
)

// WriteExpensesXLSX writes rows to an expense sheet and per-project totals to
// a summary sheet.
func WriteExpensesXLSX(w io.Writer, rows []ExpenseRow) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(expenseSheet)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("deleting default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"1F4E78"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("creating style: %w", err)
	}
	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return fmt.Errorf("creating style: %w", err)
	}

	for i, title := range ExpenseHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(expenseSheet, cell, title)
	}
	f.SetCellStyle(expenseSheet, "A1", "G1", headerStyle)

	totals := map[string]float64{}
	for i, row := range rows {
		r := i + 2
		values := []any{row.ID, row.ProjectName, row.Category, row.Description, row.Amount, row.Date.Format("2006-01-02"), string(row.Type)}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, r)
			f.SetCellValue(expenseSheet, cell, v)
		}
		amountCell, _ := excelize.CoordinatesToCellName(5, r)
		f.SetCellStyle(expenseSheet, amountCell, amountCell, amountStyle)
		totals[row.ProjectName] += row.Amount
	}
	f.SetColWidth(expenseSheet, "A", "A", 38)
	f.SetColWidth(expenseSheet, "B", "D", 24)
	f.SetColWidth(expenseSheet, "E", "G", 14)

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetCellValue(summarySheet, "A1", "Proje")
	f.SetCellValue(summarySheet, "B1", "Toplam Harcama")
	f.SetCellStyle(summarySheet, "A1", "B1", headerStyle)

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)
	var grand float64
	for i, name := range names {
		f.SetCellValue(summarySheet, fmt.Sprintf("A%d", i+2), name)
		f.SetCellValue(summarySheet, fmt.Sprintf("B%d", i+2), totals[name])
		grand += totals[name]
	}
	last := len(names) + 2
	f.SetCellValue(summarySheet, fmt.Sprintf("A%d", last), "Genel Toplam")
	f.SetCellValue(summarySheet, fmt.Sprintf("B%d", last), grand)
	f.SetColWidth(summarySheet, "A", "B", 28)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing xlsx: %w", err)
	}
	return nil
}
