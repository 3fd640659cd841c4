package export

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteExpensesCSV writes rows with the expense header.
func WriteExpensesCSV(w io.Writer, rows []ExpenseRow) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(ExpenseHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row.cells()); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
