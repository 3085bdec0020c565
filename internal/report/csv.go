package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"moneypulse/internal/models"
)

// ExpensesCSV generates a CSV export of the given expenses. Amounts are
// rounded to two decimal places at this formatting boundary only.
func ExpensesCSV(expenses []models.Expense) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{"ID", "Date", "Category", "Description", "Amount"}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i := range expenses {
		row := []string{
			strconv.Itoa(expenses[i].ID),
			expenses[i].Date.Format("2006-01-02"),
			expenses[i].Category,
			expenses[i].Description,
			expenses[i].Amount.StringFixed(2),
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportFilename creates a descriptive filename for a CSV export.
func ExportFilename(rangeName string, now time.Time) string {
	switch rangeName {
	case RangeWeek:
		start, _ := WeekRange(now)
		return fmt.Sprintf("expenses_week_%s.csv", start.Format("2006-01-02"))
	case RangeMonth:
		return fmt.Sprintf("expenses_month_%s.csv", now.Format("2006-01"))
	default:
		return fmt.Sprintf("expenses_%s.csv", now.Format("2006-01-02"))
	}
}
