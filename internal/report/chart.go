package report

import (
	"fmt"
	"sort"

	"github.com/go-analyze/charts"

	"moneypulse/internal/models"
)

// CategoryChartPNG renders a pie chart of spending by category as PNG bytes.
// Categories are ordered alphabetically so legend order is deterministic.
func CategoryChartPNG(expenses []models.Expense, title string) ([]byte, error) {
	if len(expenses) == 0 {
		return nil, fmt.Errorf("no expenses to chart")
	}

	totals := GroupByCategory(expenses)

	categories := make([]string, 0, len(totals))
	for category := range totals {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	values := make([]float64, 0, len(categories))
	for _, category := range categories {
		values = append(values, totals[category].InexactFloat64())
	}

	p, err := charts.PieRender(
		values,
		charts.TitleOptionFunc(charts.TitleOption{Text: title}),
		charts.LegendLabelsOptionFunc(categories),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buf, nil
}
