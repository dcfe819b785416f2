package gamification

import (
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/ga-financas/models"
)

const UncategorizedLabel = "Sem Categoria"

// ChartPalette цвета секторов графика по порядку.
var ChartPalette = []string{"#3c91e6", "#38C172", "#FFCE26", "#9966FF", "#FD7238", "#4BC0C0", "#FF9F40"}

type Slice struct {
	Label string
	Total decimal.Decimal
	Color string
}

// CategoryBreakdown группирует транзакции типа kind по имени категории,
// сохраняя порядок первого появления.
func CategoryBreakdown(txs []models.Transaction, kind models.Kind) []Slice {
	index := map[string]int{}
	var out []Slice
	for _, tx := range txs {
		if tx.Kind != kind {
			continue
		}
		label := tx.CategoryLabel(UncategorizedLabel)
		i, ok := index[label]
		if !ok {
			i = len(out)
			index[label] = i
			out = append(out, Slice{Label: label, Total: decimal.Zero, Color: ChartPalette[i%len(ChartPalette)]})
		}
		out[i].Total = out[i].Total.Add(tx.Amount)
	}
	return out
}
