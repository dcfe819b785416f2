package gamification

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/ga-financas/models"
)

// Filter месяц "MM" и год "YYYY"; пустое значение означает "все".
type Filter struct {
	Month string
	Year  string
}

type MonthPoint struct {
	Key      string
	Label    string
	Income   decimal.Decimal
	Expenses decimal.Decimal
}

type Analytics struct {
	Filter   Filter
	Years    []string
	Totals   Totals
	Income   []Slice
	Expenses []Slice
	Timeline []MonthPoint
}

// Apply оставляет транзакции, попадающие в фильтр по дате YYYY-MM-DD.
func (f Filter) Apply(txs []models.Transaction) []models.Transaction {
	out := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		year, month := splitDate(tx.Date)
		if f.Month != "" && month != f.Month {
			continue
		}
		if f.Year != "" && year != f.Year {
			continue
		}
		out = append(out, tx)
	}
	return out
}

func splitDate(date string) (year, month string) {
	parts := strings.SplitN(date, "-", 3)
	if len(parts) < 2 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

// DistinctYears годы транзакций по убыванию.
func DistinctYears(txs []models.Transaction) []string {
	seen := map[string]bool{}
	var years []string
	for _, tx := range txs {
		year, _ := splitDate(tx.Date)
		if year == "" || seen[year] {
			continue
		}
		seen[year] = true
		years = append(years, year)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(years)))
	return years
}

// Timeline суммы по месяцам YYYY-MM в порядке возрастания.
func Timeline(txs []models.Transaction) []MonthPoint {
	byKey := map[string]*MonthPoint{}
	var keys []string
	for _, tx := range txs {
		if len(tx.Date) < 7 {
			continue
		}
		key := tx.Date[:7]
		p, ok := byKey[key]
		if !ok {
			year, month := splitDate(key)
			p = &MonthPoint{Key: key, Label: month + "/" + year, Income: decimal.Zero, Expenses: decimal.Zero}
			byKey[key] = p
			keys = append(keys, key)
		}
		if tx.Kind == models.KindIncome {
			p.Income = p.Income.Add(tx.Amount)
		} else {
			p.Expenses = p.Expenses.Add(tx.Amount)
		}
	}
	sort.Strings(keys)
	out := make([]MonthPoint, len(keys))
	for i, k := range keys {
		out[i] = *byKey[k]
	}
	return out
}

// Analyze собирает данные страницы "Meus dados".
func Analyze(txs []models.Transaction, f Filter) Analytics {
	filtered := f.Apply(txs)
	return Analytics{
		Filter:   f,
		Years:    DistinctYears(txs),
		Totals:   ComputeTotals(filtered),
		Income:   CategoryBreakdown(filtered, models.KindIncome),
		Expenses: CategoryBreakdown(filtered, models.KindExpense),
		Timeline: Timeline(filtered),
	}
}
