// Package report собирает детальный отчет по последнему снимку панели
// и выгружает его в PDF и XLSX.
package report

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/ga-financas/internal/dashboard"
	"github.com/valeriaulyamaeva/ga-financas/internal/gamification"
	"github.com/valeriaulyamaeva/ga-financas/models"
	"github.com/valeriaulyamaeva/ga-financas/utils"
)

const (
	defaultCategory = "Geral"

	EmptyIncome   = "Nenhuma receita registrada."
	EmptyExpenses = "Nenhuma despesa registrada."
	EmptyGoals    = "Nenhuma meta cadastrada."
	NoChart       = "Gráfico indisponível."

	colorPositive = "#1565c0"
	colorNegative = "#c62828"
)

type Row struct {
	Date        string
	Description string
	Category    string
	Amount      decimal.Decimal
}

type GoalLine struct {
	Name       string
	Percent    int
	Label      string
	BarPercent float64
}

type Report struct {
	GeneratedAt  time.Time
	Username     string
	Income       decimal.Decimal
	Expenses     decimal.Decimal
	Balance      decimal.Decimal
	BalanceColor string
	IncomeRows   []Row
	ExpenseRows  []Row
	Goals        []GoalLine
	Chart        []gamification.Slice
}

// Build собирает отчет из снимка без повторной загрузки данных.
// Итоги считаются заново по строкам отчета.
func Build(snap *dashboard.Snapshot, now time.Time) Report {
	r := Report{GeneratedAt: now, Income: decimal.Zero, Expenses: decimal.Zero}
	if snap == nil {
		r.Balance = decimal.Zero
		r.BalanceColor = colorPositive
		return r
	}
	r.Username = snap.User.Username

	for _, tx := range snap.Transactions {
		row := Row{
			Date:        utils.FormatDate(tx.Date),
			Description: tx.Description,
			Category:    tx.CategoryLabel(defaultCategory),
			Amount:      tx.Amount,
		}
		if tx.Kind == models.KindIncome {
			r.Income = r.Income.Add(tx.Amount)
			r.IncomeRows = append(r.IncomeRows, row)
		} else {
			r.Expenses = r.Expenses.Add(tx.Amount)
			r.ExpenseRows = append(r.ExpenseRows, row)
		}
	}
	r.Balance = r.Income.Sub(r.Expenses)
	r.BalanceColor = colorPositive
	if r.Balance.IsNegative() {
		r.BalanceColor = colorNegative
	}

	for _, g := range snap.Goals {
		p := gamification.GoalProgress(g.Current, g.Target)
		r.Goals = append(r.Goals, GoalLine{
			Name:       g.Name,
			Percent:    p.Rounded,
			Label:      fmt.Sprintf("%s de %s", utils.FormatBRL(g.Current), utils.FormatBRL(g.Target)),
			BarPercent: p.BarPercent,
		})
	}
	if !snap.ChartEmpty {
		r.Chart = snap.Chart
	}
	return r
}

// Filename Relatorio_Detalhado_dd-mm-yyyy.<ext>.
func Filename(now time.Time, ext string) string {
	return "Relatorio_Detalhado_" + strings.ReplaceAll(utils.FormatLocaleDate(now), "/", "-") + "." + ext
}

func barColumns(pct float64) int {
	cols := int(math.Round(pct / 100 * 12))
	if cols < 0 {
		return 0
	}
	if cols > 12 {
		return 12
	}
	return cols
}
