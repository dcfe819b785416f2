// Package gamification считает итоги, серию входов, здоровье бюджета, уровень,
// трофеи и прочие производные показатели. Все функции чистые.
package gamification

import (
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/ga-financas/models"
)

type Totals struct {
	Income       decimal.Decimal
	Expenses     decimal.Decimal
	Balance      decimal.Decimal
	HasIncome    bool
	HasExpense   bool
	Transactions int
}

// ComputeTotals суммирует доходы и расходы. Порядок транзакций не важен.
func ComputeTotals(txs []models.Transaction) Totals {
	t := Totals{Income: decimal.Zero, Expenses: decimal.Zero, Transactions: len(txs)}
	for _, tx := range txs {
		switch tx.Kind {
		case models.KindIncome:
			t.Income = t.Income.Add(tx.Amount)
			t.HasIncome = true
		case models.KindExpense:
			t.Expenses = t.Expenses.Add(tx.Amount)
			t.HasExpense = true
		}
	}
	t.Balance = t.Income.Sub(t.Expenses)
	return t
}
