package models

import "github.com/shopspring/decimal"

type CategoryTotal struct {
	Category *string         `json:"categoria"`
	Total    decimal.Decimal `json:"total"`
}

// Statistics ответ /transacoes/estatisticas/.
type Statistics struct {
	Income        []CategoryTotal `json:"receitas"`
	Expenses      []CategoryTotal `json:"despesas"`
	TotalIncome   decimal.Decimal `json:"total_receitas"`
	TotalExpenses decimal.Decimal `json:"total_despesas"`
}

func (s Statistics) Balance() decimal.Decimal {
	return s.TotalIncome.Sub(s.TotalExpenses)
}
