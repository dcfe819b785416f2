package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Goal struct {
	ID          int             `json:"id"`
	Name        string          `json:"nome"`
	Kind        string          `json:"tipo"`
	Target      decimal.Decimal `json:"valor_alvo"`
	Current     decimal.Decimal `json:"valor_atual"`
	Deadline    string          `json:"data_limite"`
	Description string          `json:"descricao,omitempty"`
	CreatedAt   *time.Time      `json:"criada_em,omitempty"`
}

// RemainingAmount сколько осталось до цели.
func (g *Goal) RemainingAmount() decimal.Decimal {
	return g.Target.Sub(g.Current)
}

// GoalInput тело запроса для цели. Current заполняется только при создании,
// при PATCH поле не отправляется.
type GoalInput struct {
	Name        string           `json:"nome"`
	Kind        string           `json:"tipo"`
	Target      decimal.Decimal  `json:"valor_alvo"`
	Deadline    string           `json:"data_limite"`
	Description string           `json:"descricao"`
	Current     *decimal.Decimal `json:"valor_atual,omitempty"`
}
