package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout формат дат, который использует API.
const DateLayout = "2006-01-02"

type Transaction struct {
	ID           int             `json:"id"`
	Description  string          `json:"descricao"`
	Amount       decimal.Decimal `json:"valor"`
	Kind         Kind            `json:"tipo"`
	CategoryID   *int            `json:"categoria"`
	CategoryName *string         `json:"categoria_nome,omitempty"`
	Date         string          `json:"data"`
	Note         string          `json:"observacao,omitempty"`
	CreatedAt    *time.Time      `json:"criada_em,omitempty"`
}

// CategoryLabel возвращает имя категории или fallback, если категории нет.
func (t Transaction) CategoryLabel(fallback string) string {
	if t.CategoryName != nil && *t.CategoryName != "" {
		return *t.CategoryName
	}
	return fallback
}

// TransactionInput тело запроса на создание и полное обновление транзакции.
type TransactionInput struct {
	Description string          `json:"descricao"`
	Amount      decimal.Decimal `json:"valor"`
	Date        string          `json:"data"`
	CategoryID  int             `json:"categoria"`
	Note        string          `json:"observacao"`
	Kind        Kind            `json:"tipo"`
}
