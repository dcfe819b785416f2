package gamification

import (
	"github.com/shopspring/decimal"
)

// Stats входные данные для трофеев.
type Stats struct {
	Balance      decimal.Decimal
	Transactions int
	Level        int
	Goals        int
}

type Trophy struct {
	ID          string
	Title       string
	Description string
	Icon        string
	Color       string
	check       func(Stats) bool
}

type TrophyState struct {
	Trophy
	Unlocked bool
}

var thousand = decimal.NewFromInt(1000)

var catalog = []Trophy{
	{ID: "primeiro_passo", Title: "Primeiros Passos", Description: "Realizou a primeira transação.", Icon: "bx-walk", Color: "trophy-bronze",
		check: func(s Stats) bool { return s.Transactions > 0 }},
	{ID: "poupador", Title: "Poupador", Description: "Tem saldo positivo na conta.", Icon: "bx-wallet-alt", Color: "trophy-green",
		check: func(s Stats) bool { return s.Balance.IsPositive() }},
	{ID: "nivel_5", Title: "Subindo Nível", Description: "Registrou 50 transações.", Icon: "bx-up-arrow-circle", Color: "trophy-blue",
		check: func(s Stats) bool { return s.Transactions >= 50 }},
	{ID: "focado", Title: "Focado", Description: "Criou pelo menos 1 meta.", Icon: "bx-target-lock", Color: "trophy-purple",
		check: func(s Stats) bool { return s.Goals > 0 }},
	{ID: "magnata", Title: "Magnata", Description: "Acumulou R$ 1.000,00 ou mais.", Icon: "bx-diamond", Color: "trophy-gold",
		check: func(s Stats) bool { return s.Balance.GreaterThanOrEqual(thousand) }},
	{ID: "veterano", Title: "Veterano", Description: "Fez 100 transações.", Icon: "bx-medal", Color: "trophy-silver",
		check: func(s Stats) bool { return s.Transactions >= 100 }},
}

// EvaluateTrophies состояние всех трофеев в порядке каталога.
func EvaluateTrophies(s Stats) []TrophyState {
	out := make([]TrophyState, len(catalog))
	for i, t := range catalog {
		out[i] = TrophyState{Trophy: t, Unlocked: t.check(s)}
	}
	return out
}

// Shelf первые limit открытых трофеев.
func Shelf(s Stats, limit int) []Trophy {
	var out []Trophy
	for _, t := range catalog {
		if len(out) == limit {
			break
		}
		if t.check(s) {
			out = append(out, t)
		}
	}
	return out
}
