package views

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/ga-financas/internal/gamification"
	"github.com/valeriaulyamaeva/ga-financas/models"
	"github.com/valeriaulyamaeva/ga-financas/utils"
)

// Searchable карточка, по тексту которой работает поиск.
type Searchable interface {
	SearchText() string
}

// Filter оставляет карточки, текст которых содержит query без учета регистра.
func Filter[T Searchable](items []T, query string) []T {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if strings.Contains(item.SearchText(), q) {
			out = append(out, item)
		}
	}
	return out
}

func searchText(parts ...string) string {
	return strings.ToLower(strings.Join(parts, " "))
}

type CategoryCard struct {
	ID          int
	Name        string
	Kind        models.Kind
	Icon        string
	Color       string
	Description string
}

func NewCategoryCard(c models.Category) CategoryCard {
	desc := c.Description
	if desc == "" {
		desc = "Sem descrição"
	}
	return CategoryCard{
		ID:          c.ID,
		Name:        c.Name,
		Kind:        c.Kind,
		Icon:        c.Icon,
		Color:       utils.ColorForDisplay(c.Color),
		Description: desc,
	}
}

func (c CategoryCard) SearchText() string {
	return searchText(c.Name, string(c.Kind), c.Description)
}

type TransactionCard struct {
	ID          int
	Description string
	Amount      string
	Date        string
	Category    string
	Note        string
}

func NewTransactionCard(t models.Transaction) TransactionCard {
	return TransactionCard{
		ID:          t.ID,
		Description: t.Description,
		Amount:      utils.FormatBRL(t.Amount),
		Date:        utils.FormatDate(t.Date),
		Category:    t.CategoryLabel("-"),
		Note:        t.Note,
	}
}

func (t TransactionCard) SearchText() string {
	return searchText(t.Date, t.Description, t.Category, t.Amount, t.Note)
}

type GoalCard struct {
	ID          int
	Name        string
	Kind        string
	Current     string
	Target      string
	Remaining   string
	Percent     string
	Bar         float64
	Description string
	Deadline    string
}

func NewGoalCard(g models.Goal) GoalCard {
	p := gamification.GoalProgress(g.Current, g.Target)
	remaining := g.RemainingAmount()
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	return GoalCard{
		ID:          g.ID,
		Name:        g.Name,
		Kind:        g.Kind,
		Current:     utils.FormatBRL(g.Current),
		Target:      utils.FormatBRL(g.Target),
		Remaining:   utils.FormatBRL(remaining),
		Percent:     utils.FormatPercent1(p.BarPercent),
		Bar:         p.BarPercent,
		Description: g.Description,
		Deadline:    utils.FormatDate(g.Deadline),
	}
}

func (g GoalCard) SearchText() string {
	return searchText(g.Name, g.Kind, g.Current, g.Target, g.Description, g.Deadline)
}

func CategoryCards(items []models.Category) []CategoryCard {
	out := make([]CategoryCard, len(items))
	for i, c := range items {
		out[i] = NewCategoryCard(c)
	}
	return out
}

func TransactionCards(items []models.Transaction) []TransactionCard {
	out := make([]TransactionCard, len(items))
	for i, t := range items {
		out[i] = NewTransactionCard(t)
	}
	return out
}

func GoalCards(items []models.Goal) []GoalCard {
	out := make([]GoalCard, len(items))
	for i, g := range items {
		out[i] = NewGoalCard(g)
	}
	return out
}
