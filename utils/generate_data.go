package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/ga-financas/models"
)

// DataWriter принимает сгенерированные записи. Обычно это *api.Client.
type DataWriter interface {
	CreateCategory(ctx context.Context, token string, in models.CategoryInput) (*models.Category, error)
	CreateTransaction(ctx context.Context, token string, in models.TransactionInput) (*models.Transaction, error)
	CreateGoal(ctx context.Context, token string, in models.GoalInput) (*models.Goal, error)
}

var (
	seedIcons = []string{"bx-cart", "bx-home", "bx-car", "bx-restaurant", "bx-money", "bx-briefcase", "bx-health", "bx-gift"}
	goalKinds = []string{"economia", "viagem", "reserva", "compra"}
)

// Generator выдает правдоподобные тестовые данные. Один seed дает одну и ту же последовательность.
type Generator struct {
	faker *gofakeit.Faker
	now   time.Time
}

func NewGenerator(seed int64, now time.Time) *Generator {
	return &Generator{faker: gofakeit.New(seed), now: now}
}

func (g *Generator) Category(kind models.Kind) models.CategoryInput {
	return models.CategoryInput{
		Name:        g.faker.Noun(),
		Kind:        kind,
		Icon:        g.faker.RandomString(seedIcons),
		Color:       ColorForAPI(g.faker.HexColor()),
		Description: g.faker.Sentence(4),
	}
}

// Transaction сумма от 5 до 1500 с копейками, дата в последние полгода.
func (g *Generator) Transaction(kind models.Kind, categoryID int) models.TransactionInput {
	amount := decimal.NewFromFloat(g.faker.Price(5, 1500)).Round(2)
	date := g.faker.DateRange(g.now.AddDate(0, -6, 0), g.now)
	return models.TransactionInput{
		Description: g.faker.Verb() + " " + g.faker.Noun(),
		Amount:      amount,
		Date:        date.Format(models.DateLayout),
		CategoryID:  categoryID,
		Note:        g.faker.Sentence(3),
		Kind:        kind,
	}
}

func (g *Generator) Goal() models.GoalInput {
	deadline := g.faker.DateRange(g.now.AddDate(0, 1, 0), g.now.AddDate(1, 0, 0))
	return models.GoalInput{
		Name:        g.faker.HipsterWord() + " " + g.faker.Noun(),
		Kind:        g.faker.RandomString(goalKinds),
		Target:      decimal.NewFromInt(int64(g.faker.Number(5, 200)) * 100),
		Deadline:    deadline.Format(models.DateLayout),
		Description: g.faker.Sentence(5),
	}
}

type Counts struct {
	Categories   int
	Transactions int
	Goals        int
}

// GenerateTestData создает категории обоих типов, транзакции по ним и цели.
// Категорий не меньше двух: по одной на каждый тип.
func GenerateTestData(ctx context.Context, w DataWriter, token string, g *Generator, n Counts) (Counts, error) {
	var created Counts
	if n.Categories < 2 {
		n.Categories = 2
	}

	byKind := map[models.Kind][]int{}
	kinds := []models.Kind{models.KindIncome, models.KindExpense}
	for i := 0; i < n.Categories; i++ {
		kind := kinds[i%2]
		cat, err := w.CreateCategory(ctx, token, g.Category(kind))
		if err != nil {
			return created, fmt.Errorf("ошибка при добавлении категории: %w", err)
		}
		byKind[kind] = append(byKind[kind], cat.ID)
		created.Categories++
	}

	for i := 0; i < n.Transactions; i++ {
		// примерно одна receita на три despesas
		kind := models.KindExpense
		if g.faker.Number(1, 4) == 1 {
			kind = models.KindIncome
		}
		ids := byKind[kind]
		categoryID := ids[g.faker.Number(0, len(ids)-1)]
		if _, err := w.CreateTransaction(ctx, token, g.Transaction(kind, categoryID)); err != nil {
			return created, fmt.Errorf("ошибка при добавлении транзакции: %w", err)
		}
		created.Transactions++
	}

	for i := 0; i < n.Goals; i++ {
		if _, err := w.CreateGoal(ctx, token, g.Goal()); err != nil {
			return created, fmt.Errorf("ошибка при добавлении цели: %w", err)
		}
		created.Goals++
	}
	return created, nil
}
