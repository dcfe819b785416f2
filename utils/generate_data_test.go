package utils_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/valeriaulyamaeva/ga-financas/models"
	"github.com/valeriaulyamaeva/ga-financas/utils"
)

type recorder struct {
	categories   []models.CategoryInput
	transactions []models.TransactionInput
	goals        []models.GoalInput
	failGoals    bool
}

func (r *recorder) CreateCategory(_ context.Context, _ string, in models.CategoryInput) (*models.Category, error) {
	r.categories = append(r.categories, in)
	return &models.Category{ID: len(r.categories), Name: in.Name, Kind: in.Kind}, nil
}

func (r *recorder) CreateTransaction(_ context.Context, _ string, in models.TransactionInput) (*models.Transaction, error) {
	r.transactions = append(r.transactions, in)
	return &models.Transaction{ID: len(r.transactions)}, nil
}

func (r *recorder) CreateGoal(_ context.Context, _ string, in models.GoalInput) (*models.Goal, error) {
	if r.failGoals {
		return nil, errors.New("falha")
	}
	r.goals = append(r.goals, in)
	return &models.Goal{ID: len(r.goals)}, nil
}

var now = time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC)

func TestGenerateTestData(t *testing.T) {
	rec := &recorder{}
	created, err := utils.GenerateTestData(context.Background(), rec, "token", utils.NewGenerator(7, now), utils.Counts{Categories: 1, Transactions: 30, Goals: 2})
	if err != nil {
		t.Fatalf("Неожиданная ошибка: %v", err)
	}
	if created.Categories != 2 || created.Transactions != 30 || created.Goals != 2 {
		t.Fatalf("Неверные счетчики: %+v", created)
	}

	kindOf := map[int]models.Kind{}
	for i, c := range rec.categories {
		kindOf[i+1] = c.Kind
		if c.Name == "" || c.Icon == "" || len(c.Color) != 6 {
			t.Fatalf("Неполная категория: %+v", c)
		}
	}
	for _, tx := range rec.transactions {
		if kindOf[tx.CategoryID] != tx.Kind {
			t.Fatalf("Тип транзакции не совпадает с категорией: %+v", tx)
		}
		if !tx.Amount.IsPositive() {
			t.Fatalf("Сумма должна быть положительной: %s", tx.Amount)
		}
		date, err := time.Parse(models.DateLayout, tx.Date)
		if err != nil || date.After(now) || date.Before(now.AddDate(0, -6, 0)) {
			t.Fatalf("Дата вне диапазона: %q", tx.Date)
		}
	}
	for _, g := range rec.goals {
		if !g.Target.IsPositive() || g.Current != nil {
			t.Fatalf("Неверная цель: %+v", g)
		}
	}
}

func TestGeneratorIsDeterministic(t *testing.T) {
	a := utils.NewGenerator(42, now).Transaction(models.KindExpense, 1)
	b := utils.NewGenerator(42, now).Transaction(models.KindExpense, 1)
	if a.Description != b.Description || !a.Amount.Equal(b.Amount) || a.Date != b.Date {
		t.Fatalf("Один seed должен давать одинаковые данные: %+v / %+v", a, b)
	}
}

func TestGenerateTestDataStopsOnError(t *testing.T) {
	rec := &recorder{failGoals: true}
	created, err := utils.GenerateTestData(context.Background(), rec, "token", utils.NewGenerator(1, now), utils.Counts{Categories: 2, Transactions: 3, Goals: 1})
	if err == nil {
		t.Fatalf("Ожидалась ошибка")
	}
	if created.Transactions != 3 || created.Goals != 0 {
		t.Fatalf("Неверные счетчики после ошибки: %+v", created)
	}
}
