package database_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/valeriaulyamaeva/ga-financas/internal/database"
)

func connect(t *testing.T) *pgxpool.Pool {
	t.Helper()
	_ = godotenv.Load("../../.env")
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL не задан")
	}
	ctx := context.Background()
	pool, err := database.ConnectPool(ctx, url)
	if err != nil {
		t.Fatalf("ошибка подключения к БД: %v", err)
	}
	t.Cleanup(pool.Close)
	if err := database.EnsureSessionSchema(ctx, pool); err != nil {
		t.Fatalf("ошибка создания схемы: %v", err)
	}
	return pool
}

func TestSessionValues(t *testing.T) {
	pool := connect(t)
	ctx := context.Background()
	id := uuid.NewString()
	t.Cleanup(func() { database.ClearSession(ctx, pool, id, nil) })

	if _, err := database.GetSessionValue(ctx, pool, id, "accessToken"); !errors.Is(err, database.ErrNoValue) {
		t.Fatalf("ожидалась ErrNoValue, получили %v", err)
	}
	if err := database.SetSessionValue(ctx, pool, id, "accessToken", "a"); err != nil {
		t.Fatalf("ошибка записи: %v", err)
	}
	if err := database.SetSessionValue(ctx, pool, id, "accessToken", "b"); err != nil {
		t.Fatalf("ошибка повторной записи: %v", err)
	}
	if v, err := database.GetSessionValue(ctx, pool, id, "accessToken"); err != nil || v != "b" {
		t.Errorf("ожидалось значение b, получили %q (%v)", v, err)
	}

	database.SetSessionValue(ctx, pool, id, "ga_theme", "dark")
	if err := database.ClearSession(ctx, pool, id, []string{"ga_theme"}); err != nil {
		t.Fatalf("ошибка очистки сессии: %v", err)
	}
	if _, err := database.GetSessionValue(ctx, pool, id, "accessToken"); !errors.Is(err, database.ErrNoValue) {
		t.Errorf("токен должен быть удален")
	}
	if v, _ := database.GetSessionValue(ctx, pool, id, "ga_theme"); v != "dark" {
		t.Errorf("тема должна сохраниться, получили %q", v)
	}
}

func TestPurgeStaleSessions(t *testing.T) {
	pool := connect(t)
	ctx := context.Background()
	id := uuid.NewString()
	if err := database.SetSessionValue(ctx, pool, id, "username", "maria"); err != nil {
		t.Fatalf("ошибка записи: %v", err)
	}
	if _, err := database.PurgeStaleSessions(ctx, pool, 0); err != nil {
		t.Fatalf("ошибка очистки: %v", err)
	}
	if _, err := database.GetSessionValue(ctx, pool, id, "username"); !errors.Is(err, database.ErrNoValue) {
		t.Errorf("устаревшая сессия должна быть удалена")
	}
}
