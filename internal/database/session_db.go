package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNoValue ключ сессии не найден.
var ErrNoValue = errors.New("значение сессии не найдено")

const sessionSchema = `
CREATE TABLE IF NOT EXISTS session_values (
    session_id TEXT NOT NULL,
    key        TEXT NOT NULL,
    value      TEXT NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (session_id, key)
)`

// EnsureSessionSchema создает таблицу session_values, если ее нет.
func EnsureSessionSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, sessionSchema); err != nil {
		return fmt.Errorf("ошибка создания таблицы session_values: %w", err)
	}
	return nil
}

func GetSessionValue(ctx context.Context, pool *pgxpool.Pool, sessionID, key string) (string, error) {
	var value string
	err := pool.QueryRow(ctx,
		`SELECT value FROM session_values WHERE session_id = $1 AND key = $2`,
		sessionID, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNoValue
	}
	if err != nil {
		return "", fmt.Errorf("ошибка чтения сессии %s: %w", key, err)
	}
	return value, nil
}

// SetSessionValue вставляет или обновляет значение.
func SetSessionValue(ctx context.Context, pool *pgxpool.Pool, sessionID, key, value string) error {
	_, err := pool.Exec(ctx,
		`INSERT INTO session_values (session_id, key, value) VALUES ($1, $2, $3)
         ON CONFLICT (session_id, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		sessionID, key, value)
	if err != nil {
		return fmt.Errorf("ошибка записи сессии %s: %w", key, err)
	}
	return nil
}

// SetSessionValues записывает несколько значений в одной транзакции.
func SetSessionValues(ctx context.Context, pool *pgxpool.Pool, sessionID string, values map[string]string) error {
	err := pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		for key, value := range values {
			_, err := tx.Exec(ctx,
				`INSERT INTO session_values (session_id, key, value) VALUES ($1, $2, $3)
         ON CONFLICT (session_id, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
				sessionID, key, value)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("ошибка записи значений сессии: %w", err)
	}
	return nil
}

func DeleteSessionValues(ctx context.Context, pool *pgxpool.Pool, sessionID string, keys []string) error {
	_, err := pool.Exec(ctx,
		`DELETE FROM session_values WHERE session_id = $1 AND key = ANY($2)`,
		sessionID, keys)
	if err != nil {
		return fmt.Errorf("ошибка удаления значений сессии: %w", err)
	}
	return nil
}

// ClearSession удаляет все значения, кроме keep.
func ClearSession(ctx context.Context, pool *pgxpool.Pool, sessionID string, keep []string) error {
	if keep == nil {
		keep = []string{}
	}
	_, err := pool.Exec(ctx,
		`DELETE FROM session_values WHERE session_id = $1 AND NOT (key = ANY($2))`,
		sessionID, keep)
	if err != nil {
		return fmt.Errorf("ошибка очистки сессии: %w", err)
	}
	return nil
}

// PurgeStaleSessions удаляет сессии, которые не обновлялись дольше olderThan секунд.
func PurgeStaleSessions(ctx context.Context, pool *pgxpool.Pool, olderThanSeconds int) (int64, error) {
	tag, err := pool.Exec(ctx,
		`DELETE FROM session_values WHERE session_id IN (
             SELECT session_id FROM session_values GROUP BY session_id
             HAVING max(updated_at) < now() - make_interval(secs => $1))`,
		float64(olderThanSeconds))
	if err != nil {
		return 0, fmt.Errorf("ошибка очистки устаревших сессий: %w", err)
	}
	return tag.RowsAffected(), nil
}
