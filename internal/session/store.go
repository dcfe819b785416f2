package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valeriaulyamaeva/ga-financas/internal/database"
)

// ErrNotFound ключ отсутствует в сессии.
var ErrNotFound = errors.New("session: ключ не найден")

// Store хранилище строковых значений, сгруппированных по id сессии.
type Store interface {
	Get(ctx context.Context, sessionID, key string) (string, error)
	Set(ctx context.Context, sessionID, key, value string) error
	// SetMany записывает все значения или ни одного.
	SetMany(ctx context.Context, sessionID string, values map[string]string) error
	Delete(ctx context.Context, sessionID string, keys ...string) error
	// Clear удаляет все ключи сессии, кроме keep.
	Clear(ctx context.Context, sessionID string, keep ...string) error
}

type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]map[string]string)}
}

func (m *MemoryStore) Get(_ context.Context, sessionID, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.sessions[sessionID][key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemoryStore) Set(_ context.Context, sessionID, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	values, ok := m.sessions[sessionID]
	if !ok {
		values = make(map[string]string)
		m.sessions[sessionID] = values
	}
	values[key] = value
	return nil
}

func (m *MemoryStore) SetMany(_ context.Context, sessionID string, values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.sessions[sessionID]
	if !ok {
		current = make(map[string]string, len(values))
		m.sessions[sessionID] = current
	}
	for k, v := range values {
		current[k] = v
	}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, sessionID string, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.sessions[sessionID], k)
	}
	return nil
}

func (m *MemoryStore) Clear(_ context.Context, sessionID string, keep ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	values := m.sessions[sessionID]
	if values == nil {
		return nil
	}
	kept := make(map[string]string, len(keep))
	for _, k := range keep {
		if v, ok := values[k]; ok {
			kept[k] = v
		}
	}
	m.sessions[sessionID] = kept
	return nil
}

// PGStore хранит сессии в Postgres (таблица session_values).
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore создает таблицу при необходимости.
func NewPGStore(ctx context.Context, pool *pgxpool.Pool) (*PGStore, error) {
	if err := database.EnsureSessionSchema(ctx, pool); err != nil {
		return nil, err
	}
	return &PGStore{pool: pool}, nil
}

func (p *PGStore) Get(ctx context.Context, sessionID, key string) (string, error) {
	v, err := database.GetSessionValue(ctx, p.pool, sessionID, key)
	if errors.Is(err, database.ErrNoValue) {
		return "", ErrNotFound
	}
	return v, err
}

func (p *PGStore) Set(ctx context.Context, sessionID, key, value string) error {
	return database.SetSessionValue(ctx, p.pool, sessionID, key, value)
}

func (p *PGStore) SetMany(ctx context.Context, sessionID string, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	return database.SetSessionValues(ctx, p.pool, sessionID, values)
}

func (p *PGStore) Delete(ctx context.Context, sessionID string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return database.DeleteSessionValues(ctx, p.pool, sessionID, keys)
}

func (p *PGStore) Clear(ctx context.Context, sessionID string, keep ...string) error {
	return database.ClearSession(ctx, p.pool, sessionID, keep)
}

// Purge удаляет сессии, не менявшиеся дольше maxAge.
func (p *PGStore) Purge(ctx context.Context, maxAge time.Duration) (int64, error) {
	return database.PurgeStaleSessions(ctx, p.pool, int(maxAge.Seconds()))
}
