package dashboard

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/ga-financas/internal/api"
	"github.com/valeriaulyamaeva/ga-financas/internal/gamification"
	"github.com/valeriaulyamaeva/ga-financas/internal/session"
	"github.com/valeriaulyamaeva/ga-financas/models"
)

var logger = zerolog.New(os.Stderr).With().Timestamp().Str("component", "dashboard").Logger()

var (
	// ErrInFlight обновление уже выполняется.
	ErrInFlight = errors.New("dashboard: обновление уже выполняется")
	// ErrLoggedOut сессия завершена из-за ответа 401/403 или отсутствия токена.
	ErrLoggedOut = errors.New("dashboard: сессия завершена")
)

const ShelfSize = 3

// Source часть API, нужная панели.
type Source interface {
	ListTransactions(ctx context.Context, token string, kind models.Kind) ([]models.Transaction, error)
	Me(ctx context.Context, token string) (*models.User, error)
	ListGoals(ctx context.Context, token string) ([]models.Goal, error)
}

type Snapshot struct {
	Transactions []models.Transaction
	Goals        []models.Goal
	User         models.User
	Totals       gamification.Totals
	Health       gamification.HealthStatus
	Level        gamification.Level
	Shelf        []gamification.Trophy
	Chart        []gamification.Slice
	ChartEmpty   bool
	// Onboarding nil, если чек-лист уже скрыт навсегда.
	Onboarding *gamification.Checklist
	Streak     gamification.Streak
	Week       [7]gamification.WeekDay
	UpdatedAt  time.Time
}

type Options struct {
	Location     *time.Location
	DefaultLimit decimal.Decimal
	Now          func() time.Time
}

// Composer состояние панели одной сессии.
type Composer struct {
	sess   *session.Session
	source Source
	opts   Options

	mu       sync.RWMutex
	snapshot *Snapshot

	inFlight   atomic.Bool
	lastViewed atomic.Int64
}

func NewComposer(sess *session.Session, source Source, opts Options) *Composer {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if !opts.DefaultLimit.IsPositive() {
		opts.DefaultLimit = gamification.DefaultSpendingLimit
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Composer{sess: sess, source: source, opts: opts}
}

func (c *Composer) SessionID() string {
	return c.sess.ID
}

// Snapshot последний собранный снимок или nil.
func (c *Composer) Snapshot() *Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot
}

// LastViewed время последнего просмотра страницы.
func (c *Composer) LastViewed() time.Time {
	ns := c.lastViewed.Load()
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns)
}

func (c *Composer) now() time.Time {
	return c.opts.Now().In(c.opts.Location)
}

// Refresh загружает транзакции, профиль и цели параллельно и заменяет снимок.
// При ошибке транзакций или профиля предыдущий снимок сохраняется.
func (c *Composer) Refresh(ctx context.Context) (*Snapshot, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return nil, ErrInFlight
	}
	defer c.inFlight.Store(false)

	token := c.sess.Token(ctx)
	if token == "" {
		return nil, ErrLoggedOut
	}

	var (
		wg                sync.WaitGroup
		txs               []models.Transaction
		user              *models.User
		goals             []models.Goal
		txErr, uErr, gErr error
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		txs, txErr = c.source.ListTransactions(ctx, token, "")
	}()
	go func() {
		defer wg.Done()
		user, uErr = c.source.Me(ctx, token)
	}()
	go func() {
		defer wg.Done()
		goals, gErr = c.source.ListGoals(ctx, token)
	}()
	wg.Wait()

	if api.IsUnauthorized(txErr) || api.IsUnauthorized(uErr) {
		if err := c.sess.Logout(ctx); err != nil {
			logger.Error().Err(err).Str("session", c.sess.ID).Msg("ошибка выхода")
		}
		return nil, ErrLoggedOut
	}
	if txErr != nil {
		return nil, fmt.Errorf("ошибка загрузки транзакций: %w", txErr)
	}
	if uErr != nil {
		return nil, fmt.Errorf("ошибка загрузки профиля: %w", uErr)
	}
	if gErr != nil {
		logger.Warn().Err(gErr).Str("session", c.sess.ID).Msg("цели недоступны, используется пустой список")
		goals = []models.Goal{}
	}

	snap := c.build(ctx, txs, *user, goals)

	c.mu.Lock()
	c.snapshot = snap
	c.mu.Unlock()
	return snap, nil
}

func (c *Composer) build(ctx context.Context, txs []models.Transaction, user models.User, goals []models.Goal) *Snapshot {
	now := c.now()
	totals := gamification.ComputeTotals(txs)
	level := gamification.LevelFor(totals.Transactions)
	stats := gamification.Stats{Balance: totals.Balance, Transactions: totals.Transactions, Level: level.Number, Goals: len(goals)}
	chart := gamification.CategoryBreakdown(txs, models.KindIncome)

	snap := &Snapshot{
		Transactions: txs,
		Goals:        goals,
		User:         user,
		Totals:       totals,
		Health:       gamification.Health(c.SpendingLimit(ctx), totals.Expenses),
		Level:        level,
		Shelf:        gamification.Shelf(stats, ShelfSize),
		Chart:        chart,
		ChartEmpty:   len(chart) == 0,
		UpdatedAt:    now,
	}

	if c.sess.Value(ctx, session.KeyOnboardingDone) != "true" {
		checklist := gamification.Onboarding(totals.HasIncome, totals.HasExpense, len(goals) > 0, user.Bio)
		snap.Onboarding = &checklist
		if checklist.Complete {
			if err := c.sess.Set(ctx, session.KeyOnboardingDone, "true"); err != nil {
				logger.Error().Err(err).Str("session", c.sess.ID).Msg("ошибка сохранения чек-листа")
			}
		}
	}

	snap.Streak = c.currentStreak(ctx)
	snap.Week = gamification.WeekView(now, snap.Streak.Count)
	return snap
}

// SpendingLimit лимит из сессии или значение по умолчанию.
func (c *Composer) SpendingLimit(ctx context.Context) decimal.Decimal {
	if limit, ok := gamification.ParseLimit(c.sess.Value(ctx, session.KeySpendingLimit)); ok {
		return limit
	}
	return c.opts.DefaultLimit
}

// SetSpendingLimit сохраняет новый лимит и пересчитывает здоровье в снимке.
func (c *Composer) SetSpendingLimit(ctx context.Context, value string) error {
	limit, ok := gamification.ParseLimit(value)
	if !ok {
		return fmt.Errorf("лимит должен быть числом больше нуля: %q", value)
	}
	if err := c.sess.Set(ctx, session.KeySpendingLimit, limit.String()); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snapshot != nil {
		updated := *c.snapshot
		updated.Health = gamification.Health(limit, updated.Totals.Expenses)
		c.snapshot = &updated
	}
	return nil
}

func (c *Composer) currentStreak(ctx context.Context) gamification.Streak {
	return gamification.ParseStreak(c.sess.Value(ctx, session.KeyStreakCount), c.sess.Value(ctx, session.KeyStreakLastLogin))
}

// RecordVisit продвигает серию входов и сразу сохраняет оба ключа. При ошибке
// записи возвращается прежняя серия.
func (c *Composer) RecordVisit(ctx context.Context) (gamification.Streak, error) {
	prev := c.currentStreak(ctx)
	next := gamification.Advance(prev, c.now())
	if next == prev {
		return next, nil
	}
	err := c.sess.SetMany(ctx, map[string]string{
		session.KeyStreakCount:     fmt.Sprint(next.Count),
		session.KeyStreakLastLogin: next.LastLogin,
	})
	if err != nil {
		return prev, fmt.Errorf("ошибка сохранения серии: %w", err)
	}
	return next, nil
}

// View отмечает просмотр, продвигает серию и возвращает снимок. Первый
// просмотр загружает данные синхронно.
func (c *Composer) View(ctx context.Context) (*Snapshot, error) {
	streak, err := c.RecordVisit(ctx)
	if err != nil {
		logger.Error().Err(err).Str("session", c.sess.ID).Msg("серия не сохранена")
	}

	snap := c.Snapshot()
	if snap == nil {
		if snap, err = c.Refresh(ctx); err != nil {
			return nil, err
		}
	}
	c.lastViewed.Store(c.opts.Now().UnixNano())

	view := *snap
	view.Streak = streak
	view.Week = gamification.WeekView(c.now(), streak.Count)
	return &view, nil
}
