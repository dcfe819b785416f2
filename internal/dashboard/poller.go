package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// IdleTimeout после этого времени без просмотров Composer удаляется.
const IdleTimeout = 30 * time.Minute

// Poller периодически обновляет панели, которые недавно просматривались.
type Poller struct {
	registry *Registry
	interval time.Duration
	timeout  time.Duration
	now      func() time.Time

	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc
}

func NewPoller(registry *Registry, interval, timeout time.Duration) *Poller {
	ctx, cancel := context.WithCancel(context.Background())
	return &Poller{
		registry: registry,
		interval: interval,
		timeout:  timeout,
		now:      time.Now,
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (p *Poller) Start() error {
	cronLogger := cron.PrintfLogger(&logger)
	p.cron = cron.New(cron.WithChain(cron.SkipIfStillRunning(cronLogger)), cron.WithLogger(cronLogger))
	if _, err := p.cron.AddFunc(fmt.Sprintf("@every %s", p.interval), p.Tick); err != nil {
		return fmt.Errorf("ошибка настройки CRON-задачи обновления панели: %w", err)
	}
	p.cron.Start()
	logger.Info().Dur("interval", p.interval).Msg("обновление панели запущено")
	return nil
}

// Stop останавливает расписание и отменяет текущие обновления.
func (p *Poller) Stop() {
	p.cancel()
	if p.cron != nil {
		<-p.cron.Stop().Done()
	}
}

// visible true, если страница просматривалась в пределах двух интервалов.
func (p *Poller) visible(c *Composer, now time.Time) bool {
	last := c.LastViewed()
	return !last.IsZero() && now.Sub(last) <= 2*p.interval
}

// Tick один цикл обновления.
func (p *Poller) Tick() {
	now := p.now()
	var wg sync.WaitGroup
	for _, c := range p.registry.all() {
		last := c.LastViewed()
		if !last.IsZero() && now.Sub(last) > IdleTimeout {
			p.registry.Remove(c.SessionID())
			continue
		}
		if !p.visible(c, now) {
			continue
		}
		wg.Add(1)
		go func(c *Composer) {
			defer wg.Done()
			p.refresh(c)
		}(c)
	}
	wg.Wait()
}

func (p *Poller) refresh(c *Composer) {
	ctx, cancel := context.WithTimeout(p.ctx, p.timeout)
	defer cancel()

	_, err := c.Refresh(ctx)
	switch {
	case err == nil, errors.Is(err, ErrInFlight):
	case errors.Is(err, ErrLoggedOut):
		logger.Info().Str("session", c.SessionID()).Msg("сессия завершена, панель удалена")
		p.registry.Remove(c.SessionID())
	default:
		logger.Warn().Err(err).Str("session", c.SessionID()).Msg("ошибка фонового обновления панели")
	}
}
