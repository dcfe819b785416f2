package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/valeriaulyamaeva/ga-financas/internal/api"
	"github.com/valeriaulyamaeva/ga-financas/internal/config"
	"github.com/valeriaulyamaeva/ga-financas/internal/dashboard"
	"github.com/valeriaulyamaeva/ga-financas/internal/database"
	"github.com/valeriaulyamaeva/ga-financas/internal/handlers"
	"github.com/valeriaulyamaeva/ga-financas/internal/routes"
	"github.com/valeriaulyamaeva/ga-financas/internal/session"
)

var logger = zerolog.New(os.Stderr).With().Timestamp().Str("component", "main").Logger()

// sessionMaxAge сессии Postgres старше этого срока удаляются.
const sessionMaxAge = 30 * 24 * time.Hour

// ScheduleSessionPurge раз в сутки чистит устаревшие сессии.
func ScheduleSessionPurge(store *session.PGStore) (*cron.Cron, error) {
	c := cron.New(cron.WithLogger(cron.PrintfLogger(&logger)))
	_, err := c.AddFunc("@daily", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		n, err := store.Purge(ctx, sessionMaxAge)
		if err != nil {
			logger.Error().Err(err).Msg("ошибка очистки устаревших сессий")
			return
		}
		logger.Info().Int64("deleted", n).Msg("очистка сессий завершена")
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("ошибка конфигурации")
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)
	if cfg.LogLevel > zerolog.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store session.Store = session.NewMemoryStore()
	if cfg.SessionStore == config.StorePostgres {
		pool, err := database.ConnectPool(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("ошибка подключения к БД")
		}
		defer pool.Close()

		pgStore, err := session.NewPGStore(ctx, pool)
		if err != nil {
			logger.Fatal().Err(err).Msg("ошибка подготовки таблицы сессий")
		}
		purge, err := ScheduleSessionPurge(pgStore)
		if err != nil {
			logger.Fatal().Err(err).Msg("ошибка настройки CRON-задачи очистки сессий")
		}
		defer purge.Stop()
		store = pgStore
	}

	client := api.NewClient(cfg.APIBaseURL, cfg.APITimeout)
	registry := dashboard.NewRegistry(client, dashboard.Options{
		Location:     cfg.Location,
		DefaultLimit: cfg.SpendingLimit,
	})
	poller := dashboard.NewPoller(registry, cfg.RefreshInterval, cfg.APITimeout)
	if err := poller.Start(); err != nil {
		logger.Fatal().Err(err).Msg("ошибка запуска обновления панели")
	}
	defer poller.Stop()

	router, err := routes.SetupRouter(&handlers.Deps{
		API:             client,
		Registry:        registry,
		Location:        cfg.Location,
		RefreshInterval: cfg.RefreshInterval,
	}, store, cfg.CookieSecure)
	if err != nil {
		logger.Fatal().Err(err).Msg("ошибка создания маршрутов")
	}

	srv := &http.Server{Addr: cfg.ListenAddr, Handler: router, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Info().Str("addr", cfg.ListenAddr).Str("api", cfg.APIBaseURL).Str("store", cfg.SessionStore).Msg("сервер запущен")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("ошибка запуска сервера")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("остановка сервера")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("ошибка остановки сервера")
	}
}
