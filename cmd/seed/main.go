// Команда seed заполняет аккаунт в API тестовыми данными.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/valeriaulyamaeva/ga-financas/internal/api"
	"github.com/valeriaulyamaeva/ga-financas/internal/config"
	"github.com/valeriaulyamaeva/ga-financas/models"
	"github.com/valeriaulyamaeva/ga-financas/utils"
)

var logger = zerolog.New(os.Stderr).With().Timestamp().Str("component", "seed").Logger()

func main() {
	username := flag.String("usuario", "", "usuário do API")
	password := flag.String("senha", "", "senha do usuário")
	register := flag.Bool("registrar", false, "criar o usuário antes de popular")
	email := flag.String("email", "", "e-mail para -registrar")
	seed := flag.Int64("seed", time.Now().UnixNano(), "semente do gerador")
	categories := flag.Int("categorias", 6, "quantidade de categorias")
	transactions := flag.Int("transacoes", 40, "quantidade de transações")
	goals := flag.Int("metas", 3, "quantidade de metas")
	flag.Parse()

	if *username == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("ошибка конфигурации")
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)

	ctx := context.Background()
	client := api.NewClient(cfg.APIBaseURL, cfg.APITimeout)

	if *register {
		if err := client.Register(ctx, models.Registration{Username: *username, Email: *email, Password: *password}); err != nil {
			logger.Fatal().Err(err).Msg("ошибка регистрации пользователя")
		}
	}
	resp, err := client.Login(ctx, models.Credentials{Username: *username, Password: *password})
	if err != nil {
		logger.Fatal().Err(err).Msg("ошибка входа")
	}

	gen := utils.NewGenerator(*seed, time.Now().In(cfg.Location))
	created, err := utils.GenerateTestData(ctx, client, resp.Access, gen, utils.Counts{
		Categories:   *categories,
		Transactions: *transactions,
		Goals:        *goals,
	})
	if err != nil {
		logger.Fatal().Err(err).Int("categories", created.Categories).Int("transactions", created.Transactions).Msg("генерация прервана")
	}
	logger.Info().
		Int64("seed", *seed).
		Int("categories", created.Categories).
		Int("transactions", created.Transactions).
		Int("goals", created.Goals).
		Msg("тестовые данные созданы")
}
