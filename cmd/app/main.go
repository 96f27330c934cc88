package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"alfacard_miniapp/internal/api"
	"alfacard_miniapp/internal/bot"
	"alfacard_miniapp/internal/metrics"
	"alfacard_miniapp/internal/repository"
	"alfacard_miniapp/internal/service"
	"alfacard_miniapp/migrations"
	"alfacard_miniapp/pkg/logger"
	"go.uber.org/zap"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const telegramTimeout = 5 * time.Second

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	err = logger.Initialize(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zapLogger := logger.Logger()

	repo, err := repository.New(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to initialize repository", zap.Error(err))
	}
	defer repo.Close()

	if err := repo.Migrate(context.Background(), migrations.Files); err != nil {
		zapLogger.Fatal("Failed to apply migrations", zap.Error(err))
	}

	m := metrics.Registry("alfacard")

	userService := service.NewUserService(repo, nil)

	botService := bot.NewService(newTelegramAPI(cfg.Telegram.BotToken), userService, m, bot.Config{
		WebAppURL:       cfg.Telegram.WebAppURL,
		CardOrderURL:    cfg.Telegram.CardOrderURL,
		ReferralLinkFmt: cfg.Telegram.ReferralLinkFmt,
	})
	userService.SetNotifier(botService)

	router := api.NewRouter(userService, botService, repo, m)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	zapLogger.Info("Starting server", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		zapLogger.Fatal("Failed to start server", zap.Error(err))
	}
}

// newTelegramAPI builds the outbound Bot API client with a bounded
// timeout. Returns nil when no token is configured or the token is
// rejected; the bot then runs in dispatch-only mode with sends skipped.
func newTelegramAPI(token string) bot.API {
	if token == "" {
		logger.Logger().Warn("telegram bot token not configured, outbound sends disabled")
		return nil
	}

	client := &http.Client{Timeout: telegramTimeout}
	tg, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, client)
	if err != nil {
		logger.Logger().Warn("failed to initialize telegram bot api, outbound sends disabled",
			zap.Error(err))
		return nil
	}

	return tg
}
