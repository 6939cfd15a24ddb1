package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/habeshapay/telebirr_verify_bot/internal/core/ports"
	portssvc "github.com/habeshapay/telebirr_verify_bot/internal/core/ports/services"
	"github.com/habeshapay/telebirr_verify_bot/internal/core/services"
	"github.com/habeshapay/telebirr_verify_bot/internal/handlers"
	"github.com/habeshapay/telebirr_verify_bot/internal/middleware"
	"github.com/habeshapay/telebirr_verify_bot/internal/platform/config"
	"github.com/habeshapay/telebirr_verify_bot/internal/repositories/ledgerfile"
	"github.com/habeshapay/telebirr_verify_bot/internal/transport/ocr"
	"github.com/habeshapay/telebirr_verify_bot/internal/transport/telegram"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ledgerRepo := ledgerfile.NewLedgerRepository(cfg.DataDir, cfg.BookingTTL, logger)

	container := &portssvc.ServiceContainer{
		Verification: services.NewVerificationService(ledgerRepo, logger),
		Schedule:     services.NewScheduleService(ledgerRepo),
		Booking:      services.NewBookingService(ledgerRepo, logger),
		LedgerAdmin:  services.NewLedgerAdminService(ledgerRepo),
	}

	startAdminServer(cfg, container, logger)

	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		logger.Error("Failed to connect to Telegram", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var extractor ports.TextExtractor
	if cfg.OCRURL != "" {
		extractor = ocr.NewClient(cfg.OCRURL)
	}

	bot := telegram.NewBot(api, telegram.NewNotifier(api), container, extractor,
		cfg.LocationHints, cfg.BookingWebAppURL, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Bot starting", slog.String("data_dir", cfg.DataDir))
	if err := bot.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Bot stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Bot stopped")
}

// startAdminServer runs the operational HTTP surface (liveness, ledger
// snapshot) in the background.
func startAdminServer(cfg *config.Config, container *portssvc.ServiceContainer, logger *slog.Logger) {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	rate, err := limiter.NewRateFromFormatted(cfg.AdminRateLimit)
	if err != nil {
		logger.Error("Invalid ADMIN_RATE_LIMIT, admin rate limiting disabled",
			slog.String("value", cfg.AdminRateLimit), slog.String("error", err.Error()))
	} else {
		r.Use(middleware.RateLimit(limiter.New(memory.NewStore(), rate)))
	}

	handlers.RegisterAdminRoutes(r, handlers.NewAdminHandler(container.LedgerAdmin))

	go func() {
		if err := r.Run(":" + cfg.AdminPort); err != nil {
			logger.Error("Admin server failed", slog.String("error", err.Error()))
		}
	}()
}
