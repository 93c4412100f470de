package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/gmail/v1"

	"personal-ops-assistant/config"
	_ "personal-ops-assistant/docs" // Swagger docs
	"personal-ops-assistant/internal/briefing"
	"personal-ops-assistant/internal/httpserver"
	"personal-ops-assistant/internal/ingest"
	"personal-ops-assistant/internal/model"
	tgDelivery "personal-ops-assistant/internal/task/delivery/telegram"
	sqliteRepo "personal-ops-assistant/internal/task/repository/sqlite"
	"personal-ops-assistant/internal/task/usecase"
	"personal-ops-assistant/pkg/gcalendar"
	"personal-ops-assistant/pkg/googleauth"
	"personal-ops-assistant/pkg/log"
	"personal-ops-assistant/pkg/telegram"
	"personal-ops-assistant/pkg/timeparse"
)

// @title       Personal Ops Assistant API
// @description Single-owner ops assistant: chat-driven tasks, calendar events, email ingestion, daily briefing.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 0. Optional .env for local development
	_ = godotenv.Load()

	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Personal Ops Assistant...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Owner scope — built once, immutable, passed into every handler.
	sc := model.Scope{
		OwnerID:  cfg.Owner.ID,
		Timezone: cfg.Owner.Timezone,
		ChatID:   cfg.Telegram.OwnerChatID,
	}

	resolver, err := timeparse.NewResolver(cfg.Owner.Timezone)
	if err != nil {
		logger.Warnf(ctx, "Invalid timezone %q, falling back to UTC: %v", cfg.Owner.Timezone, err)
		resolver, _ = timeparse.NewResolver("UTC")
	}

	// 4. Task store
	db, err := sqliteRepo.Open(ctx, cfg.Database.Path)
	if err != nil {
		logger.Error(ctx, "Failed to open task database: ", err)
		return
	}
	defer db.Close()
	taskRepo := sqliteRepo.New(db, logger)

	// 5. Google APIs (optional; the assistant degrades without them)
	var calendarClient *gcalendar.Client
	var googleHTTP *http.Client
	if cfg.Google.CredentialsPath != "" {
		googleHTTP, err = googleauth.NewHTTPClient(ctx,
			cfg.Google.CredentialsPath, cfg.Google.TokenPath,
			calendar.CalendarScope, gmail.GmailModifyScope,
		)
		if err != nil {
			logger.Warnf(ctx, "Google APIs not available (optional): %v", err)
			logger.Warn(ctx, "→ Run `go run scripts/google-auth/main.go` to generate token.json")
		} else {
			calendarClient, err = gcalendar.NewClientFromHTTP(ctx, googleHTTP)
			if err != nil {
				logger.Warnf(ctx, "Google Calendar not available (optional): %v", err)
			} else {
				logger.Info(ctx, "✅ Google Calendar initialized")
			}
		}
	}

	// 6. Task UseCase
	taskUC := usecase.New(logger, taskRepo, calendarClient, resolver, cfg.Google.CalendarID)

	// 7. Telegram delivery
	var telegramHandler tgDelivery.Handler
	var telegramBot *telegram.Bot

	if cfg.Telegram.BotToken != "" {
		telegramBot = telegram.NewBot(cfg.Telegram.BotToken)

		security := tgDelivery.NewSecurityValidator(tgDelivery.SecurityConfig{
			Secret:          cfg.Telegram.WebhookSecret,
			RateLimitPerMin: 30,
		})
		telegramHandler = tgDelivery.New(logger, taskUC, telegramBot, sc, security)

		// Register webhook: auto-detect ngrok or fallback to manual config
		webhookURL := cfg.Telegram.WebhookURL
		if webhookURL == "" {
			ngrokURL, ngrokErr := detectNgrokURL(ctx, "http://ngrok:4040")
			if ngrokErr != nil {
				logger.Warnf(ctx, "Could not detect ngrok URL: %v", ngrokErr)
			} else {
				webhookURL = ngrokURL + "/webhook/telegram"
				logger.Infof(ctx, "Auto-detected ngrok URL: %s", webhookURL)
			}
		}
		if webhookURL != "" {
			if whErr := telegramBot.SetWebhook(webhookURL, cfg.Telegram.WebhookSecret); whErr != nil {
				logger.Warnf(ctx, "Failed to set Telegram webhook: %v", whErr)
			} else {
				logger.Infof(ctx, "✅ Telegram webhook registered at %s", webhookURL)
			}
		}
	} else {
		logger.Warn(ctx, "TELEGRAM_BOT_TOKEN missing, chat interface disabled")
	}

	// 8. Daily briefing scheduler
	if cfg.Briefing.Enabled && telegramBot != nil && sc.ChatID != 0 {
		sched, schedErr := briefing.New(logger, taskUC, telegramBot, sc, resolver.Location(), cfg.Briefing.At)
		if schedErr != nil {
			logger.Warnf(ctx, "Briefing disabled: %v", schedErr)
		} else {
			go sched.Run(ctx)
			logger.Infof(ctx, "✅ Daily briefing scheduled at %s %s", cfg.Briefing.At, cfg.Owner.Timezone)
		}
	}

	// 9. Email ingestion
	if cfg.Ingest.Enabled && googleHTTP != nil {
		ingestor, ingErr := ingest.New(ctx, logger, googleHTTP, taskRepo, sc, ingest.Config{
			Query:       cfg.Ingest.Query,
			Interval:    time.Duration(cfg.Ingest.IntervalMinutes) * time.Minute,
			MaxMessages: cfg.Ingest.MaxMessages,
		})
		if ingErr != nil {
			logger.Warnf(ctx, "Email ingestion disabled: %v", ingErr)
		} else {
			go ingestor.Run(ctx)
			logger.Infof(ctx, "✅ Email ingestion every %dm (query %q)", cfg.Ingest.IntervalMinutes, cfg.Ingest.Query)
		}
	}

	// 10. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:          logger,
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		TelegramHandler: telegramHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
