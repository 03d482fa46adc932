package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"meeting-assistant/config"
	_ "meeting-assistant/docs" // Swagger docs
	"meeting-assistant/internal/auth"
	"meeting-assistant/internal/httpserver"
	tgDelivery "meeting-assistant/internal/meeting/delivery/telegram"
	"meeting-assistant/internal/meeting/dialog"
	"meeting-assistant/internal/meeting/usecase"
	"meeting-assistant/internal/reminder"
	"meeting-assistant/internal/store"
	"meeting-assistant/pkg/gcalendar"
	"meeting-assistant/pkg/log"
	"meeting-assistant/pkg/telegram"
)

// @title       Meeting Assistant API
// @description Telegram bot that creates Google Calendar events, generates Meet links, and reminds about meetings.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// Local .env, if present
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

	logger.Info(ctx, "Starting Meeting Assistant...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warnf(ctx, "Invalid timezone %q, falling back to UTC: %v", cfg.Timezone, err)
		loc = time.UTC
	}

	// 3. Storage
	db, err := store.New(cfg.Database.Path)
	if err != nil {
		logger.Errorf(ctx, "Failed to open database: %v", err)
		return
	}
	defer db.Close()
	logger.Infof(ctx, "Database ready at %s", cfg.Database.Path)

	// 4. Google OAuth
	oauth, err := gcalendar.NewAuthFromCredentialsFile(cfg.GoogleCalendar.CredentialsPath, cfg.GoogleCalendar.RedirectURL)
	if err != nil {
		logger.Errorf(ctx, "Failed to load Google credentials: %v", err)
		return
	}

	// 5. Telegram Bot client
	bot := telegram.NewBot(cfg.Telegram.BotToken)

	// 6. Domain wiring
	authSvc := auth.New(logger, db, oauth)
	meetingUC := usecase.New(logger, authSvc, loc)
	dialogs := dialog.NewManager(loc)
	telegramHandler := tgDelivery.New(logger, meetingUC, bot, dialogs, authSvc, db, loc)

	// 7. Reminder scheduler
	interval := time.Duration(cfg.Reminder.IntervalSeconds) * time.Second
	lookAhead := time.Duration(cfg.Reminder.LookAheadMinutes) * time.Minute
	sched := reminder.New(logger, db, meetingUC, bot, loc, interval, lookAhead)
	go sched.Run(ctx)

	// 8. Webhook registration: auto-detect ngrok or fall back to config
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
		if whErr := bot.DeleteWebhook(true); whErr != nil {
			logger.Warnf(ctx, "Failed to clear old webhook: %v", whErr)
		}
		if whErr := bot.SetWebhook(webhookURL); whErr != nil {
			logger.Warnf(ctx, "Failed to set Telegram webhook: %v", whErr)
		} else {
			logger.Infof(ctx, "Telegram webhook registered at %s", webhookURL)
		}
	}

	// 9. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
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
