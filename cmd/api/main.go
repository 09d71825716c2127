package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"kairos/config"
	"kairos/internal/analytics"
	tgDelivery "kairos/internal/delivery/telegram"
	webchatDelivery "kairos/internal/delivery/webchat"
	"kairos/internal/habit"
	"kairos/internal/httpserver"
	"kairos/internal/notify"
	"kairos/internal/pomodoro"
	"kairos/internal/prefs"
	"kairos/internal/qa"
	"kairos/internal/recommend"
	"kairos/internal/router"
	"kairos/internal/scheduler"
	"kairos/internal/storage"
	taskParser "kairos/internal/task/parser"
	notionRepo "kairos/internal/task/repository/notion"
	taskUsecase "kairos/internal/task/usecase"
	"kairos/internal/view"
	"kairos/pkg/dateparse"
	"kairos/pkg/gemini"
	"kairos/pkg/log"
	"kairos/pkg/notion"
	"kairos/pkg/sendgrid"
	"kairos/pkg/telegram"
	"kairos/pkg/tts"
)

func main() {
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

	logger.Info(ctx, "Starting Kairos...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	if missing := cfg.MissingRequired(); len(missing) > 0 {
		logger.Warnf(ctx, "Missing configuration: %s (dependent features disabled)", strings.Join(missing, ", "))
	}

	// 3. Date parsing in the configured timezone
	dates, dtErr := dateparse.NewParser(cfg.Timezone)
	if dtErr != nil {
		logger.Warnf(ctx, "Invalid timezone %q, falling back to UTC: %v", cfg.Timezone, dtErr)
		dates, _ = dateparse.NewParser("UTC")
	}

	// 4. Local store for habits and focus sessions
	store, err := storage.New(cfg.Storage.Path)
	if err != nil {
		logger.Errorf(ctx, "Failed to open local store: %v", err)
		return
	}
	defer store.Close()

	habitStore := habit.New(store.DB())
	sessionStore := analytics.New(store.DB())

	// 5. Scheduler
	sched := scheduler.New(dates.Location())
	sched.Start()
	defer sched.Stop()

	// 6. External clients and delivery handlers
	var telegramHandler tgDelivery.Handler
	var webchatHandler webchatDelivery.Handler

	if cfg.Telegram.BotToken != "" && cfg.Gemini.APIKey != "" && cfg.Notion.Token != "" && cfg.Notion.DatabaseID != "" {
		bot := telegram.NewBot(cfg.Telegram.BotToken)
		geminiClient := gemini.NewClient(cfg.Gemini.APIKey, cfg.Gemini.Model)
		notionClient := notion.NewClient(cfg.Notion.Token, cfg.Notion.DatabaseID, cfg.Notion.APIVersion)

		taskRepo := notionRepo.New(notionClient, logger)
		parser := taskParser.New(dates)
		formatter := view.New(dates)
		scorer := recommend.New(dates)
		taskUC := taskUsecase.New(logger, taskRepo, parser, formatter, scorer)

		habitSvc := habit.NewService(logger, habitStore)
		reporter := analytics.NewReporter(logger, sessionStore, habitStore, taskRepo)

		sendText := func(ctx context.Context, chatID int64, text string) {
			if err := bot.SendMessage(chatID, text); err != nil {
				logger.Warnf(ctx, "Failed to send message to chat %d: %v", chatID, err)
			}
		}

		pomodoroMgr := pomodoro.New(logger, sched, sessionStore, sendText)

		var mail *sendgrid.Client
		if cfg.SendGrid.APIKey != "" && cfg.SendGrid.Sender != "" {
			mail = sendgrid.NewClient(cfg.SendGrid.APIKey, cfg.SendGrid.Sender)
			logger.Info(ctx, "Email reminder path enabled")
		}
		notifySvc := notify.New(logger, sched, taskRepo, sessionStore, habitStore, sendText, mail, cfg.SendGrid.Recipient)

		intentRouter := router.New(logger, geminiClient, taskRepo)
		responder := qa.New(logger, geminiClient, taskRepo)
		prefStore := prefs.New()
		ttsClient := tts.NewClient()

		telegramHandler = tgDelivery.New(logger, bot, tgDelivery.Deps{
			Tasks:    taskUC,
			Habits:   habitSvc,
			Reporter: reporter,
			Pomodoro: pomodoroMgr,
			Notify:   notifySvc,
			Router:   intentRouter,
			QA:       responder,
			Prefs:    prefStore,
			TTS:      ttsClient,
		})
		webchatHandler = webchatDelivery.New(logger, taskUC, responder)

		if cfg.Telegram.WebhookURL != "" {
			if whErr := bot.SetWebhook(cfg.Telegram.WebhookURL + "/webhook/telegram"); whErr != nil {
				logger.Warnf(ctx, "Failed to set Telegram webhook: %v", whErr)
			} else {
				logger.Infof(ctx, "Telegram webhook registered at %s/webhook/telegram", cfg.Telegram.WebhookURL)
			}
		}
	} else {
		logger.Warn(ctx, "Chat features skipped: bot token, LLM key or database credentials are missing")
	}

	// 7. HTTP server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		RatePerMin:      cfg.HTTPServer.RateLimitPerMin,
		TelegramHandler: telegramHandler,
		WebchatHandler:  webchatHandler,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize HTTP server: %v", err)
		return
	}

	if err := httpServer.Run(ctx); err != nil {
		logger.Errorf(ctx, "Failed to run server: %v", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
