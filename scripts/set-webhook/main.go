package main

import (
	"context"
	"fmt"
	"os"

	"kairos/config"
	"kairos/pkg/log"
	"kairos/pkg/telegram"
)

// One-off webhook registration, for deployments where the public URL is
// brought up separately from the server (e.g. behind a tunnel).
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run scripts/set-webhook/main.go <public base URL>")
		fmt.Println("Example: go run scripts/set-webhook/main.go https://kairos.example.com")
		os.Exit(1)
	}
	baseURL := os.Args[1]

	// Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize Logger
	logger := log.Init(log.ZapConfig{
		Level:        "info",
		Mode:         "development",
		ColorEnabled: true,
	})

	ctx := context.Background()

	if cfg.Telegram.BotToken == "" {
		logger.Fatal(ctx, "telegram.bot_token is not configured")
	}

	bot := telegram.NewBot(cfg.Telegram.BotToken)
	webhookURL := baseURL + "/webhook/telegram"
	if err := bot.SetWebhook(webhookURL); err != nil {
		logger.Fatalf(ctx, "Failed to set webhook: %v", err)
	}

	logger.Infof(ctx, "Webhook registered at %s", webhookURL)
}
