package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	Environment EnvironmentConfig
	HTTPServer  HTTPServerConfig
	Logger      LoggerConfig

	Telegram TelegramConfig
	Notion   NotionConfig
	Gemini   GeminiConfig
	SendGrid SendGridConfig
	Storage  StorageConfig

	Timezone string
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port            int
	Mode            string
	RateLimitPerMin int
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type TelegramConfig struct {
	BotToken   string
	WebhookURL string
}

type NotionConfig struct {
	Token      string
	DatabaseID string
	APIVersion string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

// SendGridConfig configures the optional email reminder path.
type SendGridConfig struct {
	APIKey    string
	Sender    string
	Recipient string
}

type StorageConfig struct {
	Path string
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/kairos/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/kairos/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.HTTPServer.RateLimitPerMin = viper.GetInt("http_server.rate_limit_per_min")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	cfg.Telegram.BotToken = viper.GetString("telegram.bot_token")
	cfg.Telegram.WebhookURL = viper.GetString("telegram.webhook_url")
	if tgToken := viper.GetString("telegram_bot_token"); tgToken != "" {
		cfg.Telegram.BotToken = tgToken
	}

	cfg.Notion.Token = viper.GetString("notion.token")
	cfg.Notion.DatabaseID = viper.GetString("notion.database_id")
	cfg.Notion.APIVersion = viper.GetString("notion.api_version")
	if notionToken := viper.GetString("notion_token"); notionToken != "" {
		cfg.Notion.Token = notionToken
	}
	if notionDB := viper.GetString("notion_database_id"); notionDB != "" {
		cfg.Notion.DatabaseID = notionDB
	}

	cfg.Gemini.APIKey = viper.GetString("gemini.api_key")
	cfg.Gemini.Model = viper.GetString("gemini.model")
	if geminiKey := viper.GetString("google_api_key"); geminiKey != "" {
		cfg.Gemini.APIKey = geminiKey
	}

	cfg.SendGrid.APIKey = viper.GetString("sendgrid.api_key")
	cfg.SendGrid.Sender = viper.GetString("sendgrid.sender_email")
	cfg.SendGrid.Recipient = viper.GetString("sendgrid.recipient_email")
	if sgKey := viper.GetString("sendgrid_api_key"); sgKey != "" {
		cfg.SendGrid.APIKey = sgKey
	}

	cfg.Storage.Path = viper.GetString("storage.path")
	cfg.Timezone = viper.GetString("timezone")

	return cfg, nil
}

// MissingRequired reports which required settings are absent. Missing values
// degrade features at startup instead of aborting the process.
func (c *Config) MissingRequired() []string {
	var missing []string
	if c.Telegram.BotToken == "" {
		missing = append(missing, "TELEGRAM_BOT_TOKEN")
	}
	if c.Notion.Token == "" {
		missing = append(missing, "NOTION_TOKEN")
	}
	if c.Notion.DatabaseID == "" {
		missing = append(missing, "NOTION_DATABASE_ID")
	}
	if c.Gemini.APIKey == "" {
		missing = append(missing, "GOOGLE_API_KEY")
	}
	return missing
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("http_server.rate_limit_per_min", 60)
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)
	viper.SetDefault("notion.api_version", "2022-06-28")
	viper.SetDefault("gemini.model", "gemini-2.5-flash")
	viper.SetDefault("storage.path", "kairos.db")
	viper.SetDefault("timezone", "UTC")
}
