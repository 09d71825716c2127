package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.HTTPServer.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.HTTPServer.Port)
	}
	if cfg.Notion.APIVersion != "2022-06-28" {
		t.Errorf("unexpected default API version %q", cfg.Notion.APIVersion)
	}
	if cfg.Gemini.Model != "gemini-2.5-flash" {
		t.Errorf("unexpected default model %q", cfg.Gemini.Model)
	}
	if cfg.Storage.Path != "kairos.db" {
		t.Errorf("unexpected default storage path %q", cfg.Storage.Path)
	}
	if cfg.Timezone != "UTC" {
		t.Errorf("unexpected default timezone %q", cfg.Timezone)
	}
}

func TestMissingRequired(t *testing.T) {
	cfg := &Config{}
	missing := cfg.MissingRequired()
	if len(missing) != 4 {
		t.Fatalf("expected 4 missing settings, got %v", missing)
	}

	cfg.Telegram.BotToken = "t"
	cfg.Notion.Token = "n"
	cfg.Notion.DatabaseID = "db"
	cfg.Gemini.APIKey = "g"
	if missing := cfg.MissingRequired(); len(missing) != 0 {
		t.Errorf("expected nothing missing, got %v", missing)
	}
}
