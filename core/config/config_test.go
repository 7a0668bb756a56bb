package config

import "testing"

func TestNormalizeDefaults(t *testing.T) {
	cfg := &Config{Telegram: TelegramConfig{Token: "t"}}

	if err := Normalize(cfg); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Errorf("run_mode = %q, want %q", cfg.Telegram.RunMode, RunModeLongpoll)
	}
	if cfg.Sessions.Backend != SessionsMemory {
		t.Errorf("backend = %q, want %q", cfg.Sessions.Backend, SessionsMemory)
	}
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("model = %q", cfg.OpenAI.Model)
	}
	if cfg.OpenAI.ClassifierModel != cfg.OpenAI.Model {
		t.Errorf("classifier_model = %q, want %q", cfg.OpenAI.ClassifierModel, cfg.OpenAI.Model)
	}
	if cfg.Digest.Cron != "0 19 * * 0" {
		t.Errorf("digest cron = %q", cfg.Digest.Cron)
	}
	if cfg.Digest.CheckIntervalSeconds != 30 {
		t.Errorf("digest interval = %d, want 30", cfg.Digest.CheckIntervalSeconds)
	}
}

func TestNormalizePostgresRequiresHost(t *testing.T) {
	cfg := &Config{
		Telegram: TelegramConfig{Token: "t"},
		Sessions: SessionsConfig{Backend: SessionsPostgres},
	}
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for postgres backend without database.host")
	}

	cfg.Database = DatabaseConfig{Host: "localhost", Port: "5432", Name: "teplo"}
	if err := Normalize(cfg); err != nil {
		t.Fatalf("Normalize with host: %v", err)
	}
	if cfg.Sessions.Backend != SessionsPostgres {
		t.Errorf("backend = %q, want %q", cfg.Sessions.Backend, SessionsPostgres)
	}
}

func TestNormalizeRejectsUnknownValues(t *testing.T) {
	cfg := &Config{
		Telegram: TelegramConfig{Token: "t"},
		Sessions: SessionsConfig{Backend: "redis"},
	}
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for unknown sessions backend")
	}

	cfg = &Config{Telegram: TelegramConfig{Token: "t", RunMode: "carrier-pigeon"}}
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for unknown run_mode")
	}
}
