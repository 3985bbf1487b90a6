package config

import (
	"os"
	"path/filepath"
	"testing"
)

func setHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DAYGOAL_HOME", dir)
	return dir
}

func TestLoadCreatesDefaultConfig(t *testing.T) {
	dir := setHome(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.GeminiModel != "gemini-1.5-flash" {
		t.Fatalf("model = %q", cfg.GeminiModel)
	}
	if cfg.Schedule.WorkDaysPerWeek != 5 || cfg.Schedule.BufferDays != 1 {
		t.Fatalf("schedule defaults: %+v", cfg.Schedule)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.toml")); err != nil {
		t.Fatalf("config file not written: %v", err)
	}
}

func TestLoadRoundTrip(t *testing.T) {
	setHome(t)

	cfg := DefaultConfig()
	cfg.GeminiAPIKey = "abc123"
	cfg.Schedule.WorkDaysPerWeek = 6
	if err := EnsureDirectories(); err != nil {
		t.Fatalf("ensure dirs: %v", err)
	}
	if err := Save(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.GeminiAPIKey != "abc123" {
		t.Fatalf("api key = %q", got.GeminiAPIKey)
	}
	if got.ScheduleSettings().WorkDaysPerWeek != 6 {
		t.Fatalf("work days = %d", got.ScheduleSettings().WorkDaysPerWeek)
	}
}

func TestAPIKeyPrefersEnvironment(t *testing.T) {
	cfg := &Config{GeminiAPIKey: "from-file"}
	t.Setenv("DAYGOAL_GEMINI_API_KEY", "from-env")
	if cfg.APIKey() != "from-env" {
		t.Fatalf("api key = %q", cfg.APIKey())
	}
	t.Setenv("DAYGOAL_GEMINI_API_KEY", "")
	if cfg.APIKey() != "from-file" {
		t.Fatalf("api key = %q", cfg.APIKey())
	}
}

func TestScheduleSettingsClampsInvalidValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Schedule.WorkDaysPerWeek = 12
	cfg.Schedule.BufferDays = -2

	s := cfg.ScheduleSettings()
	if s.WorkDaysPerWeek != 5 {
		t.Fatalf("work days = %d, want 5", s.WorkDaysPerWeek)
	}
	if s.BufferDays != 0 {
		t.Fatalf("buffer days = %d, want 0", s.BufferDays)
	}
}
