package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/sooahn/daygoal/internal/models"
)

type Config struct {
	GeminiAPIKey   string `toml:"gemini_api_key"`
	GeminiModel    string `toml:"gemini_model"`
	RequestTimeout int    `toml:"request_timeout_seconds"`

	Schedule ScheduleConfig `toml:"schedule"`
}

type ScheduleConfig struct {
	WorkDaysPerWeek int     `toml:"work_days_per_week"`
	HoursPerDay     float64 `toml:"hours_per_day"`
	BufferDays      int     `toml:"buffer_days"`
	PreferMorning   bool    `toml:"prefer_morning"`
	PreferAfternoon bool    `toml:"prefer_afternoon"`
	PreferEvening   bool    `toml:"prefer_evening"`
}

func DefaultConfig() *Config {
	defaults := models.DefaultScheduleSettings()
	return &Config{
		GeminiModel:    "gemini-1.5-flash",
		RequestTimeout: 30,
		Schedule: ScheduleConfig{
			WorkDaysPerWeek: defaults.WorkDaysPerWeek,
			HoursPerDay:     defaults.HoursPerDay,
			BufferDays:      defaults.BufferDays,
			PreferMorning:   defaults.PreferMorning,
			PreferAfternoon: defaults.PreferAfternoon,
			PreferEvening:   defaults.PreferEvening,
		},
	}
}

// APIKey prefers the environment over the config file so the key doesn't
// have to live on disk.
func (c *Config) APIKey() string {
	if key := os.Getenv("DAYGOAL_GEMINI_API_KEY"); key != "" {
		return key
	}
	return c.GeminiAPIKey
}

func (c *Config) Timeout() time.Duration {
	if c.RequestTimeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.RequestTimeout) * time.Second
}

// ScheduleSettings converts the config section into the scheduler's input.
func (c *Config) ScheduleSettings() models.ScheduleSettings {
	s := models.ScheduleSettings{
		WorkDaysPerWeek: c.Schedule.WorkDaysPerWeek,
		HoursPerDay:     c.Schedule.HoursPerDay,
		BufferDays:      c.Schedule.BufferDays,
		PreferMorning:   c.Schedule.PreferMorning,
		PreferAfternoon: c.Schedule.PreferAfternoon,
		PreferEvening:   c.Schedule.PreferEvening,
	}
	if s.WorkDaysPerWeek < 1 || s.WorkDaysPerWeek > 7 {
		s.WorkDaysPerWeek = 5
	}
	if s.BufferDays < 0 {
		s.BufferDays = 0
	}
	return s
}

// DaygoalDir is ~/.daygoal unless DAYGOAL_HOME overrides it (tests do).
func DaygoalDir() (string, error) {
	if dir := os.Getenv("DAYGOAL_HOME"); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".daygoal"), nil
}

func ConfigPath() (string, error) {
	dir, err := DaygoalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func DatabasePath() (string, error) {
	dir, err := DaygoalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "db", "daygoal.sqlite"), nil
}

func EnsureDirectories() error {
	dir, err := DaygoalDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	dbDir := filepath.Join(dir, "db")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return err
	}

	return nil
}

func Load() (*Config, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()

	// If config file doesn't exist, create it with defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := EnsureDirectories(); err != nil {
			return nil, err
		}
		if err := Save(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	// Load existing config
	if _, err := toml.DecodeFile(configPath, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func Save(cfg *Config) error {
	configPath, err := ConfigPath()
	if err != nil {
		return err
	}

	f, err := os.Create(configPath)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}
