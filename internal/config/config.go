package config

import (
	"errors"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv     = "BRIEF_CONFIG"
	geminiAPIKeyEnv   = "GEMINI_API_KEY"
	geminiModelEnv    = "GEMINI_MODEL"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv = "TELEGRAM_CHAT_ID"
)

// ErrMissingAPIKey is the only fatal configuration error: the analysis
// stage cannot run without the text-generation credential.
var ErrMissingAPIKey = errors.New("GEMINI_API_KEY not found; set it in .env or the environment")

// Config holds all settings required across the application.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	Gemini        GeminiConfig       `yaml:"gemini"`
	Scrape        ScrapeConfig       `yaml:"scrape"`
	Report        ReportConfig       `yaml:"report"`
	Notifications NotificationConfig `yaml:"notifications"`
	Scheduler     SchedulerConfig    `yaml:"scheduler"`
}

// LoggingConfig controls the slog level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// GeminiConfig describes the text-generation service integration.
// The API key is env-only; it never lives in the YAML file.
type GeminiConfig struct {
	Model             string `yaml:"model"`
	APIKey            string `yaml:"-"`
	RequestsPerMinute int    `yaml:"requestsPerMinute"`
	MaxAttempts       int    `yaml:"maxAttempts"`
	CooldownSeconds   int    `yaml:"cooldownSeconds"`
}

// Cooldown returns the retry cooldown as a duration.
func (g GeminiConfig) Cooldown() time.Duration {
	return time.Duration(g.CooldownSeconds) * time.Second
}

// ScrapeConfig groups per-adapter settings.
type ScrapeConfig struct {
	MaxItems     int      `yaml:"maxItems"`
	Subreddit    string   `yaml:"subreddit"`
	RedditSort   string   `yaml:"redditSort"`
	RedditWindow string   `yaml:"redditWindow"`
	HNMinPoints  int      `yaml:"hnMinPoints"`
	HNHoursBack  int      `yaml:"hnHoursBack"`
	HNKeywords   []string `yaml:"hnKeywords"`
	AIKeywords   []string `yaml:"aiKeywords"`
	Web3Keywords []string `yaml:"web3Keywords"`
}

// ReportConfig controls where briefs land.
type ReportConfig struct {
	OutputDir string `yaml:"outputDir"`
}

// NotificationConfig encapsulates outbound channels.
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires the optional brief delivery.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// SchedulerConfig defines the --daily run cadence.
type SchedulerConfig struct {
	IntervalHours int `yaml:"intervalHours"`
}

// Interval returns the scheduler cadence as a duration.
func (s SchedulerConfig) Interval() time.Duration {
	return time.Duration(s.IntervalHours) * time.Hour
}

// Load reads YAML configuration (if BRIEF_CONFIG names a file) over the
// defaults and applies environment overrides last.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else if err := yaml.Unmarshal(raw, &cfg); err != nil {
			log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			cfg = defaultConfig()
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(geminiAPIKeyEnv); v != "" {
		c.Gemini.APIKey = v
	}
	if v := os.Getenv(geminiModelEnv); v != "" {
		c.Gemini.Model = v
	}
	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}
	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Gemini: GeminiConfig{
			Model:             "gemini-2.5-flash",
			RequestsPerMinute: 5,
			MaxAttempts:       3,
			CooldownSeconds:   30,
		},
		Scrape: ScrapeConfig{
			MaxItems:     10,
			Subreddit:    "MachineLearning",
			RedditSort:   "hot",
			RedditWindow: "day",
			HNMinPoints:  10,
			HNHoursBack:  24,
			AIKeywords:   DefaultAIKeywords,
			Web3Keywords: DefaultWeb3Keywords,
		},
		Report:    ReportConfig{OutputDir: "outputs"},
		Scheduler: SchedulerConfig{IntervalHours: 24},
	}
}
