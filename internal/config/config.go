package config

import (
	"log"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	configPathEnv = "JSM_CHANGES_CONFIG"
	dotenvFile    = ".env"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	Source        SourceConfig       `yaml:"source"`
	Markup        MarkupConfig       `yaml:"markup"`
	HTTP          HTTPConfig         `yaml:"http"`
	Report        ReportConfig       `yaml:"report"`
	Notifications NotificationConfig `yaml:"notifications"`
	Scheduler     SchedulerConfig    `yaml:"scheduler"`
}

// LoggingConfig controls the slog handler and the optional rotating file.
type LoggingConfig struct {
	Level      string `yaml:"level" env:"JSM_LOG_LEVEL"`
	File       string `yaml:"file" env:"JSM_LOG_FILE"`
	MaxSizeMB  int    `yaml:"maxSizeMb"`
	MaxBackups int    `yaml:"maxBackups"`
	MaxAgeDays int    `yaml:"maxAgeDays"`
}

// SourceConfig points at the changelog index and the weekly page naming.
type SourceConfig struct {
	IndexURL   string `yaml:"indexUrl" env:"JSM_INDEX_URL"`
	BaseURL    string `yaml:"baseUrl" env:"JSM_BASE_URL"`
	SlugPrefix string `yaml:"slugPrefix" env:"JSM_SLUG_PREFIX"`
}

// MarkupConfig describes where entries live inside a weekly page.
type MarkupConfig struct {
	Section         string   `yaml:"section" env:"JSM_SECTION"`
	HeadingTags     []string `yaml:"headingTags"`
	PanelClass      string   `yaml:"panelClass"`
	TitleSelector   string   `yaml:"titleSelector"`
	StatusSelector  string   `yaml:"statusSelector"`
	ContentSelector string   `yaml:"contentSelector"`
}

// HTTPConfig bounds every outbound request.
type HTTPConfig struct {
	Timeout   time.Duration `yaml:"timeout" env:"JSM_HTTP_TIMEOUT"`
	UserAgent string        `yaml:"userAgent" env:"JSM_USER_AGENT"`
}

// ReportConfig selects the renderer and where its output goes.
type ReportConfig struct {
	Product    string `yaml:"product" env:"JSM_PRODUCT"`
	Format     string `yaml:"format" env:"JSM_REPORT_FORMAT"`
	NoOpen     bool   `yaml:"noOpen" env:"JSM_NO_OPEN"`
	OutputPath string `yaml:"outputPath" env:"JSM_REPORT_OUTPUT"`
}

// NotificationConfig encapsulates outbound channels.
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken" env:"TELEGRAM_BOT_TOKEN"`
	ChatID   string `yaml:"chatId" env:"TELEGRAM_CHAT_ID"`
}

// Enabled reports whether both credentials are present.
func (t TelegramConfig) Enabled() bool {
	return t.BotToken != "" && t.ChatID != ""
}

// SchedulerConfig defines how often watch mode re-runs the comparison.
type SchedulerConfig struct {
	Interval time.Duration `yaml:"interval" env:"JSM_WATCH_INTERVAL"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
// An explicit path wins over the JSM_CHANGES_CONFIG variable.
func Load(path string) Config {
	if err := godotenv.Load(dotenvFile); err != nil && !os.IsNotExist(err) {
		log.Printf("config: cannot load %s: %v", dotenvFile, err)
	}

	cfg := defaultConfig()

	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if err := env.Parse(c); err != nil {
		log.Printf("config: cannot apply environment overrides: %v", err)
	}
	if c.HTTP.Timeout <= 0 {
		c.HTTP.Timeout = defaultConfig().HTTP.Timeout
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.File != "" {
		base.Logging.File = override.Logging.File
	}
	if override.Logging.MaxSizeMB > 0 {
		base.Logging.MaxSizeMB = override.Logging.MaxSizeMB
	}
	if override.Logging.MaxBackups > 0 {
		base.Logging.MaxBackups = override.Logging.MaxBackups
	}
	if override.Logging.MaxAgeDays > 0 {
		base.Logging.MaxAgeDays = override.Logging.MaxAgeDays
	}

	if override.Source.IndexURL != "" {
		base.Source.IndexURL = override.Source.IndexURL
	}
	if override.Source.BaseURL != "" {
		base.Source.BaseURL = override.Source.BaseURL
	}
	if override.Source.SlugPrefix != "" {
		base.Source.SlugPrefix = override.Source.SlugPrefix
	}

	if override.Markup.Section != "" {
		base.Markup.Section = override.Markup.Section
	}
	if len(override.Markup.HeadingTags) > 0 {
		base.Markup.HeadingTags = override.Markup.HeadingTags
	}
	if override.Markup.PanelClass != "" {
		base.Markup.PanelClass = override.Markup.PanelClass
	}
	if override.Markup.TitleSelector != "" {
		base.Markup.TitleSelector = override.Markup.TitleSelector
	}
	if override.Markup.StatusSelector != "" {
		base.Markup.StatusSelector = override.Markup.StatusSelector
	}
	if override.Markup.ContentSelector != "" {
		base.Markup.ContentSelector = override.Markup.ContentSelector
	}

	if override.HTTP.Timeout > 0 {
		base.HTTP.Timeout = override.HTTP.Timeout
	}
	if override.HTTP.UserAgent != "" {
		base.HTTP.UserAgent = override.HTTP.UserAgent
	}

	if override.Report.Product != "" {
		base.Report.Product = override.Report.Product
	}
	if override.Report.Format != "" {
		base.Report.Format = override.Report.Format
	}
	if override.Report.OutputPath != "" {
		base.Report.OutputPath = override.Report.OutputPath
	}
	if override.Report.NoOpen {
		base.Report.NoOpen = true
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	if override.Scheduler.Interval > 0 {
		base.Scheduler.Interval = override.Scheduler.Interval
	}

	return base
}

// Default returns the built-in configuration without reading files or env.
func Default() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info", MaxSizeMB: 10, MaxBackups: 3, MaxAgeDays: 28},
		Source: SourceConfig{
			IndexURL:   "https://confluence.atlassian.com/cloud/blog",
			BaseURL:    "https://confluence.atlassian.com",
			SlugPrefix: "atlassian-cloud-changes",
		},
		Markup: MarkupConfig{
			Section:         "jira service management",
			HeadingTags:     []string{"h1", "h2"},
			PanelClass:      "panel-block",
			TitleSelector:   "h4",
			StatusSelector:  "span.status-macro",
			ContentSelector: "div.panel-block-content",
		},
		HTTP: HTTPConfig{
			Timeout:   5 * time.Second,
			UserAgent: "JSMChanges/1.0",
		},
		Report:    ReportConfig{Product: "Jira Service Management", Format: "html"},
		Scheduler: SchedulerConfig{Interval: 7 * 24 * time.Hour},
	}
}
