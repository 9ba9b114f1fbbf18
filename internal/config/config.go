package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Vocabulary sources.
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string     `mapstructure:"env"`        // current application environment (local, dev, production etc)
	TelegramAPIToken string     `mapstructure:"-"`          // Telegram API token loaded from environment
	Logger           Logger     `mapstructure:"logger"`     // logging section
	Vocabulary       Vocabulary `mapstructure:"vocabulary"` // vocabulary source section
	Quiz             Quiz       `mapstructure:"quiz"`       // quiz flow section
	Narration        Narration  `mapstructure:"narration"`  // text-to-speech section
	HTTP             HTTP       `mapstructure:"http"`       // JSON API section
	DB               DB         `mapstructure:"database"`   // database configuration section
}

// Logger configures the zap logger.
type Logger struct {
	Level string `mapstructure:"level"` // debug, info, warn, error
}

// Vocabulary configures where the vocabulary table is loaded from.
type Vocabulary struct {
	Source         string `mapstructure:"source"`          // "file" or "postgres"
	Path           string `mapstructure:"path"`            // path to JSON vocabulary file
	ReloadSchedule string `mapstructure:"reload_schedule"` // cron spec for reloading, empty disables reload
}

// Quiz configures the quiz flow.
type Quiz struct {
	AdvanceDelay     time.Duration `mapstructure:"advance_delay"`     // pause between an answer and the next question
	ConfettiLifetime time.Duration `mapstructure:"confetti_lifetime"` // how long the confetti message stays
	SessionTTL       time.Duration `mapstructure:"session_ttl"`       // sessions older than this are swept
	CleanupSchedule  string        `mapstructure:"cleanup_schedule"`  // cron spec for the session sweep
}

// Narration configures best-effort pronunciation.
type Narration struct {
	Enabled  bool   `mapstructure:"enabled"`  // show the listen button
	Auto     bool   `mapstructure:"auto"`     // narrate every new question
	Language string `mapstructure:"language"` // BCP 47 language tag of the words
	BaseURL  string `mapstructure:"base_url"` // TTS endpoint returning audio
}

// HTTP configures the JSON API.
type HTTP struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// IsProduction reports whether the application runs in production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// RequireTelegramToken returns the bot token or an error if it is not set.
func (c *Config) RequireTelegramToken() (string, error) {
	if c.TelegramAPIToken == "" {
		return "", fmt.Errorf("TELEGRAM_API_TOKEN: %w", ErrMissingEnvironmentVariables)
	}
	return c.TelegramAPIToken, nil
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	// Outside production a local .env file may provide secrets. A missing file is fine.
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("logger.level", "info")
	v.SetDefault("vocabulary.source", SourceFile)
	v.SetDefault("vocabulary.path", "assets/data/vocabulary.json")
	v.SetDefault("vocabulary.reload_schedule", "")
	v.SetDefault("quiz.advance_delay", "1s")
	v.SetDefault("quiz.confetti_lifetime", "5s")
	v.SetDefault("quiz.session_ttl", "1h")
	v.SetDefault("quiz.cleanup_schedule", "@every 10m")
	v.SetDefault("narration.enabled", true)
	v.SetDefault("narration.auto", false)
	v.SetDefault("narration.language", "en-US")
	v.SetDefault("narration.base_url", "https://translate.google.com/translate_tts")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.shutdown_timeout", "10s")
	v.SetDefault("database.max_connections", 5)
	v.SetDefault("database.max_conn_lifetime", "30m")

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	cfg.DB.URL = v.GetString("database_url")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Vocabulary.Source {
	case SourceFile:
		if c.Vocabulary.Path == "" {
			return errors.New("vocabulary.path is required for file source")
		}
	case SourcePostgres:
		if _, err := c.DB.DSN(); err != nil {
			return fmt.Errorf("DATABASE_URL: %w", err)
		}
	default:
		return fmt.Errorf("unknown vocabulary source: %q", c.Vocabulary.Source)
	}

	if c.Quiz.AdvanceDelay < 0 {
		return errors.New("quiz.advance_delay must not be negative")
	}

	return nil
}
