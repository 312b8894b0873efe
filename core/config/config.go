package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// TelegramConfig holds Telegram bot settings.
type TelegramConfig struct {
	Token string `yaml:"token" envconfig:"TELEGRAM_BOT_TOKEN"`
	// AuthorizedChatID is the single chat allowed to operate the bot.
	AuthorizedChatID int64  `yaml:"authorized_chat_id" envconfig:"AUTHORIZED_USER_ID"`
	RunMode          string `yaml:"run_mode" envconfig:"TELEGRAM_RUN_MODE"`
	// LongPollTimeoutSeconds defines long polling timeout; 0 -> default
	LongPollTimeoutSeconds int `yaml:"longpoll_timeout_seconds" envconfig:"TELEGRAM_LONGPOLL_TIMEOUT_SECONDS"`
}

// WebhookConfig specifies webhook settings.
type WebhookConfig struct {
	URL    string `yaml:"url" envconfig:"WEBHOOK_URL"`
	Listen string `yaml:"listen" envconfig:"WEBHOOK_LISTEN"`
	Port   int    `yaml:"port" envconfig:"WEBHOOK_PORT"`
}

// LoggingConfig defines logging related configuration.
type LoggingConfig struct {
	Level     string `yaml:"level" envconfig:"LOG_LEVEL"`
	Format    string `yaml:"format" envconfig:"LOG_FORMAT"`
	KeysOrder string `yaml:"keys_order"`
	Dir       string `yaml:"dir" envconfig:"LOG_DIR"`
	BotFile   string `yaml:"bot_file" envconfig:"LOG_FILE"`
	// Profile indicates environment profile such as "debug" or "prod".
	Profile string `yaml:"profile" envconfig:"LOG_PROFILE"`
}

// HTTPConfig controls the read-only listing endpoint.
type HTTPConfig struct {
	Listen string `yaml:"listen" envconfig:"HTTP_LISTEN"`
	Port   int    `yaml:"port" envconfig:"PORT"`
}

// StorageConfig selects where the registry is persisted.
type StorageConfig struct {
	Driver   string         `yaml:"driver" envconfig:"STORAGE_DRIVER"`
	Path     string         `yaml:"path" envconfig:"STORAGE_PATH"`
	Database DatabaseConfig `yaml:"database"`
}

// DatabaseConfig holds PostgreSQL connection settings for the registry store.
type DatabaseConfig struct {
	Host           string `yaml:"host" envconfig:"DB_HOST"`
	Port           string `yaml:"port" envconfig:"DB_PORT"`
	User           string `yaml:"user" envconfig:"DB_USER"`
	Password       string `yaml:"password" envconfig:"DB_PASSWORD"`
	Name           string `yaml:"name" envconfig:"DB_NAME"`
	SSLMode        string `yaml:"sslmode" envconfig:"DB_SSLMODE"`
	MaxConnections int    `yaml:"max_connections" envconfig:"DB_MAX_CONNECTIONS"`
}

// SessionConfig tunes the add-IP conversation.
type SessionConfig struct {
	MaxAttempts int `yaml:"max_attempts" envconfig:"SESSION_MAX_ATTEMPTS"`
}

const (
	// RunModeWebhook selects webhook mode for Telegram updates.
	RunModeWebhook = "webhook"
	// RunModeLongpoll selects long-polling mode for Telegram updates.
	RunModeLongpoll = "longpoll"
)

const (
	// StorageFile keeps the registry in a JSON file.
	StorageFile = "file"
	// StoragePostgres keeps the registry in a PostgreSQL table.
	StoragePostgres = "postgres"
	// StorageSQLite keeps the registry in a SQLite database file.
	StorageSQLite = "sqlite"
)

const (
	// UpdateCallback identifies callback updates for rate limit exclusions.
	UpdateCallback = "callback"
	// UpdateMessage identifies message updates for rate limit exclusions.
	UpdateMessage = "message"
)

const (
	defaultHTTPPort     = 80
	defaultStoragePath  = "ips.json"
	defaultSQLitePath   = "ips.db"
	defaultMaxAttempts  = 3
	defaultDotEnvPath   = ".env"
	defaultMaxDBConns   = 4
	defaultPostgresPort = "5432"
)

// RateLimitConfig holds settings for rate limiting.
// ExcludeUpdates accepts "callback" and "message".
type RateLimitConfig struct {
	IntervalMS     int      `yaml:"interval_ms" envconfig:"RATE_LIMIT_INTERVAL_MS"`
	ExcludeUpdates []string `yaml:"exclude_updates" envconfig:"RATE_LIMIT_EXCLUDE_UPDATES"`
}

// Config aggregates the whole application configuration.
type Config struct {
	Telegram  TelegramConfig  `yaml:"telegram"`
	Webhook   WebhookConfig   `yaml:"webhook"`
	Logging   LoggingConfig   `yaml:"logging"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	HTTP      HTTPConfig      `yaml:"http"`
	Storage   StorageConfig   `yaml:"storage"`
	Session   SessionConfig   `yaml:"session"`
}

// Load reads an optional .env file, an optional YAML file and the environment,
// in that order of increasing precedence.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(defaultDotEnvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", defaultDotEnvPath, err)
	}

	var cfg Config
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize performs validation of required configuration fields and adjusts defaults.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}

	if strings.TrimSpace(cfg.Telegram.Token) == "" {
		return fmt.Errorf("telegram token is required")
	}
	if cfg.Telegram.AuthorizedChatID == 0 {
		return fmt.Errorf("telegram.authorized_chat_id is required")
	}

	rm := strings.ToLower(strings.TrimSpace(cfg.Telegram.RunMode))
	if rm == "" || rm == "polling" {
		rm = RunModeLongpoll
	}
	switch rm {
	case RunModeWebhook:
		if strings.TrimSpace(cfg.Webhook.URL) == "" {
			return fmt.Errorf("webhook.url is required when telegram.run_mode is 'webhook'")
		}
		if cfg.Webhook.Port <= 0 {
			return fmt.Errorf("webhook.port must be > 0 when telegram.run_mode is 'webhook'")
		}
	case RunModeLongpoll:
		if cfg.Telegram.LongPollTimeoutSeconds < 0 {
			return fmt.Errorf("telegram.longpoll_timeout_seconds must be >= 0")
		}
	default:
		return fmt.Errorf("invalid telegram.run_mode %q; allowed: webhook, longpoll", cfg.Telegram.RunMode)
	}
	cfg.Telegram.RunMode = rm

	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = defaultHTTPPort
	}
	if cfg.HTTP.Port < 0 {
		return fmt.Errorf("http.port must be >= 0")
	}

	if err := normalizeStorage(&cfg.Storage); err != nil {
		return err
	}

	if cfg.Session.MaxAttempts == 0 {
		cfg.Session.MaxAttempts = defaultMaxAttempts
	}
	if cfg.Session.MaxAttempts < 0 {
		return fmt.Errorf("session.max_attempts must be > 0")
	}

	allowed := map[string]struct{}{
		UpdateCallback: {},
		UpdateMessage:  {},
	}
	for i, v := range cfg.RateLimit.ExcludeUpdates {
		key := strings.ToLower(strings.TrimSpace(v))
		if key == "" {
			continue
		}
		if _, ok := allowed[key]; !ok {
			return fmt.Errorf("invalid rate_limit.exclude_updates value %q; allowed: callback, message", v)
		}
		cfg.RateLimit.ExcludeUpdates[i] = key
	}
	return nil
}

func normalizeStorage(s *StorageConfig) error {
	driver := strings.ToLower(strings.TrimSpace(s.Driver))
	if driver == "" {
		driver = StorageFile
	}
	switch driver {
	case StorageFile:
		if strings.TrimSpace(s.Path) == "" {
			s.Path = defaultStoragePath
		}
	case StorageSQLite:
		if strings.TrimSpace(s.Path) == "" {
			s.Path = defaultSQLitePath
		}
	case StoragePostgres:
		if strings.TrimSpace(s.Database.Host) == "" {
			return fmt.Errorf("storage.database.host is required for the postgres driver")
		}
		if strings.TrimSpace(s.Database.Name) == "" {
			return fmt.Errorf("storage.database.name is required for the postgres driver")
		}
		if s.Database.Port == "" {
			s.Database.Port = defaultPostgresPort
		}
		if s.Database.SSLMode == "" {
			s.Database.SSLMode = "disable"
		}
		if s.Database.MaxConnections <= 0 {
			s.Database.MaxConnections = defaultMaxDBConns
		}
	default:
		return fmt.Errorf("invalid storage.driver %q; allowed: file, postgres, sqlite", s.Driver)
	}
	s.Driver = driver
	return nil
}

// ListenAddr returns the host:port the HTTP listing server binds to.
func (c HTTPConfig) ListenAddr() string {
	return fmt.Sprintf("%s:%d", strings.TrimSpace(c.Listen), c.Port)
}
