package app

import (
	"errors"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the console.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development"`
	AppAddr           string        `envconfig:"APP_ADDR" default:":8080"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"30s"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"30s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`

	// APIBaseURL prefixes every backend call made by the console. BackendURL
	// is the upstream of the /api rewrite proxy and the fallback base.
	APIBaseURL string        `envconfig:"API_BASE_URL"`
	BackendURL string        `envconfig:"BACKEND_URL" default:"http://127.0.0.1:9000"`
	APITimeout time.Duration `envconfig:"API_TIMEOUT" default:"10s"`

	RedisAddr     string        `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	SessionSecret string        `envconfig:"SESSION_SECRET" required:"true"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"720h"`

	CSRFSecret string `envconfig:"CSRF_SECRET" required:"true"`

	RateLimitPerMinute int `envconfig:"RATE_LIMIT_PER_MINUTE" default:"300"`

	PageSize       int           `envconfig:"PAGE_SIZE" default:"5"`
	LookupCacheTTL time.Duration `envconfig:"LOOKUP_CACHE_TTL" default:"10m"`
	LookupWarmCron string        `envconfig:"LOOKUP_WARM_CRON" default:"*/10 * * * *"`
	ExportPaper    string        `envconfig:"EXPORT_PAPER" default:"A4"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.SessionSecret == "" {
		return nil, errors.New("session secret must be provided")
	}
	if cfg.CSRFSecret == "" {
		return nil, errors.New("csrf secret must be provided")
	}
	if cfg.PageSize <= 0 {
		return nil, errors.New("page size must be positive")
	}
	switch strings.ToLower(cfg.ExportPaper) {
	case "a4":
		cfg.ExportPaper = "A4"
	case "letter":
		cfg.ExportPaper = "Letter"
	default:
		return nil, errors.New("export paper must be A4 or Letter")
	}
	return &cfg, nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}

// APIBase returns the base URL of backend calls.
func (c *Config) APIBase() string {
	if c.APIBaseURL != "" {
		return strings.TrimRight(c.APIBaseURL, "/")
	}
	return strings.TrimRight(c.BackendURL, "/")
}
