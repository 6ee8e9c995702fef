package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	FetchModeHTTP    = "http"
	FetchModeBrowser = "browser"
)

// Config stores all configuration for the application.
type Config struct {
	SiteBaseURL  string `mapstructure:"SITE_BASE_URL"`
	UserAgent    string `mapstructure:"USER_AGENT"`
	UserAgents   string `mapstructure:"USER_AGENTS"`
	ProxyURLs    string `mapstructure:"PROXY_URLS"`
	FetchMode    string `mapstructure:"FETCH_MODE"`
	FetchTimeout int    `mapstructure:"FETCH_TIMEOUT"` // in seconds
	MaxRedirects int    `mapstructure:"MAX_REDIRECTS"`

	PostgresURL      string `mapstructure:"POSTGRES_URL"`
	PostgresHost     string `mapstructure:"POSTGRES_HOST"`
	PostgresPort     string `mapstructure:"POSTGRES_PORT"`
	PostgresUser     string `mapstructure:"POSTGRES_USER"`
	PostgresPassword string `mapstructure:"POSTGRES_PASSWORD"`
	PostgresDB       string `mapstructure:"POSTGRES_DB"`

	Genres        string `mapstructure:"GENRES"`
	ItemsPerGenre int    `mapstructure:"ITEMS_PER_GENRE"`
	ExportPrefix  string `mapstructure:"EXPORT_PREFIX"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
	PageCacheTTL  int    `mapstructure:"PAGE_CACHE_TTL"` // in minutes

	PushgatewayURL string `mapstructure:"PUSHGATEWAY_URL"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
	LogFile   string `mapstructure:"LOG_FILE"`
}

var defaults = map[string]any{
	"SITE_BASE_URL":     "https://clone.nl",
	"USER_AGENT":        "Mozilla/5.0",
	"USER_AGENTS":       "",
	"PROXY_URLS":        "",
	"FETCH_MODE":        FetchModeHTTP,
	"FETCH_TIMEOUT":     30,
	"MAX_REDIRECTS":     10,
	"POSTGRES_URL":      "",
	"POSTGRES_HOST":     "localhost",
	"POSTGRES_PORT":     "5432",
	"POSTGRES_USER":     "postgres",
	"POSTGRES_PASSWORD": "postgres",
	"POSTGRES_DB":       "clone_nl",
	"GENRES":            "techno,house,electro,disco",
	"ITEMS_PER_GENRE":   50,
	"EXPORT_PREFIX":     "assets/clone_nl_catalog",
	"REDIS_ADDR":        "",
	"REDIS_PASSWORD":    "",
	"REDIS_DB":          0,
	"PAGE_CACHE_TTL":    0,
	"PUSHGATEWAY_URL":   "",
	"LOG_LEVEL":         "info",
	"LOG_FORMAT":        "json",
	"LOG_FILE":          "",
}

// Load reads configuration from file or environment variables.
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit env file. A missing file is not an error.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	// Attempt to read the env file, but don't fail if it's not present
	_ = v.ReadInConfig()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the scraper cannot run with.
func (c *Config) Validate() error {
	var errs []error

	base, err := url.Parse(c.SiteBaseURL)
	if err != nil || !base.IsAbs() {
		errs = append(errs, fmt.Errorf("SITE_BASE_URL must be an absolute URL, got %q", c.SiteBaseURL))
	}
	if c.FetchMode != FetchModeHTTP && c.FetchMode != FetchModeBrowser {
		errs = append(errs, fmt.Errorf("FETCH_MODE must be %q or %q, got %q", FetchModeHTTP, FetchModeBrowser, c.FetchMode))
	}
	if c.FetchTimeout <= 0 {
		errs = append(errs, fmt.Errorf("FETCH_TIMEOUT must be positive, got %d", c.FetchTimeout))
	}
	if c.MaxRedirects < 0 {
		errs = append(errs, fmt.Errorf("MAX_REDIRECTS must not be negative, got %d", c.MaxRedirects))
	}
	if c.ItemsPerGenre < 1 {
		errs = append(errs, fmt.Errorf("ITEMS_PER_GENRE must be at least 1, got %d", c.ItemsPerGenre))
	}
	if len(c.GenreList()) == 0 {
		errs = append(errs, errors.New("GENRES must name at least one genre"))
	}
	if c.PageCacheTTL < 0 {
		errs = append(errs, fmt.Errorf("PAGE_CACHE_TTL must not be negative, got %d", c.PageCacheTTL))
	}
	if c.LogFormat != "json" && c.LogFormat != "console" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.LogFormat))
	}
	if strings.TrimSpace(c.ExportPrefix) == "" {
		errs = append(errs, errors.New("EXPORT_PREFIX must not be empty"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// DatabaseURL returns POSTGRES_URL, or a URL built from the individual POSTGRES_* settings.
func (c *Config) DatabaseURL() string {
	if c.PostgresURL != "" {
		return c.PostgresURL
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.PostgresUser, c.PostgresPassword),
		Host:   c.PostgresHost + ":" + c.PostgresPort,
		Path:   "/" + c.PostgresDB,
	}
	return u.String()
}

func (c *Config) GenreList() []string { return splitList(c.Genres) }

// UserAgentList returns the rotation pool, falling back to USER_AGENT.
func (c *Config) UserAgentList() []string {
	if agents := splitList(c.UserAgents); len(agents) > 0 {
		return agents
	}
	return splitList(c.UserAgent)
}

func (c *Config) ProxyList() []string { return splitList(c.ProxyURLs) }

func (c *Config) FetchTimeoutDuration() time.Duration {
	return time.Duration(c.FetchTimeout) * time.Second
}

func (c *Config) PageCacheTTLDuration() time.Duration {
	return time.Duration(c.PageCacheTTL) * time.Minute
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
