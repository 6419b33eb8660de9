package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // zone data for hosts without /usr/share/zoneinfo

	"github.com/hashicorp/go-multierror"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// TLS
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string

	// Database
	DatabaseURL string // sqlite3://path or postgres://...

	// Flat-file artifacts written by the ingestion job
	DataDir         string
	LastUpdateFile  string
	BillCounterFile string

	// Parliament terms
	ParliamentsFile   string // optional YAML term list
	CurrentParliament int
	Timezone          string

	// Rate limiting
	RedisURL           string // limiter storage; in-memory when empty
	RateLimitPerMinute int

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// Site Branding
	SiteTitle     string // env: SITE_TITLE, default: "NZPT | Urgency Tracker"
	SiteTagline   string // env: SITE_TAGLINE
	SiteAuthor    string // env: SITE_AUTHOR
	SiteBanner    string // env: SITE_BANNER_URL, used by link previews
	TwitterHandle string // env: TWITTER_HANDLE
	GitHubURL     string // env: GITHUB_URL
	ContactURL    string // env: CONTACT_URL
	ContactEmail  string // env: CONTACT_EMAIL
	AnalyticsID   string // env: ANALYTICS_ID, no analytics script when empty
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	dataDir := getEnv("DATA_DIR", ".")

	return &Config{
		Env:         getEnv("ENV", "development"),
		ServerAddr:  getEnv("SERVER_ADDR", ":3000"),
		BaseURL:     strings.TrimRight(getEnv("BASE_URL", "https://nzpt.cjs.nz"), "/"),
		DatabaseURL: getEnv("DATABASE_URL", "sqlite3://urgency.sqlite3"),
		TLSEnabled:  getEnv("TLS_ENABLED", "") != "",
		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),

		DataDir:         dataDir,
		LastUpdateFile:  getEnv("LAST_UPDATE_FILE", filepath.Join(dataDir, "lastupdate.txt")),
		BillCounterFile: getEnv("BILL_COUNTER_FILE", filepath.Join(dataDir, "billcounter.txt")),

		ParliamentsFile:   getEnv("PARLIAMENTS_FILE", "parliaments.yaml"),
		CurrentParliament: getEnvInt("CURRENT_PARLIAMENT", 54),
		Timezone:          getEnv("TIMEZONE", "Pacific/Auckland"),

		RedisURL:           getEnv("REDIS_URL", ""),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),

		CORSOrigins: getEnv("CORS_ORIGINS", ""),

		SiteTitle:     getEnv("SITE_TITLE", "NZPT | Urgency Tracker"),
		SiteTagline:   getEnv("SITE_TAGLINE", "Another tool by CJ Sandall."),
		SiteAuthor:    getEnv("SITE_AUTHOR", "CJ Sandall"),
		SiteBanner:    getEnv("SITE_BANNER_URL", "https://nzpt.cjs.nz/assets/nzpt-bannertype.png"),
		TwitterHandle: getEnv("TWITTER_HANDLE", "@ohitshammy"),
		GitHubURL:     getEnv("GITHUB_URL", "https://github.com/itshammy/nzpt-urgency"),
		ContactURL:    getEnv("CONTACT_URL", "https://cjs.nz/socials"),
		ContactEmail:  getEnv("CONTACT_EMAIL", "cj@cjs.nz"),
		AnalyticsID:   getEnv("ANALYTICS_ID", ""),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvInt returns fallback when the variable is unset. An unparsable value
// yields -1 so Validate reports it rather than silently using the default.
func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return -1
	}
	return n
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// Location resolves the configured time zone, used for "days since" arithmetic.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// AllowedOrigins returns the CORS origins, defaulting to the base URL, or
// "*" when neither is set.
func (c *Config) AllowedOrigins() []string {
	origins := c.BaseURL
	if c.CORSOrigins != "" {
		origins = c.CORSOrigins
	}

	var out []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.ServerAddr == "" {
		result = multierror.Append(result, errors.New("SERVER_ADDR must not be empty"))
	}
	if !strings.HasPrefix(c.DatabaseURL, "sqlite3://") &&
		!strings.HasPrefix(c.DatabaseURL, "postgres://") &&
		!strings.HasPrefix(c.DatabaseURL, "postgresql://") {
		result = multierror.Append(result, fmt.Errorf("DATABASE_URL %q must start with sqlite3:// or postgres://", c.DatabaseURL))
	}
	if c.TLSEnabled && (c.TLSCertFile == "" || c.TLSKeyFile == "") {
		result = multierror.Append(result, errors.New("TLS_CERT_FILE and TLS_KEY_FILE are required when TLS_ENABLED is set"))
	}
	if c.LastUpdateFile == "" {
		result = multierror.Append(result, errors.New("LAST_UPDATE_FILE must not be empty"))
	}
	if c.BillCounterFile == "" {
		result = multierror.Append(result, errors.New("BILL_COUNTER_FILE must not be empty"))
	}
	if c.CurrentParliament <= 0 {
		result = multierror.Append(result, errors.New("CURRENT_PARLIAMENT must be a positive integer"))
	}
	if c.RateLimitPerMinute <= 0 {
		result = multierror.Append(result, errors.New("RATE_LIMIT_PER_MINUTE must be a positive integer"))
	}
	if _, err := c.Location(); err != nil {
		result = multierror.Append(result, fmt.Errorf("TIMEZONE %q: %w", c.Timezone, err))
	}

	return result.ErrorOrNil()
}
