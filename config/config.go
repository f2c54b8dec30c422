package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config enthält alle Konfigurationsparameter des API-Servers aus Umgebungsvariablen.
type Config struct {
	Environment string `envconfig:"APP_ENV" default:"production"`

	DBDriver       string `envconfig:"DB_DRIVER" default:"postgres"` // postgres, sqlite
	DBHost         string `envconfig:"DB_HOST"`
	DBPort         int    `envconfig:"DB_PORT" default:"5432"`
	DBUser         string `envconfig:"DB_USER"`
	DBPassword     string `envconfig:"DB_PASSWORD"`
	DBName         string `envconfig:"DB_NAME"`
	DBSSLMode      string `envconfig:"DB_SSLMODE" default:"disable"`
	DBPath         string `envconfig:"DB_PATH" default:"blog.db"`
	DBMaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`

	HTTPPort   string `envconfig:"HTTP_PORT" default:"4000"`
	CORSOrigin string `envconfig:"CORS_ORIGIN" default:"http://localhost:3000"`

	// Text-Generierung
	AIProvider        string        `envconfig:"AI_PROVIDER" default:"openai"` // openai, anthropic
	OpenAIAPIKey      string        `envconfig:"OPENAI_API_KEY"`
	OpenAIModel       string        `envconfig:"OPENAI_MODEL" default:"gpt-3.5-turbo"`
	AnthropicAPIKey   string        `envconfig:"ANTHROPIC_API_KEY"`
	AnthropicModel    string        `envconfig:"ANTHROPIC_MODEL" default:"claude-haiku-4-5"`
	GenerationTimeout time.Duration `envconfig:"GENERATION_TIMEOUT" default:"90s"`
	TopicsFile        string        `envconfig:"TOPICS_FILE"`

	CronSchedule string `envconfig:"CRON_SCHEDULE" default:"0 10 * * *"`
	CronTimezone string `envconfig:"CRON_TIMEZONE" default:"Local"`

	// Optionales Markdown-Archiv in S3
	ArchiveS3URL    string `envconfig:"ARCHIVE_S3_URL"`
	ArchiveS3Key    string `envconfig:"ARCHIVE_S3_KEY"`
	ArchiveS3Secret string `envconfig:"ARCHIVE_S3_SECRET"`
	ArchiveS3Region string `envconfig:"ARCHIVE_S3_REGION" default:"us-east-1"`
	ArchiveS3Bucket string `envconfig:"ARCHIVE_S3_BUCKET"`
}

// DSN gibt den Data Source Name für die PostgreSQL-Verbindung zurück.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

// IsDevelopment meldet, ob Fehlerdetails an Clients ausgeliefert werden dürfen.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Environment, "development")
}

// ArchiveEnabled ist true, wenn alle Parameter für das S3-Archiv gesetzt sind.
func (c *Config) ArchiveEnabled() bool {
	return c.ArchiveS3URL != "" && c.ArchiveS3Key != "" && c.ArchiveS3Secret != "" && c.ArchiveS3Bucket != ""
}

// Location löst CRON_TIMEZONE auf.
func (c *Config) Location() (*time.Location, error) {
	if c.CronTimezone == "" || strings.EqualFold(c.CronTimezone, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(c.CronTimezone)
}

// Validate prüft die Kombinationen, die envconfig allein nicht abbilden kann.
func (c *Config) Validate() error {
	errs := []error{c.ValidateDatabase()}

	switch c.AIProvider {
	case "openai":
		if c.OpenAIAPIKey == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY is required for provider openai"))
		}
	case "anthropic":
		if c.AnthropicAPIKey == "" {
			errs = append(errs, errors.New("ANTHROPIC_API_KEY is required for provider anthropic"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown AI_PROVIDER %q", c.AIProvider))
	}

	if c.GenerationTimeout <= 0 {
		errs = append(errs, errors.New("GENERATION_TIMEOUT must be positive"))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, fmt.Errorf("invalid CRON_TIMEZONE: %w", err))
	}

	return errors.Join(errs...)
}

// ValidateDatabase prüft nur die Datenbankparameter.
func (c *Config) ValidateDatabase() error {
	var errs []error
	switch c.DBDriver {
	case "postgres":
		if c.DBHost == "" {
			errs = append(errs, errors.New("DB_HOST is required for postgres"))
		}
		if c.DBUser == "" {
			errs = append(errs, errors.New("DB_USER is required for postgres"))
		}
		if c.DBName == "" {
			errs = append(errs, errors.New("DB_NAME is required for postgres"))
		}
	case "sqlite":
		if c.DBPath == "" {
			errs = append(errs, errors.New("DB_PATH is required for sqlite"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver))
	}
	return errors.Join(errs...)
}

// Load lädt die Konfiguration aus den Umgebungsvariablen.
func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	err := envconfig.Process("", &c)
	return &c, err
}

// WebConfig enthält die Parameter des Frontend-Servers.
type WebConfig struct {
	Environment string        `envconfig:"APP_ENV" default:"production"`
	WebPort     string        `envconfig:"WEB_PORT" default:"3000"`
	APIBaseURL  string        `envconfig:"API_BASE_URL" default:"http://localhost:4000/api"`
	APITimeout  time.Duration `envconfig:"API_TIMEOUT" default:"10s"`
	SiteURL     string        `envconfig:"SITE_URL" default:"http://localhost:3000"`
}

// LoadWeb lädt die Frontend-Konfiguration.
func LoadWeb() (*WebConfig, error) {
	_ = godotenv.Load()
	var c WebConfig
	if err := envconfig.Process("", &c); err != nil {
		return &c, err
	}
	c.APIBaseURL = strings.TrimRight(c.APIBaseURL, "/")
	c.SiteURL = strings.TrimRight(c.SiteURL, "/")
	return &c, c.Validate()
}

// Validate prüft, dass API_BASE_URL und SITE_URL absolute HTTP-URLs sind.
func (c *WebConfig) Validate() error {
	var errs []error
	if err := validateBaseURL(c.APIBaseURL); err != nil {
		errs = append(errs, fmt.Errorf("invalid API_BASE_URL: %w", err))
	}
	if err := validateBaseURL(c.SiteURL); err != nil {
		errs = append(errs, fmt.Errorf("invalid SITE_URL: %w", err))
	}
	if c.APITimeout <= 0 {
		errs = append(errs, errors.New("API_TIMEOUT must be positive"))
	}
	return errors.Join(errs...)
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%q needs an http or https scheme", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%q has no host", raw)
	}
	return nil
}
