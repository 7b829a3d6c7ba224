package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"commandapi/db"
)

const (
	defaultPostgresSchema = "public"
	defaultSQLiteSchema   = "main"
)

type AppConfig struct {
	DatabaseDriver     string `env:"DB_DRIVER"            envDefault:"postgres"`
	DatabaseURL        string `env:"DB_URL,required,notEmpty"`
	DatabaseSchema     string `env:"DB_SCHEMA"` // defaults per driver
	Port               string `env:"PORT"                 envDefault:"8080"`
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`
	Environment        string `env:"ENVIRONMENT"          envDefault:"dev"`
	ServerLogsURL      string `env:"SERVER_LOGS_URL"`
	RunMigrations      bool   `env:"RUN_MIGRATIONS"       envDefault:"true"`

	SlackAlertWebhookURL string `env:"SLACK_ALERT_WEBHOOK_URL"`
}

// IsAlertingConfigured returns true if error alerts can be delivered to Slack
func (c *AppConfig) IsAlertingConfigured() bool {
	return c.SlackAlertWebhookURL != ""
}

// AllowedOrigins splits CORSAllowedOrigins into trimmed, non-empty origins
func (c *AppConfig) AllowedOrigins() []string {
	origins := []string{}
	for _, origin := range strings.Split(c.CORSAllowedOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("⚠️ Could not load .env file, continuing with system env vars")
	}

	return parseConfig(env.Options{Environment: env.ToMap(os.Environ())})
}

// ParseConfig builds an AppConfig from the given variables instead of the process environment
func ParseConfig(environment map[string]string) (*AppConfig, error) {
	return parseConfig(env.Options{Environment: environment})
}

func parseConfig(opts env.Options) (*AppConfig, error) {
	config := &AppConfig{}
	if err := env.ParseWithOptions(config, opts); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	config.DatabaseDriver = strings.ToLower(strings.TrimSpace(config.DatabaseDriver))
	if !db.IsSupportedDriver(config.DatabaseDriver) {
		return nil, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", db.DriverPostgres, db.DriverSQLite, config.DatabaseDriver)
	}

	if config.DatabaseSchema == "" {
		config.DatabaseSchema = defaultSchema(config.DatabaseDriver)
	}

	if config.IsAlertingConfigured() {
		log.Printf("✅ Slack error alerts configured")
	} else {
		log.Printf("⚠️ Slack error alerts not configured - errors will only be logged")
	}

	return config, nil
}

func defaultSchema(driver string) string {
	if driver == db.DriverSQLite {
		return defaultSQLiteSchema
	}
	return defaultPostgresSchema
}
