// Package config loads runtime settings from the environment, after merging
// a local .env file when one exists.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

type Config struct {
	Port     string `envconfig:"PORT" default:"5000"`
	Env      string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	DatabaseURL string `envconfig:"DATABASE_URL"`
	DBHost      string `envconfig:"DB_HOST" default:"localhost"`
	DBPort      string `envconfig:"DB_PORT" default:"5432"`
	DBUser      string `envconfig:"DB_USER" default:"postgres"`
	DBPassword  string `envconfig:"DB_PASSWORD"`
	DBName      string `envconfig:"DB_NAME" default:"blashberry"`
	DBSSLMode   string `envconfig:"DB_SSLMODE" default:"disable"`

	JWTSecret string        `envconfig:"JWT_SECRET"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"720h"`

	ClientURL   string   `envconfig:"CLIENT_URL" default:"http://localhost:3000"`
	CORSOrigins []string `envconfig:"CORS_ORIGINS"`

	RateLimitRPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"20"`
	RateLimitBurst int     `envconfig:"RATE_LIMIT_BURST" default:"40"`
	// TrustedProxies lists the proxy addresses or CIDRs whose
	// X-Forwarded-For is believed. Empty means the peer address is the client.
	TrustedProxies []string `envconfig:"TRUSTED_PROXIES"`

	UploadDir       string        `envconfig:"UPLOAD_DIR" default:"./uploads"`
	BackupDir       string        `envconfig:"BACKUP_DIR" default:"./backup/uploads"`
	BackupRetention time.Duration `envconfig:"BACKUP_RETENTION" default:"96h"`
	BackupHour      int           `envconfig:"BACKUP_HOUR" default:"2"`

	StrictTransitions bool          `envconfig:"ORDER_STRICT_TRANSITIONS" default:"false"`
	IdempotencyWindow time.Duration `envconfig:"IDEMPOTENCY_WINDOW" default:"24h"`

	FirebaseProjectID       string `envconfig:"FIREBASE_PROJECT_ID"`
	FirebaseCredentialsJSON string `envconfig:"FIREBASE_CREDENTIALS_JSON"`

	MasterAdminEmail string `envconfig:"MASTER_ADMIN_EMAIL" default:"admin@blashberry.com"`
}

const devJWTSecret = "blashberry-dev-secret"

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "read environment")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		if c.IsProduction() {
			return errors.New("JWT_SECRET must be set in production")
		}
		c.JWTSecret = devJWTSecret
	}
	if c.BackupHour < 0 || c.BackupHour > 23 {
		return errors.Errorf("BACKUP_HOUR must be between 0 and 23, got %d", c.BackupHour)
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		return errors.New("rate limits must not be negative")
	}
	c.MasterAdminEmail = strings.ToLower(strings.TrimSpace(c.MasterAdminEmail))
	return nil
}

func (c *Config) IsProduction() bool { return strings.EqualFold(c.Env, "production") }

// DSN prefers DATABASE_URL and otherwise assembles a key/value DSN from the
// DB_* variables.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)
}

// AllowedOrigins merges CLIENT_URL with CORS_ORIGINS, dropping blanks and
// duplicates.
func (c *Config) AllowedOrigins() []string {
	seen := map[string]bool{}
	var out []string
	for _, o := range append([]string{c.ClientURL}, c.CORSOrigins...) {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "" || seen[o] {
			continue
		}
		seen[o] = true
		out = append(out, o)
	}
	return out
}
