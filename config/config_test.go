package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, devJWTSecret, cfg.JWTSecret)
	assert.False(t, cfg.StrictTransitions)
	assert.Equal(t, "24h0m0s", cfg.IdempotencyWindow.String())
}

func TestLoadRequiresSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	c := Config{DBHost: "db", DBUser: "u", DBPassword: "p", DBName: "shop", DBPort: "5433", DBSSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=shop port=5433 sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.DSN())
}

func TestAllowedOrigins(t *testing.T) {
	c := Config{ClientURL: "http://localhost:3000/", CORSOrigins: []string{" https://shop.example ", "http://localhost:3000", ""}}
	assert.Equal(t, []string{"http://localhost:3000", "https://shop.example"}, c.AllowedOrigins())
}
