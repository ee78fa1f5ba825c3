package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         8080,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			Host: "localhost",
			Port: 5432,
		},
		Redis: RedisConfig{
			Port: 6379,
		},
		Payment: PaymentConfig{
			IdempotencyTTL: 24 * time.Hour,
		},
		Sweeper: SweeperConfig{
			Enabled:   true,
			Interval:  time.Minute,
			BatchSize: 100,
		},
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "movierental", cfg.Database.Database)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, 24*time.Hour, cfg.Payment.IdempotencyTTL)
	assert.True(t, cfg.Sweeper.Enabled)
	assert.Equal(t, time.Minute, cfg.Sweeper.Interval)
	assert.Equal(t, "info", cfg.Observability.LogLevel)
}

func TestValidate_Valid(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }},
		{"zero read timeout", func(c *Config) { c.Server.ReadTimeout = 0 }},
		{"missing db host", func(c *Config) { c.Database.Host = "" }},
		{"bad redis port", func(c *Config) { c.Redis.Port = 0 }},
		{"zero idempotency ttl", func(c *Config) { c.Payment.IdempotencyTTL = 0 }},
		{"sweeper without interval", func(c *Config) { c.Sweeper.Interval = 0 }},
		{"sweeper without batch size", func(c *Config) { c.Sweeper.BatchSize = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidate_SweeperDisabledSkipsChecks(t *testing.T) {
	cfg := validConfig()
	cfg.Sweeper = SweeperConfig{Enabled: false}
	assert.NoError(t, cfg.Validate())
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "db", Port: 5432, User: "u", Password: "p", Database: "movierental", SSLMode: "disable",
	}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=movierental sslmode=disable", cfg.DatabaseDSN())
}

func TestRedisAddr(t *testing.T) {
	cfg := RedisConfig{Host: "cache", Port: 6379}
	assert.Equal(t, "cache:6379", cfg.RedisAddr())
}
