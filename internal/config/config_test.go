package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		JWTSecret:            "a-real-secret",
		Port:                 "8420",
		Env:                  "development",
		ImageMaxUploadSizeMB: 10,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"Valid", func(c *Config) {}, ""},
		{"Empty JWT Secret", func(c *Config) { c.JWTSecret = "" }, "JWT_SECRET"},
		{
			"Default Secret In Production",
			func(c *Config) {
				c.Env = "production"
				c.JWTSecret = "your-secret-key-change-in-production"
			},
			"default",
		},
		{
			"Default Secret In Prod Alias",
			func(c *Config) {
				c.Env = "prod"
				c.JWTSecret = "your-secret-key-change-in-production"
			},
			"default",
		},
		{
			"Default Secret In Development Is Fine",
			func(c *Config) { c.JWTSecret = "your-secret-key-change-in-production" },
			"",
		},
		{"Empty Port", func(c *Config) { c.Port = "" }, "PORT"},
		{"Zero Upload Size", func(c *Config) { c.ImageMaxUploadSizeMB = 0 }, "IMAGE_MAX_UPLOAD_SIZE_MB"},
		{"Negative Upload Size", func(c *Config) { c.ImageMaxUploadSizeMB = -1 }, "IMAGE_MAX_UPLOAD_SIZE_MB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8420", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "ladle", cfg.DBName)
	assert.Equal(t, "/tmp/ladle/media", cfg.MediaDir)
	assert.Equal(t, 10, cfg.ImageMaxUploadSizeMB)
	assert.False(t, cfg.TracingEnabled)
	assert.Equal(t, "stdout", cfg.TracingExporter)
	assert.InDelta(t, 1.0, cfg.TracingSamplerRatio, 0.001)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("PORT", "9999")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, "env-secret", cfg.JWTSecret)
}
