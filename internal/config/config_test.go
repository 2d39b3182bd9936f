package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("API_BASE_URL", "http://backend.local/api/")
	t.Setenv("JWT_SECRET", "  s3cret ")
}

func TestParseDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.HTTPAddress())
	assert.Equal(t, "http://backend.local/api", cfg.APIBaseURL)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, "all-in-admin", cfg.JWTIssuer)
	assert.Equal(t, 60*time.Minute, cfg.JWTTTL)
	assert.Equal(t, 10*time.Second, cfg.APITimeout)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestParseOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_TTL_MINUTES", "15")
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("LOG_FORMAT", "text")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddress())
	assert.Equal(t, 15*time.Minute, cfg.JWTTTL)
	assert.Equal(t, 3*time.Second, cfg.APITimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestParseNonPositiveTTLFallsBack(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_TTL_MINUTES", "0")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, 60*time.Minute, cfg.JWTTTL)
}

func TestParseRejectsMissingOrInvalid(t *testing.T) {
	cases := map[string]map[string]string{
		"missing base url": {"API_BASE_URL": "", "JWT_SECRET": "x"},
		"bad base url":     {"API_BASE_URL": "not a url", "JWT_SECRET": "x"},
		"missing secret":   {"API_BASE_URL": "http://backend.local", "JWT_SECRET": ""},
		"bad log level":    {"API_BASE_URL": "http://backend.local", "JWT_SECRET": "x", "LOG_LEVEL": "loud"},
		"bad port":         {"API_BASE_URL": "http://backend.local", "JWT_SECRET": "x", "PORT": "http"},
	}
	for name, vars := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range vars {
				t.Setenv(k, v)
			}
			_, err := Parse()
			assert.Error(t, err)
		})
	}
}
