package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port        string        `env:"PORT"                 envDefault:"8080" validate:"required,numeric"`
	APIBaseURL  string        `env:"API_BASE_URL"         validate:"required,url"`
	APIToken    string        `env:"API_TOKEN"`
	APITimeout  time.Duration `env:"API_TIMEOUT"          envDefault:"10s"  validate:"gt=0"`
	JWTSecret   string        `env:"JWT_SECRET"           validate:"required"`
	JWTIssuer   string        `env:"JWT_ISSUER"           envDefault:"all-in-admin"`
	CORSOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"    envSeparator:","`
	StaticDir   string        `env:"STATIC_DIR"`
	LogLevel    string        `env:"LOG_LEVEL"            envDefault:"info" validate:"oneof=trace debug info warn warning error fatal panic"`
	LogFormat   string        `env:"LOG_FORMAT"           envDefault:"json" validate:"oneof=json text"`

	// JWTTTL is derived from JWT_TTL_MINUTES.
	JWTTTL        time.Duration
	JWTTTLMinutes int `env:"JWT_TTL_MINUTES" envDefault:"60"`
}

var validate = validator.New()

// Load reads .env (when present) and the environment, then validates the result.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return Config{}, fmt.Errorf("load .env file: %w", err)
		}
	}
	return Parse()
}

// Parse reads configuration from the environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.sanitize()
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) sanitize() {
	c.Port = strings.TrimSpace(c.Port)
	c.APIBaseURL = strings.TrimRight(strings.TrimSpace(c.APIBaseURL), "/")
	c.APIToken = strings.TrimSpace(c.APIToken)
	c.JWTSecret = strings.TrimSpace(c.JWTSecret)
	c.JWTIssuer = fallback(c.JWTIssuer, "all-in-admin")
	c.StaticDir = strings.TrimSpace(c.StaticDir)
	c.CORSOrigins = normalizeOrigins(c.CORSOrigins)

	if c.JWTTTLMinutes > 0 {
		c.JWTTTL = time.Duration(c.JWTTTLMinutes) * time.Minute
	} else {
		c.JWTTTL = 60 * time.Minute
	}
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func normalizeOrigins(input []string) []string {
	var out []string
	for _, part := range input {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
