package config

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Config holds the configuration for the sleep backend. It is constructed
// once at startup and passed to the components that need it.
// Environment variables are parsed from the SOMNA_BACKEND_ prefix, e.g.
// SOMNA_BACKEND_HTTP_PORT, SOMNA_BACKEND_POSTGRES_DSN.
type Config struct {
	ProjectName string `envconfig:"PROJECT_NAME" default:"CBT-I Sleep Application"`
	APIPrefix   string `envconfig:"API_PREFIX" default:"/api"`
	Debug       bool   `envconfig:"DEBUG" default:"false"`

	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// DBDriver selects the store; "auto" resolves to postgres when a DSN is
	// configured, sqlite otherwise.
	DBDriver    string `envconfig:"DB_DRIVER" default:"auto"`
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"./data/somna.db"`

	SecretKey                string `envconfig:"SECRET_KEY" default:""`
	AccessTokenExpireMinutes int    `envconfig:"ACCESS_TOKEN_EXPIRE_MINUTES" default:"10080"`

	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000"`
}

// ResolveDefaults derives DBDriver when set to "auto" and validates the
// resolved value.
func (c *Config) ResolveDefaults() error {
	if c.DBDriver == "" || c.DBDriver == "auto" {
		if c.PostgresDSN != "" {
			c.DBDriver = "postgres"
		} else {
			c.DBDriver = "sqlite"
		}
	}

	switch c.DBDriver {
	case "postgres":
		if c.PostgresDSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required when DB_DRIVER=postgres")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required when DB_DRIVER=sqlite")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}

	if c.AccessTokenExpireMinutes <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}

	if c.SecretKey == "" {
		secret, err := randomSecret()
		if err != nil {
			return fmt.Errorf("failed to generate signing secret: %w", err)
		}
		c.SecretKey = secret
		log.Warn().Msg("SECRET_KEY not set; generated a random signing secret, tokens will not survive restarts")
	}
	return nil
}

// New creates a Config by parsing environment variables.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("SOMNA_BACKEND", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("project", cfg.ProjectName).
		Str("api_prefix", cfg.APIPrefix).
		Str("db_driver", cfg.DBDriver).
		Int("http_port", cfg.HTTPPort).
		Int("token_expire_minutes", cfg.AccessTokenExpireMinutes).
		Strs("cors_origins", cfg.CORSOrigins).
		Bool("debug", cfg.Debug).
		Msg("Configuration loaded")

	return &cfg, nil
}

// GetHTTPAddr returns the HTTP server address.
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
