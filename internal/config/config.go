package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config represents the application configuration structure
type Config struct {
	Environment   string        `default:"dev" split_words:"true"`
	ListenAddress string        `default:":8080" split_words:"true"`
	AllowedOrigin string        `default:"*" split_words:"true"`
	StorageDriver string        `default:"postgres" split_words:"true"`
	PostgresDSN   string        `envconfig:"postgres_dsn"`
	JWTSecret     string        `envconfig:"jwt_secret"`
	TokenLifetime time.Duration `default:"1h" split_words:"true"`
	MaxPageSize   int           `default:"100" split_words:"true"`
}

// LoadFromEnv loads a new configuration structure using environment variables and an optional .env file
func LoadFromEnv() (*Config, error) {
	// Load a .env file if it exists
	_ = godotenv.Overload()

	// Load a new configuration structure using environment variables
	config := new(Config)
	if err := envconfig.Process("bs", config); err != nil {
		return nil, err
	}
	return config, nil
}

// IsEnvProduction returns whether the application runs in production mode
func (config *Config) IsEnvProduction() bool {
	env := strings.ToLower(config.Environment)
	return env == "prod" || env == "production"
}
