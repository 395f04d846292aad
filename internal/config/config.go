package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string   `mapstructure:"PORT"`
	Env            string   `mapstructure:"ENV"`
	DataSource     string   `mapstructure:"DATA_SOURCE"`
	DatabaseURL    string   `mapstructure:"DATABASE_URL"`
	DBMaxConns     int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns     int32    `mapstructure:"DB_MIN_CONNS"`
	SessionSecret  string   `mapstructure:"SESSION_SECRET"`
	SessionTTLMins int      `mapstructure:"SESSION_TTL_MINS"`
	CORSOrigins    []string `mapstructure:"CORS_ORIGINS"`
	RateLimitRPS   float64  `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int      `mapstructure:"RATE_LIMIT_BURST"`
	RecencyStore   string   `mapstructure:"RECENCY_STORE"`
	RecencyLimit   int      `mapstructure:"RECENCY_LIMIT"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DATA_SOURCE", "static")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("SESSION_TTL_MINS", 60)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT_RPS", 100)
	v.SetDefault("RATE_LIMIT_BURST", 200)
	v.SetDefault("RECENCY_STORE", "memory")
	v.SetDefault("RECENCY_LIMIT", 5)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATA_SOURCE")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("SESSION_SECRET")
	v.BindEnv("SESSION_TTL_MINS")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("RATE_LIMIT_RPS")
	v.BindEnv("RATE_LIMIT_BURST")
	v.BindEnv("RECENCY_STORE")
	v.BindEnv("RECENCY_LIMIT")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.IsDev() {
		log.Println("WARNING: ============================================================")
		log.Println("WARNING: Server is running in DEVELOPMENT mode (ENV=development).")
		log.Println("WARNING: The demo allow-list accepts well-known credentials and the")
		log.Println("WARNING: session secret falls back to an insecure built-in value.")
		log.Println("WARNING: Set ENV=production and SESSION_SECRET for real deployments.")
		log.Println("WARNING: ============================================================")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks that the configuration is safe to run. Outside development
// a SESSION_SECRET is mandatory, and the Postgres-backed directory and
// recency store both require a DATABASE_URL.
func (c *Config) Validate() error {
	switch c.DataSource {
	case "static", "postgres":
	default:
		return fmt.Errorf("DATA_SOURCE must be \"static\" or \"postgres\", got %q", c.DataSource)
	}
	if c.DataSource == "postgres" && c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required when DATA_SOURCE is \"postgres\"")
	}

	switch c.RecencyStore {
	case "memory", "postgres":
	default:
		return fmt.Errorf("RECENCY_STORE must be \"memory\" or \"postgres\", got %q", c.RecencyStore)
	}
	if c.RecencyStore == "postgres" && c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required when RECENCY_STORE is \"postgres\"")
	}

	if !c.IsDev() && c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required when ENV is not \"development\"")
	}
	if c.SessionSecret != "" && len(c.SessionSecret) < 32 {
		return fmt.Errorf("SESSION_SECRET must be at least 32 characters, got %d", len(c.SessionSecret))
	}

	if c.RecencyLimit <= 0 {
		return fmt.Errorf("RECENCY_LIMIT must be positive, got %d", c.RecencyLimit)
	}

	return nil
}

// NeedsDatabase reports whether any configured backend requires a pgx pool.
func (c *Config) NeedsDatabase() bool {
	return c.DataSource == "postgres" || c.RecencyStore == "postgres"
}
