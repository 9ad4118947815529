package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// State store drivers.
const (
	StateStoreMemory   = "memory"
	StateStoreRedis    = "redis"
	StateStorePostgres = "postgres"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	// MF backend
	MFAPIBaseURL string
	MFAPITimeout time.Duration // 0 leaves the transport default
	AuthTimeout  time.Duration

	// Desk tokens
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	LoginRateLimit    string

	CORSAllowedOrigins []string

	// Workflow switches
	SelectionRequireGroup    bool
	LedgerRefreshAfterSubmit bool

	// Client state store
	StateStoreDriver string
	StateTTL         time.Duration
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	DatabaseURL      string
	MigrationsPath   string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("MF_API_BASE_URL", "")
	v.SetDefault("MF_API_TIMEOUT", "0s")
	v.SetDefault("AUTH_TIMEOUT", "10s")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_EXPIRY_DURATION", "12h")
	v.SetDefault("JWT_ISSUER", "mf-receipt-desk")
	v.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("SELECTION_REQUIRE_GROUP", true)
	v.SetDefault("LEDGER_REFRESH_AFTER_SUBMIT", false)
	v.SetDefault("STATE_STORE_DRIVER", StateStoreMemory)
	v.SetDefault("STATE_TTL", "0s")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:                     v.GetString("PORT"),
		IsProduction:             v.GetBool("IS_PRODUCTION"),
		MFAPIBaseURL:             strings.TrimRight(v.GetString("MF_API_BASE_URL"), "/"),
		JWTSecret:                v.GetString("JWT_SECRET"),
		JWTIssuer:                v.GetString("JWT_ISSUER"),
		LoginRateLimit:           v.GetString("LOGIN_RATE_LIMIT"),
		SelectionRequireGroup:    v.GetBool("SELECTION_REQUIRE_GROUP"),
		LedgerRefreshAfterSubmit: v.GetBool("LEDGER_REFRESH_AFTER_SUBMIT"),
		StateStoreDriver:         strings.ToLower(v.GetString("STATE_STORE_DRIVER")),
		RedisAddr:                v.GetString("REDIS_ADDR"),
		RedisPassword:            v.GetString("REDIS_PASSWORD"),
		RedisDB:                  v.GetInt("REDIS_DB"),
		DatabaseURL:              v.GetString("PGSQL_URL"),
		MigrationsPath:           v.GetString("MIGRATIONS_PATH"),
	}

	if cfg.MFAPIBaseURL == "" {
		return nil, fmt.Errorf("MF_API_BASE_URL must be set")
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	var err error
	if cfg.MFAPITimeout, err = parseDuration(v, "MF_API_TIMEOUT", 0); err != nil {
		return nil, err
	}
	if cfg.AuthTimeout, err = parseDuration(v, "AUTH_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.JWTExpiryDuration, err = parseDuration(v, "JWT_EXPIRY_DURATION", 12*time.Hour); err != nil {
		return nil, err
	}
	if cfg.StateTTL, err = parseDuration(v, "STATE_TTL", 0); err != nil {
		return nil, err
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	switch cfg.StateStoreDriver {
	case StateStoreMemory, StateStoreRedis:
	case StateStorePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL must be set when STATE_STORE_DRIVER=postgres")
		}
	default:
		return nil, fmt.Errorf("unknown STATE_STORE_DRIVER %q", cfg.StateStoreDriver)
	}

	return cfg, nil
}

// parseDuration reads a duration such as "10s" or "1h". An empty value yields fallback.
func parseDuration(v *viper.Viper, key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s (%q): %w", key, raw, err)
	}
	return d, nil
}
