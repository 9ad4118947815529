package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the settings the standalone migration command needs.
type Config struct {
	DatabaseURL    string
	MigrationsPath string
}

// LoadConfig loads configuration from environment variables.
// It looks for a .env file first.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	dbURL := os.Getenv("PGSQL_URL")
	if dbURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "file://migrations"
		log.Printf("Warning: MIGRATIONS_PATH environment variable not set. Defaulting to %s\n", migrationsPath)
	}

	return &Config{
		DatabaseURL:    dbURL,
		MigrationsPath: migrationsPath,
	}, nil
}
