package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	BotToken        string
	BotPassword     string
	BotPasswordHash string
	Database        DatabaseConfig
	Migrations      string
	RetentionDays   int
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
}

// Load reads the bot configuration from environment variables
func Load() (*Config, error) {
	db, err := LoadDatabase()
	if err != nil {
		return nil, err
	}

	retention, err := strconv.Atoi(getEnv("SESSION_RETENTION_DAYS", "60"))
	if err != nil || retention <= 0 {
		return nil, fmt.Errorf("SESSION_RETENTION_DAYS must be a positive number")
	}

	cfg := &Config{
		BotToken:        os.Getenv("BOT_TOKEN"),
		BotPassword:     os.Getenv("BOT_PASSWORD"),
		BotPasswordHash: os.Getenv("BOT_PASSWORD_HASH"),
		Database:        *db,
		Migrations:      getEnv("MIGRATIONS_PATH", "file://migrations"),
		RetentionDays:   retention,
	}

	// Validate required fields
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if cfg.BotPassword == "" && cfg.BotPasswordHash == "" {
		return nil, fmt.Errorf("BOT_PASSWORD or BOT_PASSWORD_HASH is required")
	}

	return cfg, nil
}

// LoadDatabase reads only the database settings, for tools that do not run the bot
func LoadDatabase() (*DatabaseConfig, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	db := &DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		Name:     getEnv("DB_NAME", "wordtrainer"),
		User:     getEnv("DB_USER", "wordtrainer"),
		Password: os.Getenv("DB_PASSWORD"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	if db.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}

	return db, nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return c.Database.DSN()
}

// DSN returns PostgreSQL connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.Name,
		d.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
