package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port           string
	DBDriver       string // postgres | sqlite
	DatabaseURL    string
	SessionSecret  string
	SessionName    string
	RedisURL       string
	CacheSize      int
	ThreadCacheTTL time.Duration
	TokenHashCost  int
	// DeleteByAuthor re-enables the legacy rule that a matching display name
	// may delete a comment. Off unless explicitly turned on.
	DeleteByAuthor bool
	AdminToken     string
	LogLevel       string
	LogFormat      string
	GinMode        string
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	// A missing .env is normal in containers
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getenv("PORT", "8080"),
		DBDriver:       strings.ToLower(getenv("DB_DRIVER", "postgres")),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		SessionSecret:  getenv("SESSION_SECRET", "secret_key_change_me"),
		SessionName:    getenv("SESSION_NAME", "lirivelle_session"),
		RedisURL:       os.Getenv("REDIS_URL"),
		CacheSize:      getenvInt("CACHE_SIZE", 500),
		ThreadCacheTTL: getenvDuration("THREAD_CACHE_TTL", 5*time.Minute),
		TokenHashCost:  getenvInt("TOKEN_HASH_COST", bcrypt.DefaultCost),
		DeleteByAuthor: getenvBool("COMMENT_DELETE_BY_AUTHOR", false),
		AdminToken:     os.Getenv("ADMIN_TOKEN"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		LogFormat:      getenv("LOG_FORMAT", "text"),
		GinMode:        getenv("GIN_MODE", "release"),
	}

	if cfg.DatabaseURL == "" {
		// Fallback for local dev if not set
		if cfg.DBDriver == "sqlite" {
			cfg.DatabaseURL = "file:lirivelle.db?_pragma=foreign_keys(1)"
		} else {
			cfg.DatabaseURL = "host=localhost user=postgres password=postgres dbname=lirivelle port=5432 sslmode=disable"
		}
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}

func getenvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
