package config

import (
	"os"
	"strconv"
	"time"

	"cardclash/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string
	JWTSecret   string
	LogLevel    string
	LogJSON     bool

	// Optional collaborators
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	NatsURL       string

	// Stake limits
	MinStake int64
	MaxStake int64

	// Economy
	StartingCredits int64

	// Match pacing
	ReadyDelay   time.Duration
	ResolveDelay time.Duration
	QueueTimeout time.Duration

	// Rate limiting
	APIRateLimit   int
	APIRateWindow  time.Duration
	AuthRateLimit  int
	AuthRateWindow time.Duration
}

// Load reads configuration from the environment (.env honored in dev).
// DATABASE_URL and JWT_SECRET are required; everything else has a default.
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	return &Config{
		AppPort:     port,
		DatabaseURL: dbURL,
		JWTSecret:   jwtSecret,
		LogLevel:    envString("LOG_LEVEL", "info"),
		LogJSON:     os.Getenv("LOG_JSON") == "true",

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       envInt("REDIS_DB", 0),
		NatsURL:       os.Getenv("NATS_URL"),

		MinStake:        envInt64("MIN_STAKE", 1),
		MaxStake:        envInt64("MAX_STAKE", 100),
		StartingCredits: envInt64("STARTING_CREDITS", 100),

		ReadyDelay:   envMillis("READY_DELAY_MS", 800),
		ResolveDelay: envMillis("RESOLVE_DELAY_MS", 2500),
		QueueTimeout: envSeconds("QUEUE_TIMEOUT_SECONDS", 60),

		APIRateLimit:   envInt("API_RATE_LIMIT", 60),
		APIRateWindow:  envSeconds("API_RATE_WINDOW_SECONDS", 60),
		AuthRateLimit:  envInt("AUTH_RATE_LIMIT", 5),
		AuthRateWindow: envSeconds("AUTH_RATE_WINDOW_SECONDS", 60),
	}
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

func envInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

func envMillis(key string, def int64) time.Duration {
	return time.Duration(envInt64(key, def)) * time.Millisecond
}

func envSeconds(key string, def int64) time.Duration {
	return time.Duration(envInt64(key, def)) * time.Second
}
