package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	// ストア設定: memory | mysql | sqlite | postgres
	DBDriver string

	// MariaDB接続設定
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// SQLite / PostgreSQL
	SQLitePath  string
	DatabaseURL string

	// サンプルデータ投入
	SeedData bool

	// サーバー設定
	ServerPort string
	Env        string

	// CORS設定
	AllowedOrigins []string

	// クライアント設定
	APIBaseURL    string
	ClientTimeout time.Duration
	WebPort       string

	// ログ設定
	LogFormat string
	LogLevel  string
}

// Load loads configuration from environment variables
func Load() Config {
	cfg := Config{
		DBDriver:      getenv("DB_DRIVER", "memory"),
		DBHost:        getenv("DB_HOST", "localhost"),
		DBPort:        getenv("DB_PORT", "3306"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		SQLitePath:    getenv("SQLITE_PATH", "file:tweets.db?_pragma=busy_timeout(5000)"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SeedData:      getbool("SEED_DATA", true),
		ServerPort:    getenv("SERVER_PORT", "8080"),
		Env:           getenv("ENV", "development"),
		APIBaseURL:    getenv("API_BASE_URL", "http://localhost:8080/api/tweets"),
		ClientTimeout: getduration("CLIENT_TIMEOUT", 10*time.Second),
		WebPort:       getenv("WEB_PORT", "4200"),
		LogFormat:     getenv("LOG_FORMAT", "text"),
		LogLevel:      getenv("LOG_LEVEL", "info"),
	}

	allowedOrigins := getenv("ALLOWED_ORIGINS", "http://localhost:4200,http://127.0.0.1:4200")
	for _, origin := range strings.Split(allowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
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

func getbool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

// getduration accepts Go duration strings ("15s") or plain seconds ("15").
func getduration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
