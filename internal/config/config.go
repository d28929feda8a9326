package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds settings for the chatstore CLI
type Config struct {
	// DBPath путь к файлу SQLite, ":memory:" для эфемерной базы
	DBPath string
	// LogLevel уровень логирования: debug, info, warn, error
	LogLevel slog.Level
}

// Load reads configuration from environment variables with defaults.
// A .env file in the working directory is honored when present; real
// environment variables take precedence over it.
func Load() Config {
	// .env опционален, отсутствие файла не ошибка
	_ = godotenv.Load()

	return Config{
		DBPath:   getenv("CHATSTORE_DB", "chatstore.db"),
		LogLevel: parseLevel(getenv("CHATSTORE_LOG_LEVEL", "info")),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
