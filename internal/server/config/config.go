package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DatabaseType определяет используемый storage backend
type DatabaseType string

const (
	// SQLite хранит пользователей в локальном SQLite файле
	SQLite DatabaseType = "sqlite"
	// MongoDB хранит пользователей в коллекции документов MongoDB
	MongoDB DatabaseType = "mongodb"
)

// Значения по умолчанию
const (
	DefaultAddr       = ":8080"
	DefaultSQLitePath = "bookshelf.db"
	DefaultTokenTTL   = 2 * time.Hour
	DefaultRateLimit  = 10
	DefaultRateWindow = time.Minute
)

// Config содержит конфигурацию сервера
// Заполняется из переменных окружения (опционально из .env файла)
type Config struct {
	Addr         string        // адрес HTTP сервера
	JWTSecret    []byte        // секрет подписи токенов, обязателен
	TokenTTL     time.Duration // время жизни access token
	DatabaseType DatabaseType  // sqlite | mongodb
	SQLitePath   string        // путь к SQLite файлу
	MongoURI     string        // URI подключения к MongoDB
	DatabaseName string        // имя базы данных MongoDB
	LogLevel     slog.Level    // уровень логирования
	RateLimit    int           // лимит запросов на auth endpoints
	RateWindow   time.Duration // окно rate limit
}

// Load загружает конфигурацию из окружения
// .env файл подхватывается, если существует; его отсутствие - не ошибка
func Load() (*Config, error) {
	_ = godotenv.Load()

	// Секрет подписи обязателен: без него сервер не стартует
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}

	cfg := &Config{
		Addr:       envOrDefault("SERVER_ADDR", DefaultAddr),
		JWTSecret:  []byte(jwtSecret),
		TokenTTL:   DefaultTokenTTL,
		SQLitePath: envOrDefault("SQLITE_PATH", DefaultSQLitePath),
		LogLevel:   parseLogLevel(os.Getenv("LOG_LEVEL")),
		RateLimit:  DefaultRateLimit,
		RateWindow: DefaultRateWindow,
	}

	if ttlStr := os.Getenv("TOKEN_TTL"); ttlStr != "" {
		ttl, err := time.ParseDuration(ttlStr)
		if err != nil {
			return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
		}
		cfg.TokenTTL = ttl
	}

	if rateStr := os.Getenv("RATE_LIMIT"); rateStr != "" {
		rate, err := strconv.Atoi(rateStr)
		if err != nil || rate < 1 {
			return nil, fmt.Errorf("invalid RATE_LIMIT: %q", rateStr)
		}
		cfg.RateLimit = rate
	}

	// Определяем storage backend
	dbType := os.Getenv("DATABASE_TYPE")
	if dbType == "" {
		dbType = string(SQLite)
	}
	cfg.DatabaseType = DatabaseType(dbType)

	switch cfg.DatabaseType {
	case SQLite:
		// SQLitePath уже установлен
	case MongoDB:
		cfg.MongoURI = os.Getenv("MONGODB_URI")
		if cfg.MongoURI == "" {
			return nil, fmt.Errorf("MONGODB_URI is not set")
		}
		cfg.DatabaseName = envOrDefault("DATABASE_NAME", "bookshelf")
	default:
		return nil, fmt.Errorf("unsupported DATABASE_TYPE: %s", dbType)
	}

	return cfg, nil
}

// envOrDefault возвращает значение переменной окружения или default
func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// parseLogLevel парсит уровень логирования, по умолчанию info
func parseLogLevel(level string) slog.Level {
	switch level {
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
