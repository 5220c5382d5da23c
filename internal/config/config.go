package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/iudanet/tourplan/internal/models"
)

// ClientConfig настройки клиента
type ClientConfig struct {
	ServerURL     string
	Token         string
	SessionFile   string // bbolt файл с токенами после login
	RequiredKinds []models.Kind
	CallTimeout   time.Duration
}

// ServerConfig настройки эталонного сервера
type ServerConfig struct {
	Addr           string
	DBPath         string
	JWTSecret      string
	AdminUser      string
	AdminPassword  string
	LogFile        string
	LogLevel       slog.Level
	TokenTTL       time.Duration
	BaseLocationID int64
	AvgSpeedKmh    float64
}

// LoadClient loads client configuration from environment variables
func LoadClient() (*ClientConfig, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	timeout, err := getDuration("TOURPLAN_CALL_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	var required []models.Kind
	if raw := os.Getenv("TOURPLAN_REQUIRED_KINDS"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			kind, err := models.ParseKind(strings.TrimSpace(name))
			if err != nil {
				return nil, fmt.Errorf("TOURPLAN_REQUIRED_KINDS: %w", err)
			}
			required = append(required, kind)
		}
	}

	return &ClientConfig{
		ServerURL:     getEnv("TOURPLAN_SERVER", "http://localhost:8000"),
		Token:         os.Getenv("TOURPLAN_TOKEN"),
		SessionFile:   getEnv("TOURPLAN_SESSION_FILE", defaultSessionFile()),
		CallTimeout:   timeout,
		RequiredKinds: required,
	}, nil
}

// LoadServer loads server configuration from environment variables
func LoadServer() (*ServerConfig, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	jwtSecret := os.Getenv("TOURPLAN_JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("TOURPLAN_JWT_SECRET is required")
	}

	ttl, err := getDuration("TOURPLAN_TOKEN_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}

	baseLocation, err := strconv.ParseInt(getEnv("TOURPLAN_BASE_LOCATION", "0"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("TOURPLAN_BASE_LOCATION: %w", err)
	}

	speed, err := strconv.ParseFloat(getEnv("TOURPLAN_AVG_SPEED_KMH", "40"), 64)
	if err != nil || speed <= 0 {
		return nil, fmt.Errorf("TOURPLAN_AVG_SPEED_KMH must be a positive number")
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(getEnv("TOURPLAN_LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("TOURPLAN_LOG_LEVEL: %w", err)
	}

	return &ServerConfig{
		Addr:           getEnv("TOURPLAN_ADDR", ":8000"),
		DBPath:         getEnv("TOURPLAN_DB", "tourplan.db"),
		JWTSecret:      jwtSecret,
		TokenTTL:       ttl,
		AdminUser:      os.Getenv("TOURPLAN_ADMIN_USER"),
		AdminPassword:  os.Getenv("TOURPLAN_ADMIN_PASSWORD"),
		BaseLocationID: baseLocation,
		AvgSpeedKmh:    speed,
		LogFile:        os.Getenv("TOURPLAN_LOG_FILE"),
		LogLevel:       level,
	}, nil
}

// defaultSessionFile returns <user config dir>/tourplan/session.db,
// or a file in the working directory when the config dir is unknown
func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "tourplan-session.db"
	}
	return filepath.Join(dir, "tourplan", "session.db")
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
