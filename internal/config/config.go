package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"go-leave/internal/shared/connection"
)

const (
	NotificationModeDirect = "direct"
	NotificationModeOutbox = "outbox"
)

type Config struct {
	AppEnv       string
	Server       ServerConfig
	Database     connection.PostgresConfig
	RedisAddr    string
	KafkaBroker  string
	JWT          JWTConfig
	Notification NotificationConfig
}

type ServerConfig struct {
	Port               string
	CORSAllowedOrigins []string
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

type NotificationConfig struct {
	Mode                string
	ManagerPhoneNumbers []string
	WhatsAppAPIURL      string
	WhatsAppAPIToken    string
	MaxAttempts         int
	BackoffBase         time.Duration
	DefaultCountryCode  string
	LocalNumberLength   int
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Port:               getEnv("PORT", "2022"),
			CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		},
		Database: connection.PostgresConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "leave"),
			Port:     getEnv("DB_PORT", "5432"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		KafkaBroker: os.Getenv("KAFKA_BROKER"),
		JWT: JWTConfig{
			Secret: os.Getenv("JWT_SECRET"),
		},
		Notification: NotificationConfig{
			Mode:                strings.ToLower(getEnv("NOTIFICATION_MODE", NotificationModeDirect)),
			ManagerPhoneNumbers: splitList(os.Getenv("MANAGER_PHONE_NUMBERS")),
			WhatsAppAPIURL:      os.Getenv("WHATSAPP_API_URL"),
			WhatsAppAPIToken:    os.Getenv("WHATSAPP_API_TOKEN"),
			DefaultCountryCode:  getEnv("PHONE_DEFAULT_COUNTRY_CODE", "1"),
		},
	}

	var err error
	if cfg.JWT.TTL, err = getDuration("JWT_TTL", 8*time.Hour); err != nil {
		return nil, err
	}
	if cfg.Notification.MaxAttempts, err = getInt("NOTIFY_MAX_ATTEMPTS", 3); err != nil {
		return nil, err
	}
	if cfg.Notification.BackoffBase, err = getDuration("NOTIFY_BACKOFF_BASE", time.Second); err != nil {
		return nil, err
	}
	if cfg.Notification.LocalNumberLength, err = getInt("PHONE_LOCAL_LENGTH", 10); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port == "" {
		return errors.New("PORT is required")
	}
	if c.JWT.Secret == "" {
		if c.IsProduction() {
			return errors.New("JWT_SECRET is required in production")
		}
		c.JWT.Secret = "dev-secret-change-me"
	}
	switch c.Notification.Mode {
	case NotificationModeDirect:
	case NotificationModeOutbox:
		if c.KafkaBroker == "" {
			return errors.New("KAFKA_BROKER is required when NOTIFICATION_MODE=outbox")
		}
	default:
		return fmt.Errorf("invalid NOTIFICATION_MODE: %s", c.Notification.Mode)
	}
	if c.Notification.MaxAttempts < 1 {
		return errors.New("NOTIFY_MAX_ATTEMPTS must be at least 1")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
