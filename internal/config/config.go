package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
)

// Config holds everything the notifier binary needs at startup. All
// values come from the environment; main loads a .env file first via
// godotenv when one is present.
type Config struct {
	HTTPAddr  string `validate:"required"`
	RedisAddr string `validate:"required"`
	JWTSecret string `validate:"required"`
	// TriggerSecret authenticates the message-created webhook, which is
	// called by delivery infrastructure rather than end users.
	TriggerSecret string `validate:"required"`
	ExpoPushURL   string `validate:"required,url"`

	Firebase *FirebaseConfig `validate:"required"`
}

func Load() (*Config, error) {
	firebaseConfig, err := LoadFirebaseConfig()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:      getEnv("HTTP_ADDR", ":8080"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		TriggerSecret: os.Getenv("TRIGGER_SECRET"),
		ExpoPushURL:   getEnv("EXPO_PUSH_URL", "https://exp.host/--/api/v2/push/send"),
		Firebase:      firebaseConfig,
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
