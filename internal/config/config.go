package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string
	Env  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// SessionNamespace isolates this gateway's session keys inside the
	// shared Redis origin.
	SessionNamespace string

	AuthServiceURL string
	AuthTimeout    time.Duration

	// RefreshCredential is the long-lived credential the session
	// initializer exchanges at startup. Optional: empty means no
	// restore attempt.
	RefreshCredential string

	CatalogPath string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		Env:               getEnv("ENV", "development"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		SessionNamespace:  getEnv("SESSION_NAMESPACE", "casino"),
		AuthServiceURL:    getEnv("AUTH_SERVICE_URL", ""),
		RefreshCredential: getEnv("REFRESH_CREDENTIAL", ""),
		CatalogPath:       getEnv("CATALOG_PATH", "games.yaml"),
	}

	if cfg.AuthServiceURL == "" {
		return nil, fmt.Errorf("AUTH_SERVICE_URL is required")
	}

	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %v", err)
	}
	cfg.RedisDB = db

	timeoutSec, err := strconv.Atoi(getEnv("AUTH_TIMEOUT_SECONDS", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_TIMEOUT_SECONDS: %v", err)
	}
	cfg.AuthTimeout = time.Duration(timeoutSec) * time.Second

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
