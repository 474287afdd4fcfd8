package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	// CAS server settings. CASBaseURL points at the CAS root
	// (e.g. https://sso.uc.cl/cas); CASServiceURL is the exact URL
	// registered with CAS as the login return target.
	CASBaseURL    string
	CASServiceURL string

	// CASMockEnabled switches ticket validation to the development
	// mock. Must never be set in production.
	CASMockEnabled bool

	SessionTTL time.Duration

	RedisAddr     string
	RedisPassword string

	DatabaseDSN string
}

func Load() Config {

	// Local development convenience; missing .env is fine.
	_ = godotenv.Load()

	cfg := Config{

		AppPort: getenv("APP_PORT", "8080"),

		CASBaseURL:    os.Getenv("CAS_BASE_URL"),
		CASServiceURL: os.Getenv("CAS_SERVICE_URL"),

		CASMockEnabled: os.Getenv("CAS_MOCK_ENABLED") == "true",

		SessionTTL: getenvDuration("SESSION_TTL", 24*time.Hour),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		DatabaseDSN: os.Getenv("DATABASE_DSN"),
	}

	return cfg

}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
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
