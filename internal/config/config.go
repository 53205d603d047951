package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	GinMode          string
	ServerURL        string
	Database         DatabaseConfig
	Stripe           StripeConfig
	Media            MediaConfig
	JWT              JWTConfig
	ExportSigningKey string
	AdminUsers       []string
	TestMode         bool
}

type DatabaseConfig struct {
	URL string
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
}

type MediaConfig struct {
	CloudName string
}

type JWTConfig struct {
	Secret string
}

func Load() (*Config, error) {
	godotenv.Load()

	adminUsersStr := os.Getenv("ADMIN_USERS")
	adminUsers := []string{}
	if adminUsersStr != "" {
		adminUsers = strings.Split(adminUsersStr, ",")
		for i := range adminUsers {
			adminUsers[i] = strings.TrimSpace(adminUsers[i])
		}
	}

	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		GinMode:   getEnv("GIN_MODE", "debug"),
		ServerURL: getEnv("SERVER_URL", "http://localhost:8080"),
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Stripe: StripeConfig{
			SecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
			WebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
		},
		Media: MediaConfig{
			CloudName: getEnv("CLOUDINARY_CLOUD_NAME", "demo"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", ""),
		},
		ExportSigningKey: getEnv("EXPORT_SIGNING_KEY", ""),
		AdminUsers:       adminUsers,
		TestMode:         getEnv("TEST_MODE", "false") == "true",
	}

	if cfg.GinMode == "release" && cfg.Database.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required in release mode")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
