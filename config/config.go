package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	AppPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBTimezone string

	// Entra auth is optional; the middleware is only built when a tenant
	// is configured. API callers are otherwise unauthenticated (known gap).
	AzureTenantID string
	AzureIssuer   string
	AzureAudience string
}

var C AppConfig

func Load() {
	_ = godotenv.Load() // missing .env is fine

	C = AppConfig{
		AppPort:    getEnv("APP_PORT", "8080"),
		DBHost:     getEnv("DB_HOST", "127.0.0.1"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "111111"),
		DBName:     getEnv("DB_NAME", "fic_backend"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		DBTimezone: getEnv("DB_TIMEZONE", "UTC"),

		AzureTenantID: getEnv("AZURE_TENANT_ID", ""),
		AzureIssuer:   getEnv("AZURE_ISSUER", ""),
		AzureAudience: getEnv("AZURE_AUDIENCE", ""),
	}
}

func GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		C.DBHost, C.DBPort, C.DBUser, C.DBPassword, C.DBName, C.DBSSLMode, C.DBTimezone,
	)
}

func AzureJWKSURL() string {
	if C.AzureTenantID == "" {
		return ""
	}
	return fmt.Sprintf("https://login.microsoftonline.com/%s/discovery/v2.0/keys", C.AzureTenantID)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
