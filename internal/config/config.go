package config

import (
	"os"
	"strings"
	"time"

	"github.com/gryphathie/KombuchaApp/internal/domain/reminder"
	"github.com/gryphathie/KombuchaApp/internal/pkg/token"
)

type AppConfig struct {
	// Server
	HTTPAddr       string
	RedisAddr      string
	RedisPass      string
	AllowedOrigins []string

	// Business calendar
	Timezone     string
	StatusPolicy reminder.StatusPolicy

	// Auth
	Token token.Config

	// Bootstrap operator account, created on first start when missing.
	OperatorEmail    string
	OperatorPassword string
	OperatorName     string
}

// Load loads environment variables into AppConfig.
func Load() AppConfig {
	return AppConfig{
		HTTPAddr:       getEnv("HTTP_ADDR", ":8000"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:      getEnv("REDIS_PASS", ""),
		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS", []string{"http://localhost:5173"}),

		Timezone:     getEnv("BUSINESS_TIMEZONE", "America/Mexico_City"),
		StatusPolicy: statusPolicy(getEnv("REMINDER_STATUS_POLICY", "reset")),

		Token: token.Config{
			Secret:   getEnv("JWT_SECRET", ""),
			Issuer:   "kombucha-console",
			Audience: "kombucha-operators",
			TTL:      720 * time.Hour,
		},

		OperatorEmail:    getEnv("OPERATOR_EMAIL", ""),
		OperatorPassword: getEnv("OPERATOR_PASSWORD", ""),
		OperatorName:     getEnv("OPERATOR_NAME", "Operator"),
	}
}

func statusPolicy(v string) reminder.StatusPolicy {
	if strings.ToLower(v) == string(reminder.PolicyCarryForward) {
		return reminder.PolicyCarryForward
	}
	return reminder.PolicyReset
}

// --- Helper functions ---

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
