package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/lifetrack-health/lifetrack-backend/internal/models"
)

// Config is built once in main and passed by reference into each component
// constructor. No package holds ambient configuration state.
type Config struct {
	PostgresURI    string
	RedisURI       string
	Port           string
	Environment    string // ENV: production, development, etc.
	AllowedOrigins []string
	FrontendURL    string

	// Outbound mail. SenderEmail/SenderPassword left at their placeholder
	// values disable delivery without attempting a network call.
	SMTPHost       string
	SMTPPort       int
	SenderEmail    string
	SenderPassword string

	// ReportDir is where generated PDF documents land.
	ReportDir string

	// Fees is the fixed assessment fee schedule applied to every invoice.
	Fees models.FeeSchedule
}

func Load() *Config {
	env := strings.ToLower(strings.TrimSpace(getEnv("ENV", "development")))

	allowedOrigins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	frontendURL := getEnv("FRONTEND_URL", "http://localhost:3000")
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{frontendURL}
	}

	return &Config{
		PostgresURI:    getEnv("POSTGRES_URI", "postgres://localhost:5432/lifetrack?sslmode=disable"),
		RedisURI:       getEnv("REDIS_URI", "redis://localhost:6379/0"),
		Port:           getEnv("PORT", "8080"),
		Environment:    env,
		AllowedOrigins: allowedOrigins,
		FrontendURL:    frontendURL,
		SMTPHost:       getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:       getEnvInt("SMTP_PORT", 465),
		SenderEmail:    getEnv("GMAIL_EMAIL", ""),
		SenderPassword: getEnv("GMAIL_PASSWORD", ""),
		ReportDir:      getEnv("REPORT_DIR", "temp_pdfs"),
		Fees: models.FeeSchedule{
			Consultation:  500,
			BMIAssessment: 300,
			HealthReport:  200,
		},
	}
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
