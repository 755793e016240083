package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	DBName    string
	JWTKey    string
	SaltRound int

	RedisAddr string

	// Course availability gate settings. Loaded once at startup so the
	// gate can be tested with a constructed Config instead of ambient env.
	PreviewToken       string
	BypassUserIDs      map[uint]struct{}
	AllowedEmailDomain string
	TestMode           bool
	Environment        string

	DefaultCodeExpiryDays int

	EmailSender string
	Password    string // SMTP Password

	CertificateWebhookURL string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		DBName:    getEnv("DB_NAME", "decourse"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		RedisAddr: getEnv("REDIS_ADDR", ""),

		PreviewToken:       getEnv("PREVIEW_TOKEN", ""),
		BypassUserIDs:      parseUserIDList(getEnv("BYPASS_USER_IDS", "")),
		AllowedEmailDomain: getEnv("ALLOWED_EMAIL_DOMAIN", ""),
		TestMode:           getEnvBool("COURSE_TEST_MODE", false),
		Environment:        getEnv("APP_ENV", "development"),

		DefaultCodeExpiryDays: getEnvInt("DEFAULT_CODE_EXPIRY_DAYS", 7),

		EmailSender: getEnv("EMAIL_SENDER", ""),
		Password:    getEnv("PASSWORD", ""),

		CertificateWebhookURL: getEnv("CERTIFICATE_WEBHOOK_URL", ""),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.Environment == "production" && AppConfig.PreviewToken == "" {
		log.Println("Warning: PREVIEW_TOKEN is empty. Preview bypass is disabled.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}

// getEnvBool retrieves an environment variable as a bool or returns the default
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to bool: %v", key, err)
		return defaultValue
	}
	return boolValue
}

// parseUserIDList parses a comma separated list of numeric user IDs
func parseUserIDList(raw string) map[uint]struct{} {
	ids := make(map[uint]struct{})
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			log.Printf("Ignoring invalid bypass user id %q: %v", part, err)
			continue
		}
		ids[uint(id)] = struct{}{}
	}
	return ids
}
