package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	usecasecontract "github.com/mikiasgoitom/CampusGuide/internal/usecase/contract"
)

// Config holds application configuration values.
type Config struct {
	AppEnv     string
	Port       string
	AppBaseURL string

	MongoURI    string
	MongoDBName string
	RedisURL    string

	JWTSecret                    string
	AccessTokenExpiry            time.Duration
	EmailVerificationTokenExpiry time.Duration

	StudentEmailDomain     string
	AdminNotificationEmail string

	SendEmails       bool
	EmailHost        string
	EmailPort        int
	EmailUsername    string
	EmailAppPassword string
	EmailFrom        string

	RabbitMQURL        string
	RabbitMQEmailQueue string

	RateLimitPerSecond float64

	SuperAdminEmail    string
	SuperAdminPassword string
}

// NewConfig creates a new Config instance, loading values from environment variables.
func NewConfig() *Config {
	return &Config{
		AppEnv:     getEnv("APP_ENV", "development"),
		Port:       getEnv("PORT", "8080"),
		AppBaseURL: getEnv("APP_BASE_URL", "http://localhost:8080"),

		MongoURI:    getEnv("MONGODB_URI", ""),
		MongoDBName: getEnv("MONGODB_DB_NAME", "campus_guide"),
		RedisURL:    getEnv("REDIS_URL", ""),

		JWTSecret:                    getEnv("JWT_SECRET", ""),
		AccessTokenExpiry:            time.Minute * time.Duration(getEnvAsInt("ACCESS_TOKEN_EXPIRY_MINUTES", 60*24)),
		EmailVerificationTokenExpiry: time.Hour * time.Duration(getEnvAsInt("EMAIL_VERIFICATION_TOKEN_EXPIRY_HOURS", 24)),

		StudentEmailDomain:     strings.TrimPrefix(strings.ToLower(getEnv("STUDENT_EMAIL_DOMAIN", "university.edu")), "@"),
		AdminNotificationEmail: getEnv("ADMIN_NOTIFICATION_EMAIL", ""),

		SendEmails:       getEnvAsBool("SEND_EMAILS", true),
		EmailHost:        getEnv("EMAIL_HOST", "smtp.gmail.com"),
		EmailPort:        getEnvAsInt("EMAIL_PORT", 587),
		EmailUsername:    getEnv("EMAIL_USERNAME", ""),
		EmailAppPassword: getEnv("EMAIL_APP_PASSWORD", ""),
		EmailFrom:        getEnv("EMAIL_FROM", ""),

		RabbitMQURL:        getEnv("RABBITMQ_URL", ""),
		RabbitMQEmailQueue: getEnv("RABBITMQ_EMAIL_QUEUE", "email_jobs"),

		RateLimitPerSecond: getEnvAsFloat("RATE_LIMIT_PER_SECOND", 10),

		SuperAdminEmail:    getEnv("SUPER_ADMIN_EMAIL", ""),
		SuperAdminPassword: getEnv("SUPER_ADMIN_PASSWORD", ""),
	}
}

// Validate reports missing settings the API cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.MongoURI == "" {
		errs = append(errs, errors.New("MONGODB_URI is not set"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is not set"))
	}
	if c.StudentEmailDomain == "" {
		errs = append(errs, errors.New("STUDENT_EMAIL_DOMAIN is empty"))
	}
	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

var _ usecasecontract.IConfigProvider = (*Config)(nil)

// GetAppBaseURL returns the base URL of the application.
func (c *Config) GetAppBaseURL() string {
	return c.AppBaseURL
}

// GetAccessTokenExpiry returns the lifetime of access tokens.
func (c *Config) GetAccessTokenExpiry() time.Duration {
	return c.AccessTokenExpiry
}

// GetEmailVerificationTokenExpiry returns the expiry duration for email verification tokens.
func (c *Config) GetEmailVerificationTokenExpiry() time.Duration {
	return c.EmailVerificationTokenExpiry
}

func (c *Config) GetStudentEmailDomain() string {
	return c.StudentEmailDomain
}

func (c *Config) GetAdminNotificationEmail() string {
	return c.AdminNotificationEmail
}

// Helper function to get an environment variable or return a default value.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// Helper function to get an environment variable as an integer or return a default value.
func getEnvAsInt(name string, fallback int) int {
	valueStr := getEnv(name, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

// Helper function to get an environment variable as a boolean or return a default value.
func getEnvAsBool(name string, fallback bool) bool {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}
	return fallback
}

func getEnvAsFloat(name string, fallback float64) float64 {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseFloat(valStr, 64); err == nil && val > 0 {
		return val
	}
	return fallback
}
